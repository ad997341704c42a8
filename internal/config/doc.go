// Package config provides configuration parsing for the reference CLI.
//
// The configuration is stored in reference.json, looked up from the working
// directory upwards unless a path is given explicitly.
//
// # Configuration File Structure
//
//	{
//	  "logLevel": "debug",
//	  "devMode": true,
//	  "debug": {
//	    "logUserErrors": true,
//	    "logComputations": false
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "reference"
//	  },
//	  "iteration": {
//	    "defaultKey": "@identity"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Apply()
package config
