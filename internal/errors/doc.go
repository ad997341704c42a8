// Package errors provides coded, actionable diagnostics for the reactive
// engine and the reference CLI.
//
// # Error Categories
//
// Errors are organized into categories:
//   - programming: invalid API use (writing a read-only value)
//   - user: a failure raised by user compute/get/set code
//   - poison: a cached failure of a deeply constant value
//   - keypath: malformed key strategy configuration
//   - config: reference.json problems
//   - cli: invalid command input
//
// # Error Codes
//
// Each error has a unique code (e.g., "R001") that maps to a short message,
// a category and, where useful, a suggestion.
//
// # Usage
//
//	err := errors.New("R001").
//	    WithDetail("readonly cell #12").
//	    Wrap(reactive.ErrNotUpdatable)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR R001: Reactive value is not updatable
//	//
//	//   readonly cell #12
//	//
//	//   Cause: reactive: not updatable
//	//
//	//   Hint: Only mutable cells and accessors accept writes. ...
package errors
