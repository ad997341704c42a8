package main

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/vango-dev/reference/internal/errors"
)

// readDocument decodes a JSON file. "-" reads standard input.
func readDocument(path string) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = readAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.New("R020").WithDetail(path).Wrap(err)
	}
	return decodeDocument(path, data)
}

func decodeDocument(name string, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.New("R020").
			WithDetail(name + ": " + err.Error()).
			WithSuggestion("Check that the document is valid JSON").
			Wrap(err)
	}
	return normalize(doc), nil
}

// normalize converts json.Number values to int64 when they are integral and
// to float64 otherwise, so keys compare naturally.
func normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	}
	return v
}

func readAll(f *os.File) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(f)
	return buf.Bytes(), err
}

// encodeValue renders v as indented JSON.
func encodeValue(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// encodeCompact renders v as single-line JSON.
func encodeCompact(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
