// Package jsonstr embeds a JSON document in a generated C++ header as a
// single escaped string literal.
package jsonstr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Header is written at the top of every generated file.
const Header = "/* This file was auto-generated. Do not modify! */ \n"

// DefaultName is the variable name used when none is given.
const DefaultName = "val"

// ErrInvalidJSON is returned when the input is not a JSON document.
var ErrInvalidJSON = errors.New("invalid JSON")

// Convert returns the generated header for input. The JSON is compacted
// with its key order kept, and every double quote is escaped.
func Convert(input []byte, name string) ([]byte, error) {
	if name == "" {
		name = DefaultName
	}
	if !json.Valid(input) {
		return nil, ErrInvalidJSON
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	escaped := strings.ReplaceAll(compact.String(), `"`, `\"`)

	var out bytes.Buffer
	out.WriteString(Header)
	fmt.Fprintf(&out, "std::string %s = \"%s\";", name, escaped)
	return out.Bytes(), nil
}

// ConvertFile reads inPath and writes the generated header to outPath.
func ConvertFile(inPath, outPath, name string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}
	out, err := Convert(data, name)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
