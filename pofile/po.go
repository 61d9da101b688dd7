// Package pofile loads the msgid/msgstr translation table that drives
// source rewriting.
//
// The format is read line by line and only two directives matter: a line
// starting with "msgid" sets the pending value, a line starting with
// "msgstr" registers an entry keyed by its own quoted text. Everything
// else (comments, continuation lines, blank lines) is ignored.
//
// Note the direction: the msgstr text is the lookup key and the msgid
// text is the value. Existing catalogs are authored that way, so the
// association must not be swapped.
package pofile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformed is returned when the file cannot be turned into a table,
// e.g. a msgstr directive appears before any msgid.
var ErrMalformed = errors.New("malformed translation file")

// ParseError reports where a translation file went wrong.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Unwrap makes errors.Is(err, ErrMalformed) hold for every ParseError.
func (e *ParseError) Unwrap() error { return ErrMalformed }

// Table maps lookup keys to translated values. It is never modified after
// Parse returns, so it can be shared freely.
type Table struct {
	entries map[string]string
}

// NewTable builds a table from an existing map. The map is copied.
func NewTable(entries map[string]string) *Table {
	t := &Table{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// Lookup returns the value registered for key.
func (t *Table) Lookup(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Parse reads a translation table from r. name is only used in error
// messages and may be empty.
func Parse(r io.Reader, name string) (*Table, error) {
	t := &Table{entries: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var pending string
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "msgid"):
			s, ok := firstQuoted(line)
			if !ok {
				return nil, &ParseError{File: name, Line: lineNum, Msg: "msgid without quoted text"}
			}
			pending = s

		case strings.HasPrefix(line, "msgstr"):
			key, ok := firstQuoted(line)
			if !ok {
				return nil, &ParseError{File: name, Line: lineNum, Msg: "msgstr without quoted text"}
			}
			if pending == "" {
				return nil, &ParseError{File: name, Line: lineNum, Msg: "msgid should be read before msgstr"}
			}
			// Later entries overwrite earlier ones.
			t.entries[key] = pending
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading translation file: %w", err)
	}

	return t, nil
}

// Load reads a translation table from disk.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening translation file: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// firstQuoted returns the text between the first pair of double quotes.
func firstQuoted(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}
