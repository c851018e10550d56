// Package cfgfile loads options from configuration files into
// user-specified variables.
//
// A configuration file holds one option per line, in the form
//
//	name value
//
// Blank lines and lines starting with '#' are ignored. Values may be quoted
// with single or double quotes, using Go string literal syntax.
package cfgfile

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/multierr"
)

// Value is a receiver for an option value.
type Value interface {
	Set(value string) error
}

var _ Value = flag.Value(nil) // interface matching

// Loader loads options into previously registered variables.
type Loader struct {
	once   sync.Once
	values map[string]Value
	set    map[string]struct{}
}

func (l *Loader) init() {
	l.once.Do(func() {
		l.values = make(map[string]Value)
		l.set = make(map[string]struct{})
	})
}

// Var specifies that the given option should be loaded into the provided
// Value.
func (l *Loader) Var(val Value, option string) {
	l.init()

	l.values[option] = val
}

// StringVar specifies that the given option should be loaded as a string.
func (l *Loader) StringVar(dest *string, option string) {
	l.Var((*stringValue)(dest), option)
}

// BoolVar specifies that the given option should be loaded as a boolean.
func (l *Loader) BoolVar(dest *bool, option string) {
	l.Var((*boolValue)(dest), option)
}

// Loaded reports whether the given option was present in a loaded file.
func (l *Loader) Loaded(option string) bool {
	l.init()

	_, ok := l.set[option]
	return ok
}

// LoadFile loads options from the file at path. A missing file is not an
// error if optional is true.
func (l *Loader) LoadFile(path string, optional bool) (err error) {
	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	if err := l.Load(f); err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}

// Load reads options from r, filling previously registered values.
// Unknown options and invalid values are reported together after the whole
// input has been read.
func (l *Loader) Load(r io.Reader) (err error) {
	l.init()

	scan := bufio.NewScanner(r)
	for lineno := 1; scan.Scan(); lineno++ {
		line := strings.TrimSpace(scan.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		name, value := line, ""
		if idx := strings.IndexAny(line, " \t"); idx >= 0 {
			name, value = line[:idx], unquote(strings.TrimSpace(line[idx+1:]))
		}

		v, ok := l.values[name]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("line %d: unknown option %q", lineno, name))
			continue
		}

		if serr := v.Set(value); serr != nil {
			err = multierr.Append(err, fmt.Errorf("line %d: load option %q: %w", lineno, name, serr))
			continue
		}
		l.set[name] = struct{}{}
	}

	return multierr.Append(err, scan.Err())
}

// unquote tries to unquote s but doesn't fail if it can't.
func unquote(s string) string {
	if len(s) == 0 {
		return s
	}

	switch s[0] {
	case '"', '\'', '`':
		if o, err := strconv.Unquote(s); err == nil {
			return o
		}
		if s[0] == '\'' && len(s) > 1 && s[len(s)-1] == '\'' {
			// Go only allows one character in single quotes.
			return s[1 : len(s)-1]
		}
	}
	return s
}

type stringValue string

func (v *stringValue) Set(s string) error {
	*(*string)(v) = s
	return nil
}

type boolValue bool

func (v *boolValue) Set(s string) error {
	if len(s) == 0 {
		*(*bool)(v) = true
		return nil
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*(*bool)(v) = b
	return nil
}
