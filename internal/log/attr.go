package log

import (
	"log/slog"
	"strings"
)

// OmitEmpty builds an attribute using the given constructor function,
// but if the value is the zero value for its type,
// it skips the attribute.
func OmitEmpty[T comparable](fn func(string, T) slog.Attr, name string, value T) slog.Attr {
	var zero T
	if value == zero {
		return slog.Attr{} // ignore
	}
	return fn(name, value)
}

// Args builds an attribute holding a list of command line arguments,
// joined with spaces. Empty lists are skipped.
func Args(name string, args []string) slog.Attr {
	return OmitEmpty(slog.String, name, strings.Join(args, " "))
}
