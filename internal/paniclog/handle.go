// Package paniclog turns panics into errors, writing the panic value and
// stack trace to an io.Writer.
package paniclog

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"go.uber.org/multierr"
)

// Handle converts a recovered panic value into an error, writing it and the
// current stack to w. It returns nil if pval is nil.
func Handle(pval any, w io.Writer) error {
	if pval == nil {
		return nil
	}

	fmt.Fprintf(w, "panic: %v\n%s", pval, debug.Stack())

	switch pval := pval.(type) {
	case string:
		return errors.New(pval)
	case error:
		return pval
	default:
		return fmt.Errorf("panic: %v", pval)
	}
}

// Recover recovers from a panic and appends it to the error at err.
// It must be called directly with defer.
//
//	defer paniclog.Recover(&err, w)
func Recover(err *error, w io.Writer) {
	if pval := recover(); pval != nil {
		*err = multierr.Append(*err, Handle(pval, w))
	}
}
