package screen

import (
	"fmt"
	"strings"
)

// CommandError is returned when a screen invocation could not be started or
// exited with a non-zero status.
type CommandError struct {
	// Full command line, starting with the executable.
	Args []string

	// Underlying failure, usually an *exec.Error or *exec.ExitError.
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
