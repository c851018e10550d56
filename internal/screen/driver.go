package screen

import (
	"io"
	"log/slog"

	"github.com/abhinav/screenctl/internal/log"
)

// Driver is a low-level API to access screen. This maps directly to screen
// invocations.
type Driver interface {
	// ListSessions runs screen -ls and returns its output.
	ListSessions() ([]byte, error)

	// NewSession starts a new screen session.
	//
	// Unless the request is Detached, this attaches the request's
	// terminal to the new session and blocks until the session is
	// detached or terminates.
	NewSession(NewSessionRequest) error

	// DetachSession runs screen -d, detaching a session from its
	// terminal without terminating it.
	DetachSession(DetachSessionRequest) error

	// Execute runs a screen command inside a running session with
	// screen -X.
	Execute(ExecuteRequest) error
}

// NewSessionRequest specifies the parameters for starting a new session.
type NewSessionRequest struct {
	// Name of the session. Required.
	Name string

	// Whether the session should start in the background instead of
	// attaching to the terminal.
	Detached bool

	// Whether screen should run in UTF-8 mode.
	UTF8 bool

	// Command to run in the session's first window.
	// Defaults to the user's shell.
	Command []string

	// Terminal the session attaches to. Ignored if Detached is set.
	// Unset streams are not connected.
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

func (r NewSessionRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", r.Name),
		slog.Bool("detached", r.Detached),
		log.OmitEmpty(slog.Bool, "utf8", r.UTF8),
		log.Args("command", r.Command),
	)
}

// DetachSessionRequest specifies the parameters for a screen -d invocation.
type DetachSessionRequest struct {
	// Session to detach. Required.
	Session string
}

func (r DetachSessionRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", r.Session),
	)
}

// ExecuteRequest specifies the parameters for a screen -X invocation.
type ExecuteRequest struct {
	// Session to send the command to. Required.
	Session string

	// Command and its arguments, e.g. ["stuff", "ls"] or ["quit"].
	// Must have at least one element.
	Command []string
}

func (r ExecuteRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", r.Session),
		log.Args("command", r.Command),
	)
}

// Stuff builds a request that types the given text into a session as if
// it were entered on the keyboard.
func Stuff(session, text string) ExecuteRequest {
	return ExecuteRequest{
		Session: session,
		Command: []string{"stuff", text},
	}
}

// StuffEscape builds a request that types a character into a session,
// specified as an octal escape sequence understood by screen, e.g. `\003`
// for Ctrl-C.
//
// The escape is interpreted by screen's eval command, so it's not subject
// to shell quoting.
func StuffEscape(session, escape string) ExecuteRequest {
	return ExecuteRequest{
		Session: session,
		Command: []string{"eval", "stuff " + escape},
	}
}

// Control character escapes accepted by StuffEscape.
const (
	Interrupt      = `\003` // Ctrl-C
	CarriageReturn = `\015` // Enter
)

// Quit builds a request that terminates a session and everything running
// inside it.
func Quit(session string) ExecuteRequest {
	return ExecuteRequest{
		Session: session,
		Command: []string{"quit"},
	}
}
