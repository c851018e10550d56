package screen

import (
	"errors"
	"io"
	"os/exec"
	"sync"

	"github.com/abhinav/screenctl/internal/log"
)

const _defaultScreen = "screen"

// minimal hook to change how exec.Cmd are run. Tests will provide a different
// implementation.
type runner struct {
	Run    func(*exec.Cmd) error
	Output func(*exec.Cmd) ([]byte, error)
}

var defaultRunner = runner{
	Run:    (*exec.Cmd).Run,
	Output: (*exec.Cmd).Output,
}

// ShellDriver is a Driver implementation that shells out to screen to run
// commands.
type ShellDriver struct {
	// Path to the screen executable. Defaults to "screen".
	Path string

	// Arguments passed to screen before every invocation,
	// e.g. []string{"-c", "/path/to/screenrc"}.
	Args []string

	// Environment for screen invocations, in the form "key=value".
	// Uses the environment of the current process if nil.
	Env []string

	// Log receives the standard error of screen invocations.
	// Defaults to discarding everything.
	Log *log.Logger

	run  *runner
	once sync.Once
}

var _ Driver = (*ShellDriver)(nil)

func (s *ShellDriver) init() {
	s.once.Do(func() {
		if s.Log == nil {
			s.Log = log.Discard
		}

		if s.Path == "" {
			s.Path = _defaultScreen
		}

		if s.run == nil {
			s.run = &defaultRunner
		}
	})
}

func (s *ShellDriver) cmd(args ...string) *exec.Cmd {
	all := make([]string, 0, len(s.Args)+len(args))
	all = append(all, s.Args...)
	all = append(all, args...)
	cmd := exec.Command(s.Path, all...)
	cmd.Env = s.Env
	return cmd
}

// errorWriter sets the provided io.Writers to the same log.Writer and returns
// a function to close them.
//
//	cmd := s.cmd("some", "cmd")
//	defer s.errorWriter(&cmd.Stderr)()
func (s *ShellDriver) errorWriter(ws ...*io.Writer) (close func()) {
	writer := &log.Writer{Log: s.Log, Level: log.Error}
	for _, w := range ws {
		*w = writer
	}
	return func() { writer.Close() }
}

func (s *ShellDriver) runCmd(cmd *exec.Cmd) error {
	if err := s.run.Run(cmd); err != nil {
		return &CommandError{Args: cmd.Args, Err: err}
	}
	return nil
}

// ListSessions runs screen -ls and returns its output.
//
// screen exits with a non-zero status from -ls even in ordinary
// circumstances, e.g. when there are no sessions, so only a failure to run
// screen at all is reported as an error.
func (s *ShellDriver) ListSessions() ([]byte, error) {
	s.init()

	cmd := s.cmd("-ls")
	defer s.errorWriter(&cmd.Stderr)()

	s.Log.Debugf("list sessions")
	out, err := s.run.Output(cmd)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, &CommandError{Args: cmd.Args, Err: err}
		}
		s.Log.Debugf("screen -ls: %v", err)
	}
	return out, nil
}

// NewSession starts a new screen session.
func (s *ShellDriver) NewSession(req NewSessionRequest) error {
	s.init()

	if len(req.Name) == 0 {
		return errors.New("session name is required")
	}

	var args []string
	if req.UTF8 {
		args = append(args, "-U")
	}
	if req.Detached {
		args = append(args, "-d", "-m")
	}
	args = append(args, "-S", req.Name)
	args = append(args, req.Command...)

	cmd := s.cmd(args...)
	if req.Detached {
		defer s.errorWriter(&cmd.Stdout, &cmd.Stderr)()
	} else {
		cmd.Stdin = req.Stdin
		cmd.Stdout = req.Stdout
		cmd.Stderr = req.Stderr
		if cmd.Stderr == nil {
			defer s.errorWriter(&cmd.Stderr)()
		}
	}

	s.Log.Debug("new session", "req", req)
	return s.runCmd(cmd)
}

// DetachSession runs screen -d.
func (s *ShellDriver) DetachSession(req DetachSessionRequest) error {
	s.init()

	cmd := s.cmd("-d", req.Session)
	defer s.errorWriter(&cmd.Stdout, &cmd.Stderr)()

	s.Log.Debug("detach session", "req", req)
	return s.runCmd(cmd)
}

// Execute runs screen -S session -X command.
func (s *ShellDriver) Execute(req ExecuteRequest) error {
	s.init()

	if len(req.Command) == 0 {
		return errors.New("command is required")
	}

	args := append([]string{"-S", req.Session, "-X"}, req.Command...)
	cmd := s.cmd(args...)
	defer s.errorWriter(&cmd.Stdout, &cmd.Stderr)()

	s.Log.Debug("execute", "req", req)
	return s.runCmd(cmd)
}
