package session

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/abhinav/screenctl/internal/screen"
	"github.com/abhinav/screenctl/internal/screen/screenls"
	"go.uber.org/multierr"
)

var (
	// ErrSessionNotFound indicates that no live session has the requested
	// name.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidName indicates that a session name can't be used.
	ErrInvalidName = errors.New("invalid session name")
)

func notFound(name string) error {
	return fmt.Errorf("%w: %q", ErrSessionNotFound, name)
}

// ValidateName reports whether name can be used for a new session.
//
// screen -ls separates the parts of a session identifier with dots and its
// fields with whitespace, so a name containing either could never be found
// again.
func ValidateName(name string) error {
	switch {
	case len(name) == 0:
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case strings.Contains(name, "."):
		return fmt.Errorf("%w %q: must not contain '.'", ErrInvalidName, name)
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w %q: must not contain whitespace", ErrInvalidName, name)
	}
	return nil
}

// Session is a handle to a named screen session.
//
// The session's identifier and status are fetched from screen the first time
// they're needed and are only as fresh as that query. Use Refresh to fetch
// them again. A handle may outlive its session, or exist before it: use
// Exists to find out.
//
// Sessions are not safe for concurrent use.
type Session struct {
	name string
	reg  *Registry

	resolved bool
	id       string
	status   screenls.Status
}

// Name reports the name of the session.
func (s *Session) Name() string { return s.name }

func (s *Session) String() string { return s.name }

// LogValue reports the session's name and, if already resolved, its
// identifier and status. It never queries screen.
func (s *Session) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("name", s.name)}
	if s.resolved {
		attrs = append(attrs,
			slog.String("id", s.id),
			slog.String("status", s.status.String()),
		)
	}
	return slog.GroupValue(attrs...)
}

// Exists reports whether a session with this name is currently live.
//
// The answer may be out of date as soon as it's returned.
func (s *Session) Exists() (bool, error) {
	_, ok, err := s.reg.Lookup(s.name)
	return ok, err
}

// ID reports the identifier screen assigned to the session, querying screen
// if it isn't already known. It fails with ErrSessionNotFound if the session
// isn't live.
func (s *Session) ID() (string, error) {
	if !s.resolved {
		if err := s.Refresh(); err != nil {
			return "", err
		}
	}
	return s.id, nil
}

// Status reports whether the session is attached, querying screen if it
// isn't already known. It fails with ErrSessionNotFound if the session isn't
// live.
func (s *Session) Status() (screenls.Status, error) {
	if !s.resolved {
		if err := s.Refresh(); err != nil {
			return 0, err
		}
	}
	return s.status, nil
}

// Refresh fetches the session's identifier and status from screen.
func (s *Session) Refresh() error {
	rec, ok, err := s.reg.Lookup(s.name)
	if err != nil {
		return err
	}
	if !ok {
		s.Invalidate()
		return notFound(s.name)
	}
	s.setResolved(rec)
	return nil
}

// Invalidate forgets the session's identifier and status so that they're
// fetched again the next time they're needed.
func (s *Session) Invalidate() {
	s.resolved = false
	s.id = ""
	s.status = 0
}

func (s *Session) setResolved(rec screenls.Record) {
	s.resolved = true
	s.id = rec.ID
	s.status = rec.Status
}

// mustExist fails with ErrSessionNotFound if the session isn't live.
func (s *Session) mustExist() error {
	ok, err := s.Exists()
	if err != nil {
		return err
	}
	if !ok {
		return notFound(s.name)
	}
	return nil
}

// Create starts the session if it isn't already live.
//
// Unless the registry creates sessions Detached, the session attaches to the
// registry's terminal and Create blocks until it's detached. Create schedules
// a DetachTask to do that after the registry's DetachDelay, and returns it.
// The returned task is nil if no detach was scheduled.
func (s *Session) Create() (*DetachTask, error) {
	r := s.reg
	if err := ValidateName(s.name); err != nil {
		return nil, err
	}

	ok, err := s.Exists()
	if err != nil {
		return nil, err
	}
	if ok {
		r.Log.Debugf("session %q already exists", s.name)
		return nil, nil
	}
	s.Invalidate()

	req := screen.NewSessionRequest{
		Name:     s.name,
		Detached: r.Detached,
		UTF8:     r.UTF8,
		Command:  r.Command,
	}
	if r.Detached {
		if err := r.Screen.NewSession(req); err != nil {
			return nil, fmt.Errorf("create %q: %w", s.name, err)
		}
		return nil, nil
	}

	req.Stdin = r.Stdin
	req.Stdout = r.Stdout
	req.Stderr = r.Stderr

	task := r.scheduleDetach(s.name)
	if err := r.Screen.NewSession(req); err != nil {
		task.Stop()
		return nil, fmt.Errorf("create %q: %w", s.name, err)
	}
	return task, nil
}

// Interrupt sends Ctrl-C to the session.
func (s *Session) Interrupt() error {
	if err := s.mustExist(); err != nil {
		return err
	}

	if err := s.reg.Screen.Execute(screen.StuffEscape(s.name, screen.Interrupt)); err != nil {
		return fmt.Errorf("interrupt %q: %w", s.name, err)
	}
	return nil
}

// Kill terminates the session and everything running inside it.
func (s *Session) Kill() error {
	if err := s.mustExist(); err != nil {
		return err
	}

	defer s.Invalidate()
	if err := s.reg.Screen.Execute(screen.Quit(s.name)); err != nil {
		return fmt.Errorf("kill %q: %w", s.name, err)
	}
	return nil
}

// Detach detaches the session from its terminal without terminating it.
func (s *Session) Detach() error {
	if err := s.mustExist(); err != nil {
		return err
	}

	defer s.Invalidate()
	req := screen.DetachSessionRequest{Session: s.name}
	if err := s.reg.Screen.DetachSession(req); err != nil {
		return fmt.Errorf("detach %q: %w", s.name, err)
	}
	return nil
}

// SendCommands types the given commands into the session, in order, each
// followed by Enter.
//
// The session is checked for once. If it terminates partway through, the
// remaining commands fail individually and all failures are reported.
func (s *Session) SendCommands(commands ...string) (err error) {
	if err := s.mustExist(); err != nil {
		return err
	}

	r := s.reg
	log := r.Log.WithName(s.name)
	for i, cmd := range commands {
		log.Debugf("send %q", cmd)
		if serr := r.Screen.Execute(screen.Stuff(s.name, cmd)); serr != nil {
			err = multierr.Append(err, fmt.Errorf("send command %d (%q) to %q: %w", i, cmd, s.name, serr))
			continue
		}
		r.pause()

		if serr := r.Screen.Execute(screen.StuffEscape(s.name, screen.CarriageReturn)); serr != nil {
			err = multierr.Append(err, fmt.Errorf("send enter after command %d to %q: %w", i, s.name, serr))
			continue
		}
		r.pause()
	}
	return err
}

// Equal reports whether two handles refer to the same session in the same
// state. Both handles are refreshed first. Handles for sessions that aren't
// live compare by name alone.
func (s *Session) Equal(other *Session) (bool, error) {
	for _, x := range []*Session{s, other} {
		if err := x.Refresh(); err != nil && !errors.Is(err, ErrSessionNotFound) {
			return false, err
		}
	}

	return s.name == other.name &&
		s.id == other.id &&
		s.status == other.status, nil
}

// Compare orders two sessions by identifier, returning -1, 0, or +1.
// Identifiers are compared as numbers if both are decimal integers with
// different values, and as strings otherwise.
func (s *Session) Compare(other *Session) (int, error) {
	a, err := s.ID()
	if err != nil {
		return 0, err
	}
	b, err := other.ID()
	if err != nil {
		return 0, err
	}
	return CompareIDs(a, b), nil
}

// CompareIDs orders two session identifiers the way Compare does.
func CompareIDs(a, b string) int {
	x, xerr := strconv.ParseUint(a, 10, 64)
	y, yerr := strconv.ParseUint(b, 10, 64)
	if xerr == nil && yerr == nil && x != y {
		return cmp.Compare(x, y)
	}
	// "007" and "7" are different identifiers.
	return strings.Compare(a, b)
}

var _ slog.LogValuer = (*Session)(nil)
