package session_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/abhinav/screenctl/internal/screen"
	"github.com/abhinav/screenctl/internal/screen/screentest"
)

// fakeScreen is an in-memory screen.Driver that tracks sessions and the
// input typed into them.
type fakeScreen struct {
	mu       sync.Mutex
	nextID   int
	sessions []*fakeSession
	mutating int // number of calls that changed a session
}

var _ screen.Driver = (*fakeScreen)(nil)

type fakeSession struct {
	id       int
	name     string
	attached bool

	pending     strings.Builder // typed but not yet entered
	lines       []string        // entered lines
	interrupted int
}

func (f *fakeScreen) find(name string) (int, *fakeSession) {
	for i, s := range f.sessions {
		if s.name == name {
			return i, s
		}
	}
	return -1, nil
}

func (f *fakeScreen) ListSessions() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	records := make([][3]string, len(f.sessions))
	for i, s := range f.sessions {
		status := "Detached"
		if s.attached {
			status = "Attached"
		}
		records[i] = [3]string{
			fmt.Sprintf("%d.%s", s.id, s.name),
			"11/24/2021 03:28:10 PM",
			status,
		}
	}
	return screentest.SessionListing(records...), nil
}

func (f *fakeScreen) NewSession(req screen.NewSessionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.mutating++
	f.nextID++
	f.sessions = append(f.sessions, &fakeSession{
		id:       1000 + f.nextID,
		name:     req.Name,
		attached: !req.Detached,
	})
	return nil
}

func (f *fakeScreen) DetachSession(req screen.DetachSessionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, s := f.find(req.Session)
	if s == nil {
		return errors.New("no screen session found")
	}
	f.mutating++
	s.attached = false
	return nil
}

func (f *fakeScreen) Execute(req screen.ExecuteRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i, s := f.find(req.Session)
	if s == nil {
		return errors.New("no screen session found")
	}
	f.mutating++

	switch strings.Join(req.Command, " ") {
	case "quit":
		f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
	case "eval stuff " + screen.CarriageReturn:
		s.lines = append(s.lines, s.pending.String())
		s.pending.Reset()
	case "eval stuff " + screen.Interrupt:
		s.interrupted++
		s.pending.Reset()
	default:
		if req.Command[0] != "stuff" || len(req.Command) != 2 {
			return fmt.Errorf("unsupported command %q", req.Command)
		}
		s.pending.WriteString(req.Command[1])
	}
	return nil
}

// Lines reports the lines entered into the named session.
func (f *fakeScreen) Lines(name string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, s := f.find(name); s != nil {
		return append([]string(nil), s.lines...)
	}
	return nil
}

func (f *fakeScreen) Interrupted(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, s := f.find(name); s != nil {
		return s.interrupted
	}
	return 0
}

func (f *fakeScreen) Count(name string) (n int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.name == name {
			n++
		}
	}
	return n
}

func (f *fakeScreen) Mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.mutating
}
