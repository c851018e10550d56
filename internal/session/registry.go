// Package session manages named GNU screen sessions.
//
// A [Registry] enumerates the live sessions reported by screen, and hands out
// [Session] handles that control a session by name.
// Neither caches what it learns: screen sessions are external processes that
// may change state or terminate at any time, so every check re-queries
// screen, and checks are advisory. An operation that follows a successful
// check may still fail if the session disappeared in the meantime.
package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/abhinav/screenctl/internal/log"
	"github.com/abhinav/screenctl/internal/screen"
	"github.com/abhinav/screenctl/internal/screen/screenls"
	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
)

const (
	// DefaultDetachDelay is the delay after which a newly created
	// session is detached from the terminal that created it.
	DefaultDetachDelay = 5 * time.Second

	// DefaultKeyDelay is the pause between keystroke injections.
	// screen drops or reorders input that arrives faster than it can
	// process it.
	DefaultKeyDelay = 20 * time.Millisecond
)

// Registry is the set of sessions known to a screen installation.
//
// Registry is safe for concurrent use, but the Sessions it hands out are not.
type Registry struct {
	// Screen is used to run screen commands. Required.
	Screen screen.Driver

	// Log receives diagnostic messages. Defaults to discarding them.
	Log *log.Logger

	// Clock used for delays. Defaults to the system clock.
	Clock clock.Clock

	// Delay after which a session created in the foreground is
	// detached. Defaults to DefaultDetachDelay.
	DetachDelay time.Duration

	// Pause after each keystroke injection. Defaults to DefaultKeyDelay.
	// Negative values disable the pause.
	KeyDelay time.Duration

	// Detached specifies that new sessions start in the background
	// instead of attaching to the terminal.
	Detached bool

	// UTF8 runs new sessions in UTF-8 mode.
	UTF8 bool

	// Command run in new sessions. Defaults to the user's shell.
	Command []string

	// Terminal that sessions created in the foreground attach to.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	once    sync.Once
	mu      sync.Mutex // guards pending
	pending map[*DetachTask]struct{}
}

func (r *Registry) init() {
	r.once.Do(func() {
		if r.Log == nil {
			r.Log = log.Discard
		}

		if r.Clock == nil {
			r.Clock = clock.New()
		}

		if r.DetachDelay == 0 {
			r.DetachDelay = DefaultDetachDelay
		}

		if r.KeyDelay == 0 {
			r.KeyDelay = DefaultKeyDelay
		}

		r.pending = make(map[*DetachTask]struct{})
	})
}

// ListSessions reports all live sessions, in the order screen lists them.
// An empty listing is not an error.
func (r *Registry) ListSessions() ([]screenls.Record, error) {
	r.init()

	out, err := r.Screen.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	records, err := screenls.Parse(out)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return records, nil
}

// Lookup reports the first live session with the given name.
func (r *Registry) Lookup(name string) (_ screenls.Record, ok bool, _ error) {
	records, err := r.ListSessions()
	if err != nil {
		return screenls.Record{}, false, err
	}

	for _, rec := range records {
		if rec.Name == name {
			return rec, true, nil
		}
	}
	return screenls.Record{}, false, nil
}

// Sessions returns a handle for each live session, already resolved to its
// current identifier and status.
func (r *Registry) Sessions() ([]*Session, error) {
	records, err := r.ListSessions()
	if err != nil {
		return nil, err
	}

	sessions := make([]*Session, len(records))
	for i, rec := range records {
		sessions[i] = r.SessionFromRecord(rec)
	}
	return sessions, nil
}

// Session returns a handle for the session with the given name.
// The session need not exist yet.
func (r *Registry) Session(name string) *Session {
	r.init()

	return &Session{name: name, reg: r}
}

// SessionFromRecord returns a handle for the session described by a
// record, resolved to the record's identifier and status.
func (r *Registry) SessionFromRecord(rec screenls.Record) *Session {
	s := r.Session(rec.Name)
	s.setResolved(rec)
	return s
}

// Close stops detach tasks that haven't yet fired and waits for running
// ones to finish, returning their errors.
func (r *Registry) Close() (err error) {
	r.init()

	r.mu.Lock()
	tasks := make([]*DetachTask, 0, len(r.pending))
	for t := range r.pending {
		tasks = append(tasks, t)
	}
	r.mu.Unlock()

	for _, t := range tasks {
		if t.Stop() {
			r.Log.Debugf("stopped pending detach of %q", t.Name())
			continue
		}

		<-t.Done()
		err = multierr.Append(err, t.Err())
	}
	return err
}

func (r *Registry) untrack(t *DetachTask) {
	r.mu.Lock()
	delete(r.pending, t)
	r.mu.Unlock()
}

// pause waits between keystroke injections.
func (r *Registry) pause() {
	if r.KeyDelay > 0 {
		r.Clock.Sleep(r.KeyDelay)
	}
}
