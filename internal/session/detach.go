package session

import (
	"errors"

	"github.com/abhinav/screenctl/internal/log"
	"github.com/abhinav/screenctl/internal/paniclog"
	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
)

// ErrDetachStopped is reported by a DetachTask that was stopped before it
// ran.
var ErrDetachStopped = errors.New("detach stopped")

// DetachTask is a pending detach of a newly created session.
//
// Sessions created in the foreground attach to the creating terminal. The
// task detaches the session after a delay so that control returns to the
// creator. Nobody waits for the task: its failures are logged, and callers
// that care may inspect them with Done and Err.
//
// Note that the task is racy by nature. If the session takes longer than the
// delay to start, or the user detaches it first, the task fails.
type DetachTask struct {
	name  string
	reg   *Registry
	timer *clock.Timer

	done chan struct{}
	err  error // valid after done is closed
}

func (r *Registry) scheduleDetach(name string) *DetachTask {
	t := &DetachTask{
		name: name,
		reg:  r,
		done: make(chan struct{}),
	}

	// Hold the lock until the timer is set so that Close never sees a
	// task without one.
	r.mu.Lock()
	t.timer = r.Clock.AfterFunc(r.DetachDelay, t.run)
	r.pending[t] = struct{}{}
	r.mu.Unlock()

	r.Log.Debugf("detaching %q in %v", name, r.DetachDelay)
	return t
}

// Name reports the name of the session this task will detach.
func (t *DetachTask) Name() string { return t.name }

// Stop cancels the task if it hasn't yet run. It reports whether the task
// was canceled. Err reports ErrDetachStopped for canceled tasks.
func (t *DetachTask) Stop() bool {
	if !t.timer.Stop() {
		return false
	}

	t.err = ErrDetachStopped
	close(t.done)
	t.reg.untrack(t)
	return true
}

// Done returns a channel that is closed when the task has finished running
// or was stopped.
func (t *DetachTask) Done() <-chan struct{} {
	return t.done
}

// Err reports the result of the task. It's valid only after Done is closed.
func (t *DetachTask) Err() error {
	return t.err
}

func (t *DetachTask) run() {
	// Untrack before signaling so that Close doesn't wait on finished tasks.
	defer close(t.done)
	defer t.reg.untrack(t)

	log := t.reg.Log.WithName("detach")
	if t.err = t.detach(log); t.err != nil {
		log.Errorf("detach %q: %v", t.name, t.err)
		return
	}
	log.Debugf("detached %q", t.name)
}

func (t *DetachTask) detach(logger *log.Logger) (err error) {
	// Runs on the timer's goroutine. Panics become the task's error.
	w := &log.Writer{Log: logger, Level: log.Error}
	defer multierr.AppendInvoke(&err, multierr.Close(w))
	defer paniclog.Recover(&err, w)

	// The creating handle may still be in use, so use a fresh one.
	return t.reg.Session(t.name).Detach()
}
