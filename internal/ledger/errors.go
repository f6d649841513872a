package ledger

import "errors"

var (
	// ErrSessionConflict is returned when a workout session is started
	// while another one is still active.
	ErrSessionConflict = errors.New("a workout session is already active")

	// ErrNoActiveSession is returned when a sensor sample arrives with no
	// active workout session to attach it to.
	ErrNoActiveSession = errors.New("no active workout session")
)

// PersistError reports a failed write-through. The in-memory mutation is
// kept; the next successful write reconciles the store.
type PersistError struct {
	Key   string
	Cause error
}

func (e *PersistError) Error() string {
	return "failed to persist " + e.Key + ": " + e.Cause.Error()
}

func (e *PersistError) Unwrap() error { return e.Cause }
