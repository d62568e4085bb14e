package reorder

import "time"

// Timer is a scheduled callback. Stop reports whether it prevented the callback;
// stopping a fired or already stopped timer is a no-op.
type Timer interface {
	Stop() bool
}

// Scheduler defers callbacks. Callbacks must be delivered on the same loop that
// dispatches events to the container.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
