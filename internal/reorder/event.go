package reorder

import "fmt"

type EventKind int

const (
	EventPress EventKind = iota
	EventMove
	EventRelease
)

func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a pointer or touch event in container coordinates.
// Target is the item under the pointer ("" when none).
type Event struct {
	Kind   EventKind
	Target string
	Y      int

	defaultPrevented bool
}

// PreventDefault tells the host not to apply its default handling (scrolling).
func (e *Event) PreventDefault() { e.defaultPrevented = true }

func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Listener receives events captured at container scope for the lifetime of a session.
type Listener func(ev *Event) error
