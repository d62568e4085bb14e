// Package reorder implements long-press drag-to-reorder for a vertical list.
//
// A Container owns the geometry and per-item visual state of one list. Items are
// attached as Handles. The host feeds pointer events through Dispatch and
// renders from Style, Overlay and ScrollLocked. All calls, including scheduled
// callbacks, must happen on a single event loop.
package reorder

import (
	"log/slog"
	"sort"
)

type Container struct {
	cfg Config
	log *slog.Logger

	boxes   []Box
	styles  map[string]Style
	overlay *Overlay

	scrollLocked bool

	listeners    map[int]Listener
	nextListener int

	handles map[string]*Handle
	sess    session
	gen     int
}

func NewContainer(cfg Config) *Container {
	cfg = cfg.withDefaults()
	c := &Container{
		cfg:       cfg,
		log:       cfg.Logger,
		styles:    map[string]Style{},
		listeners: map[int]Listener{},
		handles:   map[string]*Handle{},
	}
	c.sess.reset()
	if cfg.Scheduler == nil {
		c.log.Warn("reorder: container has no scheduler, drags will never activate")
	}
	return c
}

// SetLayout replaces the container's children in layout order. Boxes describe
// untransformed positions; visual offsets live in Style.
func (c *Container) SetLayout(boxes []Box) {
	c.boxes = append(c.boxes[:0:0], boxes...)
}

func (c *Container) Layout() []Box {
	return append([]Box(nil), c.boxes...)
}

// SetStrategy changes the feedback strategy for the next session.
func (c *Container) SetStrategy(fs FeedbackStrategy) {
	if fs == nil {
		fs = NeighborDisplacement{}
	}
	c.cfg.Strategy = fs
}

func (c *Container) Strategy() FeedbackStrategy { return c.cfg.Strategy }

func (c *Container) Config() Config { return c.cfg }

// Style returns the current visual state of an item.
func (c *Container) Style(id string) Style { return c.styleOf(id) }

// Overlay returns the drop indicator, if one is shown.
func (c *Container) Overlay() (Overlay, bool) {
	if c.overlay == nil {
		return Overlay{}, false
	}
	return *c.overlay, true
}

// ScrollLocked reports whether the host must suppress scrolling.
func (c *Container) ScrollLocked() bool { return c.scrollLocked }

// MutatedIDs lists items whose style differs from the default, sorted.
func (c *Container) MutatedIDs() []string {
	ids := make([]string, 0, len(c.styles))
	for id := range c.styles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Container) Phase() Phase { return c.sess.phase }

func (c *Container) OriginIndex() int    { return c.sess.originIndex }
func (c *Container) CandidateIndex() int { return c.sess.candidateIndex }

// ActiveID is the item being dragged ("" unless dragging).
func (c *Container) ActiveID() string { return c.sess.activeID }

func (c *Container) DisplacedCount() int { return len(c.sess.displaced) }

func (c *Container) ListenerCount() int { return len(c.listeners) }

// Handle returns the attached handle for an item.
func (c *Container) Handle(id string) (*Handle, bool) {
	h, ok := c.handles[id]
	return h, ok
}

// Dispatch routes one pointer event. Press goes to the handle under the pointer.
// Move and release go to listeners captured by an active session, else to the
// handle whose press is pending, else to the handle under the pointer.
//
// The returned error comes from the reorder callback of a committed drag.
func (c *Container) Dispatch(ev *Event) error {
	if ev == nil {
		return nil
	}
	if ev.Kind == EventPress {
		if h, ok := c.handles[ev.Target]; ok {
			h.onPress(ev)
		}
		return nil
	}

	if len(c.listeners) > 0 {
		keys := make([]int, 0, len(c.listeners))
		for k := range c.listeners {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		var firstErr error
		for _, k := range keys {
			l, ok := c.listeners[k]
			if !ok {
				continue
			}
			if err := l(ev); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	h := c.sess.owner
	if h == nil {
		h = c.handles[ev.Target]
	}
	if h == nil {
		return nil
	}
	switch ev.Kind {
	case EventMove:
		h.onMove(ev)
		return nil
	case EventRelease:
		return h.onRelease(ev)
	}
	return nil
}

// Cancel ends any pending press or drag without committing a reorder.
func (c *Container) Cancel() {
	_ = c.finish(false)
}

// capture registers a container-scope listener. The returned release func is
// safe to call more than once.
func (c *Container) capture(l Listener) (release func()) {
	c.nextListener++
	key := c.nextListener
	c.listeners[key] = l
	released := false
	return func() {
		if released {
			return
		}
		released = true
		delete(c.listeners, key)
	}
}

func (c *Container) styleOf(id string) Style {
	return c.styles[id]
}

func (c *Container) setStyle(id string, st Style) {
	if st.IsZero() {
		delete(c.styles, id)
		return
	}
	c.styles[id] = st
}

func (c *Container) rectOf(id string) (Rect, bool) {
	for _, b := range c.boxes {
		if b.ID == id {
			return b.Rect, true
		}
	}
	return Rect{}, false
}

// siblings are the container children other than the active item, in layout order.
// The overlay is never part of the layout.
func (c *Container) siblings() []Box {
	out := make([]Box, 0, len(c.boxes))
	for _, b := range c.boxes {
		if c.sess.activeID != "" && b.ID == c.sess.activeID {
			continue
		}
		out = append(out, b)
	}
	return out
}
