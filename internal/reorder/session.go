package reorder

import (
	"fmt"
	"time"
)

// Phase is the state of a container's interaction: Idle -> Armed -> Dragging -> Idle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseArmed
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseDragging:
		return "dragging"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type session struct {
	phase Phase
	owner *Handle

	originIndex    int
	candidateIndex int
	pointerOrigin  int
	activatedAt    time.Time

	activeID string
	strategy FeedbackStrategy
	// displaced is keyed by item ID and holds each displaced sibling's style
	// from before the session first moved it.
	displaced map[string]Snapshot

	timer   Timer
	release func()
}

func (s *session) reset() {
	*s = session{
		originIndex:    -1,
		candidateIndex: -1,
		displaced:      map[string]Snapshot{},
	}
}

func (c *Container) press(h *Handle, y int) {
	if c.sess.phase == PhaseDragging {
		c.log.Debug("reorder: press ignored, drag in progress", "item", h.id, "active", c.sess.activeID)
		return
	}
	// A new press supersedes any pending one.
	c.stopTimer()
	c.sess.reset()

	c.gen++
	gen := c.gen
	c.sess.phase = PhaseArmed
	c.sess.owner = h
	c.sess.originIndex = h.opts.Index
	c.sess.candidateIndex = h.opts.Index
	c.sess.pointerOrigin = y
	if c.cfg.Scheduler != nil {
		c.sess.timer = c.cfg.Scheduler.AfterFunc(c.cfg.HoldDelay, func() { c.activate(gen) })
	}
	c.log.Debug("reorder: armed", "item", h.id, "index", h.opts.Index, "y", y)
}

// gateMove handles movement while a press is pending.
func (c *Container) gateMove(y int) {
	if c.sess.phase != PhaseArmed {
		return
	}
	if abs(y-c.sess.pointerOrigin) <= c.cfg.MoveThreshold {
		return
	}
	c.log.Debug("reorder: gate aborted by movement", "item", c.sess.owner.id, "dy", y-c.sess.pointerOrigin)
	c.stopTimer()
	c.sess.reset()
}

// activate runs when the hold timer fires. Stale generations are ignored.
func (c *Container) activate(gen int) {
	if gen != c.gen || c.sess.phase != PhaseArmed || c.sess.owner == nil {
		return
	}
	h := c.sess.owner
	c.sess.timer = nil
	if _, ok := c.rectOf(h.id); !ok {
		c.log.Debug("reorder: activation skipped, item not in layout", "item", h.id)
		c.sess.reset()
		return
	}

	c.sess.phase = PhaseDragging
	c.sess.activatedAt = c.cfg.Now()
	c.sess.activeID = h.id
	c.sess.strategy = c.cfg.Strategy
	c.setStyle(h.id, liftedStyle(0))
	c.sess.release = c.capture(c.onSessionEvent)
	c.scrollLocked = true
	c.log.Debug("reorder: drag started", "item", h.id, "origin", c.sess.originIndex, "strategy", c.sess.strategy.Name())
}

func (c *Container) onSessionEvent(ev *Event) error {
	switch ev.Kind {
	case EventMove:
		ev.PreventDefault()
		c.dragMove(ev.Y)
		return nil
	case EventRelease:
		ev.PreventDefault()
		return c.finish(true)
	}
	return nil
}

func (c *Container) dragMove(y int) {
	s := &c.sess
	if s.phase != PhaseDragging {
		return
	}
	if _, ok := c.rectOf(s.activeID); !ok {
		// The item was re-rendered away under us; wait for the release.
		return
	}
	st := c.styleOf(s.activeID)
	st.OffsetY = y - s.pointerOrigin
	c.setStyle(s.activeID, st)

	next := c.dropIndex(y, s.candidateIndex)
	if next != s.candidateIndex {
		c.log.Debug("reorder: candidate", "item", s.activeID, "from", s.candidateIndex, "to", next)
	}
	s.candidateIndex = next
	s.strategy.Apply(c, next)
}

// dropIndex is the position of the first sibling whose midpoint lies below y,
// or the sibling count when y is below all of them. With a dead zone, a change
// away from cur is only accepted when it holds across the whole zone.
func (c *Container) dropIndex(y, cur int) int {
	sibs := c.siblings()
	at := func(y int) int {
		for i, b := range sibs {
			if b.Rect.Mid() > y {
				return i
			}
		}
		return len(sibs)
	}
	next := at(y)
	if c.cfg.DeadZone > 0 && cur >= 0 && next != cur {
		if at(y-c.cfg.DeadZone) != next || at(y+c.cfg.DeadZone) != next {
			next = cur
		}
	}
	if next < 0 {
		next = 0
	}
	if next > len(sibs) {
		next = len(sibs)
	}
	return next
}

// finish is the single release/teardown path. With commit=false no reorder is made.
func (c *Container) finish(commit bool) (err error) {
	c.stopTimer()
	s := &c.sess
	if s.phase != PhaseDragging {
		if s.phase == PhaseArmed {
			c.log.Debug("reorder: released before hold", "item", s.owner.id)
		}
		s.reset()
		return nil
	}
	defer func() {
		// Guard for every exit path, including a panicking callback.
		if s.release != nil {
			s.release()
		}
		c.scrollLocked = false
		s.reset()
	}()

	s.release()
	s.release = nil

	c.setStyle(s.activeID, Style{})
	if s.strategy != nil {
		s.strategy.Clear(c)
	}
	for id, snap := range s.displaced {
		c.setStyle(id, snap.apply(c.styleOf(id)))
		delete(s.displaced, id)
	}
	c.overlay = nil

	c.scrollLocked = false

	from, to, owner := s.originIndex, s.candidateIndex, s.owner
	c.log.Debug("reorder: drag ended", "item", s.activeID, "from", from, "to", to, "commit", commit, "held", c.cfg.Now().Sub(s.activatedAt))
	if commit && to != from && to >= 0 && owner != nil && owner.opts.OnReorder != nil {
		if err := owner.opts.OnReorder(from, to); err != nil {
			return fmt.Errorf("reorder %d -> %d: %w", from, to, err)
		}
	}
	return nil
}

func (c *Container) stopTimer() {
	if c.sess.timer != nil {
		c.sess.timer.Stop()
		c.sess.timer = nil
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
