package reorder

// FeedbackStrategy renders live drop feedback for the current candidate index.
//
// Apply is called after every candidate recomputation. Clear must undo every
// visual change the strategy made during the session.
type FeedbackStrategy interface {
	Name() string
	Apply(c *Container, candidate int)
	Clear(c *Container)
}

// IndicatorLine draws a thin overlay line at the boundary the item would drop into.
type IndicatorLine struct{}

func (IndicatorLine) Name() string { return "indicator" }

func (IndicatorLine) Apply(c *Container, candidate int) {
	sibs := c.siblings()
	var y int
	switch {
	case len(sibs) == 0:
		y = 0
	case candidate < len(sibs):
		y = sibs[candidate].Rect.Top - c.cfg.Gap/2
	default:
		y = sibs[len(sibs)-1].Rect.Bottom() + c.cfg.Gap/2
	}
	if y < 0 {
		y = 0
	}
	c.overlay = &Overlay{Y: y}
}

func (IndicatorLine) Clear(c *Container) {
	c.overlay = nil
}

// NeighborDisplacement shifts the siblings between the origin and the candidate
// by one item height (plus gap) to open a gap where the item would land.
type NeighborDisplacement struct{}

func (NeighborDisplacement) Name() string { return "displace" }

func (NeighborDisplacement) Apply(c *Container, candidate int) {
	s := &c.sess
	sibs := c.siblings()

	shift := c.cfg.Gap
	if r, ok := c.rectOf(s.activeID); ok {
		shift += r.Height
	}

	// Siblings before the origin move down when dragging up; siblings after it
	// move up when dragging down. Sibling indices already exclude the active item.
	lo, hi, dir := 0, -1, 0
	switch {
	case candidate > s.originIndex:
		lo, hi, dir = s.originIndex, candidate-1, -1
	case candidate < s.originIndex:
		lo, hi, dir = candidate, s.originIndex-1, 1
	}

	want := make(map[string]bool, hi-lo+1)
	for i := lo; i <= hi && i < len(sibs); i++ {
		if i >= 0 {
			want[sibs[i].ID] = true
		}
	}

	for id, snap := range s.displaced {
		if !want[id] {
			c.setStyle(id, snap.apply(c.styleOf(id)))
			delete(s.displaced, id)
		}
	}

	for i := lo; i <= hi && i < len(sibs); i++ {
		if i < 0 {
			continue
		}
		id := sibs[i].ID
		snap, ok := s.displaced[id]
		if !ok {
			snap = snapshotOf(c.styleOf(id))
			s.displaced[id] = snap
		}
		st := c.styleOf(id)
		st.OffsetY = snap.OffsetY + dir*shift
		st.Position = PositionRelative
		c.setStyle(id, st)
	}
}

func (NeighborDisplacement) Clear(c *Container) {
	s := &c.sess
	for id, snap := range s.displaced {
		c.setStyle(id, snap.apply(c.styleOf(id)))
		delete(s.displaced, id)
	}
}
