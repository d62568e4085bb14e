package reorder

// Position mirrors the positioning mode an item is rendered with.
type Position int

const (
	PositionStatic Position = iota
	PositionRelative
)

// Style is the per-item visual state the engine mutates during a session.
// The zero value is the item's default appearance.
type Style struct {
	OffsetY     int
	Scale       float64
	Z           int
	Position    Position
	Opacity     float64
	Transition  bool
	PassThrough bool
}

func (s Style) IsZero() bool { return s == Style{} }

// Lifted reports whether the style carries drag emphasis.
func (s Style) Lifted() bool { return s.Scale > 1 }

// Snapshot is what gets saved for a displaced sibling before the engine first moves it.
type Snapshot struct {
	OffsetY  int
	Z        int
	Position Position
}

func snapshotOf(s Style) Snapshot {
	return Snapshot{OffsetY: s.OffsetY, Z: s.Z, Position: s.Position}
}

func (sn Snapshot) apply(s Style) Style {
	s.OffsetY = sn.OffsetY
	s.Z = sn.Z
	s.Position = sn.Position
	return s
}

// Overlay is the drop-indicator line drawn by the IndicatorLine strategy.
type Overlay struct {
	Y int
}

const (
	liftScale   = 1.05
	liftZ       = 1000
	liftOpacity = 0.9
)

func liftedStyle(offsetY int) Style {
	return Style{
		OffsetY:     offsetY,
		Scale:       liftScale,
		Z:           liftZ,
		Position:    PositionRelative,
		Opacity:     liftOpacity,
		PassThrough: true,
	}
}
