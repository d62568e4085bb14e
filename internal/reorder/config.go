package reorder

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

const (
	DefaultHoldDelay     = 500 * time.Millisecond
	DefaultMoveThreshold = 10
)

// Config controls a Container. Zero fields take the defaults.
type Config struct {
	// HoldDelay is how long a press must be held before a drag activates.
	HoldDelay time.Duration
	// MoveThreshold is the vertical travel that turns a pending press into a scroll/tap.
	MoveThreshold int
	// Gap is the spacing between items, added to the item height when displacing neighbors.
	Gap int
	// DeadZone is the hysteresis around sibling midpoints. 0 keeps the raw midpoint rule.
	DeadZone int

	Strategy FeedbackStrategy
	// Scheduler arms the hold timer. It is required: without one a press never
	// activates a drag.
	Scheduler Scheduler
	Now       func() time.Time
	Logger    *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.HoldDelay <= 0 {
		c.HoldDelay = DefaultHoldDelay
	}
	if c.MoveThreshold <= 0 {
		c.MoveThreshold = DefaultMoveThreshold
	}
	if c.Gap < 0 {
		c.Gap = 0
	}
	if c.DeadZone < 0 {
		c.DeadZone = 0
	}
	if c.Strategy == nil {
		c.Strategy = NeighborDisplacement{}
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// ParseStrategy maps a config value to a FeedbackStrategy.
func ParseStrategy(s string) (FeedbackStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "displace", "neighbor-displacement", "neighbors":
		return NeighborDisplacement{}, nil
	case "indicator", "indicator-line", "line":
		return IndicatorLine{}, nil
	default:
		return nil, fmt.Errorf("unknown reorder strategy: %q (expected indicator|displace)", s)
	}
}
