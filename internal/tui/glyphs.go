package tui

import (
	"os"
	"strings"
	"sync"

	"taskdeck/internal/model"
)

// Some terminals/fonts don't render the Unicode affordances cleanly, so the TUI
// can fall back to ASCII (TASKDECK_TUI_GLYPHS=ascii).

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TASKDECK_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

func glyphStatus(s model.Status) string {
	ascii := glyphs() == glyphSetASCII
	switch s {
	case model.StatusDone:
		if ascii {
			return "x"
		}
		return "✓"
	case model.StatusOverdue:
		return "!"
	case model.StatusToday, model.StatusSoon:
		if ascii {
			return "*"
		}
		return "•"
	case model.StatusDue, model.StatusNew:
		if ascii {
			return "o"
		}
		return "○"
	default:
		if ascii {
			return "."
		}
		return "·"
	}
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

// glyphGrip marks the row being dragged.
func glyphGrip() string {
	if glyphs() == glyphSetASCII {
		return "="
	}
	return "≡"
}
