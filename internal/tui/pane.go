package tui

import (
	"taskdeck/internal/model"
	"taskdeck/internal/reorder"

	"github.com/charmbracelet/bubbles/viewport"
)

const (
	// listTop is the first screen row of the list viewport.
	listTop = 2
	// cellUnits is the number of reorder units per terminal row. The engine's
	// default move threshold is half a row.
	cellUnits = 20
)

type paneRow struct {
	id     string
	title  string
	meta   string
	notes  string
	status model.Status
}

// listPane is one reorderable list. Row i is drawn on content line 2i; odd
// lines are the gaps the drop indicator sits in.
type listPane struct {
	c        *reorder.Container
	rows     []paneRow
	selected string
	vp       viewport.Model

	// pressLine is the content line of the last press.
	pressLine int
}

func newListPane(cfg reorder.Config) *listPane {
	cfg.Gap = cellUnits
	return &listPane{
		c:  reorder.NewContainer(cfg),
		vp: viewport.New(0, 0),
	}
}

// sync attaches a handle per row, detaches rows that disappeared and publishes
// the layout. Rows must be in list order.
func (p *listPane) sync(rows []paneRow, onReorder func(from, to int) error) {
	keep := make(map[string]bool, len(rows))
	boxes := make([]reorder.Box, len(rows))
	for i, r := range rows {
		keep[r.id] = true
		p.c.Attach(r.id, reorder.Options{Index: i, OnReorder: onReorder})
		boxes[i] = reorder.Box{ID: r.id, Rect: reorder.Rect{Top: 2 * i * cellUnits, Height: cellUnits}}
	}
	for _, r := range p.rows {
		if keep[r.id] {
			continue
		}
		if h, ok := p.c.Handle(r.id); ok {
			h.Detach()
		}
	}
	p.c.SetLayout(boxes)
	p.rows = rows

	if p.selectedIndex() < 0 {
		p.selected = ""
		if len(rows) > 0 {
			p.selected = rows[0].id
		}
	}
}

func (p *listPane) selectedIndex() int {
	for i, r := range p.rows {
		if r.id == p.selected {
			return i
		}
	}
	return -1
}

func (p *listPane) selectedRow() (paneRow, bool) {
	if i := p.selectedIndex(); i >= 0 {
		return p.rows[i], true
	}
	return paneRow{}, false
}

func (p *listPane) moveSelection(delta int) {
	if len(p.rows) == 0 {
		return
	}
	i := p.selectedIndex() + delta
	if i < 0 {
		i = 0
	}
	if i >= len(p.rows) {
		i = len(p.rows) - 1
	}
	p.selected = p.rows[i].id
	p.ensureVisible(2 * i)
}

// rowAt maps a content line to the row drawn on it.
func (p *listPane) rowAt(line int) (int, bool) {
	if line < 0 || line%2 != 0 {
		return 0, false
	}
	i := line / 2
	if i >= len(p.rows) {
		return 0, false
	}
	return i, true
}

func (p *listPane) ensureVisible(line int) {
	if p.vp.Height <= 0 {
		return
	}
	switch {
	case line < p.vp.YOffset:
		p.vp.SetYOffset(line)
	case line >= p.vp.YOffset+p.vp.Height:
		p.vp.SetYOffset(line - p.vp.Height + 1)
	}
}

// contentLines is the number of lines the list occupies, including the gap
// after the last row so the indicator can sit below it.
func (p *listPane) contentLines() int {
	if len(p.rows) == 0 {
		return 1
	}
	return 2 * len(p.rows)
}

func (p *listPane) lineAt(screenY int) int {
	return screenY - listTop + p.vp.YOffset
}

// pointerY converts a content line to engine units. The press lands mid-row.
// Later events land on the edge of the line facing the direction of travel, so
// hovering a row carries the pointer past that row's midpoint.
func (p *listPane) pointerY(line int) int {
	switch {
	case line < p.pressLine:
		return line * cellUnits
	case line > p.pressLine:
		return (line+1)*cellUnits - 1
	default:
		return line*cellUnits + cellUnits/2
	}
}
