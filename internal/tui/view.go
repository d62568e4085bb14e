package tui

import (
	"fmt"
	"sort"
	"strings"

	"taskdeck/internal/docs"
	"taskdeck/internal/model"
	"taskdeck/internal/reorder"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const detailMinWidth = 90

func (m *appModel) listWidth() int {
	if m.width >= detailMinWidth {
		return m.width * 3 / 5
	}
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// syncViewports re-renders every pane's canvas into its viewport.
func (m *appModel) syncViewports() {
	w := m.listWidth()
	for _, p := range m.panes {
		p.vp.SetContent(renderCanvas(p, w))
	}
}

func tabTitle(t tab) string {
	switch t {
	case tabRoutines:
		return "Routines"
	default:
		return "Deadlines"
	}
}

func (m *appModel) tabLabel(t tab) string {
	return fmt.Sprintf(" %s (%d) ", tabTitle(t), len(m.panes[t].rows))
}

func (m *appModel) tabAt(x int) tab {
	pos := 0
	for _, t := range tabOrder {
		w := ansi.StringWidth(m.tabLabel(t)) + 1
		if x < pos+w {
			return t
		}
		pos += w
	}
	return m.tab
}

func statusColor(s model.Status) lipgloss.TerminalColor {
	switch s {
	case model.StatusDone:
		return colorDone
	case model.StatusOverdue:
		return colorOverdue
	case model.StatusToday, model.StatusDue, model.StatusNew:
		return colorToday
	case model.StatusSoon:
		return colorSoon
	default:
		return colorUpcoming
	}
}

func renderRow(r paneRow, width int, selected, lifted bool) string {
	glyph := glyphStatus(r.status)
	if lifted {
		glyph = glyphGrip()
	}
	title := r.title
	if r.status == model.StatusDone {
		title = lipgloss.NewStyle().Strikethrough(true).Render(title)
	}
	left := lipgloss.NewStyle().Foreground(statusColor(r.status)).Render(glyph) + " " + title
	meta := styleMuted().Render(r.meta)

	gap := width - 2 - ansi.StringWidth(left) - ansi.StringWidth(meta)
	line := left
	if r.meta != "" && gap >= 2 {
		line = left + strings.Repeat(" ", gap) + meta
	}
	line = ansi.Truncate(" "+line, width-1, "…")

	st := lipgloss.NewStyle().Width(width)
	switch {
	case lifted:
		st = st.Bold(true).Background(colorLiftedBg).Foreground(colorSelectedFg)
	case selected:
		st = st.Background(colorSelectedBg).Foreground(colorSelectedFg)
	}
	return st.Render(line)
}

// renderCanvas draws the rows at their layout lines shifted by the engine's
// offsets. Lifted rows are drawn last so they sit above their neighbors.
func renderCanvas(p *listPane, width int) string {
	if len(p.rows) == 0 {
		return styleMuted().Render(" Nothing here yet. Press a to add one.")
	}
	lines := make([]string, p.contentLines())
	put := func(i int, s string) {
		if i < 0 {
			i = 0
		}
		for len(lines) <= i {
			lines = append(lines, "")
		}
		lines[i] = s
	}

	order := make([]int, len(p.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.c.Style(p.rows[order[a]].id).Z < p.c.Style(p.rows[order[b]].id).Z
	})
	for _, i := range order {
		r := p.rows[i]
		st := p.c.Style(r.id)
		put(2*i+roundDiv(st.OffsetY, cellUnits), renderRow(r, width, r.id == p.selected, st.Lifted()))
	}

	if ov, ok := p.c.Overlay(); ok {
		label := " drop here "
		rule := width - ansi.StringWidth(label) - 2
		if rule < 2 {
			rule = 2
		}
		put(ov.Y/cellUnits, lipgloss.NewStyle().Foreground(colorAccent).Render(glyphHRule()+label+strings.Repeat(glyphHRule(), rule)))
	}
	return strings.Join(lines, "\n")
}

func roundDiv(a, b int) int {
	if a < 0 {
		return -((-a + b/2) / b)
	}
	return (a + b/2) / b
}

func (m appModel) View() string {
	if m.resizing {
		return "Resizing…"
	}
	p := m.pane()

	var tabs []string
	for _, t := range tabOrder {
		st := lipgloss.NewStyle().Foreground(colorMuted)
		if t == m.tab {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent)
		}
		tabs = append(tabs, st.Render(m.tabLabel(t)))
	}
	header := strings.Join(tabs, " ")

	hint := "hold a row to drag · drag style: " + p.c.Strategy().Name()
	if p.c.Phase() != reorder.PhaseIdle {
		hint = "dragging · release to drop, esc to cancel"
	}
	sub := styleMuted().Render(" " + hint)

	body := p.vp.View()
	if m.width >= detailMinWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderDetail(m.width-m.listWidth(), p.vp.Height))
	}

	footer := m.help.View(m.keys)
	if m.minibufferText != "" {
		footer = m.minibufferText
	}

	out := strings.Join([]string{header, sub, body, "", footer}, "\n")
	switch m.modal {
	case modalAdd:
		return m.renderModal(m.renderAddModal())
	case modalConfirmDelete:
		return m.renderModal(fmt.Sprintf("Delete %s?\n\n%s", m.pendingDel, styleMuted().Render("y to confirm, n to cancel")))
	case modalHelp:
		md, _ := docs.Get("tui")
		return m.renderModal(renderMarkdown(md, m.modalWidth()-4))
	}
	return out
}

func (m *appModel) renderDetail(width, height int) string {
	st := lipgloss.NewStyle().Width(width).Height(height).PaddingLeft(2)
	row, ok := m.pane().selectedRow()
	if !ok {
		return st.Render(styleMuted().Render("No item selected."))
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(row.title))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(row.id + " · " + string(row.status)))
	if row.meta != "" {
		b.WriteString("\n" + styleMuted().Render(row.meta))
	}
	if notes := renderMarkdown(row.notes, width-4); notes != "" {
		b.WriteString("\n\n" + notes)
	}
	return st.MaxHeight(height).Render(b.String())
}

func (m *appModel) modalWidth() int {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m *appModel) renderAddModal() string {
	title := "New deadline"
	if m.tab == tabRoutines {
		title = "New routine"
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab: next field · enter: save · esc: cancel"))
	return b.String()
}

func (m *appModel) renderModal(content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(m.modalWidth()).
		Render(content)
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		return box
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}
