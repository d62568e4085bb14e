package tui

import (
	"strings"
	"time"

	"taskdeck/internal/model"
	"taskdeck/internal/reorder"
	"taskdeck/internal/store"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		// Don't show the resize overlay on startup; only after we've seen an initial size.
		if !m.seenWindowSize {
			m.seenWindowSize = true
			m.resizing = false
			return m, nil
		}
		m.resizing = true
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return resizeDoneMsg{seq: seq} })

	case resizeDoneMsg:
		// Debounce: only clear if this corresponds to the latest resize seq.
		if msg.seq == m.resizeSeq {
			m.resizing = false
		}
		return m, nil

	case externalEditorDoneMsg:
		return m, m.applyExternalEditorResult(msg)

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case holdTickMsg:
		if m.sched.fire(msg.seq) {
			m.syncViewports()
		}
		return m, m.sched.drain()

	case storeChangedMsg:
		m.storeDirty = true
		if !m.dragging() {
			if err := m.reloadFromDisk(); err != nil {
				m.log.Error("reload failed", "err", err)
			}
		}
		return m, m.watcher.wait()

	case storeWatchErrMsg:
		m.log.Warn("store watch error", "err", msg.err)
		return m, m.watcher.wait()

	case reloadTickMsg:
		// Never swap the layout out from under a press or drag.
		if !m.dragging() && (m.storeDirty || m.storeChanged()) {
			if err := m.reloadFromDisk(); err != nil {
				m.log.Error("reload failed", "err", err)
			}
		}
		return m, tickReload()

	case tea.MouseMsg:
		if m.modal != modalNone {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *appModel) resizeLists() {
	h := m.height - listTop - 2
	if h < 1 {
		h = 1
	}
	w := m.listWidth()
	for _, p := range m.panes {
		p.vp.Width = w
		p.vp.Height = h
	}
	m.help.Width = m.width
	m.syncViewports()
}

func (m *appModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := m.pane()

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		if p.c.ScrollLocked() {
			return nil
		}
		delta := 3
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -delta
		}
		p.vp.SetYOffset(p.vp.YOffset + delta)
		return nil
	}

	if msg.Y == 0 && msg.Action == tea.MouseActionPress && !m.dragging() {
		m.switchTab(m.tabAt(msg.X))
		return nil
	}

	line := p.lineAt(msg.Y)
	target := ""
	if i, ok := p.rowAt(line); ok && msg.Y >= listTop {
		target = p.rows[i].id
	}

	var ev *reorder.Event
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || target == "" {
			return nil
		}
		if p.c.Phase() != reorder.PhaseDragging {
			p.pressLine = line
		}
		p.selected = target
		ev = &reorder.Event{Kind: reorder.EventPress, Target: target, Y: p.pointerY(line)}
	case tea.MouseActionMotion:
		ev = &reorder.Event{Kind: reorder.EventMove, Target: target, Y: p.pointerY(line)}
	case tea.MouseActionRelease:
		ev = &reorder.Event{Kind: reorder.EventRelease, Target: target, Y: p.pointerY(line)}
	default:
		return nil
	}

	active := p.c.ActiveID()
	var cmds []tea.Cmd
	if err := p.c.Dispatch(ev); err != nil {
		m.log.Error("reorder failed", "err", err)
		cmds = append(cmds, m.showMinibuffer("Reorder failed: "+err.Error()))
	}
	if active != "" && p.c.Phase() == reorder.PhaseIdle {
		// The dropped item stays selected at its new position.
		p.selected = active
		m.syncPanes()
	} else {
		m.syncViewports()
	}
	cmds = append(cmds, m.sched.drain())
	return tea.Batch(cmds...)
}

func (m *appModel) switchTab(t tab) {
	if t == m.tab {
		return
	}
	m.pane().c.Cancel()
	m.tab = t
	m.syncViewports()
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dragging() {
		switch msg.String() {
		case "esc", "ctrl+c":
			m.pane().c.Cancel()
			m.syncViewports()
		}
		return m, nil
	}

	p := m.pane()
	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.saveState(); err != nil {
			m.log.Error("save tui state", "err", err)
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		p.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		p.moveSelection(1)
	case key.Matches(msg, m.keys.Tab):
		m.switchTab(tabOrder[(int(m.tab)+1)%len(tabOrder)])
	case key.Matches(msg, m.keys.Add):
		m.openAddModal()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Toggle):
		if row, ok := p.selectedRow(); ok {
			if err := m.toggleDone(row.id); err != nil {
				return m, m.showMinibuffer("Error: " + err.Error())
			}
		}
	case key.Matches(msg, m.keys.Edit):
		if row, ok := p.selectedRow(); ok {
			cmd, err := m.openNotesEditor(row)
			if err != nil {
				return m, m.showMinibuffer("Error: " + err.Error())
			}
			return m, cmd
		}
	case key.Matches(msg, m.keys.Delete):
		if row, ok := p.selectedRow(); ok {
			m.pendingDel = row.id
			m.modal = modalConfirmDelete
		}
	case key.Matches(msg, m.keys.Strategy):
		name := m.toggleStrategy()
		return m, m.showMinibuffer("Drag feedback: " + name)
	case key.Matches(msg, m.keys.Help):
		m.modal = modalHelp
	}
	m.syncViewports()
	return m, nil
}

func (m *appModel) toggleStrategy() string {
	var next reorder.FeedbackStrategy = reorder.IndicatorLine{}
	if _, ok := m.pane().c.Strategy().(reorder.IndicatorLine); ok {
		next = reorder.NeighborDisplacement{}
	}
	for _, p := range m.panes {
		p.c.SetStrategy(next)
	}
	return next.Name()
}

func (m *appModel) toggleDone(id string) error {
	now := m.now()
	var err error
	switch m.tab {
	case tabRoutines:
		err = m.routines.Update(m.ctx, id, func(r *model.Routine) error {
			if model.RoutineStatus(*r, now) == model.StatusDone {
				r.LastDone = nil
				return nil
			}
			r.LastDone = &now
			return nil
		})
	default:
		err = m.deadlines.Update(m.ctx, id, func(d *model.Deadline) error {
			d.Done = !d.Done
			d.DoneAt = nil
			if d.Done {
				d.DoneAt = &now
			}
			return nil
		})
	}
	if err != nil {
		return err
	}
	m.syncPanes()
	return nil
}

func (m *appModel) deleteItem(id string) error {
	var err error
	switch m.tab {
	case tabRoutines:
		err = m.routines.Remove(m.ctx, id)
	default:
		err = m.deadlines.Remove(m.ctx, id)
	}
	if err != nil {
		return err
	}
	m.syncPanes()
	return nil
}

func (m *appModel) openAddModal() {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Focus()

	second := textinput.New()
	second.CharLimit = 32
	third := textinput.New()
	third.CharLimit = 64
	if m.tab == tabRoutines {
		second.Placeholder = "daily|weekly|monthly|custom"
		third.Placeholder = "Time HH:MM (optional)"
	} else {
		second.Placeholder = "Due YYYY-MM-DD (optional)"
		third.Placeholder = "Priority [tags...] e.g. high work,home"
	}

	m.inputs = []textinput.Model{title, second, third}
	m.focus = 0
	m.modal = modalAdd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalHelp:
		m.modal = modalNone
		return m, nil

	case modalConfirmDelete:
		switch msg.String() {
		case "y", "Y", "enter":
			id := m.pendingDel
			m.modal = modalNone
			m.pendingDel = ""
			if err := m.deleteItem(id); err != nil {
				return m, m.showMinibuffer("Error: " + err.Error())
			}
			return m, m.showMinibuffer("Deleted " + id)
		case "n", "N", "esc", "ctrl+g":
			m.modal = modalNone
			m.pendingDel = ""
		}
		return m, nil

	case modalAdd:
		switch msg.String() {
		case "esc", "ctrl+g":
			m.modal = modalNone
			m.inputs = nil
			return m, nil
		case "tab", "shift+tab", "down", "up":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			return m, m.inputs[m.focus].Focus()
		case "enter":
			id, err := m.submitAdd()
			if err != nil {
				return m, m.showMinibuffer("Error: " + err.Error())
			}
			m.modal = modalNone
			m.inputs = nil
			return m, m.showMinibuffer("Added " + id)
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) submitAdd() (string, error) {
	title := strings.TrimSpace(m.inputs[0].Value())
	if title == "" {
		return "", errMissingTitle
	}
	second := strings.TrimSpace(m.inputs[1].Value())
	third := strings.TrimSpace(m.inputs[2].Value())
	now := m.now()

	var id string
	switch m.tab {
	case tabRoutines:
		cadence, err := model.ParseCadence(second)
		if err != nil {
			return "", err
		}
		at, err := model.ParseTimeOfDay(third)
		if err != nil {
			return "", err
		}
		if id, err = store.NewRoutineID(); err != nil {
			return "", err
		}
		err = m.routines.Add(m.ctx, model.Routine{ID: id, Title: title, Cadence: cadence, Time: at, CreatedAt: now})
		if err != nil {
			return "", err
		}
	default:
		var due model.Date
		if second != "" {
			d, err := model.ParseDate(second)
			if err != nil {
				return "", err
			}
			due = d
		}
		prio, tags := parsePriorityAndTags(third)
		var err error
		if id, err = store.NewDeadlineID(); err != nil {
			return "", err
		}
		err = m.deadlines.Add(m.ctx, model.Deadline{ID: id, Title: title, Due: due, Priority: prio, Tags: tags, CreatedAt: now})
		if err != nil {
			return "", err
		}
	}
	m.pane().selected = id
	m.syncPanes()
	m.pane().ensureVisible(2 * m.pane().selectedIndex())
	return id, nil
}

// parsePriorityAndTags reads "<priority> [tag,tag...]". The priority word may be
// omitted, in which case every word is a tag.
func parsePriorityAndTags(s string) (model.Priority, []string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return model.PriorityMedium, nil
	}
	if p, err := model.ParsePriority(fields[0]); err == nil {
		return p, model.ParseTags(fields[1:]...)
	}
	return model.PriorityMedium, model.ParseTags(fields...)
}
