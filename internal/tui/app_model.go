package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"taskdeck/internal/model"
	"taskdeck/internal/reorder"
	"taskdeck/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the interactive TUI.
type Options struct {
	Store  store.Store
	KV     store.KV
	Config *store.Config
	// Strategy overrides the configured drag feedback (indicator|displace).
	Strategy string
	Logger   *slog.Logger
	Now      func() time.Time
}

type appModel struct {
	ctx context.Context
	st  store.Store
	kv  store.KV
	log *slog.Logger
	now func() time.Time

	deadlines *store.Deadlines
	routines  *store.Routines

	sched *teaScheduler
	panes map[tab]*listPane
	tab   tab

	keys keyMap
	help help.Model

	modal      modalKind
	inputs     []textinput.Model
	focus      int
	pendingDel string
	editing    *notesEdit

	width, height  int
	seenWindowSize bool
	resizing       bool
	resizeSeq      int

	minibufferText string
	minibufferSeq  int

	watchModTimes map[string]time.Time
	watcher       *storeWatcher
	storeDirty    bool
}

func newAppModel(opts Options) (appModel, error) {
	ctx := context.Background()
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &store.Config{}
	}

	m := appModel{
		ctx:   ctx,
		st:    opts.Store,
		kv:    opts.KV,
		log:   log,
		now:   now,
		sched: newTeaScheduler(),
		keys:  defaultKeyMap(),
		help:  help.New(),
	}

	var err error
	if m.deadlines, err = store.LoadDeadlines(ctx, opts.KV); err != nil {
		return appModel{}, err
	}
	if m.routines, err = store.LoadRoutines(ctx, opts.KV); err != nil {
		return appModel{}, err
	}

	state, err := store.LoadTUIState(ctx, opts.KV)
	if err != nil {
		return appModel{}, err
	}

	strategyName := cfg.Reorder.Strategy
	if strings.TrimSpace(state.Strategy) != "" {
		strategyName = state.Strategy
	}
	if strings.TrimSpace(opts.Strategy) != "" {
		strategyName = opts.Strategy
	}
	strategy, err := reorder.ParseStrategy(strategyName)
	if err != nil {
		return appModel{}, err
	}

	rc := reorder.Config{
		HoldDelay:     time.Duration(cfg.Reorder.HoldMs) * time.Millisecond,
		MoveThreshold: cfg.Reorder.MoveThreshold,
		DeadZone:      cfg.Reorder.DeadZone,
		Strategy:      strategy,
		Scheduler:     m.sched,
		Now:           now,
		Logger:        log,
	}
	m.panes = map[tab]*listPane{
		tabDeadlines: newListPane(rc),
		tabRoutines:  newListPane(rc),
	}

	m.tab, _ = parseTab(cfg.DefaultTab)
	if t, ok := parseTab(state.Tab); ok {
		m.tab = t
	}
	for _, t := range tabOrder {
		m.panes[t].selected = state.Selected[t.String()]
	}

	m.syncPanes()
	m.captureStoreModTimes()
	return m, nil
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(tickReload(), m.watcher.wait())
}

func (m *appModel) pane() *listPane { return m.panes[m.tab] }

func (m *appModel) dragging() bool {
	for _, p := range m.panes {
		if p.c.Phase() != reorder.PhaseIdle {
			return true
		}
	}
	return false
}

// syncPanes rebuilds both panes from the collections.
func (m *appModel) syncPanes() {
	now := m.now()

	drows := make([]paneRow, 0, m.deadlines.Len())
	for _, d := range m.deadlines.Items() {
		drows = append(drows, paneRow{
			id:     d.ID,
			title:  d.Title,
			meta:   deadlineMeta(d, now),
			notes:  d.Notes,
			status: model.DeadlineStatus(d, now),
		})
	}
	m.panes[tabDeadlines].sync(drows, m.reorderFunc(tabDeadlines))

	rrows := make([]paneRow, 0, m.routines.Len())
	for _, r := range m.routines.Items() {
		rrows = append(rrows, paneRow{
			id:     r.ID,
			title:  r.Title,
			meta:   routineMeta(r, now),
			notes:  r.Notes,
			status: model.RoutineStatus(r, now),
		})
	}
	m.panes[tabRoutines].sync(rrows, m.reorderFunc(tabRoutines))

	m.syncViewports()
}

func (m *appModel) reorderFunc(t tab) func(from, to int) error {
	ctx, log := m.ctx, m.log
	deadlines, routines := m.deadlines, m.routines
	return func(from, to int) error {
		var err error
		switch t {
		case tabRoutines:
			err = routines.Reorder(ctx, from, to)
		default:
			err = deadlines.Reorder(ctx, from, to)
		}
		if err != nil {
			return err
		}
		log.Debug("reordered", "list", t.String(), "from", from, "to", to)
		return nil
	}
}

func deadlineMeta(d model.Deadline, now time.Time) string {
	var parts []string
	if d.EffectivePriority() != model.PriorityMedium {
		parts = append(parts, "!"+string(d.EffectivePriority()))
	}
	for _, tag := range d.Tags {
		parts = append(parts, "#"+tag)
	}
	if due := deadlineDue(d, now); due != "" {
		parts = append(parts, due)
	}
	return strings.Join(parts, " ")
}

func deadlineDue(d model.Deadline, now time.Time) string {
	if d.Due == "" {
		return ""
	}
	days, ok := d.Due.DaysFrom(now)
	if !ok {
		return d.Due.String()
	}
	switch {
	case d.Done:
		return d.Due.String()
	case days == 0:
		return d.Due.String() + " (today)"
	case days < 0:
		return fmt.Sprintf("%s (%dd late)", d.Due, -days)
	default:
		return fmt.Sprintf("%s (in %dd)", d.Due, days)
	}
}

func routineMeta(r model.Routine, now time.Time) string {
	meta := string(r.Cadence)
	if r.Time != "" {
		meta += " @ " + r.Time
	}
	if r.LastDone == nil {
		return meta
	}
	return fmt.Sprintf("%s, last %s", meta, model.DateOf(r.LastDone.In(now.Location())))
}

func (m *appModel) showMinibuffer(text string) tea.Cmd {
	m.minibufferSeq++
	m.minibufferText = text
	seq := m.minibufferSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return minibufferClearMsg{seq: seq} })
}

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) captureStoreModTimes() {
	m.watchModTimes = map[string]time.Time{}
	for _, p := range m.st.WatchPaths() {
		m.watchModTimes[p] = fileModTime(p)
	}
}

func (m *appModel) storeChanged() bool {
	for _, p := range m.st.WatchPaths() {
		if fileModTime(p).After(m.watchModTimes[p]) {
			return true
		}
	}
	return false
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}

func (m *appModel) reloadFromDisk() error {
	if err := m.deadlines.Load(m.ctx); err != nil {
		return err
	}
	if err := m.routines.Load(m.ctx); err != nil {
		return err
	}
	m.syncPanes()
	m.captureStoreModTimes()
	m.storeDirty = false
	return nil
}

func (m *appModel) saveState() error {
	st := &store.TUIState{
		Version:  1,
		Tab:      m.tab.String(),
		Selected: map[string]string{},
		Strategy: m.pane().c.Strategy().Name(),
	}
	for _, t := range tabOrder {
		if id := m.panes[t].selected; id != "" {
			st.Selected[t.String()] = id
		}
	}
	return store.SaveTUIState(m.ctx, m.kv, st)
}
