package tui

import (
	"time"

	"taskdeck/internal/reorder"

	tea "github.com/charmbracelet/bubbletea"
)

// holdTickMsg is delivered when a scheduled reorder callback comes due.
type holdTickMsg struct{ seq int }

// teaScheduler implements reorder.Scheduler on top of tea.Tick so callbacks run
// inside Update, on the same loop as mouse events. Stopped timers stay in the
// program as ticks but are ignored when their seq is no longer pending.
type teaScheduler struct {
	seq     int
	pending map[int]*teaTimer
	cmds    []tea.Cmd
}

type teaTimer struct {
	s   *teaScheduler
	seq int
	f   func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: map[int]*teaTimer{}}
}

func (s *teaScheduler) AfterFunc(d time.Duration, f func()) reorder.Timer {
	s.seq++
	seq := s.seq
	t := &teaTimer{s: s, seq: seq, f: f}
	s.pending[seq] = t
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg { return holdTickMsg{seq: seq} }))
	return t
}

func (t *teaTimer) Stop() bool {
	if _, ok := t.s.pending[t.seq]; !ok {
		return false
	}
	delete(t.s.pending, t.seq)
	return true
}

// fire runs the callback for seq if it is still pending.
func (s *teaScheduler) fire(seq int) bool {
	t, ok := s.pending[seq]
	if !ok {
		return false
	}
	delete(s.pending, seq)
	t.f()
	return true
}

// drain returns the ticks scheduled since the last drain.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

func (s *teaScheduler) pendingCount() int { return len(s.pending) }
