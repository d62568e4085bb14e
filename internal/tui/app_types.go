package tui

type tab int

const (
	tabDeadlines tab = iota
	tabRoutines
)

var tabOrder = []tab{tabDeadlines, tabRoutines}

func (t tab) String() string {
	switch t {
	case tabRoutines:
		return "routines"
	default:
		return "deadlines"
	}
}

func parseTab(s string) (tab, bool) {
	switch s {
	case "deadlines":
		return tabDeadlines, true
	case "routines":
		return tabRoutines, true
	}
	return tabDeadlines, false
}

type modalKind int

const (
	modalNone modalKind = iota
	modalAdd
	modalConfirmDelete
	modalHelp
)

type reloadTickMsg struct{}

type resizeDoneMsg struct{ seq int }

type minibufferClearMsg struct{ seq int }
