package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"taskdeck/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type externalEditorDoneMsg struct {
	err error
}

// notesEdit is the item whose notes are open in $EDITOR.
type notesEdit struct {
	tab    tab
	id     string
	path   string
	before string
}

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

func (m *appModel) openNotesEditor(row paneRow) (tea.Cmd, error) {
	args := splitShellWords(externalEditorName())
	if len(args) == 0 {
		args = []string{"vi"}
	}

	f, err := os.CreateTemp("", "taskdeck-notes-*.md")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(row.notes); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	_ = f.Close()

	m.editing = &notesEdit{tab: m.tab, id: row.id, path: path, before: row.notes}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{err: err}
	}), nil
}

func (m *appModel) applyExternalEditorResult(msg externalEditorDoneMsg) tea.Cmd {
	ed := m.editing
	m.editing = nil
	if ed == nil {
		return nil
	}
	defer func() { _ = os.Remove(ed.path) }()

	if msg.err != nil {
		return m.showMinibuffer("Editor failed: " + msg.err.Error())
	}
	b, err := os.ReadFile(ed.path)
	if err != nil {
		return m.showMinibuffer("Editor read failed: " + err.Error())
	}
	after := strings.TrimSpace(string(b))
	if after == strings.TrimSpace(ed.before) {
		return m.showMinibuffer(fmt.Sprintf("No changes from %s", externalEditorName()))
	}

	switch ed.tab {
	case tabRoutines:
		err = m.routines.Update(m.ctx, ed.id, func(r *model.Routine) error {
			r.Notes = after
			return nil
		})
	default:
		err = m.deadlines.Update(m.ctx, ed.id, func(d *model.Deadline) error {
			d.Notes = after
			return nil
		})
	}
	if err != nil {
		return m.showMinibuffer("Error: " + err.Error())
	}
	m.syncPanes()
	return m.showMinibuffer("Notes saved")
}
