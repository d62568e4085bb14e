package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExternalEditorResultSavesNotes(t *testing.T) {
	m, _ := newTestModel(t, 2, 30)
	row, _ := m.pane().selectedRow()

	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("Bring **receipts**\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.editing = &notesEdit{tab: tabDeadlines, id: row.id, path: path}

	m = send(t, m, externalEditorDoneMsg{})
	d, _ := m.deadlines.Find(row.id)
	if d.Notes != "Bring **receipts**" {
		t.Fatalf("expected notes saved, got %q", d.Notes)
	}
	if m.editing != nil {
		t.Fatalf("expected edit state cleared")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed, err=%v", err)
	}
}

func TestExternalEditorResultNoChange(t *testing.T) {
	m, _ := newTestModel(t, 1, 30)
	row, _ := m.pane().selectedRow()

	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.editing = &notesEdit{tab: tabDeadlines, id: row.id, path: path}

	m = send(t, m, externalEditorDoneMsg{})
	if m.minibufferText == "" || m.minibufferText == "Notes saved" {
		t.Fatalf("expected no-change message, got %q", m.minibufferText)
	}
}

func TestExternalEditorName(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nano")
	if got := externalEditorName(); got != "nano" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("VISUAL", "code --wait")
	if got := externalEditorName(); got != "code --wait" {
		t.Fatalf("got %q", got)
	}
}
