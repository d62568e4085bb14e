package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskdeck/internal/model"
	"taskdeck/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRelevantStorePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"/x/kv/deadlines.json", true},
		{"/x/taskdeck.sqlite", true},
		{"/x/taskdeck.sqlite-wal", true},
		{"/x/taskdeck.sqlite-shm", false},
		{"/x/kv/deadlines.json.123.tmp", false},
		{"/x/notes.txt", false},
	}
	for _, tt := range tests {
		if got := relevantStorePath(tt.name); got != tt.want {
			t.Fatalf("relevantStorePath(%q)=%v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStoreWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	st := store.Store{Dir: dir, Backend: store.BackendJSON}
	if err := os.MkdirAll(filepath.Join(dir, "kv"), 0o755); err != nil {
		t.Fatal(err)
	}
	sw, err := newStoreWatcher(st)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer sw.Close()

	got := make(chan any, 1)
	cmd := sw.wait()
	go func() { got <- cmd() }()

	if err := os.WriteFile(filepath.Join(dir, "kv", "routines.json"), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-got:
		if _, ok := msg.(storeChangedMsg); !ok {
			t.Fatalf("expected storeChangedMsg, got %#v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for store change")
	}
}

func TestStoreChangedWhileDraggingDefersReload(t *testing.T) {
	m, kv := newTestModel(t, 2, 30)

	other, err := store.LoadDeadlines(context.Background(), kv)
	if err != nil {
		t.Fatal(err)
	}
	if err := other.Add(context.Background(), model.Deadline{ID: "dl-y", Title: "Elsewhere"}); err != nil {
		t.Fatal(err)
	}

	m = send(t, m, mouse(tea.MouseActionPress, listTop))
	m = holdFire(t, m)
	m = send(t, m, storeChangedMsg{})
	if len(m.pane().rows) != 2 || !m.storeDirty {
		t.Fatalf("expected reload deferred during drag")
	}

	m = send(t, m, mouse(tea.MouseActionRelease, listTop))
	m.captureStoreModTimes()
	m = send(t, m, reloadTickMsg{})
	if len(m.pane().rows) != 3 || m.storeDirty {
		t.Fatalf("expected deferred reload once idle, got %d rows", len(m.pane().rows))
	}
}
