package tui

import (
	"os"
	"path/filepath"
	"strings"

	"taskdeck/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// storeChangedMsg reports that another process wrote to the store.
type storeChangedMsg struct{}

type storeWatchErrMsg struct{ err error }

// storeWatcher turns filesystem events on the store directory into messages.
// The reload tick still polls mtimes, so a failed watcher only costs latency.
type storeWatcher struct {
	w *fsnotify.Watcher
}

func newStoreWatcher(st store.Store) (*storeWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(st.Dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	for _, p := range st.WatchPaths() {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			_ = w.Add(p)
		}
	}
	return &storeWatcher{w: w}, nil
}

func (sw *storeWatcher) Close() error {
	if sw == nil {
		return nil
	}
	return sw.w.Close()
}

// relevantStorePath ignores temp files from atomic writes and sqlite's shared-memory file.
func relevantStorePath(name string) bool {
	base := filepath.Base(name)
	switch {
	case strings.HasSuffix(base, ".tmp"), strings.HasSuffix(base, "-shm"), strings.HasSuffix(base, "-journal"):
		return false
	case strings.HasSuffix(base, ".json"), strings.HasPrefix(base, "taskdeck.sqlite"):
		return true
	}
	return false
}

// wait blocks until the next relevant event. Update must re-issue it after each message.
func (sw *storeWatcher) wait() tea.Cmd {
	if sw == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-sw.w.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if ev.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						_ = sw.w.Add(ev.Name)
						continue
					}
				}
				if relevantStorePath(ev.Name) {
					return storeChangedMsg{}
				}
			case err, ok := <-sw.w.Errors:
				if !ok {
					return nil
				}
				return storeWatchErrMsg{err: err}
			}
		}
	}
}
