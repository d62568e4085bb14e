package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

var errMissingTitle = errors.New("title is required")

// Run starts the interactive TUI and blocks until it exits.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyGlyphPreference()
	theme := ""
	if opts.Config != nil {
		theme = opts.Config.Theme
	}
	applyThemePreference(theme)

	if opts.Logger == nil {
		log, closer := newDebugLogger()
		defer closer.Close()
		opts.Logger = log
	}

	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	if w, err := newStoreWatcher(opts.Store); err != nil {
		opts.Logger.Warn("store watch disabled", "err", err)
	} else {
		defer w.Close()
		m.watcher = w
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
