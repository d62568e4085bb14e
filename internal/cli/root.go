package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"taskdeck/internal/format"
	"taskdeck/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Backend    string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Taskdeck: deadlines and routines you can reorder by dragging",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI (hold a row, then drag to reorder)
  taskdeck

  # Scriptable commands
  taskdeck deadlines add "File taxes" --due 2026-04-15
  taskdeck deadlines move dl-abc12345 0
  taskdeck routines list --format text

  # Direct lookup (shortcut for: taskdeck deadlines show <id>)
  taskdeck dl-abc12345
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TASKDECK_DIR", ""), "Path to store dir (default: nearest .taskdeck/, else ~/.taskdeck/data)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("TASKDECK_BACKEND", ""), "Store backend for new stores (sqlite|json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKDECK_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newDeadlinesCmd(app))
	cmd.AddCommand(newRoutinesCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

// openStore resolves the store directory and opens its KV. Callers must Close the KV.
func openStore(ctx context.Context, app *App) (store.KV, store.Store, *store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, store.Store{}, nil, err
	}

	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, store.Store{}, nil, err
		}
		dir = d
		app.Dir = dir
	}

	backend := strings.TrimSpace(app.Backend)
	if backend == "" {
		backend = cfg.Backend
	}
	s := store.Store{Dir: dir, Backend: backend}
	kv, err := s.Open(ctx)
	if err != nil {
		return nil, s, nil, fmt.Errorf("open store %s: %w", dir, err)
	}
	return kv, s, cfg, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), envelope{Data: v}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
