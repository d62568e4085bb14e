package cli

import (
	"context"

	"taskdeck/internal/reorder"
	"taskdeck/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	var strategy string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive TUI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app, strategy)
		},
	}
	cmd.Flags().StringVar(&strategy, "strategy", "", "Drag feedback (indicator|displace); default from config")
	return cmd
}

func runTUI(app *App, strategy string) error {
	if strategy != "" {
		if _, err := reorder.ParseStrategy(strategy); err != nil {
			return err
		}
	}
	ctx := context.Background()
	kv, st, cfg, err := openStore(ctx, app)
	if err != nil {
		return err
	}
	defer kv.Close()

	return tui.Run(tui.Options{
		Store:    st,
		KV:       kv,
		Config:   cfg,
		Strategy: strategy,
	})
}
