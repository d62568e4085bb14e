package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"taskdeck/internal/format"
	"taskdeck/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of the store (stdout or --out)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			kv, _, _, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			b, err := store.ExportBackup(ctx, kv, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(out) == "" {
				return format.WriteJSON(cmd.OutOrStdout(), b, true)
			}
			f, err := os.Create(out)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := format.WriteJSON(f, b, true); err != nil {
				_ = f.Close()
				return writeErr(cmd, err)
			}
			if err := f.Close(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"path": out, "keys": b.Keys()})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the backup to this file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <backup.json|->",
		Short: "Load a backup written by `taskdeck export`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			var b store.Backup
			if err := json.NewDecoder(r).Decode(&b); err != nil {
				return writeErr(cmd, fmt.Errorf("parse backup: %w", err))
			}

			ctx := context.Background()
			kv, _, _, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			if err := store.ImportBackup(ctx, kv, &b, replace); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"imported": b.Keys(), "replace": replace})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Delete keys that are not in the backup")
	return cmd
}
