package cli

import (
	"context"

	"taskdeck/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate stored lists (ids, dense ordering, field values)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			kv, _, _, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			if fix {
				if err := store.Repair(ctx, kv); err != nil {
					return writeErr(cmd, err)
				}
			}
			report, err := store.Doctor(ctx, kv)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := writeOut(cmd, app, report); err != nil {
				return err
			}
			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	cmd.Flags().BoolVar(&fix, "fix", false, "Rewrite both lists in sorted, densified order before checking")
	return cmd
}
