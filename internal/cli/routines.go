package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskdeck/internal/model"
	"taskdeck/internal/store"

	"github.com/spf13/cobra"
)

func newRoutinesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "routines",
		Aliases: []string{"routine", "rt"},
		Short:   "Routine commands (recurring tasks with a cadence)",
	}
	cmd.AddCommand(newRoutinesListCmd(app))
	cmd.AddCommand(newRoutinesAddCmd(app))
	cmd.AddCommand(newRoutinesShowCmd(app))
	cmd.AddCommand(newRoutinesDoneCmd(app, true))
	cmd.AddCommand(newRoutinesDoneCmd(app, false))
	cmd.AddCommand(newRoutinesRemoveCmd(app))
	cmd.AddCommand(newRoutinesMoveCmd(app))
	return cmd
}

func withRoutines(cmd *cobra.Command, app *App, fn func(ctx context.Context, rt *store.Routines) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	kv, _, _, err := openStore(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer kv.Close()

	rt, err := store.LoadRoutines(ctx, kv)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := fn(ctx, rt); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func newRoutinesListCmd(app *App) *cobra.Command {
	var due bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routines in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutines(cmd, app, func(ctx context.Context, rt *store.Routines) error {
				list := newRoutineList(rt.Items(), time.Now())
				if due {
					out := list[:0]
					for _, r := range list {
						if r.Status != model.StatusDone {
							out = append(out, r)
						}
					}
					list = out
				}
				return writeOut(cmd, app, list)
			})
		},
	}
	cmd.Flags().BoolVar(&due, "due", false, "Only list routines not done in the current period")
	return cmd
}

func newRoutinesAddCmd(app *App) *cobra.Command {
	var cadence string
	var at string
	var notes string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a routine at the end of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return writeErr(cmd, errors.New("missing title"))
			}
			c, err := model.ParseCadence(cadence)
			if err != nil {
				return writeErr(cmd, err)
			}
			tod, err := model.ParseTimeOfDay(at)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withRoutines(cmd, app, func(ctx context.Context, rt *store.Routines) error {
				id, err := store.NewRoutineID()
				if err != nil {
					return err
				}
				r := model.Routine{
					ID:        id,
					Title:     title,
					Notes:     strings.TrimSpace(notes),
					Cadence:   c,
					Time:      tod,
					CreatedAt: time.Now().UTC(),
				}
				if err := rt.Add(ctx, r); err != nil {
					return err
				}
				r, _ = rt.Find(id)
				return writeOut(cmd, app, routineView{Routine: r, Status: model.RoutineStatus(r, time.Now())})
			})
		},
	}
	cmd.Flags().StringVar(&cadence, "cadence", "daily", "Cadence (daily|weekly|monthly|custom)")
	cmd.Flags().StringVar(&at, "time", "", "Optional time of day (HH:MM)")
	cmd.Flags().StringVar(&notes, "notes", "", "Optional notes (markdown)")
	return cmd
}

func newRoutinesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <routine-id>",
		Short: "Show a routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutines(cmd, app, func(ctx context.Context, rt *store.Routines) error {
				id := strings.TrimSpace(args[0])
				r, ok := rt.Find(id)
				if !ok {
					return store.NotFoundError{Kind: rt.Kind(), ID: id}
				}
				return writeOut(cmd, app, routineView{Routine: r, Status: model.RoutineStatus(r, time.Now())})
			})
		},
	}
}

func newRoutinesDoneCmd(app *App, done bool) *cobra.Command {
	use, short := "done <routine-id>", "Record that a routine was done now"
	if !done {
		use, short = "undone <routine-id>", "Clear a routine's last-done time"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutines(cmd, app, func(ctx context.Context, rt *store.Routines) error {
				id := strings.TrimSpace(args[0])
				now := time.Now()
				err := rt.Update(ctx, id, func(r *model.Routine) error {
					r.LastDone = nil
					if done {
						at := now.UTC()
						r.LastDone = &at
					}
					return nil
				})
				if err != nil {
					return err
				}
				r, _ := rt.Find(id)
				return writeOut(cmd, app, routineView{Routine: r, Status: model.RoutineStatus(r, now)})
			})
		},
	}
}

func newRoutinesRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <routine-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a routine (later items move up)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutines(cmd, app, func(ctx context.Context, rt *store.Routines) error {
				id := strings.TrimSpace(args[0])
				if err := rt.Remove(ctx, id); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"id": id, "removed": true})
			})
		},
	}
}

func newRoutinesMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <routine-id> <to-index>",
		Short: "Move a routine to a 0-based position (the same reorder a drag commits)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseIndexArg(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withRoutines(cmd, app, func(ctx context.Context, rt *store.Routines) error {
				if err := rt.MoveID(ctx, strings.TrimSpace(args[0]), to); err != nil {
					return err
				}
				return writeOut(cmd, app, newRoutineList(rt.Items(), time.Now()))
			})
		},
	}
}
