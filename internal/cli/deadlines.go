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

func newDeadlinesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deadlines",
		Aliases: []string{"deadline", "dl"},
		Short:   "Deadline commands (dated one-off tasks)",
	}
	cmd.AddCommand(newDeadlinesListCmd(app))
	cmd.AddCommand(newDeadlinesAddCmd(app))
	cmd.AddCommand(newDeadlinesShowCmd(app))
	cmd.AddCommand(newDeadlinesDoneCmd(app, true))
	cmd.AddCommand(newDeadlinesDoneCmd(app, false))
	cmd.AddCommand(newDeadlinesRemoveCmd(app))
	cmd.AddCommand(newDeadlinesMoveCmd(app))
	return cmd
}

// withDeadlines opens the store, loads the deadlines and runs fn.
func withDeadlines(cmd *cobra.Command, app *App, fn func(ctx context.Context, dl *store.Deadlines) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	kv, _, _, err := openStore(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer kv.Close()

	dl, err := store.LoadDeadlines(ctx, kv)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := fn(ctx, dl); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func newDeadlinesListCmd(app *App) *cobra.Command {
	var pending bool
	var tag string
	var priority string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deadlines in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeadlines(cmd, app, func(ctx context.Context, dl *store.Deadlines) error {
				var want model.Priority
				if strings.TrimSpace(priority) != "" {
					p, err := model.ParsePriority(priority)
					if err != nil {
						return err
					}
					want = p
				}
				tag = strings.TrimSpace(tag)
				items := dl.Items()
				out := items[:0]
				for _, d := range items {
					switch {
					case pending && d.Done:
					case tag != "" && !d.HasTag(tag):
					case want != "" && d.EffectivePriority() != want:
					default:
						out = append(out, d)
					}
				}
				items = out
				return writeOut(cmd, app, newDeadlineList(items, time.Now()))
			})
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "Only list deadlines that are not done")
	cmd.Flags().StringVar(&tag, "tag", "", "Only list deadlines with this tag")
	cmd.Flags().StringVar(&priority, "priority", "", "Only list deadlines with this priority (high|medium|low)")
	return cmd
}

func newDeadlinesAddCmd(app *App) *cobra.Command {
	var due string
	var notes string
	var priority string
	var tags []string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a deadline at the end of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return writeErr(cmd, errors.New("missing title"))
			}
			var date model.Date
			if strings.TrimSpace(due) != "" {
				d, err := model.ParseDate(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				date = d
			}
			prio, err := model.ParsePriority(priority)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withDeadlines(cmd, app, func(ctx context.Context, dl *store.Deadlines) error {
				id, err := store.NewDeadlineID()
				if err != nil {
					return err
				}
				d := model.Deadline{
					ID:        id,
					Title:     title,
					Notes:     strings.TrimSpace(notes),
					Due:       date,
					Priority:  prio,
					Tags:      model.ParseTags(tags...),
					CreatedAt: time.Now().UTC(),
				}
				if err := dl.Add(ctx, d); err != nil {
					return err
				}
				d, _ = dl.Find(id)
				now := time.Now()
				return writeOut(cmd, app, deadlineView{Deadline: d, Status: model.DeadlineStatus(d, now)})
			})
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "Optional notes (markdown)")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority (high|medium|low)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable or comma-separated)")
	return cmd
}

func newDeadlinesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <deadline-id>",
		Short: "Show a deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeadlines(cmd, app, func(ctx context.Context, dl *store.Deadlines) error {
				id := strings.TrimSpace(args[0])
				d, ok := dl.Find(id)
				if !ok {
					return store.NotFoundError{Kind: dl.Kind(), ID: id}
				}
				return writeOut(cmd, app, deadlineView{Deadline: d, Status: model.DeadlineStatus(d, time.Now())})
			})
		},
	}
}

func newDeadlinesDoneCmd(app *App, done bool) *cobra.Command {
	use, short := "done <deadline-id>", "Mark a deadline done"
	if !done {
		use, short = "undone <deadline-id>", "Mark a deadline not done"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeadlines(cmd, app, func(ctx context.Context, dl *store.Deadlines) error {
				id := strings.TrimSpace(args[0])
				now := time.Now()
				err := dl.Update(ctx, id, func(d *model.Deadline) error {
					d.Done = done
					d.DoneAt = nil
					if done {
						at := now.UTC()
						d.DoneAt = &at
					}
					return nil
				})
				if err != nil {
					return err
				}
				d, _ := dl.Find(id)
				return writeOut(cmd, app, deadlineView{Deadline: d, Status: model.DeadlineStatus(d, now)})
			})
		},
	}
}

func newDeadlinesRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <deadline-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a deadline (later items move up)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeadlines(cmd, app, func(ctx context.Context, dl *store.Deadlines) error {
				id := strings.TrimSpace(args[0])
				if err := dl.Remove(ctx, id); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"id": id, "removed": true})
			})
		},
	}
}

func newDeadlinesMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <deadline-id> <to-index>",
		Short: "Move a deadline to a 0-based position (the same reorder a drag commits)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseIndexArg(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withDeadlines(cmd, app, func(ctx context.Context, dl *store.Deadlines) error {
				if err := dl.MoveID(ctx, strings.TrimSpace(args[0]), to); err != nil {
					return err
				}
				return writeOut(cmd, app, newDeadlineList(dl.Items(), time.Now()))
			})
		},
	}
}
