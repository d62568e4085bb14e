package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskdeck/internal/format"
	"taskdeck/internal/model"
)

// envelope is the {"data": ...} wrapper every command writes. In text mode the
// payload renders itself when it can.
type envelope struct {
	Data any `json:"data"`
}

func (e envelope) Text() string {
	if t, ok := e.Data.(format.Texter); ok {
		return t.Text()
	}
	b, err := json.MarshalIndent(e.Data, "", "  ")
	if err != nil {
		return fmt.Sprint(e.Data)
	}
	return string(b)
}

type deadlineView struct {
	model.Deadline
	Status model.Status `json:"status"`
}

type deadlineList []deadlineView

func newDeadlineList(items []model.Deadline, now time.Time) deadlineList {
	out := make(deadlineList, 0, len(items))
	for _, d := range items {
		out = append(out, deadlineView{Deadline: d, Status: model.DeadlineStatus(d, now)})
	}
	return out
}

func (l deadlineList) Text() string {
	t := format.Table{Headers: []string{"#", "ID", "TITLE", "DUE", "PRIORITY", "TAGS", "STATUS"}}
	for _, d := range l {
		t.Rows = append(t.Rows, []string{strconv.Itoa(d.Order), d.ID, d.Title, d.Due.String(), string(d.EffectivePriority()), strings.Join(d.Tags, ","), string(d.Status)})
	}
	return t.Text()
}

func (d deadlineView) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", d.ID, d.Title)
	fmt.Fprintf(&b, "status:   %s\n", d.Status)
	if d.Due != "" {
		fmt.Fprintf(&b, "due:      %s\n", d.Due)
	}
	fmt.Fprintf(&b, "priority: %s\n", d.EffectivePriority())
	if len(d.Tags) > 0 {
		fmt.Fprintf(&b, "tags:     %s\n", strings.Join(d.Tags, ", "))
	}
	fmt.Fprintf(&b, "order:    %d", d.Order)
	if strings.TrimSpace(d.Notes) != "" {
		b.WriteString("\n\n" + strings.TrimSpace(d.Notes))
	}
	return b.String()
}

type routineView struct {
	model.Routine
	Status model.Status `json:"status"`
}

type routineList []routineView

func newRoutineList(items []model.Routine, now time.Time) routineList {
	out := make(routineList, 0, len(items))
	for _, r := range items {
		out = append(out, routineView{Routine: r, Status: model.RoutineStatus(r, now)})
	}
	return out
}

func lastDone(r model.Routine) string {
	if r.LastDone == nil {
		return "never"
	}
	return model.DateOf(r.LastDone.Local()).String()
}

func (l routineList) Text() string {
	t := format.Table{Headers: []string{"#", "ID", "TITLE", "CADENCE", "TIME", "LAST DONE", "STATUS"}}
	for _, r := range l {
		t.Rows = append(t.Rows, []string{strconv.Itoa(r.Order), r.ID, r.Title, string(r.Cadence), r.Time, lastDone(r.Routine), string(r.Status)})
	}
	return t.Text()
}

func (r routineView) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", r.ID, r.Title)
	fmt.Fprintf(&b, "status:    %s\n", r.Status)
	fmt.Fprintf(&b, "cadence:   %s\n", r.Cadence)
	if r.Time != "" {
		fmt.Fprintf(&b, "time:      %s\n", r.Time)
	}
	fmt.Fprintf(&b, "last done: %s\n", lastDone(r.Routine))
	fmt.Fprintf(&b, "order:     %d", r.Order)
	if strings.TrimSpace(r.Notes) != "" {
		b.WriteString("\n\n" + strings.TrimSpace(r.Notes))
	}
	return b.String()
}
