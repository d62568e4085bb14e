package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"taskdeck/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

var ErrDoctorIssuesFound = errors.New("doctor found errors")

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Key     string           `json:"key,omitempty"`
	ID      string           `json:"id,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

var knownKeys = map[string]bool{
	deadlinesKey: true,
	routinesKey:  true,
	tuiStateKey:  true,
}

// Doctor validates the stored collections: decodable JSON, unique and
// well-formed IDs, dense 0-based orders and valid field values.
func Doctor(ctx context.Context, kv KV) (DoctorReport, error) {
	var issues []DoctorIssue

	keys, err := kv.Keys(ctx)
	if err != nil {
		return DoctorReport{}, err
	}
	for _, k := range keys {
		if !knownKeys[k] {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "unknown_key",
				Message: "key is not used by taskdeck",
				Key:     k,
			})
		}
	}

	issues = append(issues, doctorCollection[model.Deadline, *model.Deadline](ctx, kv, deadlinesKey, "deadline", func(d model.Deadline) []DoctorIssue {
		var out []DoctorIssue
		if d.Due != "" {
			if _, err := model.ParseDate(d.Due.String()); err != nil {
				out = append(out, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "invalid_due", Message: err.Error(), ID: d.ID})
			}
		}
		if _, err := model.ParsePriority(string(d.Priority)); err != nil {
			out = append(out, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "invalid_priority", Message: err.Error(), ID: d.ID})
		}
		return out
	})...)

	issues = append(issues, doctorCollection[model.Routine, *model.Routine](ctx, kv, routinesKey, "routine", func(r model.Routine) []DoctorIssue {
		var out []DoctorIssue
		if _, err := model.ParseCadence(string(r.Cadence)); err != nil {
			out = append(out, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "invalid_cadence", Message: err.Error(), ID: r.ID})
		}
		if _, err := model.ParseTimeOfDay(r.Time); err != nil {
			out = append(out, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "invalid_time", Message: err.Error(), ID: r.ID})
		}
		return out
	})...)

	var st TUIState
	if _, err := getJSON(ctx, kv, tuiStateKey, &st); err != nil {
		issues = append(issues, DoctorIssue{
			Level:   DoctorIssueLevelWarn,
			Code:    "tui_state_invalid",
			Message: err.Error(),
			Key:     tuiStateKey,
		})
	}

	if issues == nil {
		issues = []DoctorIssue{}
	}
	return DoctorReport{Issues: issues}, nil
}

func doctorCollection[T any, P orderedPtr[T]](ctx context.Context, kv KV, key, kind string, check func(T) []DoctorIssue) []DoctorIssue {
	items, missing, err := getOrdered[T, P](ctx, kv, key)
	if err != nil {
		return []DoctorIssue{{Level: DoctorIssueLevelError, Code: "invalid_json", Message: err.Error(), Key: key}}
	}

	var issues []DoctorIssue
	if missing > 0 {
		issues = append(issues, DoctorIssue{
			Level:   DoctorIssueLevelWarn,
			Code:    "order_missing",
			Message: fmt.Sprintf("%d item(s) have no order; their stored position is used", missing),
			Key:     key,
		})
	}
	seen := map[string]bool{}
	orders := make([]int, 0, len(items))
	for i := range items {
		p := P(&items[i])
		id := p.GetID()
		switch {
		case seen[id]:
			issues = append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "duplicate_id", Message: "id appears more than once", Key: key, ID: id})
		case IDKind(id) != kind:
			issues = append(issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "id_prefix", Message: fmt.Sprintf("id does not look like a %s id", kind), Key: key, ID: id})
		}
		seen[id] = true
		orders = append(orders, p.GetOrder())
		for _, is := range check(items[i]) {
			is.Key = key
			issues = append(issues, is)
		}
	}

	sort.Ints(orders)
	for i, o := range orders {
		if o != i {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "order_not_dense",
				Message: fmt.Sprintf("orders are not 0..%d (found %d at position %d)", len(orders)-1, o, i),
				Key:     key,
			})
			break
		}
	}
	return issues
}

// Repair rewrites both collections in sorted, densified form.
func Repair(ctx context.Context, kv KV) error {
	dl, err := LoadDeadlines(ctx, kv)
	if err != nil {
		return err
	}
	if err := dl.Save(ctx); err != nil {
		return err
	}
	rt, err := LoadRoutines(ctx, kv)
	if err != nil {
		return err
	}
	return rt.Save(ctx)
}
