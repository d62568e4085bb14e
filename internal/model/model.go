package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Date is a calendar date without time semantics, stored as YYYY-MM-DD.
type Date string

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return Date(s), nil
}

func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) String() string { return string(d) }

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(string(d)), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysFrom returns the number of calendar days from now's date to d (negative when d is past).
func (d Date) DaysFrom(now time.Time) (int, bool) {
	due, ok := d.Time(now.Location())
	if !ok {
		return 0, false
	}
	today, _ := DateOf(now).Time(now.Location())
	return int(math.Round(due.Sub(today).Hours() / 24)), true
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority accepts high|medium|low. Empty means medium.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	case "":
		return PriorityMedium, nil
	default:
		return "", fmt.Errorf("invalid priority %q (expected high|medium|low)", s)
	}
}

// ParseTags splits comma-separated tags, trimming blanks and dropping duplicates.
func ParseTags(values ...string) []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

type Deadline struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Notes     string     `json:"notes,omitempty"`
	Due       Date       `json:"due"`
	Priority  Priority   `json:"priority,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Done      bool       `json:"done"`
	DoneAt    *time.Time `json:"doneAt,omitempty"`
	Order     int        `json:"order"`
	CreatedAt time.Time  `json:"createdAt"`
}

// EffectivePriority is Priority, defaulting to medium for items stored without one.
func (d Deadline) EffectivePriority() Priority {
	if d.Priority == "" {
		return PriorityMedium
	}
	return d.Priority
}

// HasTag reports whether the deadline carries tag.
func (d Deadline) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func (d Deadline) GetID() string       { return d.ID }
func (d Deadline) GetOrder() int       { return d.Order }
func (d *Deadline) SetOrder(order int) { d.Order = order }

type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
	// CadenceCustom never resets on its own; it stays done until marked undone.
	CadenceCustom Cadence = "custom"
)

func ParseCadence(s string) (Cadence, error) {
	switch c := Cadence(strings.ToLower(strings.TrimSpace(s))); c {
	case CadenceDaily, CadenceWeekly, CadenceMonthly, CadenceCustom:
		return c, nil
	case "":
		return CadenceDaily, nil
	default:
		return "", fmt.Errorf("invalid cadence %q (expected daily|weekly|monthly|custom)", s)
	}
}

const timeOfDayLayout = "15:04"

// ParseTimeOfDay normalizes an optional HH:MM time. Empty stays empty.
func ParseTimeOfDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return t.Format(timeOfDayLayout), nil
}

type Routine struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Notes     string     `json:"notes,omitempty"`
	Cadence   Cadence    `json:"cadence"`
	Time      string     `json:"time,omitempty"`
	LastDone  *time.Time `json:"lastDone,omitempty"`
	Order     int        `json:"order"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (r Routine) GetID() string       { return r.ID }
func (r Routine) GetOrder() int       { return r.Order }
func (r *Routine) SetOrder(order int) { r.Order = order }
