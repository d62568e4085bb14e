package model

import "time"

type Status string

const (
	StatusDone     Status = "done"
	StatusOverdue  Status = "overdue"
	StatusToday    Status = "today"
	StatusSoon     Status = "soon"
	StatusUpcoming Status = "upcoming"

	StatusDue Status = "due"
	StatusNew Status = "new"
)

// SoonWindowDays is how far ahead a deadline counts as "soon".
const SoonWindowDays = 3

func DeadlineStatus(d Deadline, now time.Time) Status {
	if d.Done {
		return StatusDone
	}
	days, ok := d.Due.DaysFrom(now)
	if !ok {
		return StatusUpcoming
	}
	switch {
	case days < 0:
		return StatusOverdue
	case days == 0:
		return StatusToday
	case days <= SoonWindowDays:
		return StatusSoon
	default:
		return StatusUpcoming
	}
}

// RoutineStatus is done when the routine was last done inside the current
// cadence period (same day, ISO week or month as now). A custom routine stays
// done once done.
func RoutineStatus(r Routine, now time.Time) Status {
	if r.LastDone == nil {
		return StatusNew
	}
	last := r.LastDone.In(now.Location())
	if samePeriod(r.Cadence, last, now) {
		return StatusDone
	}
	return StatusDue
}

func samePeriod(c Cadence, a, b time.Time) bool {
	switch c {
	case CadenceCustom:
		return true
	case CadenceWeekly:
		ay, aw := a.ISOWeek()
		by, bw := b.ISOWeek()
		return ay == by && aw == bw
	case CadenceMonthly:
		return a.Year() == b.Year() && a.Month() == b.Month()
	default:
		return a.Year() == b.Year() && a.YearDay() == b.YearDay()
	}
}
