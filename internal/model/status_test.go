package model

import (
	"strings"
	"testing"
	"time"
)

func TestDeadlineStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		d    Deadline
		want Status
	}{
		{name: "done wins", d: Deadline{Due: "2026-03-01", Done: true}, want: StatusDone},
		{name: "past", d: Deadline{Due: "2026-03-09"}, want: StatusOverdue},
		{name: "today", d: Deadline{Due: "2026-03-10"}, want: StatusToday},
		{name: "tomorrow", d: Deadline{Due: "2026-03-11"}, want: StatusSoon},
		{name: "edge of soon", d: Deadline{Due: "2026-03-13"}, want: StatusSoon},
		{name: "later", d: Deadline{Due: "2026-03-14"}, want: StatusUpcoming},
		{name: "unparseable", d: Deadline{Due: "someday"}, want: StatusUpcoming},
	}
	for _, tc := range cases {
		if got := DeadlineStatus(tc.d, now); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestRoutineStatus(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC) // Wednesday
	at := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 8, 0, 0, 0, time.UTC)
		return &t
	}
	cases := []struct {
		name string
		r    Routine
		want Status
	}{
		{name: "never", r: Routine{Cadence: CadenceDaily}, want: StatusNew},
		{name: "daily today", r: Routine{Cadence: CadenceDaily, LastDone: at(2026, 3, 11)}, want: StatusDone},
		{name: "daily yesterday", r: Routine{Cadence: CadenceDaily, LastDone: at(2026, 3, 10)}, want: StatusDue},
		{name: "weekly monday", r: Routine{Cadence: CadenceWeekly, LastDone: at(2026, 3, 9)}, want: StatusDone},
		{name: "weekly last sunday", r: Routine{Cadence: CadenceWeekly, LastDone: at(2026, 3, 8)}, want: StatusDue},
		{name: "monthly first", r: Routine{Cadence: CadenceMonthly, LastDone: at(2026, 3, 1)}, want: StatusDone},
		{name: "monthly last month", r: Routine{Cadence: CadenceMonthly, LastDone: at(2026, 2, 28)}, want: StatusDue},
		{name: "custom last year", r: Routine{Cadence: CadenceCustom, LastDone: at(2025, 1, 5)}, want: StatusDone},
		{name: "custom never", r: Routine{Cadence: CadenceCustom}, want: StatusNew},
	}
	for _, tc := range cases {
		if got := RoutineStatus(tc.r, now); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestParseCadence(t *testing.T) {
	if c, err := ParseCadence(""); err != nil || c != CadenceDaily {
		t.Fatalf("expected default daily, got %q %v", c, err)
	}
	if c, err := ParseCadence(" Weekly "); err != nil || c != CadenceWeekly {
		t.Fatalf("expected weekly, got %q %v", c, err)
	}
	if _, err := ParseCadence("hourly"); err == nil {
		t.Fatalf("expected error")
	}
	if c, err := ParseCadence("custom"); err != nil || c != CadenceCustom {
		t.Fatalf("expected custom, got %q %v", c, err)
	}
	if _, err := ParseDate("2026-02-30"); err == nil {
		t.Fatalf("expected invalid date error")
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{"": PriorityMedium, "HIGH": PriorityHigh, " low ": PriorityLow}
	for in, want := range cases {
		if got, err := ParsePriority(in); err != nil || got != want {
			t.Fatalf("%q: expected %s, got %q %v", in, want, got, err)
		}
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags("work, home", "work", " ,errands")
	want := []string{"work", "home", "errands"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if ParseTags("", " ") != nil {
		t.Fatalf("expected no tags")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	if got, err := ParseTimeOfDay("7:05"); err != nil || got != "07:05" {
		t.Fatalf("expected 07:05, got %q %v", got, err)
	}
	if got, err := ParseTimeOfDay(""); err != nil || got != "" {
		t.Fatalf("expected empty, got %q %v", got, err)
	}
	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatalf("expected error")
	}
}
