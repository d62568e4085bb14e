package reorder

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"
)

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.now += d
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			t.f()
		}
	}
}

func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

const (
	testItemH = 20
	testGap   = 10
)

// fixture is a list of n items, each testItemH tall with testGap between them.
// Item i spans [i*30, i*30+20).
type fixture struct {
	t     *testing.T
	sched *fakeScheduler
	c     *Container
	ids   []string
	calls [][2]int
}

func newFixture(t *testing.T, n int, fs FeedbackStrategy) *fixture {
	t.Helper()
	f := &fixture{t: t, sched: &fakeScheduler{}}
	f.c = NewContainer(Config{Gap: testGap, Strategy: fs, Scheduler: f.sched})
	for i := 0; i < n; i++ {
		f.ids = append(f.ids, fmt.Sprintf("i%d", i))
	}
	f.sync()
	return f
}

// sync re-attaches every item at its current index, as a host re-render would.
func (f *fixture) sync() {
	boxes := make([]Box, 0, len(f.ids))
	for i, id := range f.ids {
		boxes = append(boxes, Box{ID: id, Rect: Rect{Top: i * (testItemH + testGap), Height: testItemH}})
		f.c.Attach(id, Options{Index: i, OnReorder: f.reorder})
	}
	f.c.SetLayout(boxes)
}

func (f *fixture) reorder(from, to int) error {
	f.calls = append(f.calls, [2]int{from, to})
	id := f.ids[from]
	rest := append(append([]string{}, f.ids[:from]...), f.ids[from+1:]...)
	out := append([]string{}, rest[:to]...)
	out = append(out, id)
	f.ids = append(out, rest[to:]...)
	return nil
}

func (f *fixture) press(id string, y int) {
	f.t.Helper()
	if err := f.c.Dispatch(&Event{Kind: EventPress, Target: id, Y: y}); err != nil {
		f.t.Fatalf("press: %v", err)
	}
}

func (f *fixture) move(y int) *Event {
	f.t.Helper()
	ev := &Event{Kind: EventMove, Y: y}
	if err := f.c.Dispatch(ev); err != nil {
		f.t.Fatalf("move: %v", err)
	}
	return ev
}

func (f *fixture) release(y int) error {
	return f.c.Dispatch(&Event{Kind: EventRelease, Y: y})
}

func (f *fixture) assertClean() {
	f.t.Helper()
	if got := f.c.Phase(); got != PhaseIdle {
		f.t.Fatalf("expected idle, got %v", got)
	}
	if ids := f.c.MutatedIDs(); len(ids) != 0 {
		f.t.Fatalf("expected no mutated styles, got %v", ids)
	}
	if _, ok := f.c.Overlay(); ok {
		f.t.Fatalf("expected overlay removed")
	}
	if f.c.ScrollLocked() {
		f.t.Fatalf("expected scroll unlocked")
	}
	if n := f.c.ListenerCount(); n != 0 {
		f.t.Fatalf("expected no captured listeners, got %d", n)
	}
	if n := f.c.DisplacedCount(); n != 0 {
		f.t.Fatalf("expected no displaced siblings, got %d", n)
	}
	if f.c.OriginIndex() != -1 || f.c.CandidateIndex() != -1 || f.c.ActiveID() != "" {
		f.t.Fatalf("expected reset session; origin=%d candidate=%d active=%q", f.c.OriginIndex(), f.c.CandidateIndex(), f.c.ActiveID())
	}
}

func TestTapBeforeHold_NoReorderNoStyle(t *testing.T) {
	f := newFixture(t, 5, nil)

	f.press("i1", 40)
	if f.c.Phase() != PhaseArmed {
		t.Fatalf("expected armed after press, got %v", f.c.Phase())
	}
	f.sched.Advance(100 * time.Millisecond)
	if err := f.release(40); err != nil {
		t.Fatalf("release: %v", err)
	}
	f.sched.Advance(time.Second)

	if len(f.calls) != 0 {
		t.Fatalf("expected no reorder, got %v", f.calls)
	}
	if f.sched.pending() != 0 {
		t.Fatalf("expected hold timer cancelled")
	}
	f.assertClean()
}

func TestMoveBeyondThresholdBeforeHold_NeverDrags(t *testing.T) {
	f := newFixture(t, 5, nil)

	f.press("i1", 40)
	f.sched.Advance(100 * time.Millisecond)
	ev := f.move(40 + DefaultMoveThreshold + 1)
	if ev.DefaultPrevented() {
		t.Fatalf("scrolling must not be suppressed before a drag starts")
	}
	// Pointer stops; well past the hold delay in total.
	f.sched.Advance(time.Second)

	if f.c.Phase() != PhaseIdle {
		t.Fatalf("expected idle after movement, got %v", f.c.Phase())
	}
	if err := f.release(51); err != nil {
		t.Fatalf("release: %v", err)
	}
	if len(f.calls) != 0 {
		t.Fatalf("expected no reorder, got %v", f.calls)
	}
	f.assertClean()
}

func TestMoveWithinThreshold_StillActivates(t *testing.T) {
	f := newFixture(t, 5, nil)

	f.press("i1", 40)
	f.move(40 + DefaultMoveThreshold)
	f.move(40 - DefaultMoveThreshold)
	f.sched.Advance(DefaultHoldDelay)

	if f.c.Phase() != PhaseDragging {
		t.Fatalf("expected dragging, got %v", f.c.Phase())
	}
	st := f.c.Style("i1")
	if !st.Lifted() || !st.PassThrough || st.Z <= 0 {
		t.Fatalf("expected lifted style on active item, got %+v", st)
	}
	if !f.c.ScrollLocked() {
		t.Fatalf("expected scroll locked while dragging")
	}
}

func TestDragOneToThree_CommitsPermutation(t *testing.T) {
	f := newFixture(t, 5, NeighborDisplacement{})

	f.press("i1", 40)
	f.sched.Advance(DefaultHoldDelay)
	ev := f.move(115)
	if !ev.DefaultPrevented() {
		t.Fatalf("expected move to suppress scrolling during drag")
	}
	if got := f.c.CandidateIndex(); got != 3 {
		t.Fatalf("expected candidate 3, got %d", got)
	}
	if got := f.c.Style("i1").OffsetY; got != 75 {
		t.Fatalf("expected active item translated by 75, got %d", got)
	}
	if err := f.release(115); err != nil {
		t.Fatalf("release: %v", err)
	}

	if !reflect.DeepEqual(f.calls, [][2]int{{1, 3}}) {
		t.Fatalf("expected one reorder(1,3), got %v", f.calls)
	}
	want := []string{"i0", "i2", "i3", "i1", "i4"}
	if !reflect.DeepEqual(f.ids, want) {
		t.Fatalf("expected %v, got %v", want, f.ids)
	}
	f.assertClean()
}

func TestHoldWithoutMovement_NoReorder(t *testing.T) {
	f := newFixture(t, 5, nil)

	f.press("i2", 70)
	f.sched.Advance(600 * time.Millisecond)
	if f.c.Phase() != PhaseDragging {
		t.Fatalf("expected dragging after 600ms hold, got %v", f.c.Phase())
	}
	if f.c.CandidateIndex() != f.c.OriginIndex() || f.c.OriginIndex() != 2 {
		t.Fatalf("expected candidate == origin == 2; got candidate=%d origin=%d", f.c.CandidateIndex(), f.c.OriginIndex())
	}
	if err := f.release(70); err != nil {
		t.Fatalf("release: %v", err)
	}
	if len(f.calls) != 0 {
		t.Fatalf("expected no reorder, got %v", f.calls)
	}
	f.assertClean()
}

func TestMoveOverOwnPosition_CandidateStaysAtOrigin(t *testing.T) {
	f := newFixture(t, 5, nil)

	f.press("i2", 70)
	f.sched.Advance(DefaultHoldDelay)
	f.move(65)
	f.move(75)
	if got := f.c.CandidateIndex(); got != 2 {
		t.Fatalf("expected candidate 2, got %d", got)
	}
	if err := f.release(75); err != nil {
		t.Fatalf("release: %v", err)
	}
	if len(f.calls) != 0 {
		t.Fatalf("expected no reorder, got %v", f.calls)
	}
}

func TestDragLastItemToTop(t *testing.T) {
	f := newFixture(t, 5, nil)

	f.press("i4", 130)
	f.sched.Advance(DefaultHoldDelay)
	// First sibling is i0 with midpoint 10.
	f.move(9)
	if got := f.c.CandidateIndex(); got != 0 {
		t.Fatalf("expected candidate 0, got %d", got)
	}
	if err := f.release(9); err != nil {
		t.Fatalf("release: %v", err)
	}
	if !reflect.DeepEqual(f.calls, [][2]int{{4, 0}}) {
		t.Fatalf("expected reorder(4,0), got %v", f.calls)
	}
	if want := []string{"i4", "i0", "i1", "i2", "i3"}; !reflect.DeepEqual(f.ids, want) {
		t.Fatalf("expected %v, got %v", want, f.ids)
	}
}

func TestDropIndex_BelowAllSiblings(t *testing.T) {
	f := newFixture(t, 3, nil)

	f.press("i0", 10)
	f.sched.Advance(DefaultHoldDelay)
	f.move(500)
	if got := f.c.CandidateIndex(); got != 2 {
		t.Fatalf("expected candidate == sibling count (2), got %d", got)
	}
}

func TestCleanupIsIdempotent(t *testing.T) {
	f := newFixture(t, 5, NeighborDisplacement{})

	f.press("i0", 10)
	f.sched.Advance(DefaultHoldDelay)
	f.move(100)
	if err := f.release(100); err != nil {
		t.Fatalf("release: %v", err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("expected one reorder, got %v", f.calls)
	}
	f.assertClean()

	// Duplicate release plus an explicit teardown.
	if err := f.release(100); err != nil {
		t.Fatalf("second release: %v", err)
	}
	f.c.Cancel()
	f.c.Cancel()
	if len(f.calls) != 1 {
		t.Fatalf("expected no additional reorder, got %v", f.calls)
	}
	f.assertClean()
}

func TestNeighborDisplacement_OpensGapAndReverts(t *testing.T) {
	f := newFixture(t, 5, NeighborDisplacement{})

	f.press("i1", 40)
	f.sched.Advance(DefaultHoldDelay)

	f.move(115) // candidate 3: i2 and i3 slide up.
	shift := testItemH + testGap
	for _, id := range []string{"i2", "i3"} {
		if got := f.c.Style(id).OffsetY; got != -shift {
			t.Fatalf("%s: expected offset %d, got %d", id, -shift, got)
		}
	}
	for _, id := range []string{"i0", "i4"} {
		if got := f.c.Style(id); !got.IsZero() {
			t.Fatalf("%s: expected untouched, got %+v", id, got)
		}
	}
	if n := f.c.DisplacedCount(); n != 2 {
		t.Fatalf("expected 2 displaced, got %d", n)
	}

	f.move(75) // candidate 2: only i2 stays displaced.
	if got := f.c.Style("i3"); !got.IsZero() {
		t.Fatalf("i3: expected reverted, got %+v", got)
	}
	if n := f.c.DisplacedCount(); n != 1 {
		t.Fatalf("expected 1 displaced, got %d", n)
	}

	f.move(5) // candidate 0: i0 slides down.
	if got := f.c.Style("i0").OffsetY; got != shift {
		t.Fatalf("i0: expected offset %d, got %d", shift, got)
	}
	if got := f.c.Style("i2"); !got.IsZero() {
		t.Fatalf("i2: expected reverted, got %+v", got)
	}

	f.c.Cancel()
	if len(f.calls) != 0 {
		t.Fatalf("cancel must not commit, got %v", f.calls)
	}
	f.assertClean()
}

func TestNeighborDisplacement_RestoresPreexistingStyle(t *testing.T) {
	f := newFixture(t, 3, NeighborDisplacement{})
	f.c.setStyle("i1", Style{OffsetY: 3, Z: 2})

	f.press("i0", 10)
	f.sched.Advance(DefaultHoldDelay)
	f.move(45)
	if got := f.c.Style("i1"); got.OffsetY != 3-(testItemH+testGap) || got.Z != 2 {
		t.Fatalf("unexpected displaced style %+v", got)
	}
	if err := f.release(45); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := f.c.Style("i1"); got != (Style{OffsetY: 3, Z: 2}) {
		t.Fatalf("expected snapshot restored, got %+v", got)
	}
}

func TestIndicatorLine_TracksBoundary(t *testing.T) {
	f := newFixture(t, 5, IndicatorLine{})

	f.press("i1", 40)
	f.sched.Advance(DefaultHoldDelay)
	f.move(115)
	ov, ok := f.c.Overlay()
	if !ok {
		t.Fatalf("expected indicator overlay")
	}
	// Boundary above i4 (top 120), centered in the gap.
	if ov.Y != 120-testGap/2 {
		t.Fatalf("expected indicator at %d, got %d", 120-testGap/2, ov.Y)
	}
	if n := f.c.DisplacedCount(); n != 0 {
		t.Fatalf("indicator strategy must not displace siblings, got %d", n)
	}

	f.move(500)
	ov, _ = f.c.Overlay()
	if ov.Y != 140+testGap/2 {
		t.Fatalf("expected indicator below last item at %d, got %d", 140+testGap/2, ov.Y)
	}

	if err := f.release(500); err != nil {
		t.Fatalf("release: %v", err)
	}
	if !reflect.DeepEqual(f.calls, [][2]int{{1, 4}}) {
		t.Fatalf("expected reorder(1,4), got %v", f.calls)
	}
	f.assertClean()
}

func TestPressDuringDrag_Ignored(t *testing.T) {
	f := newFixture(t, 5, nil)

	f.press("i1", 40)
	f.sched.Advance(DefaultHoldDelay)
	f.press("i3", 100)
	f.sched.Advance(time.Second)

	if f.c.ActiveID() != "i1" || f.c.OriginIndex() != 1 {
		t.Fatalf("expected i1 to stay active, got %q origin=%d", f.c.ActiveID(), f.c.OriginIndex())
	}
	if f.c.ListenerCount() != 1 {
		t.Fatalf("expected exactly one captured listener, got %d", f.c.ListenerCount())
	}
}

func TestNewPressSupersedesPendingTimer(t *testing.T) {
	f := newFixture(t, 5, nil)

	f.press("i1", 40)
	f.sched.Advance(200 * time.Millisecond)
	f.press("i2", 70)
	if f.sched.pending() != 1 {
		t.Fatalf("expected only the latest timer pending, got %d", f.sched.pending())
	}
	f.sched.Advance(400 * time.Millisecond)
	if f.c.Phase() != PhaseArmed {
		t.Fatalf("first timer must not activate; got %v", f.c.Phase())
	}
	f.sched.Advance(100 * time.Millisecond)
	if f.c.Phase() != PhaseDragging || f.c.ActiveID() != "i2" {
		t.Fatalf("expected i2 dragging, got %v %q", f.c.Phase(), f.c.ActiveID())
	}
}

func TestActiveItemRemovedMidDrag(t *testing.T) {
	f := newFixture(t, 4, NeighborDisplacement{})

	f.press("i1", 40)
	f.sched.Advance(DefaultHoldDelay)
	f.move(45)
	before := f.c.Style("i1")

	f.c.SetLayout([]Box{
		{ID: "i0", Rect: Rect{Top: 0, Height: testItemH}},
		{ID: "i2", Rect: Rect{Top: 30, Height: testItemH}},
		{ID: "i3", Rect: Rect{Top: 60, Height: testItemH}},
	})
	f.move(200)
	if got := f.c.Style("i1"); got != before {
		t.Fatalf("moves must be no-ops once the active item is gone; got %+v want %+v", got, before)
	}
	if err := f.release(200); err != nil {
		t.Fatalf("release: %v", err)
	}
	if len(f.calls) != 0 {
		t.Fatalf("expected no reorder, got %v", f.calls)
	}
	f.assertClean()
}

func TestSingleItem_CandidateZero(t *testing.T) {
	f := newFixture(t, 1, IndicatorLine{})

	f.press("i0", 10)
	f.sched.Advance(DefaultHoldDelay)
	f.move(300)
	if got := f.c.CandidateIndex(); got != 0 {
		t.Fatalf("expected candidate 0 with no siblings, got %d", got)
	}
	if err := f.release(300); err != nil {
		t.Fatalf("release: %v", err)
	}
	if len(f.calls) != 0 {
		t.Fatalf("expected no reorder, got %v", f.calls)
	}
	f.assertClean()
}

func TestDetach(t *testing.T) {
	t.Run("mid drag cleans up without committing", func(t *testing.T) {
		f := newFixture(t, 5, NeighborDisplacement{})
		f.press("i1", 40)
		f.sched.Advance(DefaultHoldDelay)
		f.move(115)

		h, _ := f.c.Handle("i1")
		h.Detach()
		h.Detach()

		if len(f.calls) != 0 {
			t.Fatalf("detach must not commit, got %v", f.calls)
		}
		if _, ok := f.c.Handle("i1"); ok {
			t.Fatalf("expected handle removed")
		}
		f.assertClean()
	})

	t.Run("pending timer cancelled", func(t *testing.T) {
		f := newFixture(t, 5, nil)
		f.press("i1", 40)
		h, _ := f.c.Handle("i1")
		h.Detach()
		f.sched.Advance(time.Second)
		if f.sched.pending() != 0 || f.c.Phase() != PhaseIdle {
			t.Fatalf("expected timer cancelled and idle, got phase %v", f.c.Phase())
		}
		f.press("i1", 40)
		if f.c.Phase() != PhaseIdle {
			t.Fatalf("detached item must ignore presses")
		}
	})
}

func TestUpdate_RebasesIndexForNextPress(t *testing.T) {
	f := newFixture(t, 5, nil)
	h, _ := f.c.Handle("i1")
	var got [][2]int
	h.Update(Options{Index: 3, OnReorder: func(from, to int) error {
		got = append(got, [2]int{from, to})
		return nil
	}})
	if h.Index() != 3 {
		t.Fatalf("expected index 3, got %d", h.Index())
	}

	f.press("i1", 40)
	if f.c.OriginIndex() != 3 || f.c.CandidateIndex() != 3 {
		t.Fatalf("expected origin/candidate 3, got %d/%d", f.c.OriginIndex(), f.c.CandidateIndex())
	}
	f.sched.Advance(DefaultHoldDelay)
	f.move(5)
	if err := f.release(5); err != nil {
		t.Fatalf("release: %v", err)
	}
	if !reflect.DeepEqual(got, [][2]int{{3, 0}}) {
		t.Fatalf("expected updated callback reorder(3,0), got %v", got)
	}
	if len(f.calls) != 0 {
		t.Fatalf("old callback must not be used, got %v", f.calls)
	}
}

func TestDeadZone_HoldsCandidateNearMidpoint(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewContainer(Config{Gap: testGap, DeadZone: 4, Scheduler: sched})
	boxes := []Box{
		{ID: "a", Rect: Rect{Top: 0, Height: testItemH}},
		{ID: "b", Rect: Rect{Top: 30, Height: testItemH}},
		{ID: "c", Rect: Rect{Top: 60, Height: testItemH}},
	}
	c.SetLayout(boxes)
	for i, b := range boxes {
		c.Attach(b.ID, Options{Index: i})
	}

	_ = c.Dispatch(&Event{Kind: EventPress, Target: "a", Y: 10})
	sched.Advance(DefaultHoldDelay)

	// Sibling b has midpoint 40. Just past it is inside the dead zone.
	_ = c.Dispatch(&Event{Kind: EventMove, Y: 42})
	if got := c.CandidateIndex(); got != 0 {
		t.Fatalf("expected candidate held at 0 inside dead zone, got %d", got)
	}
	_ = c.Dispatch(&Event{Kind: EventMove, Y: 45})
	if got := c.CandidateIndex(); got != 1 {
		t.Fatalf("expected candidate 1 past dead zone, got %d", got)
	}
	_ = c.Dispatch(&Event{Kind: EventMove, Y: 38})
	if got := c.CandidateIndex(); got != 1 {
		t.Fatalf("expected candidate held at 1 inside dead zone, got %d", got)
	}
}

func TestReorderError_ReturnedAfterCleanup(t *testing.T) {
	f := newFixture(t, 3, NeighborDisplacement{})
	boom := errors.New("disk full")
	h, _ := f.c.Handle("i0")
	h.Update(Options{Index: 0, OnReorder: func(int, int) error { return boom }})

	f.press("i0", 10)
	f.sched.Advance(DefaultHoldDelay)
	f.move(200)
	err := f.release(200)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped reorder error, got %v", err)
	}
	f.assertClean()
}

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "", want: "displace"},
		{in: "displace", want: "displace"},
		{in: "Indicator", want: "indicator"},
		{in: "line", want: "indicator"},
		{in: "wobble", err: true},
	}
	for _, tc := range cases {
		got, err := ParseStrategy(tc.in)
		if tc.err {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got.Name() != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.want, got.Name())
		}
	}
}

func TestNewContainer_WarnsWithoutScheduler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	NewContainer(Config{Logger: log})
	if !strings.Contains(buf.String(), "no scheduler") {
		t.Fatalf("expected a warning without a scheduler, got %q", buf.String())
	}

	buf.Reset()
	NewContainer(Config{Logger: log, Scheduler: &fakeScheduler{}})
	if buf.Len() != 0 {
		t.Fatalf("expected no warning with a scheduler, got %q", buf.String())
	}
}
