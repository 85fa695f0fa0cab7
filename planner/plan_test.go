package planner

import (
	"errors"
	"testing"

	"github.com/padraicbc/umaplan/models"
)

func TestToggleTwiceRestoresPlan(t *testing.T) {
	p := Plan{}.Toggle(raceA).Toggle(raceB)
	if !equalInts(ids(p), []int{1, 2}) {
		t.Fatalf("unexpected ids %v", ids(p))
	}
	checkSequence(t, p)

	q := p.Toggle(raceC).Toggle(raceC)
	if !equalInts(ids(q), ids(p)) {
		t.Fatalf("toggle twice changed plan: %v", ids(q))
	}
	checkSequence(t, q)
}

func TestToggleRemovesAndRenumbers(t *testing.T) {
	p := Plan{}.Toggle(raceA).Toggle(raceB).Toggle(raceC).Toggle(raceA)
	if !equalInts(ids(p), []int{2, 3}) {
		t.Fatalf("unexpected ids %v", ids(p))
	}
	checkSequence(t, p)
}

func TestToggleDoesNotAliasReceiver(t *testing.T) {
	base := make(Plan, 0, 8)
	base = base.Toggle(raceA)
	x := base.Toggle(raceB)
	y := base.Toggle(raceC)
	if x[1].ID != 2 || y[1].ID != 3 {
		t.Fatalf("toggles shared backing array: %v %v", ids(x), ids(y))
	}
}

func TestRemove(t *testing.T) {
	p := Plan{}.Toggle(raceA).Toggle(raceB).Toggle(raceC)
	q, err := p.Remove(2)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !equalInts(ids(q), []int{1, 3}) {
		t.Fatalf("unexpected ids %v", ids(q))
	}
	checkSequence(t, q)

	if _, err := q.Remove(42); !errors.Is(err, ErrRaceNotFound) {
		t.Fatalf("expected ErrRaceNotFound, got %v", err)
	}
}

func TestMoveRaceSplices(t *testing.T) {
	p := Plan{}.Toggle(raceA).Toggle(raceB).Toggle(raceC)

	q, err := p.MoveRace(0, 2)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !equalInts(ids(q), []int{2, 3, 1}) {
		t.Fatalf("move 0->2 gave %v, want [2 3 1]", ids(q))
	}
	checkSequence(t, q)

	q, err = p.MoveRace(2, 0)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !equalInts(ids(q), []int{3, 1, 2}) {
		t.Fatalf("move 2->0 gave %v, want [3 1 2]", ids(q))
	}

	q, err = p.MoveRace(1, 1)
	if err != nil || !equalInts(ids(q), []int{1, 2, 3}) {
		t.Fatalf("move in place gave %v, %v", ids(q), err)
	}

	if !equalInts(ids(p), []int{1, 2, 3}) {
		t.Fatalf("receiver modified: %v", ids(p))
	}
}

func TestMoveRaceOutOfRange(t *testing.T) {
	p := Plan{}.Toggle(raceA).Toggle(raceB)
	for _, c := range [][2]int{{-1, 0}, {0, 2}, {5, 0}} {
		_, err := p.MoveRace(c[0], c[1])
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("move %v: expected ErrIndexOutOfRange, got %v", c, err)
		}
		var oor *IndexOutOfRangeError
		if !errors.As(err, &oor) || oor.Len != 2 {
			t.Fatalf("move %v: expected *IndexOutOfRangeError, got %v", c, err)
		}
	}
}

func TestReorder(t *testing.T) {
	p := Plan{}.Toggle(raceA).Toggle(raceB).Toggle(raceC)
	seq := []models.SelectedRace{
		{Race: raceC, SequenceNumber: 7},
		{Race: raceA, SequenceNumber: 7},
		{Race: raceB, SequenceNumber: 1},
	}
	q, err := p.Reorder(seq)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if !equalInts(ids(q), []int{3, 1, 2}) {
		t.Fatalf("unexpected ids %v", ids(q))
	}
	checkSequence(t, q)
	if seq[0].SequenceNumber != 7 {
		t.Fatal("reorder modified its argument")
	}

	_, err = p.Reorder([]models.SelectedRace{{Race: raceA}, {Race: raceA}})
	if !errors.Is(err, ErrDuplicateRace) {
		t.Fatalf("expected ErrDuplicateRace, got %v", err)
	}
}

func TestClear(t *testing.T) {
	p := Plan{}.Toggle(raceA).Clear()
	if p == nil || len(p) != 0 {
		t.Fatalf("expected empty non-nil plan, got %v", p)
	}
}

func TestDetectConflicts(t *testing.T) {
	p := Plan{}.Toggle(raceA).Toggle(raceB).Toggle(raceC)
	conflicts := DetectConflicts(p)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	c := conflicts[0]
	if c.Summary() != "2 races in Classic April Late" {
		t.Fatalf("summary = %q", c.Summary())
	}
	if !equalInts(ids(c.Races), []int{1, 2}) {
		t.Fatalf("conflict races %v", ids(c.Races))
	}

	if !HasConflict(Plan{}.Toggle(raceA), raceB) {
		t.Fatal("expected raceB to conflict with raceA")
	}
	if HasConflict(Plan{}.Toggle(raceA), raceA) {
		t.Fatal("a race never conflicts with itself")
	}

	none := DetectConflicts(Plan{}.Toggle(raceA).Toggle(raceC))
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil conflicts, got %v", none)
	}
}

func TestReorderMustBePermutation(t *testing.T) {
	p := Plan{}.Toggle(raceA).Toggle(raceB)
	forged := race(999, "Made Up Cup", models.GradeG1, 2000, models.TrackTurf, models.PhaseSenior, 1, models.HalfEarly)

	tests := map[string][]models.SelectedRace{
		"foreign race": {{Race: forged}},
		"dropped race": {{Race: raceA}},
		"extra race":   {{Race: raceA}, {Race: raceB}, {Race: raceC}},
		"swapped race": {{Race: raceA}, {Race: raceC}},
	}
	for name, seq := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := p.Reorder(seq)
			if !errors.Is(err, ErrOrderMismatch) {
				t.Fatalf("expected ErrOrderMismatch, got %v", err)
			}
			if !equalInts(ids(got), []int{1, 2}) {
				t.Fatalf("plan changed on error: %v", ids(got))
			}
		})
	}
}

func TestReorderKeepsPlanRaceData(t *testing.T) {
	p := Plan{}.Toggle(raceA).Toggle(raceB)
	edited := raceA
	edited.Name = "Renamed"
	edited.Grade = models.GradeG3

	q, err := p.Reorder([]models.SelectedRace{{Race: raceB}, {Race: edited}})
	if err != nil {
		t.Fatal(err)
	}
	if q[1].Name != raceA.Name || q[1].Grade != raceA.Grade {
		t.Fatalf("reorder took client race data: %+v", q[1].Race)
	}
}

func TestFromSequence(t *testing.T) {
	p, err := FromSequence([]models.SelectedRace{{Race: raceC, SequenceNumber: 4}, {Race: raceA, SequenceNumber: 9}})
	if err != nil {
		t.Fatal(err)
	}
	if !equalInts(ids(p), []int{3, 1}) {
		t.Fatalf("ids = %v", ids(p))
	}
	checkSequence(t, p)

	if _, err := FromSequence([]models.SelectedRace{{Race: raceA}, {Race: raceA}}); !errors.Is(err, ErrDuplicateRace) {
		t.Fatalf("expected ErrDuplicateRace, got %v", err)
	}
}

func TestAdjacentHalvesDoNotConflict(t *testing.T) {
	late := race(10, "Late April", models.GradeG1, 2000, models.TrackTurf, models.PhaseClassic, 4, models.HalfLate)
	early := race(11, "Early April", models.GradeG2, 1600, models.TrackTurf, models.PhaseClassic, 4, models.HalfEarly)

	p := Plan{}.Toggle(late).Toggle(early)
	if got := DetectConflicts(p); len(got) != 0 {
		t.Fatalf("expected no conflicts, got %+v", got)
	}
	if HasConflict(Plan{}.Toggle(late), early) {
		t.Fatal("Early and Late halves of one month must not clash")
	}
}

// A G1 filter over A (G1), B (G3, Dirt) and C (G1) shows A and C. Selecting
// A then C numbers them 1 and 2; removing A leaves C at 1.
func TestFilterSelectRemoveScenario(t *testing.T) {
	a := race(1, "Race A", models.GradeG1, 2000, models.TrackTurf, models.PhaseClassic, 4, models.HalfLate)
	b := race(2, "Race B", models.GradeG3, 1400, models.TrackDirt, models.PhaseClassic, 5, models.HalfEarly)
	c := race(3, "Race C", models.GradeG1, 2400, models.TrackTurf, models.PhaseSenior, 6, models.HalfLate)

	f := DefaultFilters()
	f.Grade = "G1"
	visible := FilterRaces([]models.Race{a, b, c}, f)
	if len(visible) != 2 || visible[0].ID != 1 || visible[1].ID != 3 {
		t.Fatalf("visible = %+v", visible)
	}

	state := DefaultPlanState()
	for _, r := range visible {
		var err error
		if state, err = Reduce(state, ToggleRace{Race: r}); err != nil {
			t.Fatal(err)
		}
	}
	sel := state.SelectedRaces
	if sel[0].ID != 1 || sel[0].SequenceNumber != 1 || sel[1].ID != 3 || sel[1].SequenceNumber != 2 {
		t.Fatalf("selection = %+v", sel)
	}

	state, err := Reduce(state, RemoveRace{ID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(state.SelectedRaces) != 1 || state.SelectedRaces[0].ID != 3 || state.SelectedRaces[0].SequenceNumber != 1 {
		t.Fatalf("after remove = %+v", state.SelectedRaces)
	}
}
