package planner

import (
	"errors"
	"fmt"

	"github.com/padraicbc/umaplan/models"
)

var (
	// ErrRaceNotFound is returned when an operation names a race the plan does not hold.
	ErrRaceNotFound = errors.New("race not in plan")
	// ErrIndexOutOfRange is matched by *IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDuplicateRace is returned when a new ordering lists a race twice.
	ErrDuplicateRace = errors.New("race listed more than once")
	// ErrOrderMismatch is returned when a new ordering is not a permutation of the plan.
	ErrOrderMismatch = errors.New("order does not match the selected races")
)

// IndexOutOfRangeError reports a move with an index outside the plan.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for plan of %d races", e.Index, e.Len)
}

// Is lets errors.Is(err, ErrIndexOutOfRange) match.
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// Plan is an ordered selection of races. Sequence numbers are always 1..N
// in slice order. Methods never modify the receiver's backing array.
type Plan []models.SelectedRace

// Len returns the number of selected races.
func (p Plan) Len() int { return len(p) }

// IndexOf returns the position of the race with id, or -1.
func (p Plan) IndexOf(id int) int {
	for i, sr := range p {
		if sr.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether the race with id is selected.
func (p Plan) Contains(id int) bool {
	return p.IndexOf(id) >= 0
}

// Toggle removes race if selected, else appends it at the end.
func (p Plan) Toggle(race models.Race) Plan {
	if i := p.IndexOf(race.ID); i >= 0 {
		return p.removeAt(i)
	}
	out := make(Plan, len(p), len(p)+1)
	copy(out, p)
	return append(out, models.SelectedRace{Race: race, SequenceNumber: len(p) + 1})
}

// Remove drops the race with id and renumbers the rest.
func (p Plan) Remove(id int) (Plan, error) {
	i := p.IndexOf(id)
	if i < 0 {
		return p, fmt.Errorf("remove race %d: %w", id, ErrRaceNotFound)
	}
	return p.removeAt(i), nil
}

// Reorder replaces the order wholesale. seq must list exactly the races
// already in the plan; only its ids are read. Entries are rebuilt from the
// plan's own races and renumbered by their final position.
func (p Plan) Reorder(seq []models.SelectedRace) (Plan, error) {
	if err := checkUnique(seq); err != nil {
		return p, err
	}
	if len(seq) != len(p) {
		return p, fmt.Errorf("reorder %d races into plan of %d: %w", len(seq), len(p), ErrOrderMismatch)
	}
	out := make(Plan, 0, len(seq))
	for _, sr := range seq {
		i := p.IndexOf(sr.ID)
		if i < 0 {
			return p, fmt.Errorf("reorder race %d: %w", sr.ID, ErrOrderMismatch)
		}
		out = append(out, p[i])
	}
	return out.renumber(), nil
}

// FromSequence builds a plan from a complete selection, such as a decoded
// share link or stored state, renumbering it 1..N in slice order.
func FromSequence(seq []models.SelectedRace) (Plan, error) {
	if err := checkUnique(seq); err != nil {
		return Plan{}, err
	}
	out := make(Plan, len(seq))
	copy(out, seq)
	return out.renumber(), nil
}

func checkUnique(seq []models.SelectedRace) error {
	seen := make(map[int]struct{}, len(seq))
	for _, sr := range seq {
		if _, dup := seen[sr.ID]; dup {
			return fmt.Errorf("race %d: %w", sr.ID, ErrDuplicateRace)
		}
		seen[sr.ID] = struct{}{}
	}
	return nil
}

// MoveRace takes the race at from and reinserts it at to (splice, not
// swap), then renumbers by position.
func (p Plan) MoveRace(from, to int) (Plan, error) {
	if from < 0 || from >= len(p) {
		return p, &IndexOutOfRangeError{Index: from, Len: len(p)}
	}
	if to < 0 || to >= len(p) {
		return p, &IndexOutOfRangeError{Index: to, Len: len(p)}
	}

	out := make(Plan, 0, len(p))
	out = append(out, p[:from]...)
	out = append(out, p[from+1:]...)
	moved := p[from]

	out = append(out, models.SelectedRace{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out.renumber(), nil
}

// Clear returns an empty plan.
func (p Plan) Clear() Plan {
	return Plan{}
}

func (p Plan) removeAt(i int) Plan {
	out := make(Plan, 0, len(p)-1)
	out = append(out, p[:i]...)
	out = append(out, p[i+1:]...)
	return out.renumber()
}

// renumber rewrites sequence numbers in place; only call on a fresh copy.
func (p Plan) renumber() Plan {
	for i := range p {
		p[i].SequenceNumber = i + 1
	}
	return p
}
