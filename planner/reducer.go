package planner

import (
	"fmt"

	"github.com/padraicbc/umaplan/models"
)

// Action is a single user intent applied by Reduce.
type Action interface {
	apply(models.PlanState) (models.PlanState, error)
}

// ToggleRace adds the race, or removes it if already selected.
type ToggleRace struct{ Race models.Race }

// RemoveRace drops a selected race by id.
type RemoveRace struct{ ID int }

// ReorderRaces replaces the selection order. Races must be a permutation
// of the current selection.
type ReorderRaces struct{ Races []models.SelectedRace }

// MoveRace splices the race at From into position To.
type MoveRace struct{ From, To int }

// ClearPlan empties the selection; filters are kept.
type ClearPlan struct{}

// SetFilters replaces the filters.
type SetFilters struct{ Filters models.Filters }

// ClearFilters resets every filter to "All".
type ClearFilters struct{}

// ReplaceState swaps in a whole state, e.g. one decoded from a share link.
type ReplaceState struct{ State models.PlanState }

// Reduce applies action to state and returns the next state. On error the
// input state is returned unchanged.
func Reduce(state models.PlanState, action Action) (models.PlanState, error) {
	if action == nil {
		return state, fmt.Errorf("reduce: nil action")
	}
	next, err := action.apply(state)
	if err != nil {
		return state, err
	}
	return next, nil
}

func (a ToggleRace) apply(s models.PlanState) (models.PlanState, error) {
	s.SelectedRaces = Plan(s.SelectedRaces).Toggle(a.Race)
	return s, nil
}

func (a RemoveRace) apply(s models.PlanState) (models.PlanState, error) {
	p, err := Plan(s.SelectedRaces).Remove(a.ID)
	if err != nil {
		return s, err
	}
	s.SelectedRaces = p
	return s, nil
}

func (a ReorderRaces) apply(s models.PlanState) (models.PlanState, error) {
	p, err := Plan(s.SelectedRaces).Reorder(a.Races)
	if err != nil {
		return s, err
	}
	s.SelectedRaces = p
	return s, nil
}

func (a MoveRace) apply(s models.PlanState) (models.PlanState, error) {
	p, err := Plan(s.SelectedRaces).MoveRace(a.From, a.To)
	if err != nil {
		return s, err
	}
	s.SelectedRaces = p
	return s, nil
}

func (ClearPlan) apply(s models.PlanState) (models.PlanState, error) {
	s.SelectedRaces = Plan(s.SelectedRaces).Clear()
	return s, nil
}

func (a SetFilters) apply(s models.PlanState) (models.PlanState, error) {
	s.Filters = a.Filters
	return s, nil
}

func (ClearFilters) apply(s models.PlanState) (models.PlanState, error) {
	s.Filters = DefaultFilters()
	return s, nil
}

func (a ReplaceState) apply(models.PlanState) (models.PlanState, error) {
	next := a.State
	p, err := FromSequence(next.SelectedRaces)
	if err != nil {
		return next, err
	}
	next.SelectedRaces = p
	return next, nil
}
