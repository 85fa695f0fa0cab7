package planner

import (
	"fmt"
	"sort"

	"github.com/padraicbc/umaplan/models"
)

// Conflict is a time slot holding more than one selected race.
type Conflict struct {
	Slot  TimeSlot              `json:"slot"`
	Races []models.SelectedRace `json:"races"`
}

// Summary renders e.g. "2 races in Classic April Late".
func (c Conflict) Summary() string {
	return fmt.Sprintf("%d races in %s", len(c.Races), c.Slot.Label())
}

// DetectConflicts groups the plan by time slot and keeps the groups with
// two or more races. Groups come back in calendar order; races keep plan order.
func DetectConflicts(p Plan) []Conflict {
	bySlot := make(map[TimeSlot][]models.SelectedRace)
	for _, sr := range p {
		s := SlotOf(sr.Race)
		bySlot[s] = append(bySlot[s], sr)
	}

	conflicts := make([]Conflict, 0)
	for s, rs := range bySlot {
		if len(rs) > 1 {
			conflicts = append(conflicts, Conflict{Slot: s, Races: rs})
		}
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return CompareSlots(conflicts[i].Slot, conflicts[j].Slot) < 0
	})
	return conflicts
}

// HasConflict reports whether race would share a slot with a race already
// in the plan other than itself.
func HasConflict(p Plan, race models.Race) bool {
	s := SlotOf(race)
	for _, sr := range p {
		if sr.ID != race.ID && SlotOf(sr.Race) == s {
			return true
		}
	}
	return false
}
