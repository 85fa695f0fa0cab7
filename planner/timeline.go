package planner

import (
	"fmt"
	"sort"

	"github.com/padraicbc/umaplan/models"
)

// TimeSlot is the atomic cell of the career calendar.
type TimeSlot struct {
	CareerPhase models.CareerPhase `json:"careerPhase"`
	Month       int                `json:"month"`
	Half        models.Half        `json:"half"`
}

// SlotOf returns the slot a race runs in.
func SlotOf(r models.Race) TimeSlot {
	return TimeSlot{CareerPhase: r.CareerPhase, Month: r.Month, Half: r.Half}
}

// Key is a stable string form, e.g. "Classic-4-Late".
func (s TimeSlot) Key() string {
	return fmt.Sprintf("%s-%d-%s", s.CareerPhase, s.Month, s.Half)
}

// Label is the display form, e.g. "Classic April Late".
func (s TimeSlot) Label() string {
	return fmt.Sprintf("%s %s %s", s.CareerPhase, models.MonthName(s.Month), s.Half)
}

// PreDebut reports whether the slot falls before the Junior debut window
// (Junior January through Junior July Early).
func (s TimeSlot) PreDebut() bool {
	if s.CareerPhase != models.PhaseJunior {
		return false
	}
	return s.Month < 7 || (s.Month == 7 && s.Half == models.HalfEarly)
}

// CompareSlots orders slots by career phase, then month, then half.
// It returns a negative number when a sorts before b.
func CompareSlots(a, b TimeSlot) int {
	if a.CareerPhase != b.CareerPhase {
		return a.CareerPhase.Rank() - b.CareerPhase.Rank()
	}
	if a.Month != b.Month {
		return a.Month - b.Month
	}
	return a.Half.Rank() - b.Half.Rank()
}

// SlotGroup is one calendar cell and the races in it.
type SlotGroup struct {
	TimeSlot
	Races []models.Race `json:"races"`
}

// TimelineOptions tunes the full-calendar enumeration.
type TimelineOptions struct {
	// IncludePreDebutSlots emits all 72 slots instead of the 66-slot
	// calendar that starts at Junior July Late.
	IncludePreDebutSlots bool
}

// AllSlots enumerates the calendar in order.
func AllSlots(opts TimelineOptions) []TimeSlot {
	slots := make([]TimeSlot, 0, len(models.CareerPhases)*12*len(models.Halves))
	for _, phase := range models.CareerPhases {
		for month := 1; month <= 12; month++ {
			for _, half := range models.Halves {
				s := TimeSlot{CareerPhase: phase, Month: month, Half: half}
				if !opts.IncludePreDebutSlots && s.PreDebut() {
					continue
				}
				slots = append(slots, s)
			}
		}
	}
	return slots
}

// GroupByTimeSlot buckets the races passing f into time slots.
//
// With active filters only non-empty slots are returned. Otherwise every
// calendar slot is returned, empty ones included, so the calendar renders
// uniformly. A race sitting in a slot the calendar skips still gets its slot.
func GroupByTimeSlot(races []models.Race, f models.Filters, opts TimelineOptions) []SlotGroup {
	matched := FilterRaces(races, f)

	byKey := make(map[TimeSlot][]models.Race)
	for _, r := range matched {
		s := SlotOf(r)
		byKey[s] = append(byKey[s], r)
	}

	var groups []SlotGroup
	if IsActive(f) {
		groups = make([]SlotGroup, 0, len(byKey))
		for s, rs := range byKey {
			groups = append(groups, SlotGroup{TimeSlot: s, Races: rs})
		}
	} else {
		slots := AllSlots(opts)
		groups = make([]SlotGroup, 0, len(slots))
		for _, s := range slots {
			rs := byKey[s]
			if rs == nil {
				rs = []models.Race{}
			}
			groups = append(groups, SlotGroup{TimeSlot: s, Races: rs})
			delete(byKey, s)
		}
		for s, rs := range byKey {
			groups = append(groups, SlotGroup{TimeSlot: s, Races: rs})
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		return CompareSlots(groups[i].TimeSlot, groups[j].TimeSlot) < 0
	})
	return groups
}
