// Package planner holds the race planning core: filtering, timeline
// grouping, plan editing, conflict detection and the plan codec. Everything
// here is pure except Service, which adds storage and notifications.
package planner

import (
	"strings"

	"github.com/padraicbc/umaplan/models"
)

// DistanceBucket is a named distance range used by the distance filter.
type DistanceBucket string

const (
	DistanceSprint DistanceBucket = "Sprint"
	DistanceMile   DistanceBucket = "Mile"
	DistanceMiddle DistanceBucket = "Middle"
	DistanceLong   DistanceBucket = "Long"
)

// DistanceBuckets lists the buckets in ascending order.
var DistanceBuckets = []DistanceBucket{DistanceSprint, DistanceMile, DistanceMiddle, DistanceLong}

// Label is the long form shown in filter pickers.
func (b DistanceBucket) Label() string {
	switch b {
	case DistanceSprint:
		return "Sprint (1000-1400m)"
	case DistanceMile:
		return "Mile (1500-1700m)"
	case DistanceMiddle:
		return "Middle (1800-2200m)"
	case DistanceLong:
		return "Long (2300m+)"
	}
	return string(b)
}

// Contains reports whether distance (meters) falls in the bucket. Bounds are
// inclusive. 1401-1499, 1701-1799 and 2201-2299 belong to no bucket.
func (b DistanceBucket) Contains(distance int) bool {
	switch b {
	case DistanceSprint:
		return distance <= 1400
	case DistanceMile:
		return distance >= 1500 && distance <= 1700
	case DistanceMiddle:
		return distance >= 1800 && distance <= 2200
	case DistanceLong:
		return distance >= 2300
	}
	return false
}

// ParseDistanceBucket accepts a bucket name or its long label.
func ParseDistanceBucket(s string) (DistanceBucket, bool) {
	for _, b := range DistanceBuckets {
		if s == string(b) || s == b.Label() {
			return b, true
		}
	}
	return "", false
}

// DefaultFilters returns filters that match every race.
func DefaultFilters() models.Filters {
	return models.Filters{
		Grade:       models.All,
		Track:       models.All,
		CareerPhase: models.All,
		Distance:    models.All,
	}
}

// IsActive reports whether any field narrows the catalog.
func IsActive(f models.Filters) bool {
	return f.SearchTerm != "" ||
		!isAll(f.Grade) ||
		!isAll(f.Track) ||
		!isAll(f.CareerPhase) ||
		!isAll(f.Distance)
}

// Matches reports whether race passes every filter field.
//
// Pure function: no I/O, no allocation beyond lower-casing the search term.
func Matches(race models.Race, f models.Filters) bool {
	return matchesSearch(race, f.SearchTerm) &&
		matchesGrade(race, f.Grade) &&
		(isAll(f.Track) || string(race.Track) == f.Track) &&
		(isAll(f.CareerPhase) || string(race.CareerPhase) == f.CareerPhase) &&
		matchesDistance(race, f.Distance)
}

// FilterRaces returns the races that match f, in catalog order.
func FilterRaces(races []models.Race, f models.Filters) []models.Race {
	out := make([]models.Race, 0, len(races))
	for _, r := range races {
		if Matches(r, f) {
			out = append(out, r)
		}
	}
	return out
}

// isAll treats an empty field like "All" so zero-value Filters match everything.
func isAll(v string) bool {
	return v == "" || v == models.All
}

func matchesSearch(race models.Race, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(race.Name), strings.ToLower(term))
}

func matchesGrade(race models.Race, grade string) bool {
	if isAll(grade) {
		return true
	}
	if models.Grade(grade) == models.GradeListed {
		return race.Grade == models.GradePreOP || race.Grade == models.GradeListed
	}
	return string(race.Grade) == grade
}

func matchesDistance(race models.Race, distance string) bool {
	if isAll(distance) {
		return true
	}
	b, ok := ParseDistanceBucket(distance)
	if !ok {
		// unknown bucket names do not filter
		return true
	}
	return b.Contains(race.Distance)
}
