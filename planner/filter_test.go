package planner

import (
	"testing"

	"github.com/padraicbc/umaplan/models"
)

func TestDefaultFiltersMatchEverything(t *testing.T) {
	races := []models.Race{
		raceA, raceB, raceC,
		race(9, "Odd", models.Grade("Weird"), 1450, models.TrackDirt, models.PhaseJunior, 1, models.HalfEarly),
	}
	got := FilterRaces(races, DefaultFilters())
	if len(got) != len(races) {
		t.Fatalf("expected %d races, got %d", len(races), len(got))
	}
	if got := FilterRaces(races, models.Filters{}); len(got) != len(races) {
		t.Fatalf("zero filters: expected %d races, got %d", len(races), len(got))
	}
	if IsActive(DefaultFilters()) {
		t.Fatal("default filters reported active")
	}
}

func TestMatchesFields(t *testing.T) {
	dirt := race(10, "February Stakes", models.GradeG1, 1600, models.TrackDirt, models.PhaseSenior, 2, models.HalfLate)

	tests := []struct {
		name string
		f    func(*models.Filters)
		r    models.Race
		want bool
	}{
		{"search case-insensitive", func(f *models.Filters) { f.SearchTerm = "ARIMA" }, raceC, true},
		{"search miss", func(f *models.Filters) { f.SearchTerm = "derby" }, raceC, false},
		{"grade hit", func(f *models.Filters) { f.Grade = "G1" }, raceA, true},
		{"grade miss", func(f *models.Filters) { f.Grade = "G2" }, raceA, false},
		{"track", func(f *models.Filters) { f.Track = "Dirt" }, dirt, true},
		{"track miss", func(f *models.Filters) { f.Track = "Dirt" }, raceA, false},
		{"phase", func(f *models.Filters) { f.CareerPhase = "Senior" }, raceC, true},
		{"phase miss", func(f *models.Filters) { f.CareerPhase = "Junior" }, raceC, false},
		{"mile", func(f *models.Filters) { f.Distance = "Mile" }, dirt, true},
		{"long", func(f *models.Filters) { f.Distance = "Long" }, raceC, true},
		{"long label", func(f *models.Filters) { f.Distance = "Long (2300m+)" }, raceC, true},
		{"unknown bucket matches", func(f *models.Filters) { f.Distance = "Marathon" }, raceA, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilters()
			tt.f(&f)
			if got := Matches(tt.r, f); got != tt.want {
				t.Fatalf("Matches = %v, want %v", got, tt.want)
			}
			if !IsActive(f) {
				t.Fatal("expected filters to be active")
			}
		})
	}
}

func TestListedMatchesPreOP(t *testing.T) {
	r := race(20, "Wakaba", models.GradePreOP, 2000, models.TrackTurf, models.PhaseClassic, 3, models.HalfLate)
	f := DefaultFilters()
	f.Grade = "Listed"
	if !Matches(r, f) {
		t.Fatal("Listed should match Pre-OP")
	}
}

func TestDistanceBucketBounds(t *testing.T) {
	tests := []struct {
		distance int
		want     DistanceBucket
	}{
		{1000, DistanceSprint},
		{1400, DistanceSprint},
		{1450, ""},
		{1500, DistanceMile},
		{1700, DistanceMile},
		{1750, ""},
		{1800, DistanceMiddle},
		{2200, DistanceMiddle},
		{2250, ""},
		{2300, DistanceLong},
		{3600, DistanceLong},
	}
	for _, tt := range tests {
		var got DistanceBucket
		for _, b := range DistanceBuckets {
			if b.Contains(tt.distance) {
				if got != "" {
					t.Fatalf("%dm in both %s and %s", tt.distance, got, b)
				}
				got = b
			}
		}
		if got != tt.want {
			t.Fatalf("%dm: got bucket %q, want %q", tt.distance, got, tt.want)
		}
	}
}
