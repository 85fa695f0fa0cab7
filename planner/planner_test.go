package planner

import (
	"testing"

	"github.com/padraicbc/umaplan/models"
)

func race(id int, name string, grade models.Grade, distance int, track models.Track, phase models.CareerPhase, month int, half models.Half) models.Race {
	return models.Race{
		ID:          id,
		Name:        name,
		Grade:       grade,
		Distance:    distance,
		Track:       track,
		CareerPhase: phase,
		Month:       month,
		Half:        half,
	}
}

var (
	raceA = race(1, "Satsuki Sho", models.GradeG1, 2000, models.TrackTurf, models.PhaseClassic, 4, models.HalfLate)
	raceB = race(2, "Tenno Sho (Spring)", models.GradeG1, 3200, models.TrackTurf, models.PhaseClassic, 4, models.HalfLate)
	raceC = race(3, "Arima Kinen", models.GradeG1, 2500, models.TrackTurf, models.PhaseSenior, 12, models.HalfLate)
)

func ids(p []models.SelectedRace) []int {
	out := make([]int, len(p))
	for i, sr := range p {
		out[i] = sr.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkSequence(t *testing.T, p []models.SelectedRace) {
	t.Helper()
	for i, sr := range p {
		if sr.SequenceNumber != i+1 {
			t.Fatalf("race %d at index %d has sequence %d", sr.ID, i, sr.SequenceNumber)
		}
	}
}
