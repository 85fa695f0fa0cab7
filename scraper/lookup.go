package scraper

import (
	"fmt"

	"github.com/padraicbc/umaplan/models"
)

// Lookup tables for the numeric codes used by the source site.

var gradeCodes = map[int]models.Grade{
	100: models.GradeG1,
	200: models.GradeG2,
	300: models.GradeG3,
	400: models.GradeOP,
	700: models.GradePreOP,
	800: models.GradeMaiden,
	900: models.GradeDebut,
}

var terrainCodes = map[int]models.Track{
	1: models.TrackTurf,
	2: models.TrackDirt,
}

var directionCodes = map[int]models.Direction{
	1: models.DirectionRight,
	2: models.DirectionLeft,
	3: models.DirectionRightOuter,
	4: models.DirectionStraight,
}

var halfCodes = map[int]models.Half{
	1: models.HalfEarly,
	2: models.HalfLate,
}

var yearCodes = map[int]models.CareerPhase{
	1: models.PhaseJunior,
	2: models.PhaseClassic,
	3: models.PhaseSenior,
}

var trackCodes = map[int]string{
	10001: "Sapporo",
	10002: "Hakodate",
	10003: "Niigata",
	10004: "Fukushima",
	10005: "Nakayama",
	10006: "Tokyo",
	10007: "Chukyo",
	10008: "Kyoto",
	10009: "Hanshin",
	10010: "Kokura",
	10101: "Oi",
	10103: "Kawasaki",
	10104: "Funabashi",
	10105: "Morioka",
	10201: "Longchamp",
}

// unknown is the placeholder kept for a code missing from a table.
func unknown(code int) string {
	return fmt.Sprintf("Unknown (%d)", code)
}

// lookup maps code through table, degrading to "Unknown (<code>)". The
// second result reports whether the code was known.
func lookup[T ~string](table map[int]T, code int) (T, bool) {
	if v, ok := table[code]; ok {
		return v, true
	}
	return T(unknown(code)), false
}
