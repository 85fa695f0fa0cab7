package models

// Grade is the race class shown on the calendar.
type Grade string

const (
	GradeG1     Grade = "G1"
	GradeG2     Grade = "G2"
	GradeG3     Grade = "G3"
	GradeOP     Grade = "OP"
	GradePreOP  Grade = "Pre-OP"
	GradeMaiden Grade = "Maiden"
	GradeDebut  Grade = "Debut"
)

// GradeListed is the older name for Pre-OP still sent by some clients.
const GradeListed Grade = "Listed"

// Track is the racing surface.
type Track string

const (
	TrackTurf Track = "Turf"
	TrackDirt Track = "Dirt"
)

// Direction is the way the course turns.
type Direction string

const (
	DirectionRight      Direction = "Right"
	DirectionLeft       Direction = "Left"
	DirectionRightOuter Direction = "Right (Outer)"
	DirectionStraight   Direction = "Straight"
)

// Half splits a month into two scheduling windows.
type Half string

const (
	HalfEarly Half = "Early"
	HalfLate  Half = "Late"
)

// CareerPhase is one of the three career years a plan spans.
type CareerPhase string

const (
	PhaseJunior  CareerPhase = "Junior"
	PhaseClassic CareerPhase = "Classic"
	PhaseSenior  CareerPhase = "Senior"
)

// CareerPhases lists the phases in calendar order.
var CareerPhases = []CareerPhase{PhaseJunior, PhaseClassic, PhaseSenior}

// Halves lists the halves in calendar order.
var Halves = []Half{HalfEarly, HalfLate}

// Rank returns the position of the phase in the career, or -1 if unknown.
func (p CareerPhase) Rank() int {
	switch p {
	case PhaseJunior:
		return 0
	case PhaseClassic:
		return 1
	case PhaseSenior:
		return 2
	}
	return -1
}

// Rank returns 0 for Early, 1 for Late and -1 otherwise.
func (h Half) Rank() int {
	switch h {
	case HalfEarly:
		return 0
	case HalfLate:
		return 1
	}
	return -1
}

// MonthNames maps month numbers (1-12) to display names.
var MonthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English month name, or "" when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}

// Race is a single catalog entry. Races are loaded once and never mutated.
type Race struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	NameJP      string      `json:"name_jp,omitempty"`
	NameEN      string      `json:"name_en,omitempty"`
	NameKO      string      `json:"name_ko,omitempty"`
	NameTW      string      `json:"name_tw,omitempty"`
	Grade       Grade       `json:"grade"`
	Distance    int         `json:"distance"`
	Direction   Direction   `json:"direction,omitempty"`
	Track       Track       `json:"track"`
	Month       int         `json:"month"`
	Half        Half        `json:"half"`
	CareerPhase CareerPhase `json:"careerPhase"`
	Location    string      `json:"location,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// Catalog is the on-disk shape of races.json.
type Catalog struct {
	Races []Race `json:"races"`
}
