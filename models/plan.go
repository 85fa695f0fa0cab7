package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// All disables a filter field.
const All = "All"

// SelectedRace is a race placed in a plan at a 1-based position.
type SelectedRace struct {
	Race
	SequenceNumber int `json:"sequenceNumber"`
}

// Filters narrows the catalog. Every field is independent; "All" (or an
// empty search term) switches that field off.
type Filters struct {
	SearchTerm  string `json:"searchTerm"`
	Grade       string `json:"grade"`
	Track       string `json:"track"`
	CareerPhase string `json:"careerPhase"`
	Distance    string `json:"distance"`
}

// PlanState is the unit of persistence and sharing.
type PlanState struct {
	SelectedRaces []SelectedRace `json:"selectedRaces"`
	Filters       Filters        `json:"filters"`
}

// PlanRecord is one row of the key-value table backing stored plans.
type PlanRecord struct {
	bun.BaseModel `bun:"table:plan_states,alias:ps"`

	Key       string          `bun:"plan_key,pk" json:"key"`
	State     json.RawMessage `bun:"state,notnull,type:jsonb" json:"state"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
