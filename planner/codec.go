package planner

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/padraicbc/umaplan/models"
)

// ShareParam is the query parameter carrying a share token.
const ShareParam = "plan"

// DeserializationError wraps a failure to decode stored or shared state.
type DeserializationError struct {
	Source string
	Err    error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// DefaultPlanState is an empty plan with default filters.
func DefaultPlanState() models.PlanState {
	return models.PlanState{
		SelectedRaces: []models.SelectedRace{},
		Filters:       DefaultFilters(),
	}
}

// Save serializes state to JSON. selectedRaces is always an array.
func Save(state models.PlanState) (string, error) {
	if state.SelectedRaces == nil {
		state.SelectedRaces = []models.SelectedRace{}
	}
	b, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("encode plan state: %w", err)
	}
	return string(b), nil
}

// Load parses a stored state. On malformed input it returns
// DefaultPlanState together with a *DeserializationError.
func Load(s string) (models.PlanState, error) {
	return decode("stored plan", []byte(s))
}

// EncodeShare turns state into a URL-safe token.
func EncodeShare(state models.PlanState) (string, error) {
	s, err := Save(state)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString([]byte(s)), nil
}

// DecodeShare is the inverse of EncodeShare with the same fallback as Load.
// Padded and standard-alphabet tokens are accepted too.
func DecodeShare(token string) (models.PlanState, error) {
	raw, err := decodeBase64(token)
	if err != nil {
		return DefaultPlanState(), &DeserializationError{Source: "share token", Err: err}
	}
	return decode("share token", raw)
}

// ShareURL sets the share parameter on base, keeping any other query values.
func ShareURL(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	q := u.Query()
	q.Set(ShareParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func decode(source string, b []byte) (models.PlanState, error) {
	var state models.PlanState
	if err := json.Unmarshal(b, &state); err != nil {
		return DefaultPlanState(), &DeserializationError{Source: source, Err: err}
	}
	if state.SelectedRaces == nil {
		state.SelectedRaces = []models.SelectedRace{}
	}
	return state, nil
}

func decodeBase64(token string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.StdEncoding,
		base64.RawStdEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		b, err := enc.DecodeString(token)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
