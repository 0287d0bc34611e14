// Package domain holds the per item analysis state contracts
package domain

// State is the per item analysis lifecycle state
type State string

// Lifecycle states. Absent entries are Idle
const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Affordance is the rendering contract derived from state alone.
// Message carries the failure text when the state is Error
type Affordance struct {
	Label   string `json:"label"`
	Detail  string `json:"detail,omitempty"`
	Spinner bool   `json:"spinner"`
	Retry   bool   `json:"retry"`
}

// Affordance display text, French per product contract
const (
	LabelIdle    = "Analyser avec InfoVerif"
	LabelLoading = "Analyse en cours..."
	LabelSuccess = "✓ Analyse demandée"
	LabelError   = "✗ Erreur"

	DetailSuccess = "Le panneau va s'ouvrir"
)

// AffordanceFor maps a state to its rendering. It is a pure function so
// display behavior is assertable from state alone.
// For Error states message overrides the default label when present
func AffordanceFor(s State, message string) Affordance {
	switch s {
	case StateLoading:
		return Affordance{Label: LabelLoading, Spinner: true}
	case StateSuccess:
		return Affordance{Label: LabelSuccess, Detail: DetailSuccess}
	case StateError:
		label := LabelError
		if message != "" {
			label = "✗ " + message
		}
		return Affordance{Label: label, Retry: true}
	default:
		return Affordance{Label: LabelIdle}
	}
}
