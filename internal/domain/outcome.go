package domain

// Terminal outcome tags besides the echoed command tags.
const (
	OutcomeLowConfidence  = "LOW_CONFIDENCE"
	OutcomeUnknownCommand = "UNKNOWN_COMMAND"
	OutcomeNotFound       = "NOT_FOUND"
	OutcomeError          = "ERROR"
)

// Outcome is the only value the command core returns to the caller. A
// request either fully succeeds (Command echoes the resolved tag) or
// carries a terminal status tag; no partial-success state exists.
type Outcome struct {
	Command     string      `json:"command"`
	DisplayText string      `json:"displayText"`
	Data        interface{} `json:"data,omitempty"`
	IsEmergency bool        `json:"isEmergency,omitempty"`
}
