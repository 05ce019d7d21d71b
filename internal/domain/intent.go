package domain

import (
	"fmt"
	"strconv"
)

// Command tags produced by the intent classifier.
const (
	CommandGetPatientInfo = "GET_PATIENT_INFO"
	CommandRecordVital    = "RECORD_VITAL"
	CommandRecordMeal     = "RECORD_MEAL"
	CommandRecordMedicine = "RECORD_MEDICINE"
	CommandCallStaff      = "CALL_STAFF"
	CommandEmergency      = "EMERGENCY"
	CommandUnknown        = "UNKNOWN"
)

// ConfidenceThreshold is the fixed gate below which an intent is rejected
// regardless of its command.
const ConfidenceThreshold = 0.7

// Intent is the classifier's structured guess at what the user asked for.
// The command tag is open-ended and the parameter bag is loosely typed:
// the model is free to emit a number where a handler expects text, so
// values are normalized through Param instead of at decode time.
type Intent struct {
	Command    string         `json:"command"`
	Parameters map[string]any `json:"parameters"`
	Confidence float64        `json:"confidence"`
}

// UnknownIntent is the sentinel returned when classification fails
// internally. It never reaches a handler: confidence 0 trips the gate.
func UnknownIntent() *Intent {
	return &Intent{
		Command:    CommandUnknown,
		Parameters: map[string]any{},
		Confidence: 0,
	}
}

// Param returns the named parameter rendered as text, or "" when absent.
// JSON numbers keep their shortest decimal form, so 8 stays "8".
func (i *Intent) Param(key string) string {
	v, ok := i.Parameters[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
