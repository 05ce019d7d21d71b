package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carewear/carevoice/internal/domain"
)

// applyVital normalizes a recognized vital value into the matching field
// of the record. The record's fields arrive pre-filled with a lenient
// parse of the raw value; only the matched sub-type overwrites its own
// field, so a malformed blood-pressure string (no separator, or more
// than one) keeps the placeholder values instead of erroring.
// Returns false when the sub-type is outside the supported set.
func applyVital(vitalType, raw string, rec *domain.VitalSign) bool {
	switch strings.ToLower(vitalType) {
	case "temperature", "体温":
		v := leadingFloat(stripGlyphs(raw, "度", "℃"))
		rec.Temperature = &v

	case "bloodpressure", "血圧":
		// "135-85" or "135/85"
		parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '-' || r == '/' })
		if len(parts) == 2 {
			sys := leadingInt(strings.TrimSpace(parts[0]))
			dia := leadingInt(strings.TrimSpace(parts[1]))
			rec.BloodPressureSystolic = &sys
			rec.BloodPressureDiastolic = &dia
		}

	case "heartrate", "脈拍", "心拍数":
		v := leadingInt(stripGlyphs(raw, "拍/分", "bpm"))
		rec.HeartRate = &v

	case "spo2", "酸素飽和度":
		v := leadingInt(stripGlyphs(raw, "%"))
		rec.SpO2 = &v

	case "respiratoryrate", "呼吸数":
		v := leadingInt(stripGlyphs(raw, "回/分"))
		rec.RespiratoryRate = &v

	default:
		return false
	}
	return true
}

// vitalDisplay renders the confirmation fragment for a recorded vital.
// Sub-types without a dedicated rendering keep the recognized tag and the
// raw value.
func vitalDisplay(vitalType, raw string, rec *domain.VitalSign) (string, string) {
	lower := strings.ToLower(vitalType)
	switch {
	case lower == "temperature" || vitalType == "体温":
		return "体温", fmt.Sprintf("%g℃", deref(rec.Temperature))
	case lower == "bloodpressure" || vitalType == "血圧":
		return "血圧", fmt.Sprintf("%d/%d", derefInt(rec.BloodPressureSystolic), derefInt(rec.BloodPressureDiastolic))
	case strings.Contains(lower, "heart") || strings.Contains(vitalType, "脈") || strings.Contains(vitalType, "心拍"):
		return "脈拍", fmt.Sprintf("%dbpm", derefInt(rec.HeartRate))
	case lower == "spo2" || strings.Contains(vitalType, "酸素"):
		return "SpO2", fmt.Sprintf("%d%%", derefInt(rec.SpO2))
	default:
		return vitalType, raw
	}
}

// placeholderVital pre-fills every measurement field with a lenient parse
// of the raw value, mirroring the recognizer's degraded-input behavior.
func placeholderVital(raw string, rec *domain.VitalSign) {
	f := leadingFloat(raw)
	n := leadingInt(raw)
	rec.Temperature = &f
	sys, dia, hr, spo2, rr := n, n, n, n, n
	rec.BloodPressureSystolic = &sys
	rec.BloodPressureDiastolic = &dia
	rec.HeartRate = &hr
	rec.SpO2 = &spo2
	rec.RespiratoryRate = &rr
}

func stripGlyphs(s string, glyphs ...string) string {
	for _, g := range glyphs {
		s = strings.ReplaceAll(s, g, "")
	}
	return strings.TrimSpace(s)
}

// leadingFloat parses the leading decimal number of s, returning 0 when
// none exists (lenient, prefix-based like the speech recognizer output).
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
