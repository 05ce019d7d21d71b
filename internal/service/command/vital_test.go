package command

import (
	"testing"

	"github.com/carewear/carevoice/internal/domain"
)

func TestApplyVital_Temperature(t *testing.T) {
	rec := &domain.VitalSign{}
	placeholderVital("36.5度", rec)

	if !applyVital("temperature", "36.5度", rec) {
		t.Fatal("expected temperature to be supported")
	}
	if rec.Temperature == nil || *rec.Temperature != 36.5 {
		t.Errorf("expected 36.5, got %v", rec.Temperature)
	}
}

func TestApplyVital_TemperatureJapaneseAlias(t *testing.T) {
	rec := &domain.VitalSign{}
	placeholderVital("37.2℃", rec)

	if !applyVital("体温", "37.2℃", rec) {
		t.Fatal("expected 体温 to be supported")
	}
	if rec.Temperature == nil || *rec.Temperature != 37.2 {
		t.Errorf("expected 37.2, got %v", rec.Temperature)
	}
}

func TestApplyVital_BloodPressure_Hyphen(t *testing.T) {
	rec := &domain.VitalSign{}
	placeholderVital("120-80", rec)

	if !applyVital("bloodpressure", "120-80", rec) {
		t.Fatal("expected bloodpressure to be supported")
	}
	if *rec.BloodPressureSystolic != 120 {
		t.Errorf("expected systolic 120, got %d", *rec.BloodPressureSystolic)
	}
	if *rec.BloodPressureDiastolic != 80 {
		t.Errorf("expected diastolic 80, got %d", *rec.BloodPressureDiastolic)
	}
}

func TestApplyVital_BloodPressure_Slash(t *testing.T) {
	rec := &domain.VitalSign{}
	placeholderVital("120/80", rec)

	if !applyVital("血圧", "120/80", rec) {
		t.Fatal("expected 血圧 to be supported")
	}
	if *rec.BloodPressureSystolic != 120 || *rec.BloodPressureDiastolic != 80 {
		t.Errorf("expected 120/80, got %d/%d", *rec.BloodPressureSystolic, *rec.BloodPressureDiastolic)
	}
}

func TestApplyVital_BloodPressure_MalformedKeepsPlaceholder(t *testing.T) {
	// "120" has no separator: the split produces one part, so the
	// pre-filled placeholder values survive untouched.
	rec := &domain.VitalSign{}
	placeholderVital("120", rec)

	if !applyVital("bloodpressure", "120", rec) {
		t.Fatal("expected bloodpressure to be supported")
	}
	if *rec.BloodPressureSystolic != 120 {
		t.Errorf("expected placeholder systolic 120, got %d", *rec.BloodPressureSystolic)
	}
	if *rec.BloodPressureDiastolic != 120 {
		t.Errorf("expected placeholder diastolic 120, got %d", *rec.BloodPressureDiastolic)
	}
}

func TestApplyVital_HeartRate(t *testing.T) {
	for _, alias := range []string{"heartrate", "脈拍", "心拍数"} {
		rec := &domain.VitalSign{}
		placeholderVital("72拍/分", rec)

		if !applyVital(alias, "72拍/分", rec) {
			t.Fatalf("expected %s to be supported", alias)
		}
		if rec.HeartRate == nil || *rec.HeartRate != 72 {
			t.Errorf("%s: expected 72, got %v", alias, rec.HeartRate)
		}
	}
}

func TestApplyVital_HeartRate_BPMGlyph(t *testing.T) {
	rec := &domain.VitalSign{}
	placeholderVital("68bpm", rec)

	if !applyVital("heartrate", "68bpm", rec) {
		t.Fatal("expected heartrate to be supported")
	}
	if *rec.HeartRate != 68 {
		t.Errorf("expected 68, got %d", *rec.HeartRate)
	}
}

func TestApplyVital_SpO2(t *testing.T) {
	rec := &domain.VitalSign{}
	placeholderVital("98%", rec)

	if !applyVital("spo2", "98%", rec) {
		t.Fatal("expected spo2 to be supported")
	}
	if rec.SpO2 == nil || *rec.SpO2 != 98 {
		t.Errorf("expected 98, got %v", rec.SpO2)
	}
}

func TestApplyVital_RespiratoryRate(t *testing.T) {
	rec := &domain.VitalSign{}
	placeholderVital("18回/分", rec)

	if !applyVital("呼吸数", "18回/分", rec) {
		t.Fatal("expected 呼吸数 to be supported")
	}
	if rec.RespiratoryRate == nil || *rec.RespiratoryRate != 18 {
		t.Errorf("expected 18, got %v", rec.RespiratoryRate)
	}
}

func TestApplyVital_CaseInsensitive(t *testing.T) {
	rec := &domain.VitalSign{}
	placeholderVital("36.8", rec)

	if !applyVital("Temperature", "36.8", rec) {
		t.Fatal("expected mixed-case sub-type to be supported")
	}
	if *rec.Temperature != 36.8 {
		t.Errorf("expected 36.8, got %g", *rec.Temperature)
	}
}

func TestApplyVital_Unsupported(t *testing.T) {
	rec := &domain.VitalSign{}
	placeholderVital("60", rec)

	if applyVital("温度", "60", rec) {
		t.Error("expected 温度 to be unsupported")
	}
	if applyVital("weight", "60", rec) {
		t.Error("expected weight to be unsupported")
	}
}

func TestVitalDisplay(t *testing.T) {
	tests := []struct {
		vitalType string
		raw       string
		wantType  string
		wantValue string
	}{
		{"temperature", "36.5度", "体温", "36.5℃"},
		{"血圧", "135/85", "血圧", "135/85"},
		{"heartrate", "72bpm", "脈拍", "72bpm"},
		{"spo2", "98%", "SpO2", "98%"},
		{"respiratoryrate", "18回/分", "respiratoryrate", "18回/分"},
	}

	for _, tt := range tests {
		rec := &domain.VitalSign{}
		placeholderVital(tt.raw, rec)
		applyVital(tt.vitalType, tt.raw, rec)

		gotType, gotValue := vitalDisplay(tt.vitalType, tt.raw, rec)
		if gotType != tt.wantType {
			t.Errorf("%s: expected type display %q, got %q", tt.vitalType, tt.wantType, gotType)
		}
		if gotValue != tt.wantValue {
			t.Errorf("%s: expected value display %q, got %q", tt.vitalType, tt.wantValue, gotValue)
		}
	}
}

func TestLeadingNumberParsing(t *testing.T) {
	if got := leadingFloat("36.5度"); got != 36.5 {
		t.Errorf("expected 36.5, got %g", got)
	}
	if got := leadingFloat("abc"); got != 0 {
		t.Errorf("expected 0 for non-numeric input, got %g", got)
	}
	if got := leadingInt("120-80"); got != 120 {
		t.Errorf("expected 120, got %d", got)
	}
	if got := leadingInt(""); got != 0 {
		t.Errorf("expected 0 for empty input, got %d", got)
	}
}

func TestLocalizeMealType(t *testing.T) {
	tests := map[string]string{
		"breakfast": "朝食",
		"Lunch":     "昼食",
		"DINNER":    "夕食",
		"snack":     "間食",
		"brunch":    "brunch", // unknown tags pass through
	}
	for in, want := range tests {
		if got := localizeMealType(in); got != want {
			t.Errorf("localizeMealType(%q) = %q, want %q", in, got, want)
		}
	}
}
