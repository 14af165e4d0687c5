package engine

import (
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"cardiocheck/internal/model"
)

func intPtr(v int) *int { return &v }

func TestNormalizeQuickModeScenario(t *testing.T) {
	// Quick-mode raw input plus a successful extraction that set chol
	raw := model.RawFormInput{Age: "55", Sex: "1", Chol: "250"}
	got := Normalize(raw, model.ModeQuick)

	want := model.CanonicalInput{
		Age: 55, Sex: 1, CP: 0, Trestbps: 120, Chol: 250,
		FBS: 0, Restecg: 0, Thalach: 150, Exang: intPtr(0),
		Oldpeak: 0, Slope: 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("quick-mode normalize mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestNormalizeFBSDerivation(t *testing.T) {
	tests := []struct {
		name string
		raw  model.RawFormInput
		want int
	}{
		{"type2 derives 1", model.RawFormInput{DiabetesType: "type2"}, 1},
		{"type1 derives 1", model.RawFormInput{DiabetesType: "type1"}, 1},
		{"prediabetes derives 1", model.RawFormInput{DiabetesType: "prediabetes"}, 1},
		{"no derives 0", model.RawFormInput{DiabetesType: "no"}, 0},
		{"explicit value wins over diabetes type", model.RawFormInput{FBS: "0", DiabetesType: "type2"}, 0},
		{"explicit 1 wins", model.RawFormInput{FBS: "1", DiabetesType: "no"}, 1},
		{"nothing set defaults 0", model.RawFormInput{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, model.ModeFull)
			if got.FBS != tt.want {
				t.Errorf("fbs = %d, want %d", got.FBS, tt.want)
			}
		})
	}
}

func TestNormalizeDegradesToDefaults(t *testing.T) {
	raw := model.RawFormInput{
		Age:      "not a number",
		Sex:      "maybe",
		Trestbps: "140 mmHg", // leading number wins
		Oldpeak:  "1.5x",
		Thalach:  "",
	}
	got := Normalize(raw, model.ModeFull)
	if got.Age != 0 {
		t.Errorf("unparsable age should degrade to 0, got %d", got.Age)
	}
	if got.Sex != 0 {
		t.Errorf("non-\"1\" sex token should be 0, got %d", got.Sex)
	}
	if got.Trestbps != 140 {
		t.Errorf("leading integer of \"140 mmHg\" should parse to 140, got %d", got.Trestbps)
	}
	if got.Oldpeak != 1.5 {
		t.Errorf("leading float of \"1.5x\" should parse to 1.5, got %f", got.Oldpeak)
	}
	if got.Thalach != 0 {
		t.Errorf("empty thalach should default to 0, got %d", got.Thalach)
	}
}

func TestNormalizeExangNullability(t *testing.T) {
	got := Normalize(model.RawFormInput{}, model.ModeFull)
	if got.Exang != nil {
		t.Errorf("absent exang in full mode must stay nil, got %d", *got.Exang)
	}
	got = Normalize(model.RawFormInput{Exang: "1"}, model.ModeFull)
	if got.Exang == nil || *got.Exang != 1 {
		t.Error("exang \"1\" should normalize to 1")
	}
	got = Normalize(model.RawFormInput{Exang: "0"}, model.ModeFull)
	if got.Exang == nil || *got.Exang != 0 {
		t.Error("exang \"0\" should normalize to 0")
	}
	got = Normalize(model.RawFormInput{}, model.ModeQuick)
	if got.Exang == nil || *got.Exang != 0 {
		t.Error("quick mode should default exang to 0, not nil")
	}
}

func TestNormalizeQualitativeTiers(t *testing.T) {
	raw := model.RawFormInput{
		Smoking:     "current",
		DietQuality: "poor",
		StressLevel: "high",
		SleepHours:  "6.5",
		SleepApnea:  "1",
	}
	got := Normalize(raw, model.ModeFull)
	if got.Smoking == nil || *got.Smoking != 2 {
		t.Error("smoking \"current\" should map to tier 2")
	}
	if got.DietQuality == nil || *got.DietQuality != 0 {
		t.Error("diet \"poor\" should map to tier 0")
	}
	if got.StressLevel == nil || *got.StressLevel != 2 {
		t.Error("stress \"high\" should map to tier 2")
	}
	if got.SleepHours == nil || *got.SleepHours != 6.5 {
		t.Error("sleep hours should parse to 6.5")
	}
	if got.SleepApnea == nil || *got.SleepApnea != 1 {
		t.Error("sleep apnea \"1\" should map to 1")
	}
	// Absent extension fields stay nil
	empty := Normalize(model.RawFormInput{}, model.ModeFull)
	if empty.Smoking != nil || empty.DietQuality != nil || empty.SleepHours != nil {
		t.Error("absent extension fields must stay nil")
	}
}

// rawFromCanonical re-serializes a canonical vector back into form strings
func rawFromCanonical(in model.CanonicalInput) model.RawFormInput {
	raw := model.RawFormInput{
		Age:      strconv.Itoa(in.Age),
		Sex:      strconv.Itoa(in.Sex),
		CP:       strconv.Itoa(in.CP),
		Trestbps: strconv.Itoa(in.Trestbps),
		Chol:     strconv.Itoa(in.Chol),
		FBS:      strconv.Itoa(in.FBS),
		Restecg:  strconv.Itoa(in.Restecg),
		Thalach:  strconv.Itoa(in.Thalach),
		Oldpeak:  fmt.Sprintf("%g", in.Oldpeak),
		Slope:    strconv.Itoa(in.Slope),
	}
	if in.Exang != nil {
		raw.Exang = strconv.Itoa(*in.Exang)
	}
	return raw
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []model.RawFormInput{
		{Age: "55", Sex: "1", CP: "0", Trestbps: "145", Chol: "250", FBS: "1",
			Restecg: "1", Thalach: "130", Exang: "1", Oldpeak: "2.3", Slope: "2"},
		{Age: "40", Sex: "0", CP: "3", Trestbps: "118", Chol: "180",
			Restecg: "0", Thalach: "170", Oldpeak: "0", Slope: "0"},
		{Age: "63", Sex: "1", DiabetesType: "type2", CP: "2", Trestbps: "160",
			Chol: "310", Restecg: "2", Thalach: "95", Exang: "0", Oldpeak: "-0.4", Slope: "1"},
	}
	for i, raw := range inputs {
		first := Normalize(raw, model.ModeFull)
		second := Normalize(rawFromCanonical(first), model.ModeFull)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("case %d: normalize is not idempotent:\n first %+v\nsecond %+v", i, first, second)
		}
	}
}
