// Package engine holds the decision core of the intake pipeline: field
// normalization, step validation, risk classification, recommendations and
// feature impact scoring. Everything here is pure — no I/O, no clocks — so
// the threshold tables can be tested in isolation.
package engine

import (
	"strconv"
	"strings"

	"cardiocheck/internal/model"
)

// parseIntOr parses the longest leading integer of s, so "120 mmHg" reads as
// 120. Unparsable or empty input degrades to def; normalization never fails.
func parseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return def
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return def
	}
	return n
}

// parseFloatOr parses the longest leading decimal number of s, degrading to
// def on failure
func parseFloatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if i == start {
		return def
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return def
	}
	return f
}

// boolToken maps a form token to a 0/1 flag: "1" means yes, anything else no
func boolToken(s string) int {
	if strings.TrimSpace(s) == "1" {
		return 1
	}
	return 0
}

func optInt(s string) *int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n := parseIntOr(s, 0)
	return &n
}

func optFloat(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	f := parseFloatOr(s, 0)
	return &f
}

func optBool(s string) *int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	b := boolToken(s)
	return &b
}

// optTier maps a qualitative token to its tier, accepting either the word or
// an already-numeric value (which keeps normalization idempotent)
func optTier(s string, words map[string]int) *int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	if tier, ok := words[s]; ok {
		return &tier
	}
	n := parseIntOr(s, 0)
	return &n
}

var smokingTiers = map[string]int{"never": 0, "former": 1, "current": 2}
var dietTiers = map[string]int{"poor": 0, "average": 1, "good": 2}
var stressTiers = map[string]int{"low": 0, "moderate": 1, "high": 2}

// deriveFBS resolves the fasting blood sugar flag with the documented
// precedence: explicit form value (set by the user or by blood-report
// extraction) wins over the diabetes-type derivation, which wins over 0.
func deriveFBS(raw model.RawFormInput) int {
	if strings.TrimSpace(raw.FBS) != "" {
		return boolToken(raw.FBS)
	}
	dt := strings.ToLower(strings.TrimSpace(raw.DiabetesType))
	if dt != "" && dt != "no" {
		return 1
	}
	return 0
}

// Normalize converts raw form values into the canonical clinical vector.
// Parse failures degrade to defaults rather than erroring; strict validation
// is the step validator's job, run earlier in the pipeline. In quick mode the
// fields the UI does not collect are filled with clinically neutral
// placeholders so the vector is always total.
func Normalize(raw model.RawFormInput, mode model.AssessmentMode) model.CanonicalInput {
	in := model.CanonicalInput{
		Age:  parseIntOr(raw.Age, 0),
		Sex:  boolToken(raw.Sex),
		Chol: parseIntOr(raw.Chol, 0),
		FBS:  deriveFBS(raw),
	}

	if mode == model.ModeQuick {
		zero := 0
		in.CP = 0
		in.Trestbps = 120
		in.Thalach = 150
		in.Restecg = 0
		in.Exang = &zero
		in.Oldpeak = 0
		in.Slope = 1
	} else {
		in.CP = parseIntOr(raw.CP, 0)
		in.Trestbps = parseIntOr(raw.Trestbps, 0)
		in.Thalach = parseIntOr(raw.Thalach, 0)
		in.Restecg = parseIntOr(raw.Restecg, 0)
		in.Oldpeak = parseFloatOr(raw.Oldpeak, 0)
		in.Slope = parseIntOr(raw.Slope, 0)
		// exang stays nil when absent: unknown is not the same as no
		in.Exang = optBool(raw.Exang)
	}

	in.BPSystolic = optInt(raw.BPSystolic)
	in.BPDiastolic = optInt(raw.BPDiastolic)
	in.HeightCm = optFloat(raw.HeightCm)
	in.WeightKg = optFloat(raw.WeightKg)
	in.Smoking = optTier(raw.Smoking, smokingTiers)
	in.ActivityDays = optInt(raw.ActivityDays)
	in.FamilyHistory = optBool(raw.FamilyHistory)
	in.DietQuality = optTier(raw.DietQuality, dietTiers)
	in.AlcoholWeekly = optInt(raw.AlcoholWeekly)
	in.StressLevel = optTier(raw.StressLevel, stressTiers)
	in.SleepHours = optFloat(raw.SleepHours)
	in.SleepApnea = optBool(raw.SleepApnea)
	in.Comorbidities = strings.TrimSpace(raw.Comorbidities)

	return in
}
