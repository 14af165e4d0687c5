package engine

import (
	"strings"

	"cardiocheck/internal/model"
)

// ValidationError names the offending field and carries a human-readable
// message. Validation failures are local and recoverable; the form stays
// editable.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// step2Fields are the clinical fields the full-mode step 2 form collects; all
// must be present before advancing. Order matters: the first missing field is
// the one reported.
var step2Fields = []struct {
	name  string
	value func(model.RawFormInput) string
}{
	{"cp", func(r model.RawFormInput) string { return r.CP }},
	{"trestbps", func(r model.RawFormInput) string { return r.Trestbps }},
	{"restecg", func(r model.RawFormInput) string { return r.Restecg }},
	{"thalach", func(r model.RawFormInput) string { return r.Thalach }},
	{"oldpeak", func(r model.RawFormInput) string { return r.Oldpeak }},
	{"slope", func(r model.RawFormInput) string { return r.Slope }},
}

// ValidateStep gates forward navigation for one step. It is stateless and
// pure, and is re-run at final submission since form state is mutable between
// step-advance and submit.
func ValidateStep(step int, mode model.AssessmentMode, raw model.RawFormInput) error {
	switch step {
	case 1:
		age := parseIntOr(raw.Age, -1)
		if strings.TrimSpace(raw.Age) == "" || age < 1 || age > 120 {
			return &ValidationError{Field: "age", Message: "please enter a valid age between 1 and 120"}
		}
		if strings.TrimSpace(raw.Sex) == "" {
			return &ValidationError{Field: "sex", Message: "please select a sex"}
		}
		return nil
	case 2:
		if mode == model.ModeQuick {
			return nil
		}
		for _, f := range step2Fields {
			if strings.TrimSpace(f.value(raw)) == "" {
				return &ValidationError{Field: f.name, Message: "please fill in the " + f.name + " field"}
			}
		}
		return nil
	case 3:
		if mode == model.ModeQuick {
			return nil
		}
		if strings.TrimSpace(raw.DiabetesType) == "" {
			return &ValidationError{Field: "diabetesType", Message: "please select a diabetes status"}
		}
		return nil
	}
	return nil
}

// ValidateSubmit is the final gate before delegation to the prediction
// service. Quick mode validates step 1 and requires a processed blood
// report; full mode re-validates every step, since the user could have
// mutated earlier fields after advancing past them.
func ValidateSubmit(mode model.AssessmentMode, raw model.RawFormInput, reportProcessed bool) error {
	if mode == model.ModeQuick {
		if err := ValidateStep(1, mode, raw); err != nil {
			return err
		}
		if !reportProcessed {
			return &ValidationError{Field: "bloodReport", Message: "please upload a blood report before submitting"}
		}
		return nil
	}
	for step := 1; step <= mode.FinalStep(); step++ {
		if err := ValidateStep(step, mode, raw); err != nil {
			return err
		}
	}
	return nil
}
