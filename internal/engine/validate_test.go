package engine

import (
	"errors"
	"testing"

	"cardiocheck/internal/model"
)

func TestValidateStepOneAge(t *testing.T) {
	tests := []struct {
		age string
		ok  bool
	}{
		{"55", true},
		{"1", true},
		{"120", true},
		{"0", false},
		{"121", false},
		{"-3", false},
		{"", false},
		{"abc", false},
	}
	for _, tt := range tests {
		err := ValidateStep(1, model.ModeFull, model.RawFormInput{Age: tt.age, Sex: "1"})
		if tt.ok && err != nil {
			t.Errorf("age %q: unexpected error %v", tt.age, err)
		}
		if !tt.ok {
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != "age" {
				t.Errorf("age %q: expected age validation error, got %v", tt.age, err)
			}
		}
	}
}

func TestValidateStepOneSex(t *testing.T) {
	err := ValidateStep(1, model.ModeFull, model.RawFormInput{Age: "40"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "sex" {
		t.Errorf("missing sex should fail with sex error, got %v", err)
	}
}

func TestValidateStepOneShortCircuits(t *testing.T) {
	// Both fields invalid: the age rule fires first
	err := ValidateStep(1, model.ModeFull, model.RawFormInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "age" {
		t.Errorf("expected age reported first, got %v", err)
	}
}

func TestValidateStepTwoReportsFirstMissing(t *testing.T) {
	raw := model.RawFormInput{
		CP: "0", Trestbps: "120", // restecg missing, then thalach also missing
		Oldpeak: "1.0", Slope: "1",
	}
	err := ValidateStep(2, model.ModeFull, raw)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "restecg" {
		t.Errorf("expected restecg reported first, got %v", err)
	}

	raw.Restecg = "1"
	err = ValidateStep(2, model.ModeFull, raw)
	if !errors.As(err, &verr) || verr.Field != "thalach" {
		t.Errorf("expected thalach next, got %v", err)
	}

	raw.Thalach = "150"
	if err := ValidateStep(2, model.ModeFull, raw); err != nil {
		t.Errorf("complete step 2 should pass, got %v", err)
	}
}

func TestValidateStepsSkippedInQuickMode(t *testing.T) {
	if err := ValidateStep(2, model.ModeQuick, model.RawFormInput{}); err != nil {
		t.Errorf("quick mode skips step 2, got %v", err)
	}
	if err := ValidateStep(3, model.ModeQuick, model.RawFormInput{}); err != nil {
		t.Errorf("quick mode skips step 3, got %v", err)
	}
}

func TestValidateStepThreeDiabetesType(t *testing.T) {
	err := ValidateStep(3, model.ModeFull, model.RawFormInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "diabetesType" {
		t.Errorf("missing diabetesType should fail, got %v", err)
	}
	if err := ValidateStep(3, model.ModeFull, model.RawFormInput{DiabetesType: "no"}); err != nil {
		t.Errorf("diabetesType \"no\" is a valid selection, got %v", err)
	}
}

func TestValidateSubmitQuickMode(t *testing.T) {
	raw := model.RawFormInput{Age: "55", Sex: "1"}

	err := ValidateSubmit(model.ModeQuick, raw, false)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "bloodReport" {
		t.Errorf("quick submit without a processed report should fail, got %v", err)
	}

	if err := ValidateSubmit(model.ModeQuick, raw, true); err != nil {
		t.Errorf("quick submit with processed report should pass, got %v", err)
	}

	// Step 1 is still enforced even with a report
	err = ValidateSubmit(model.ModeQuick, model.RawFormInput{}, true)
	if !errors.As(err, &verr) || verr.Field != "age" {
		t.Errorf("quick submit still validates step 1, got %v", err)
	}
}

func TestValidateSubmitFullModeRevalidatesEverything(t *testing.T) {
	raw := model.RawFormInput{
		Age: "55", Sex: "1",
		CP: "0", Trestbps: "145", Restecg: "1", Thalach: "130", Oldpeak: "1.0", Slope: "2",
		DiabetesType: "no",
	}
	if err := ValidateSubmit(model.ModeFull, raw, false); err != nil {
		t.Errorf("complete full-mode input should pass, got %v", err)
	}

	// Mutating an earlier step's field after advancing must still be caught
	raw.Age = "999"
	err := ValidateSubmit(model.ModeFull, raw, false)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "age" {
		t.Errorf("mutated age should be caught at submit, got %v", err)
	}

	raw.Age = "55"
	raw.Slope = ""
	err = ValidateSubmit(model.ModeFull, raw, false)
	if !errors.As(err, &verr) || verr.Field != "slope" {
		t.Errorf("cleared slope should be caught at submit, got %v", err)
	}

	raw.Slope = "2"
	raw.DiabetesType = ""
	err = ValidateSubmit(model.ModeFull, raw, false)
	if !errors.As(err, &verr) || verr.Field != "diabetesType" {
		t.Errorf("cleared diabetesType should be caught at submit, got %v", err)
	}
}
