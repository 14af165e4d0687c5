package service

import (
	"context"
	"math"
	"testing"

	"cardiocheck/internal/model"
)

func TestMockPredictSevereProfile(t *testing.T) {
	svc := NewPredictorService()
	one := 1

	outcome, err := svc.Predict(context.Background(), model.CanonicalInput{
		Age: 70, Sex: 1, CP: 0, Trestbps: 185, Chol: 320, FBS: 1,
		Restecg: 2, Thalach: 90, Exang: &one, Oldpeak: 2.5, Slope: 2,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if outcome.PredictedClass != 1 {
		t.Errorf("predicted class = %d, want 1 for a severe profile", outcome.PredictedClass)
	}
	if outcome.Probability == nil {
		t.Fatal("mock must always supply a probability")
	}
	// Impact scores: 70+30+80+90+85+60+80+80+85+90+75 over 11 features
	want := 825.0 / 1100.0
	if math.Abs(*outcome.Probability-want) > 1e-9 {
		t.Errorf("probability = %v, want %v", *outcome.Probability, want)
	}
}

func TestMockPredictMildProfile(t *testing.T) {
	svc := NewPredictorService()
	zero := 0

	outcome, err := svc.Predict(context.Background(), model.CanonicalInput{
		Age: 35, Sex: 0, CP: 3, Trestbps: 110, Chol: 170, FBS: 0,
		Restecg: 0, Thalach: 175, Exang: &zero, Oldpeak: 0.2, Slope: 0,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if outcome.PredictedClass != 0 {
		t.Errorf("predicted class = %d, want 0 for a mild profile", outcome.PredictedClass)
	}
	if outcome.Probability == nil || *outcome.Probability >= 0.5 {
		t.Error("mild profile probability should sit below the class threshold")
	}
	if outcome.Interpretation == "" {
		t.Error("mock should explain itself in the interpretation")
	}
}
