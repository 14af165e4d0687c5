package engine

import (
	"testing"

	"cardiocheck/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestClassifyTierBoundaries(t *testing.T) {
	tests := []struct {
		probability float64
		wantPct     int
		wantLevel   model.RiskLevel
	}{
		{0.70, 70, model.RiskHigh},
		{0.69, 69, model.RiskMedium},
		{0.40, 40, model.RiskMedium},
		{0.39, 39, model.RiskLow},
		{1.00, 100, model.RiskHigh},
		{0.00, 0, model.RiskLow},
	}
	for _, tt := range tests {
		level, pct := Classify(model.PredictionOutcome{PredictedClass: 1, Probability: floatPtr(tt.probability)})
		if pct != tt.wantPct {
			t.Errorf("probability %.2f: pct = %d, want %d", tt.probability, pct, tt.wantPct)
		}
		if level != tt.wantLevel {
			t.Errorf("probability %.2f: level = %s, want %s", tt.probability, level, tt.wantLevel)
		}
	}
}

func TestClassifyRoundsProbability(t *testing.T) {
	level, pct := Classify(model.PredictionOutcome{Probability: floatPtr(0.695)})
	if pct != 70 || level != model.RiskHigh {
		t.Errorf("0.695 should round to 70/high, got %d/%s", pct, level)
	}
	_, pct = Classify(model.PredictionOutcome{Probability: floatPtr(0.394)})
	if pct != 39 {
		t.Errorf("0.394 should round to 39, got %d", pct)
	}
}

func TestClassifyLabelFallback(t *testing.T) {
	level, pct := Classify(model.PredictionOutcome{PredictedClass: 1, Probability: nil})
	if pct != 75 {
		t.Errorf("missing probability with class 1: pct = %d, want 75", pct)
	}
	if level != model.RiskHigh {
		t.Errorf("missing probability with class 1: level = %s, want high", level)
	}

	level, pct = Classify(model.PredictionOutcome{PredictedClass: 0, Probability: nil})
	if pct != 15 {
		t.Errorf("missing probability with class 0: pct = %d, want 15", pct)
	}
	if level != model.RiskLow {
		t.Errorf("missing probability with class 0: level = %s, want low", level)
	}
}

func TestClassifyAllPercentages(t *testing.T) {
	for p := 0; p <= 100; p++ {
		prob := float64(p) / 100
		level, pct := Classify(model.PredictionOutcome{Probability: &prob})
		if pct != p {
			t.Fatalf("probability %d%%: pct = %d", p, pct)
		}
		var want model.RiskLevel
		switch {
		case p >= 70:
			want = model.RiskHigh
		case p >= 40:
			want = model.RiskMedium
		default:
			want = model.RiskLow
		}
		if level != want {
			t.Fatalf("probability %d%%: level = %s, want %s", p, level, want)
		}
	}
}
