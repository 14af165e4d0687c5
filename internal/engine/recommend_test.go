package engine

import (
	"testing"

	"cardiocheck/internal/model"
)

func TestRecommendTenEntriesPerTier(t *testing.T) {
	for _, level := range []model.RiskLevel{model.RiskLow, model.RiskMedium, model.RiskHigh} {
		recs := Recommend(level)
		if len(recs) != 10 {
			t.Errorf("%s: got %d recommendations, want 10", level, len(recs))
		}
		for i, r := range recs {
			if r == "" {
				t.Errorf("%s: recommendation %d is empty", level, i)
			}
		}
	}
}

func TestRecommendListsAreDistinct(t *testing.T) {
	low := Recommend(model.RiskLow)
	medium := Recommend(model.RiskMedium)
	high := Recommend(model.RiskHigh)

	if low[0] == medium[0] || medium[0] == high[0] || low[0] == high[0] {
		t.Error("first recommendation should differ across tiers")
	}
}

func TestRecommendReturnsCopy(t *testing.T) {
	first := Recommend(model.RiskHigh)
	first[0] = "mutated"
	second := Recommend(model.RiskHigh)
	if second[0] == "mutated" {
		t.Error("Recommend must return a defensive copy")
	}
}
