package engine

import (
	"math"

	"cardiocheck/internal/model"
)

// Classify maps a prediction outcome to a discrete risk tier and a display
// percentage. When the service omits the probability, a coarse label-based
// estimate stands in so the UI can always render a percentage.
func Classify(outcome model.PredictionOutcome) (model.RiskLevel, int) {
	var pct int
	switch {
	case outcome.Probability != nil:
		pct = int(math.Round(*outcome.Probability * 100))
	case outcome.PredictedClass == 1:
		pct = 75
	default:
		pct = 15
	}

	// Tier bounds are inclusive on the lower edge: 70 is high, 40 is medium
	switch {
	case pct >= 70:
		return model.RiskHigh, pct
	case pct >= 40:
		return model.RiskMedium, pct
	default:
		return model.RiskLow, pct
	}
}
