package model

// ImpactCategory buckets a feature's contribution for display
type ImpactCategory string

const (
	ImpactLow      ImpactCategory = "low"
	ImpactModerate ImpactCategory = "moderate"
	ImpactHigh     ImpactCategory = "high"
	ImpactVeryHigh ImpactCategory = "very_high"
)

// FeatureImpact scores one clinical field's contribution to the overall
// risk picture. Value is nil when the field carried no data.
type FeatureImpact struct {
	Name        string         `json:"name"`
	Value       *float64       `json:"value,omitempty"`
	Score       int            `json:"score"`
	Category    ImpactCategory `json:"category"`
	Description string         `json:"description"`
}
