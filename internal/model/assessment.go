package model

import "time"

// RiskLevel is the discrete tier derived from the prediction
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PredictionOutcome is the prediction service's response. Probability is
// optional; some deployments only return the class label.
type PredictionOutcome struct {
	PredictedClass int      `json:"predicted_class"`
	Probability    *float64 `json:"probability,omitempty"`
	Interpretation string   `json:"interpretation,omitempty"`
}

// AssessmentResult is the user-facing outcome of a completed submission
type AssessmentResult struct {
	RiskLevel          RiskLevel `json:"riskLevel" bson:"riskLevel"`
	RiskPercentage     int       `json:"riskPercentage" bson:"riskPercentage"`
	AccuracyPercentage int       `json:"accuracyPercentage" bson:"accuracyPercentage"`
	Recommendations    []string  `json:"recommendations" bson:"recommendations"`
	PredictedClass     int       `json:"predictedClass" bson:"predictedClass"`
	Probability        *float64  `json:"probability,omitempty" bson:"probability,omitempty"`
	Interpretation     string    `json:"interpretation,omitempty" bson:"interpretation,omitempty"`
	CompletedAt        time.Time `json:"completedAt" bson:"completedAt"`
}

// ExtractionResult holds the values the blood-report extractor found. Nil
// fields were not present in the document and must not overwrite manually
// entered values.
type ExtractionResult struct {
	Chol *int    `json:"chol,omitempty"`
	FBS  *string `json:"fbs,omitempty"`
}
