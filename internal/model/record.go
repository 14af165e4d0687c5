package model

import "time"

// AssessmentRecord is the immutable snapshot handed to the history store once
// a session reaches submitted
type AssessmentRecord struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	PatientID string           `json:"patientId" bson:"patientId"`
	SessionID string           `json:"sessionId" bson:"sessionId"`
	Mode      AssessmentMode   `json:"mode" bson:"mode"`
	Input     CanonicalInput   `json:"input" bson:"input"`
	Result    AssessmentResult `json:"result" bson:"result"`
	CreatedAt time.Time        `json:"createdAt" bson:"createdAt"`
}

// AssessmentReport is the stable shape handed to the report renderer: the
// result, the canonical input it was computed from, and the per-feature
// impact series
type AssessmentReport struct {
	Result  AssessmentResult `json:"result"`
	Input   CanonicalInput   `json:"input"`
	Impacts []FeatureImpact  `json:"impacts"`
}
