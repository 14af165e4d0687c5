package model

import "time"

type SessionStatus string

const (
	SessionEditing    SessionStatus = "editing"
	SessionSubmitting SessionStatus = "submitting"
	SessionSubmitted  SessionStatus = "submitted"
)

// IntakeSession is one in-progress assessment. It lives in the session cache
// for the duration of a user interaction and is the unit the intake state
// machine operates on.
type IntakeSession struct {
	ID        string         `json:"id"`
	PatientID string         `json:"patientId"`
	Mode      AssessmentMode `json:"mode"`
	Step      int            `json:"step"`
	Status    SessionStatus  `json:"status"`

	Raw             RawFormInput `json:"raw"`
	ReportProcessed bool         `json:"reportProcessed"`

	// LastError holds the most recent validation or service failure message.
	// Both are recoverable; the form stays editable.
	LastError string `json:"lastError,omitempty"`

	// Populated once submission succeeds
	Input  *CanonicalInput   `json:"input,omitempty"`
	Result *AssessmentResult `json:"result,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StartSessionResponse is returned when a new intake session is opened
type StartSessionResponse struct {
	SessionID string         `json:"sessionId"`
	PatientID string         `json:"patientId"`
	Token     string         `json:"token"`
	Session   *IntakeSession `json:"session"`
}
