package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"cardiocheck/internal/cache"
	"cardiocheck/internal/engine"
	"cardiocheck/internal/model"
	"cardiocheck/internal/repository"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrSessionNotEditable   = errors.New("session is not editable while submitting")
)

// Predictor is the external prediction service seen by the intake flow
type Predictor interface {
	Predict(ctx context.Context, input model.CanonicalInput) (*model.PredictionOutcome, error)
}

// Extractor is the external blood-report extraction service
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (*model.ExtractionResult, error)
}

// IntakeService drives the multi-step intake form: step progression, mode
// switching, field merging, blood-report extraction, and submission. One
// session belongs to one user interaction; all state lives in the session
// cache.
type IntakeService struct {
	sessions    cache.SessionCache
	assessments repository.AssessmentRepo
	predictor   Predictor
	extractor   Extractor
	authSvc     *AuthService
	broadcaster Broadcaster

	// autoSubmitDelay is the pause between a quick-mode extraction merge and
	// the auto-triggered submit; any delay works as long as the merge is
	// saved first
	autoSubmitDelay time.Duration
}

// NewIntakeService creates a new intake service
func NewIntakeService(
	sessions cache.SessionCache,
	assessments repository.AssessmentRepo,
	predictor Predictor,
	extractor Extractor,
	authSvc *AuthService,
) *IntakeService {
	return &IntakeService{
		sessions:        sessions,
		assessments:     assessments,
		predictor:       predictor,
		extractor:       extractor,
		authSvc:         authSvc,
		autoSubmitDelay: 1500 * time.Millisecond,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *IntakeService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// StartSession opens a new intake session and issues a session-scoped token
func (s *IntakeService) StartSession(ctx context.Context, patientID string) (*model.StartSessionResponse, error) {
	if strings.TrimSpace(patientID) == "" {
		patientID = "pt_" + uuid.New().String()[:8]
	}
	sessionID := "s_" + uuid.New().String()[:8]

	token, err := s.authSvc.GeneratePatientToken(sessionID, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	session := &model.IntakeSession{
		ID:        sessionID,
		PatientID: patientID,
		Mode:      model.ModeFull,
		Step:      1,
		Status:    model.SessionEditing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &model.StartSessionResponse{
		SessionID: sessionID,
		PatientID: patientID,
		Token:     token,
		Session:   session,
	}, nil
}

// GetSession retrieves a session by ID
func (s *IntakeService) GetSession(ctx context.Context, id string) (*model.IntakeSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SelectMode switches the intake depth. It resets the step position and
// clears any displayed result and step-scoped errors; entered fields are
// kept.
func (s *IntakeService) SelectMode(ctx context.Context, id string, mode model.AssessmentMode) (*model.IntakeSession, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("unknown assessment mode %q", mode)
	}
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionSubmitting {
		return nil, ErrSessionNotEditable
	}

	session.Mode = mode
	session.Step = 1
	session.Status = model.SessionEditing
	session.Result = nil
	session.Input = nil
	session.LastError = ""

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateFields merges a field patch into the raw form input
func (s *IntakeService) UpdateFields(ctx context.Context, id string, fields map[string]string) (*model.IntakeSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionSubmitting {
		return nil, ErrSessionNotEditable
	}

	if unknown := session.Raw.Apply(fields); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown form fields: %s", strings.Join(unknown, ", "))
	}

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Next validates the current step and advances on success. A validation
// failure is stored for display and the step does not move.
func (s *IntakeService) Next(ctx context.Context, id string) (*model.IntakeSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionSubmitting {
		return nil, ErrSessionNotEditable
	}

	if verr := engine.ValidateStep(session.Step, session.Mode, session.Raw); verr != nil {
		session.LastError = verr.Error()
		if err := s.sessions.Set(ctx, session); err != nil {
			return nil, err
		}
		return session, verr
	}

	session.LastError = ""
	if session.Step < session.Mode.FinalStep() {
		session.Step++
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Prev navigates one step back. Going backward is always permitted and never
// validated.
func (s *IntakeService) Prev(ctx context.Context, id string) (*model.IntakeSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionSubmitting {
		return nil, ErrSessionNotEditable
	}

	if session.Step > 1 {
		session.Step--
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit runs the final validation gate and hands the canonical vector to
// the prediction service asynchronously. The session is not reentrant while
// a submission is pending; a second submit is rejected rather than producing
// duplicate calls and duplicate history records.
func (s *IntakeService) Submit(ctx context.Context, id string) (*model.IntakeSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionSubmitting {
		return nil, ErrSubmissionInProgress
	}

	if verr := engine.ValidateSubmit(session.Mode, session.Raw, session.ReportProcessed); verr != nil {
		session.LastError = verr.Error()
		if err := s.sessions.Set(ctx, session); err != nil {
			return nil, err
		}
		return session, verr
	}

	session.Status = model.SessionSubmitting
	session.LastError = ""
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToMonitors(session.ID, "submission_received", map[string]interface{}{
			"sessionId": session.ID,
			"mode":      session.Mode,
		})
	}

	go s.runPrediction(context.Background(), session.ID)

	return session, nil
}

// runPrediction performs the slow half of Submit off the request path. It
// re-reads the session before every mutation: if the session was abandoned
// or reset mid-flight, the arriving result is discarded.
func (s *IntakeService) runPrediction(ctx context.Context, sessionID string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in runPrediction: %v", r)
		}
	}()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil || session == nil || session.Status != model.SessionSubmitting {
		return
	}

	input := engine.Normalize(session.Raw, session.Mode)

	outcome, err := s.predictor.Predict(ctx, input)
	if err != nil {
		s.failSubmission(ctx, sessionID, err)
		return
	}

	level, pct := engine.Classify(*outcome)
	result := model.AssessmentResult{
		RiskLevel:          level,
		RiskPercentage:     pct,
		AccuracyPercentage: session.Mode.AccuracyPercentage(),
		Recommendations:    engine.Recommend(level),
		PredictedClass:     outcome.PredictedClass,
		Probability:        outcome.Probability,
		Interpretation:     outcome.Interpretation,
		CompletedAt:        time.Now(),
	}

	session, err = s.sessions.Get(ctx, sessionID)
	if err != nil || session == nil || session.Status != model.SessionSubmitting {
		// Session torn down or reset while the service was working
		return
	}

	session.Input = &input
	session.Result = &result
	session.Status = model.SessionSubmitted
	if err := s.sessions.Set(ctx, session); err != nil {
		log.Printf("Failed to save submitted session %s: %v", sessionID, err)
		return
	}

	// Hand off the immutable snapshot to the history store; a storage
	// failure does not invalidate the user-visible result
	record := &model.AssessmentRecord{
		PatientID: session.PatientID,
		SessionID: session.ID,
		Mode:      session.Mode,
		Input:     input,
		Result:    result,
	}
	if _, err := s.assessments.Create(ctx, record); err != nil {
		log.Printf("Failed to persist assessment for session %s: %v", sessionID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(sessionID, "assessment_ready", result)
		s.broadcaster.BroadcastToMonitors(sessionID, "assessment_ready", map[string]interface{}{
			"sessionId":      sessionID,
			"riskLevel":      result.RiskLevel,
			"riskPercentage": result.RiskPercentage,
		})
	}
}

// failSubmission surfaces a service failure without losing entered data; the
// user may resubmit immediately
func (s *IntakeService) failSubmission(ctx context.Context, sessionID string, cause error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil || session == nil || session.Status != model.SessionSubmitting {
		return
	}
	session.Status = model.SessionEditing
	session.LastError = cause.Error()
	if err := s.sessions.Set(ctx, session); err != nil {
		log.Printf("Failed to save failed submission for %s: %v", sessionID, err)
		return
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(sessionID, "assessment_error", map[string]string{
			"message": cause.Error(),
		})
	}
}

// Reset re-initializes the session: back to step 1, raw input, result, and
// errors all cleared. This is the only operation that discards entered data
// and it is always explicit.
func (s *IntakeService) Reset(ctx context.Context, id string) (*model.IntakeSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Step = 1
	session.Status = model.SessionEditing
	session.Raw = model.RawFormInput{}
	session.ReportProcessed = false
	session.Input = nil
	session.Result = nil
	session.LastError = ""

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToMonitors(id, "session_reset", map[string]string{"sessionId": id})
	}
	return session, nil
}

// Abandon deletes the session outright. A prediction still in flight will
// find no session to write into and discard its result.
func (s *IntakeService) Abandon(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// UploadReport runs the blood-report extractor and merges only the fields it
// returned into the raw input. In quick mode a successful extraction
// auto-triggers submission after a short delay.
func (s *IntakeService) UploadReport(ctx context.Context, id, filename string, data []byte) (*model.IntakeSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionSubmitting {
		return nil, ErrSessionNotEditable
	}

	result, err := s.extractor.Extract(ctx, filename, data)
	if err != nil {
		session.LastError = err.Error()
		if saveErr := s.sessions.Set(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return session, fmt.Errorf("extraction failed: %w", err)
	}

	merged := make([]string, 0, 2)
	if result.Chol != nil {
		session.Raw.Chol = strconv.Itoa(*result.Chol)
		merged = append(merged, "chol")
	}
	if result.FBS != nil {
		session.Raw.FBS = *result.FBS
		merged = append(merged, "fbs")
	}
	session.ReportProcessed = true
	session.LastError = ""

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(id, "extraction_complete", map[string]interface{}{
			"fields": merged,
		})
	}

	if session.Mode == model.ModeQuick {
		go func() {
			time.Sleep(s.autoSubmitDelay)
			if _, err := s.Submit(context.Background(), id); err != nil {
				log.Printf("Auto-submit after extraction failed for %s: %v", id, err)
			}
		}()
	}

	return session, nil
}
