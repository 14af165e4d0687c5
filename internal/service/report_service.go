package service

import (
	"context"
	"errors"
	"fmt"

	"cardiocheck/internal/engine"
	"cardiocheck/internal/model"
	"cardiocheck/internal/repository"
)

var ErrNoResult = errors.New("session has no completed assessment")

// ReportService assembles the detailed assessment view: the classified
// result plus the per-feature impact breakdown of the canonical vector that
// produced it.
type ReportService struct {
	intakeSvc   *IntakeService
	assessments repository.AssessmentRepo
}

// NewReportService creates a new report service
func NewReportService(intakeSvc *IntakeService, assessments repository.AssessmentRepo) *ReportService {
	return &ReportService{
		intakeSvc:   intakeSvc,
		assessments: assessments,
	}
}

// BuildSessionReport builds the report for a live session
func (s *ReportService) BuildSessionReport(ctx context.Context, sessionID string) (*model.AssessmentReport, error) {
	session, err := s.intakeSvc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Result == nil || session.Input == nil {
		return nil, ErrNoResult
	}
	return &model.AssessmentReport{
		Result:  *session.Result,
		Input:   *session.Input,
		Impacts: engine.ImpactSeries(*session.Input),
	}, nil
}

// BuildRecordReport builds the report for a stored assessment
func (s *ReportService) BuildRecordReport(ctx context.Context, assessmentID string) (*model.AssessmentReport, error) {
	record, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if record == nil {
		return nil, errors.New("assessment not found")
	}
	return &model.AssessmentReport{
		Result:  record.Result,
		Input:   record.Input,
		Impacts: engine.ImpactSeries(record.Input),
	}, nil
}

// History returns a patient's stored assessments, newest first
func (s *ReportService) History(ctx context.Context, patientID string) ([]*model.AssessmentRecord, error) {
	records, err := s.assessments.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return records, nil
}
