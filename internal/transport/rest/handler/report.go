package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"cardiocheck/internal/model"
	"cardiocheck/internal/service"
)

// ReportHandler handles assessment report and history endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// SessionReport handles GET /v1/sessions/{sessionId}/report
func (h *ReportHandler) SessionReport(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	report, err := h.reportSvc.BuildSessionReport(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrNoResult) || errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// AssessmentReport handles GET /v1/assessments/{assessmentId}
func (h *ReportHandler) AssessmentReport(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	report, err := h.reportSvc.BuildRecordReport(r.Context(), assessmentID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// History handles GET /v1/patients/{patientId}/history
func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	records, err := h.reportSvc.History(r.Context(), patientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []*model.AssessmentRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}
