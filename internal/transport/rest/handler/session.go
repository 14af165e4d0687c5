package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"cardiocheck/internal/engine"
	"cardiocheck/internal/model"
	"cardiocheck/internal/service"
)

// Report uploads are small lab PDFs or scans
const maxReportSize = 10 << 20 // 10 MB

// SessionHandler handles intake session endpoints
type SessionHandler struct {
	intakeSvc *service.IntakeService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(intakeSvc *service.IntakeService) *SessionHandler {
	return &SessionHandler{intakeSvc: intakeSvc}
}

// Start handles POST /v1/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatientID string `json:"patientId"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	resp, err := h.intakeSvc.StartSession(r.Context(), req.PatientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.intakeSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// SelectMode handles PUT /v1/sessions/{sessionId}/mode
func (h *SessionHandler) SelectMode(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req struct {
		Mode model.AssessmentMode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.intakeSvc.SelectMode(r.Context(), sessionID, req.Mode)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// UpdateFields handles PATCH /v1/sessions/{sessionId}/fields
func (h *SessionHandler) UpdateFields(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.intakeSvc.UpdateFields(r.Context(), sessionID, fields)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Next handles POST /v1/sessions/{sessionId}/next
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.intakeSvc.Next(r.Context(), sessionID)
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			// Step stays put; the session carries the message for display
			writeJSON(w, http.StatusUnprocessableEntity, session)
			return
		}
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Prev handles POST /v1/sessions/{sessionId}/prev
func (h *SessionHandler) Prev(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.intakeSvc.Prev(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Submit handles POST /v1/sessions/{sessionId}/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.intakeSvc.Submit(r.Context(), sessionID)
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, session)
			return
		}
		writeSessionError(w, err)
		return
	}

	// Prediction runs asynchronously; poll the session or listen on the
	// WebSocket for the result
	writeJSON(w, http.StatusAccepted, session)
}

// Reset handles POST /v1/sessions/{sessionId}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.intakeSvc.Reset(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Abandon handles DELETE /v1/sessions/{sessionId}
func (h *SessionHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.intakeSvc.Abandon(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadReport handles POST /v1/sessions/{sessionId}/report
func (h *SessionHandler) UploadReport(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := r.ParseMultipartForm(maxReportSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("report")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing report file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxReportSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read report file")
		return
	}

	session, err := h.intakeSvc.UploadReport(r.Context(), sessionID, header.Filename, data)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Result handles GET /v1/sessions/{sessionId}/result
func (h *SessionHandler) Result(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.intakeSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	if session.Status == model.SessionSubmitting {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": session.Status})
		return
	}
	if session.Result == nil {
		writeError(w, http.StatusNotFound, "session has no completed assessment")
		return
	}

	writeJSON(w, http.StatusOK, session.Result)
}

// writeSessionError maps intake service errors to HTTP status codes
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSubmissionInProgress), errors.Is(err, service.ErrSessionNotEditable):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
