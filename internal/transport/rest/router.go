package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"cardiocheck/internal/service"
	"cardiocheck/internal/transport/rest/handler"
	"cardiocheck/internal/transport/rest/middleware"
	"cardiocheck/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService   *service.AuthService
	IntakeService *service.IntakeService
	ReportService *service.ReportService
	WSHub         *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	sessionHandler := handler.NewSessionHandler(c.IntakeService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/sessions/{sessionId}", wsHandler.PatientWS).Methods("GET")
	v1.HandleFunc("/ws/sessions/{sessionId}/monitor", wsHandler.MonitorWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Patient routes (require session-scoped auth)
	patientRoutes := v1.NewRoute().Subrouter()
	patientRoutes.Use(authMW.RequirePatient)

	patientRoutes.HandleFunc("/sessions/{sessionId}", sessionHandler.Get).Methods("GET", "OPTIONS")
	patientRoutes.HandleFunc("/sessions/{sessionId}", sessionHandler.Abandon).Methods("DELETE", "OPTIONS")
	patientRoutes.HandleFunc("/sessions/{sessionId}/mode", sessionHandler.SelectMode).Methods("PUT", "OPTIONS")
	patientRoutes.HandleFunc("/sessions/{sessionId}/fields", sessionHandler.UpdateFields).Methods("PATCH", "OPTIONS")
	patientRoutes.HandleFunc("/sessions/{sessionId}/next", sessionHandler.Next).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/sessions/{sessionId}/prev", sessionHandler.Prev).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/sessions/{sessionId}/submit", sessionHandler.Submit).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/sessions/{sessionId}/reset", sessionHandler.Reset).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/sessions/{sessionId}/report", sessionHandler.UploadReport).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/sessions/{sessionId}/report", reportHandler.SessionReport).Methods("GET", "OPTIONS")
	patientRoutes.HandleFunc("/sessions/{sessionId}/result", sessionHandler.Result).Methods("GET", "OPTIONS")

	// Clinician routes (require clinician auth)
	clinicianRoutes := v1.NewRoute().Subrouter()
	clinicianRoutes.Use(authMW.RequireClinician)

	clinicianRoutes.HandleFunc("/patients/{patientId}/history", reportHandler.History).Methods("GET", "OPTIONS")
	clinicianRoutes.HandleFunc("/assessments/{assessmentId}", reportHandler.AssessmentReport).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
