package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"cardiocheck/internal/service"
)

type contextKey string

const (
	ClinicianIDKey contextKey = "clinicianId"
	SessionIDKey   contextKey = "sessionId"
	PatientIDKey   contextKey = "patientId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireClinician validates clinician JWT from Authorization header
func (m *AuthMiddleware) RequireClinician(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateClinicianToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ClinicianIDKey, claims.ClinicianID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePatient validates the session-scoped patient JWT and checks it
// against the session in the URL
func (m *AuthMiddleware) RequirePatient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidatePatientToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		if sessionID, ok := mux.Vars(r)["sessionId"]; ok && sessionID != claims.SessionID {
			http.Error(w, `{"error":"token not valid for this session"}`, http.StatusForbidden)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, SessionIDKey, claims.SessionID)
		ctx = context.WithValue(ctx, PatientIDKey, claims.PatientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClinicianID extracts clinician ID from context
func GetClinicianID(ctx context.Context) string {
	if v := ctx.Value(ClinicianIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetSessionID extracts session ID from context
func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(SessionIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetPatientID extracts patient ID from context
func GetPatientID(ctx context.Context) string {
	if v := ctx.Value(PatientIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
