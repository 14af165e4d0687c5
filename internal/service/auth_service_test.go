package service

import (
	"errors"
	"strings"
	"testing"
)

func TestLoginWithDefaults(t *testing.T) {
	svc := NewAuthService()

	resp, err := svc.Login("admin", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !strings.HasPrefix(resp.ClinicianID, "clin_") {
		t.Errorf("clinician ID %q missing prefix", resp.ClinicianID)
	}

	claims, err := svc.ValidateClinicianToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateClinicianToken: %v", err)
	}
	if claims.ClinicianID != resp.ClinicianID {
		t.Errorf("claims clinician = %q, want %q", claims.ClinicianID, resp.ClinicianID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService()

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestPatientTokenRoundTrip(t *testing.T) {
	svc := NewAuthService()

	token, err := svc.GeneratePatientToken("s_12345678", "pt_12345678")
	if err != nil {
		t.Fatalf("GeneratePatientToken: %v", err)
	}

	claims, err := svc.ValidatePatientToken(token)
	if err != nil {
		t.Fatalf("ValidatePatientToken: %v", err)
	}
	if claims.SessionID != "s_12345678" || claims.PatientID != "pt_12345678" {
		t.Errorf("claims = %q/%q, want the issued session and patient", claims.SessionID, claims.PatientID)
	}
}

func TestTokenRolesDoNotCross(t *testing.T) {
	svc := NewAuthService()

	patientToken, err := svc.GeneratePatientToken("s_1", "pt_1")
	if err != nil {
		t.Fatalf("GeneratePatientToken: %v", err)
	}
	if _, err := svc.ValidateClinicianToken(patientToken); err == nil {
		t.Error("patient token must not validate as clinician")
	}

	resp, err := svc.Login("admin", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.ValidatePatientToken(resp.Token); err == nil {
		t.Error("clinician token must not validate as patient")
	}
}
