package service

import (
	"context"
	"testing"
)

func TestMockExtractCholesterol(t *testing.T) {
	svc := NewExtractorService()
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want *int
	}{
		{"labeled value", "Total Cholesterol: 245 mg/dL", intPtr(245)},
		{"bare label", "cholesterol 198", intPtr(198)},
		{"no mention", "Hemoglobin 14.2 g/dL", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Extract(ctx, "report.txt", []byte(tt.text))
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			switch {
			case tt.want == nil && result.Chol != nil:
				t.Errorf("chol = %d, want nil", *result.Chol)
			case tt.want != nil && result.Chol == nil:
				t.Errorf("chol = nil, want %d", *tt.want)
			case tt.want != nil && *result.Chol != *tt.want:
				t.Errorf("chol = %d, want %d", *result.Chol, *tt.want)
			}
		})
	}
}

func TestMockExtractGlucoseThreshold(t *testing.T) {
	svc := NewExtractorService()
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"above threshold", "Fasting Glucose: 140 mg/dL", "1"},
		{"at threshold", "fasting blood sugar 126", "1"},
		{"below threshold", "Glucose: 98 mg/dL", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Extract(ctx, "report.txt", []byte(tt.text))
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if result.FBS == nil {
				t.Fatal("fbs = nil, want a flag")
			}
			if *result.FBS != tt.want {
				t.Errorf("fbs = %q, want %q", *result.FBS, tt.want)
			}
		})
	}
}

func TestMockExtractUnreadableReportStaysNil(t *testing.T) {
	svc := NewExtractorService()

	result, err := svc.Extract(context.Background(), "scan.pdf", []byte("completely unrelated text"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Chol != nil || result.FBS != nil {
		t.Error("unfound fields must stay nil so merges never clobber user input")
	}
}

func intPtr(n int) *int { return &n }
