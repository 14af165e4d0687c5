package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"cardiocheck/internal/config"
	"cardiocheck/internal/model"
)

// ExtractorService calls the blood-report extraction service
type ExtractorService struct {
	config *config.ExtractorConfig
	client *http.Client
}

// NewExtractorService creates a new extractor service
func NewExtractorService() *ExtractorService {
	cfg := config.DefaultExtractorConfig()
	return &ExtractorService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Extract uploads a blood report and returns whatever clinical fields the
// extractor recognized. Without EXTRACTOR_URL configured, a regexp scan of
// the document text stands in.
func (s *ExtractorService) Extract(ctx context.Context, filename string, data []byte) (*model.ExtractionResult, error) {
	if !s.config.IsEnabled() {
		return s.mockExtract(data), nil
	}
	return s.callExtractor(ctx, filename, data)
}

// callExtractor uploads the report to the extraction endpoint
func (s *ExtractorService) callExtractor(ctx context.Context, filename string, data []byte) (*model.ExtractionResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("report", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.ExtractEndpoint(), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, string(body))
	}

	var result model.ExtractionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	return &result, nil
}

var (
	cholPattern    = regexp.MustCompile(`(?i)(?:total\s+)?cholesterol\D{0,20}?(\d{2,3})`)
	glucosePattern = regexp.MustCompile(`(?i)(?:fasting\s+)?(?:blood\s+)?(?:glucose|sugar)\D{0,20}?(\d{2,3})`)
)

// mockExtract scans plain-text reports for the two values the pipeline can
// use: total cholesterol and fasting glucose. Fields it cannot find stay nil
// so the merge never clobbers user input.
func (s *ExtractorService) mockExtract(data []byte) *model.ExtractionResult {
	text := string(data)
	result := &model.ExtractionResult{}

	if m := cholPattern.FindStringSubmatch(text); m != nil {
		if chol, err := strconv.Atoi(m[1]); err == nil {
			result.Chol = &chol
		}
	}

	if m := glucosePattern.FindStringSubmatch(text); m != nil {
		if glucose, err := strconv.Atoi(m[1]); err == nil {
			// 126 mg/dL is the diagnostic threshold for fasting glucose
			fbs := "0"
			if glucose >= 126 {
				fbs = "1"
			}
			result.FBS = &fbs
		}
	}

	return result
}
