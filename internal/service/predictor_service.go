package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cardiocheck/internal/config"
	"cardiocheck/internal/engine"
	"cardiocheck/internal/model"
)

// PredictorService calls the external cardiovascular prediction service
type PredictorService struct {
	config *config.PredictorConfig
	client *http.Client
}

// NewPredictorService creates a new predictor service
func NewPredictorService() *PredictorService {
	cfg := config.DefaultPredictorConfig()
	return &PredictorService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Predict submits the canonical vector and returns the service outcome. When
// no endpoint is configured the deterministic mock stands in, so development
// environments exercise the same downstream path as production.
func (s *PredictorService) Predict(ctx context.Context, input model.CanonicalInput) (*model.PredictionOutcome, error) {
	if !s.config.IsEnabled() {
		return s.mockPredict(input), nil
	}
	return s.callPredictor(ctx, input)
}

// callPredictor makes the request to the prediction endpoint
func (s *PredictorService) callPredictor(ctx context.Context, input model.CanonicalInput) (*model.PredictionOutcome, error) {
	jsonBody, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.PredictEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

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
		return nil, fmt.Errorf("prediction service returned %d: %s", resp.StatusCode, string(body))
	}

	var outcome model.PredictionOutcome
	if err := json.Unmarshal(body, &outcome); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	return &outcome, nil
}

// mockPredict derives a probability from the mean of the heuristic impact
// scores. It is not a model; it exists so the pipeline works end to end
// without PREDICTOR_URL configured.
func (s *PredictorService) mockPredict(input model.CanonicalInput) *model.PredictionOutcome {
	series := engine.ImpactSeries(input)
	total := 0
	for _, fi := range series {
		total += fi.Score
	}
	probability := float64(total) / float64(len(series)*100)

	predictedClass := 0
	if probability >= 0.5 {
		predictedClass = 1
	}

	return &model.PredictionOutcome{
		PredictedClass: predictedClass,
		Probability:    &probability,
		Interpretation: "Mock prediction from heuristic feature impact. Set PREDICTOR_URL for model output.",
	}
}
