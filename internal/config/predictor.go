package config

import "os"

// PredictorConfig holds the external prediction service settings
type PredictorConfig struct {
	BaseURL   string `json:"baseUrl"`
	APIKey    string `json:"-"` // Never serialize
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultPredictorConfig reads the prediction service settings from the
// environment
func DefaultPredictorConfig() *PredictorConfig {
	return &PredictorConfig{
		BaseURL:   os.Getenv("PREDICTOR_URL"),
		APIKey:    os.Getenv("PREDICTOR_API_KEY"),
		TimeoutMS: 10000, // 10 second default timeout
	}
}

// IsEnabled returns true if a real prediction endpoint is configured
func (c *PredictorConfig) IsEnabled() bool {
	return c.BaseURL != ""
}

// PredictEndpoint returns the full prediction endpoint
func (c *PredictorConfig) PredictEndpoint() string {
	return c.BaseURL + "/predict"
}

// ExtractorConfig holds the blood-report extraction service settings
type ExtractorConfig struct {
	BaseURL   string `json:"baseUrl"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultExtractorConfig reads the extraction service settings from the
// environment
func DefaultExtractorConfig() *ExtractorConfig {
	return &ExtractorConfig{
		BaseURL:   os.Getenv("EXTRACTOR_URL"),
		TimeoutMS: 15000,
	}
}

// IsEnabled returns true if a real extraction endpoint is configured
func (c *ExtractorConfig) IsEnabled() bool {
	return c.BaseURL != ""
}

// ExtractEndpoint returns the full extraction endpoint
func (c *ExtractorConfig) ExtractEndpoint() string {
	return c.BaseURL + "/extract"
}
