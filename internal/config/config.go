package config

import (
	"fmt"
	"os"
	"strconv"
)

// ConfidenceThreshold is the single cutoff used both for auto-filling
// claimed fields from a receipt and for labeling an extraction "high
// confidence" in reports.
const ConfidenceThreshold = 0.7

// Config holds all environment-sourced settings, built once in main and
// injected into services instead of reading os.Getenv ad hoc.
type Config struct {
	Port string

	// The NGO's authoritative receiving UPI id, compared against the
	// recipient extracted from payment screenshots
	ExpectedUPIID string

	ConfidenceThreshold float64

	// Vision/extraction service
	VisionEndpoint string
	VisionAPIKey   string

	// File upload service
	UploadEndpoint string
	UploadPreset   string

	// Admin access
	AdminPassword string
	JWTSecret     string
	AdminPhone    string // WhatsApp number for donation notifications
}

// Load builds the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		ExpectedUPIID:       os.Getenv("EXPECTED_UPI_ID"),
		ConfidenceThreshold: ConfidenceThreshold,
		VisionEndpoint:      os.Getenv("VISION_API_ENDPOINT"),
		VisionAPIKey:        os.Getenv("VISION_API_KEY"),
		UploadEndpoint:      os.Getenv("UPLOAD_API_ENDPOINT"),
		UploadPreset:        getEnv("UPLOAD_PRESET", "sevasetu"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AdminPhone:          os.Getenv("ADMIN_WHATSAPP"),
	}

	if v := os.Getenv("CONFIDENCE_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil || threshold < 0 || threshold > 1 {
			return nil, fmt.Errorf("invalid CONFIDENCE_THRESHOLD %q", v)
		}
		cfg.ConfidenceThreshold = threshold
	}

	if cfg.ExpectedUPIID == "" {
		return nil, fmt.Errorf("EXPECTED_UPI_ID is required - donations cannot be verified without it")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
