package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// VisionClient calls the external vision-capable model service
type VisionClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// VisionRequest is the payload sent to the vision service
type VisionRequest struct {
	Prompt    string `json:"prompt"`
	ImageData string `json:"imageData"` // base64-encoded
	MimeType  string `json:"mimeType"`
}

// VisionResponse wraps the model's raw text response
type VisionResponse struct {
	Data string `json:"data"`
}

// NewVisionClient creates a new vision service client. The timeout is
// generous because model responses routinely take several seconds.
func NewVisionClient(endpoint, apiKey string) *VisionClient {
	return &VisionClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Analyze sends an image plus instruction prompt to the vision model and
// returns the model's raw text response
func (c *VisionClient) Analyze(prompt string, image []byte, mimeType string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("vision API key not configured")
	}

	reqBody := VisionRequest{
		Prompt:    prompt,
		ImageData: base64.StdEncoding.EncodeToString(image),
		MimeType:  mimeType,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call vision API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// The status code stays in the message so quota failures ("429")
		// can be recognized upstream
		return "", fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(body))
	}

	var visionResp VisionResponse
	if err := json.Unmarshal(body, &visionResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if visionResp.Data == "" {
		return "", fmt.Errorf("empty response from vision API")
	}

	return visionResp.Data, nil
}
