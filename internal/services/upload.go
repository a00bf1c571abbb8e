package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// UploadClient talks to the external file storage service. The core only
// keeps the returned URL as an opaque reference.
type UploadClient struct {
	endpoint   string
	preset     string
	httpClient *http.Client
}

// UploadResult is the storage service's reference to an uploaded file
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// NewUploadClient creates a new upload service client
func NewUploadClient(endpoint, preset string) *UploadClient {
	return &UploadClient{
		endpoint:   endpoint,
		preset:     preset,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload sends a file to the storage service and returns its URL reference
func (c *UploadClient) Upload(file []byte, filename, folder, resourceType string) (*UploadResult, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("upload endpoint not configured")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return nil, fmt.Errorf("failed to write file data: %w", err)
	}

	_ = writer.WriteField("folder", folder)
	_ = writer.WriteField("resource_type", resourceType)
	_ = writer.WriteField("upload_preset", c.preset)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequest("POST", c.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call upload API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %w", err)
	}

	return &result, nil
}
