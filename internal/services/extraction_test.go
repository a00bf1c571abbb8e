package services

import (
	"errors"
	"testing"
)

// stubVisionCaller feeds canned model responses to the extractor
type stubVisionCaller struct {
	response string
	err      error
}

func (s *stubVisionCaller) Analyze(prompt string, image []byte, mimeType string) (string, error) {
	return s.response, s.err
}

const cleanReceiptJSON = `{
	"sender_name": "Asha Rao",
	"sender_phone": "+919876543210",
	"sender_account": "HDFC Bank ****4521",
	"sender_upi_id": "asharao@okhdfcbank",
	"recipient_name": "SevaSetu Foundation",
	"recipient_upi_id": "mk10092004-1@oksbi",
	"amount": 500,
	"payment_status": "Completed",
	"transaction_id": "TXN-1",
	"timestamp": "14 Mar 2025, 10:30 AM",
	"payment_method": "UPI",
	"confidence": 0.92,
	"notes": ""
}`

func TestExtractReceiptParsesCleanJSON(t *testing.T) {
	extractor := NewVisionExtractor(&stubVisionCaller{response: cleanReceiptJSON})

	fields, err := extractor.ExtractReceipt([]byte("fake-image"), "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fields.RecipientUPIID != "mk10092004-1@oksbi" {
		t.Errorf("recipient UPI = %q, want mk10092004-1@oksbi", fields.RecipientUPIID)
	}
	if fields.TransactionID != "TXN-1" {
		t.Errorf("transaction id = %q, want TXN-1", fields.TransactionID)
	}
	if fields.Confidence != 0.92 {
		t.Errorf("confidence = %v, want 0.92", fields.Confidence)
	}
	if fields.Degraded {
		t.Error("clean extraction should not be marked degraded")
	}
}

func TestExtractReceiptParsesJSONWrappedInProse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{
			name:     "commentary before and after",
			response: "Here is the extracted data:\n" + cleanReceiptJSON + "\nLet me know if you need anything else!",
		},
		{
			name:     "markdown fenced",
			response: "```json\n" + cleanReceiptJSON + "\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewVisionExtractor(&stubVisionCaller{response: tt.response})

			fields, err := extractor.ExtractReceipt([]byte("fake-image"), "image/png")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fields.TransactionID != "TXN-1" {
				t.Errorf("transaction id = %q, want TXN-1", fields.TransactionID)
			}
		})
	}
}

func TestExtractReceiptMalformedResponse(t *testing.T) {
	extractor := NewVisionExtractor(&stubVisionCaller{response: "sorry, I could not read this image"})

	_, err := extractor.ExtractReceipt([]byte("fake-image"), "image/png")
	if err == nil {
		t.Fatal("expected error for unparseable response")
	}

	var extractionErr *ExtractionServiceError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionServiceError, got %T", err)
	}
}

func TestExtractReceiptQuotaDegradesGracefully(t *testing.T) {
	quotaErrors := []string{
		"vision API error (status 429): too many requests",
		"quota exceeded for this project",
		"rate limit reached, retry later",
	}

	for _, msg := range quotaErrors {
		t.Run(msg, func(t *testing.T) {
			extractor := NewVisionExtractor(&stubVisionCaller{err: errors.New(msg)})

			fields, err := extractor.ExtractReceipt([]byte("fake-image"), "image/png")
			if err != nil {
				t.Fatalf("quota failure must not propagate as error, got: %v", err)
			}
			if !fields.Degraded {
				t.Error("degraded flag must be set")
			}
			if fields.Confidence != 0 {
				t.Errorf("degraded confidence = %v, want 0", fields.Confidence)
			}
		})
	}
}

func TestExtractReceiptOtherFailuresSurface(t *testing.T) {
	extractor := NewVisionExtractor(&stubVisionCaller{err: errors.New("connection refused")})

	_, err := extractor.ExtractReceipt([]byte("fake-image"), "image/png")
	if err == nil {
		t.Fatal("expected error for non-quota failure")
	}

	var extractionErr *ExtractionServiceError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionServiceError, got %T", err)
	}
	if extractionErr.Message != "connection refused" {
		t.Errorf("original message lost: %q", extractionErr.Message)
	}
}

func TestExtractReceiptClampsConfidence(t *testing.T) {
	extractor := NewVisionExtractor(&stubVisionCaller{
		response: `{"transaction_id": "TXN-9", "confidence": 1.7}`,
	})

	fields, err := extractor.ExtractReceipt([]byte("fake-image"), "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", fields.Confidence)
	}
}
