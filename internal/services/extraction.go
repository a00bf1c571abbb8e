package services

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
)

// extractionPrompt is the fixed instruction sent with every receipt image.
// The field names must match models.ReceiptFields' JSON tags.
const extractionPrompt = `You are reading a screenshot of a completed UPI payment confirmation screen.
Return ONLY a JSON object with exactly these keys:
{
  "sender_name": string, "sender_phone": string, "sender_account": string,
  "sender_upi_id": string, "recipient_name": string, "recipient_upi_id": string,
  "amount": number, "payment_status": string, "transaction_id": string,
  "timestamp": string, "payment_method": string,
  "confidence": number between 0 and 1, "notes": string
}
Use an empty string for any field not visible on the screen. Do not add commentary.`

// ReceiptExtractor turns a receipt image into structured fields. It is an
// interface so tests can feed canned model responses instead of calling
// the real vision service.
type ReceiptExtractor interface {
	ExtractReceipt(image []byte, mimeType string) (*models.ReceiptFields, error)
}

// VisionCaller is the transport the extractor speaks through
type VisionCaller interface {
	Analyze(prompt string, image []byte, mimeType string) (string, error)
}

// VisionExtractor extracts receipt fields via the external vision model
type VisionExtractor struct {
	client VisionCaller
}

// NewVisionExtractor creates an extractor backed by the given vision client
func NewVisionExtractor(client VisionCaller) *VisionExtractor {
	return &VisionExtractor{client: client}
}

// ExtractReceipt sends the image to the vision model and parses the
// response. Quota/rate-limit failures degrade to a clearly flagged
// placeholder result so submissions keep flowing during outages; all other
// failures surface as ExtractionServiceError with the original message.
func (e *VisionExtractor) ExtractReceipt(image []byte, mimeType string) (*models.ReceiptFields, error) {
	raw, err := e.client.Analyze(extractionPrompt, image, mimeType)
	if err != nil {
		if isQuotaError(err) {
			log.Printf("⚠️  Vision service quota exhausted, substituting degraded result: %v", err)
			return degradedReceiptFields(), nil
		}
		return nil, &ExtractionServiceError{Message: err.Error()}
	}

	fields, err := parseReceiptResponse(raw)
	if err != nil {
		return nil, &ExtractionServiceError{Message: err.Error()}
	}

	// Clamp confidence into [0,1] - model output is not trusted
	if fields.Confidence < 0 {
		fields.Confidence = 0
	} else if fields.Confidence > 1 {
		fields.Confidence = 1
	}

	return fields, nil
}

// parseReceiptResponse pulls the JSON object out of the model's free-text
// response. Models sometimes wrap the object in commentary or markdown
// fences, so the first {...} substring is tried before the whole body.
func parseReceiptResponse(raw string) (*models.ReceiptFields, error) {
	candidate := raw
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			candidate = raw[start : end+1]
		}
	}

	var fields models.ReceiptFields
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return nil, err
	}
	return &fields, nil
}

// isQuotaError reports whether the vision call failed on a rate-limit or
// quota signal rather than a genuine processing error
func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit")
}

// degradedReceiptFields is the placeholder substituted when the vision
// service is unavailable. Zero confidence and the Degraded marker route the
// donation to manual review - it must never come out auto-verified.
func degradedReceiptFields() *models.ReceiptFields {
	return &models.ReceiptFields{
		Confidence: 0,
		Notes:      "Automatic extraction unavailable (service quota exceeded). Fields require manual review.",
		Degraded:   true,
	}
}
