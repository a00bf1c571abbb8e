package services

import "fmt"

// ValidationError means the submission itself is invalid (bad amount,
// missing transaction id). Nothing is persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// DuplicateTransactionError means the transaction id has already been
// submitted. Surfaced distinctly from validation so the client can show
// "already submitted" rather than "invalid input".
type DuplicateTransactionError struct {
	TransactionID string
}

func (e *DuplicateTransactionError) Error() string {
	return fmt.Sprintf("transaction %s has already been submitted", e.TransactionID)
}

// ExtractionServiceError means the vision model call failed for a reason
// other than quota exhaustion. The submitter can retry or fall back to
// manual entry; no donation record is created.
type ExtractionServiceError struct {
	Message string
}

func (e *ExtractionServiceError) Error() string {
	return fmt.Sprintf("receipt extraction failed: %s", e.Message)
}
