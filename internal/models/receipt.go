package models

// ReceiptFields is the structured data extracted from a UPI payment screenshot
type ReceiptFields struct {
	SenderName     string `json:"sender_name"`
	SenderPhone    string `json:"sender_phone"`
	SenderAccount  string `json:"sender_account"`
	SenderUPIID    string `json:"sender_upi_id"`
	RecipientName  string `json:"recipient_name"`
	RecipientUPIID string `json:"recipient_upi_id"`

	// Amount may come back from the model as a number or a formatted
	// string ("₹1,50,000") - callers normalize before use
	Amount interface{} `json:"amount"`

	PaymentStatus string  `json:"payment_status"`
	TransactionID string  `json:"transaction_id"`
	Timestamp     string  `json:"timestamp"`
	PaymentMethod string  `json:"payment_method"`
	Confidence    float64 `json:"confidence"`
	Notes         string  `json:"notes"`

	// True when the vision service was unavailable and a placeholder
	// result was substituted so the submission could still proceed
	Degraded bool `json:"-"`
}
