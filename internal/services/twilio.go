package services

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
)

// TwilioService sends WhatsApp notifications to the NGO admin
type TwilioService struct {
	client     *twilio.RestClient
	from       string // Twilio WhatsApp number, format "whatsapp:+14155238886"
	adminPhone string
}

// NewTwilioService creates a new Twilio service instance
func NewTwilioService(adminPhone string) (*TwilioService, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_WHATSAPP_FROM")

	if accountSid == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &TwilioService{
		client:     client,
		from:       from,
		adminPhone: adminPhone,
	}, nil
}

// SendWhatsAppMessage sends a WhatsApp message via Twilio
func (t *TwilioService) SendWhatsAppMessage(to string, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", to))
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send WhatsApp message: %v", err)
		return err
	}

	log.Printf("✅ WhatsApp message sent! SID: %s", *resp.Sid)
	return nil
}

// NotifyDonation sends the admin a summary of a newly created donation
func (t *TwilioService) NotifyDonation(donation *models.Donation) error {
	if t.adminPhone == "" {
		return fmt.Errorf("admin WhatsApp number not configured")
	}

	statusLine := "⏳ Pending manual review"
	if donation.Status == models.DonationStatusVerified {
		statusLine = "✅ Auto-verified"
	}
	if donation.ExtractionDegraded {
		statusLine += " (receipt NOT machine-read)"
	}

	message := fmt.Sprintf(
		"🪔 New donation received!\n\nDonor: %s\nAmount: ₹%.0f\nTxn: %s\nStatus: %s",
		donation.DonorName, donation.Amount, donation.TransactionID, statusLine,
	)

	return t.SendWhatsAppMessage(t.adminPhone, message)
}
