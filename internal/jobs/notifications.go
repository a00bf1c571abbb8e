package jobs

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/SevaSetu/sevasetu-backend/internal/services"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

// NotificationJob handles scheduled admin notifications
type NotificationJob struct {
	store         storage.Store
	twilioService *services.TwilioService
	adminPhone    string
	isRunning     atomic.Bool
}

// NewNotificationJob creates a new notification job scheduler
func NewNotificationJob(store storage.Store, twilioService *services.TwilioService, adminPhone string) *NotificationJob {
	return &NotificationJob{
		store:         store,
		twilioService: twilioService,
		adminPhone:    adminPhone,
	}
}

// Start begins all scheduled notification jobs
func (n *NotificationJob) Start() {
	if n.isRunning.Load() {
		log.Println("Notification jobs already running")
		return
	}

	n.isRunning.Store(true)
	log.Println("Starting scheduled notification jobs...")

	go n.scheduleDailySummary()

	log.Println("All notification jobs started successfully")
}

// Stop halts all scheduled jobs
func (n *NotificationJob) Stop() {
	n.isRunning.Store(false)
	log.Println("Stopping scheduled notification jobs...")
}

// DAILY SUMMARY - Runs every day at 9 AM
func (n *NotificationJob) scheduleDailySummary() {
	for n.isRunning.Load() {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		duration := next.Sub(now)
		log.Printf("Next daily donation summary in %v", duration)
		time.Sleep(duration)

		if !n.isRunning.Load() {
			break
		}

		n.sendDailySummary()
	}
}

// sendDailySummary sends the donation totals and review backlog to the admin
func (n *NotificationJob) sendDailySummary() {
	log.Println("Sending daily donation summary...")

	if n.twilioService == nil || n.adminPhone == "" {
		log.Println("Daily summary skipped - WhatsApp not configured")
		return
	}

	stats, err := n.store.GetDonationStats()
	if err != nil {
		log.Printf("Error getting donation stats for daily summary: %v", err)
		return
	}

	message := fmt.Sprintf(
		"🪔 SevaSetu daily summary\n\nTotal donations: %d\nVerified: %d (₹%.0f)\nAwaiting review: %d\nRejected: %d",
		stats.Total, stats.Verified, stats.TotalAmountVerified, stats.Pending, stats.Rejected,
	)

	if err := n.twilioService.SendWhatsAppMessage(n.adminPhone, message); err != nil {
		log.Printf("Failed to send daily summary: %v", err)
		return
	}

	log.Println("Daily donation summary sent")
}
