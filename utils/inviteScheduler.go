package utils

import (
	"log"
	"time"

	"rateapp/database"
	"rateapp/models"

	"github.com/robfig/cron/v3"
)

// InitializeInviteScheduler sets up the invite housekeeping scheduler
func InitializeInviteScheduler() {
	log.Println("[INVITE-SCHEDULER] Initializing invite scheduler...")

	c := cron.New()

	// Run daily at 3 AM to purge expired unused invites
	c.AddFunc("0 3 * * *", func() {
		log.Println("[INVITE-SCHEDULER] Running daily invite cleanup...")
		PurgeExpiredInvites()
	})

	c.Start()
	log.Println("[INVITE-SCHEDULER] Invite scheduler started - runs daily at 3 AM")
}

// PurgeExpiredInvites deletes invites that expired without being redeemed
func PurgeExpiredInvites() {
	db := database.Database.Db

	result := db.Where("used_by_user_id IS NULL AND expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&models.Invite{})
	if result.Error != nil {
		log.Printf("[INVITE-SCHEDULER] Error purging expired invites: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[INVITE-SCHEDULER] Purged %d expired invites", result.RowsAffected)
	}
}
