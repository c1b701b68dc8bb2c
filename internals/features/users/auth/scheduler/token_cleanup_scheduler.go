package scheduler

import (
	"log"
	"time"

	authmodel "onboardku_backend/internals/features/users/auth/model"

	"gorm.io/gorm"
)

// StartTokenCleanupScheduler prunes expired blacklist entries and dead
// refresh tokens once an hour so the tables never grow unbounded.
func StartTokenCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			cleanupOnce(db)
			<-ticker.C
		}
	}()
}

func cleanupOnce(db *gorm.DB) {
	now := time.Now().UTC()

	res := db.Unscoped().
		Where("expired_at < ?", now).
		Delete(&authmodel.TokenBlacklist{})
	if res.Error != nil {
		log.Printf("[CLEANUP] blacklist prune failed: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[CLEANUP] removed %d expired blacklist token(s)", res.RowsAffected)
	}

	res = db.
		Where("expires_at < ? OR revoked_at IS NOT NULL AND revoked_at < ?", now, now.Add(-24*time.Hour)).
		Delete(&authmodel.RefreshTokenModel{})
	if res.Error != nil {
		log.Printf("[CLEANUP] refresh token prune failed: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[CLEANUP] removed %d stale refresh token(s)", res.RowsAffected)
	}
}
