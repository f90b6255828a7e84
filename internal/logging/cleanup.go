package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const retention = 30 * 24 * time.Hour

// StartCleanup schedules a daily job deleting system_logs older than 30
// days. Stop the returned scheduler on shutdown.
func StartCleanup(db *gorm.DB) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc("@daily", func() { PurgeSystemLogs(db, time.Now()) }); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

// PurgeSystemLogs deletes entries logged before now minus the retention.
func PurgeSystemLogs(db *gorm.DB, now time.Time) int64 {
	cutoff := now.Add(-retention)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
		return 0
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
	return result.RowsAffected
}
