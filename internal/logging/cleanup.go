package logging

import (
	"log/slog"
	"time"

	"github.com/crotools/cro-admin-backend/internal/models"
	"gorm.io/gorm"
)

const (
	systemLogRetentionDays  = 30
	queryAuditRetentionDays = 90
)

// StartCleanup runs a daily goroutine that prunes old system_logs and
// query_audits rows.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				prune(db, &models.SystemLog{}, "timestamp", systemLogRetentionDays)
				prune(db, &models.QueryAudit{}, "created_at", queryAuditRetentionDays)
			case <-done:
				return
			}
		}
	}()
}

func prune(db *gorm.DB, model any, column string, days int) {
	cutoff := time.Now().AddDate(0, 0, -days)
	result := db.Where(column+" < ?", cutoff).Delete(model)
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
	} else if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
}
