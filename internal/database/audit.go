package database

import (
	"asset-register/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateAuditLog records an action in the audit trail. Failures are logged
// and never abort the caller.
func CreateAuditLog(db *gorm.DB, by *models.User, entity, key string, action models.AuditAction, details string) {
	if db == nil {
		return
	}
	record := models.AuditLog{
		Entity:    entity,
		EntityKey: key,
		Action:    action,
		Details:   details,
	}
	if by != nil {
		id := by.ID
		record.UserID = &id
	}
	if err := db.Create(&record).Error; err != nil {
		log.WithError(err).WithFields(log.Fields{
			"entity": entity,
			"key":    key,
			"action": action,
		}).Error("failed to write audit log")
	}
}

func ListAuditLogs(db *gorm.DB, entity, key string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	q := db.Preload("User").Order("created_at desc, id desc").Limit(limit)
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if key != "" {
		q = q.Where("entity_key = ?", key)
	}
	var logs []models.AuditLog
	err := q.Find(&logs).Error
	return logs, err
}
