package models

import "time"

type AuditAction string

const (
	ActionCreate       AuditAction = "create"
	ActionUpdate       AuditAction = "update"
	ActionDelete       AuditAction = "delete"
	ActionStatusChange AuditAction = "status_change"
	ActionTransfer     AuditAction = "transfer"
	ActionDepreciate   AuditAction = "depreciate"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnDelete:SET NULL" json:"user,omitempty"`

	Entity    string      `gorm:"size:50;not null;index:idx_audit_entity" json:"entity"` // "company", "depot", "asset", ...
	EntityKey string      `gorm:"size:150;not null;index:idx_audit_entity" json:"entity_key"`
	Action    AuditAction `gorm:"size:50;not null" json:"action"`
	Details   string      `gorm:"type:text" json:"details"`
}
