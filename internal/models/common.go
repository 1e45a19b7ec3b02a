package models

import "time"

// Audited carries who touched a record and when. The user references are
// plain ids: deleting a user clears them, it never removes the record.
type Audited struct {
	CreatedByID *uint `gorm:"index" json:"created_by_id"`
	UpdatedByID *uint `gorm:"index" json:"updated_by_id"`

	DateCreated time.Time `gorm:"<-:create;autoCreateTime" json:"date_created"`
	DateUpdated time.Time `gorm:"autoUpdateTime" json:"date_updated"`
}

// StampCreated marks by as creator and last updater of a new record.
func (a *Audited) StampCreated(by *User) {
	if by == nil {
		return
	}
	id := by.ID
	a.CreatedByID = &id
	a.UpdatedByID = &id
}

func (a *Audited) StampUpdated(by *User) {
	if by == nil {
		return
	}
	id := by.ID
	a.UpdatedByID = &id
}

// AuditedTables lists the tables embedding Audited.
var AuditedTables = []string{"companies", "depots", "asset_classes", "assets"}
