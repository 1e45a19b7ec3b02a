package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrSuperuserFlags is returned when a superuser is saved without staff or active.
var ErrSuperuserFlags = errors.New("superuser must be staff and active")

type Permission string

const (
	PermDisposeAsset  Permission = "can_dispose_asset"
	PermTransferAsset Permission = "can_transfer_asset"
)

func (p Permission) Valid() bool {
	return p == PermDisposeAsset || p == PermTransferAsset
}

// User is keyed by email, there is no username.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	FirstName    string `gorm:"size:150" json:"first_name"`
	LastName     string `gorm:"size:150" json:"last_name"`

	IsStaff     bool `gorm:"not null" json:"is_staff"`
	IsSuperuser bool `gorm:"not null" json:"is_superuser"`
	IsActive    bool `gorm:"not null" json:"is_active"`

	DateJoined time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`

	Permissions []UserPermission `gorm:"constraint:OnDelete:CASCADE" json:"permissions,omitempty"`
}

type UserPermission struct {
	ID       uint       `gorm:"primaryKey" json:"-"`
	UserID   uint       `gorm:"uniqueIndex:idx_user_perm;not null" json:"-"`
	Codename Permission `gorm:"uniqueIndex:idx_user_perm;type:varchar(100);not null" json:"codename"`
}

func (u User) String() string {
	return u.Email
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.IsSuperuser && (!u.IsStaff || !u.IsActive) {
		return ErrSuperuserFlags
	}
	return nil
}

// HasPerm reports whether the user holds perm. Permissions must be preloaded.
func (u *User) HasPerm(perm Permission) bool {
	if u == nil || !u.IsActive {
		return false
	}
	if u.IsSuperuser {
		return true
	}
	for _, p := range u.Permissions {
		if p.Codename == perm {
			return true
		}
	}
	return false
}
