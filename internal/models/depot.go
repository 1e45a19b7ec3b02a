package models

import (
	"errors"
	"fmt"
)

var ErrCoordinatesRange = errors.New("coordinates out of range")

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `gorm:"not null;default:0" json:"latitude"`
	Longitude float64 `gorm:"not null;default:0" json:"longitude"`
}

func (p Coordinates) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrCoordinatesRange, p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrCoordinatesRange, p.Longitude)
	}
	return nil
}

func (p Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}

// Depot is identified by its human-assigned code.
type Depot struct {
	Code      string   `gorm:"primaryKey;size:10" json:"code"`
	Name      string   `gorm:"size:150;not null" json:"name"`
	CompanyID uint     `gorm:"not null;index" json:"company_id"`
	Company   *Company `gorm:"constraint:OnDelete:RESTRICT" json:"company,omitempty"`

	MapCoordinates Coordinates `gorm:"embedded;embeddedPrefix:map_" json:"map_coordinates"`
	Audited
}

func (d Depot) String() string {
	return d.Name
}

// DepotAssetID holds the next asset number to issue for a depot.
type DepotAssetID struct {
	ID        uint   `gorm:"primaryKey"`
	DepotCode string `gorm:"uniqueIndex;size:10;not null"`
	Depot     *Depot `gorm:"foreignKey:DepotCode;references:Code;constraint:OnDelete:CASCADE"`
	NextID    int64  `gorm:"not null;default:1"`
}

func (DepotAssetID) TableName() string {
	return "depot_asset_ids"
}

// FormatAssetNo renders an issued counter value as an asset tag.
func FormatAssetNo(depotCode string, n int64) string {
	return fmt.Sprintf("%s-%05d", depotCode, n)
}
