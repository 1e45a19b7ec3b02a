package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidStatus = errors.New("invalid asset status")
	ErrZeroLife      = errors.New("asset life is zero")
)

type AssetStatus string

const (
	StatusActive    AssetStatus = "A"
	StatusInactive  AssetStatus = "IA"
	StatusDisposed  AssetStatus = "D"
	StatusIdle      AssetStatus = "I"
	StatusInstalled AssetStatus = "IN"
	StatusReclass   AssetStatus = "R"
)

var statusLabels = map[AssetStatus]string{
	StatusActive:    "Active",
	StatusInactive:  "Inactive",
	StatusDisposed:  "Disposed",
	StatusIdle:      "Idle",
	StatusInstalled: "Installed",
	StatusReclass:   "Reclass",
}

// AssetStatuses is the full set in display order.
var AssetStatuses = []AssetStatus{
	StatusActive, StatusInactive, StatusDisposed, StatusIdle, StatusInstalled, StatusReclass,
}

func (s AssetStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s AssetStatus) Label() string {
	return statusLabels[s]
}

// ParseAssetStatus accepts a status code ("IA") or its label ("Inactive"),
// case-insensitively.
func ParseAssetStatus(v string) (AssetStatus, error) {
	v = strings.TrimSpace(v)
	for _, s := range AssetStatuses {
		if strings.EqualFold(v, string(s)) || strings.EqualFold(v, s.Label()) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
}

type Asset struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	AssetNo      string      `gorm:"size:150;not null;index" json:"asset_no"`
	DateAcquired time.Time   `gorm:"type:date;not null" json:"date_acquired"`
	AssetClassID uint        `gorm:"not null;index" json:"asset_class_id"`
	AssetClass   *AssetClass `gorm:"constraint:OnDelete:RESTRICT" json:"asset_class,omitempty"`
	Description  string      `gorm:"size:150;not null" json:"description"`
	Location     string      `gorm:"size:150" json:"location"`
	DepotCode    string      `gorm:"size:10;not null;index" json:"depot_code"`
	Depot        *Depot      `gorm:"foreignKey:DepotCode;references:Code;constraint:OnDelete:RESTRICT" json:"depot,omitempty"`
	Quantity     int         `gorm:"not null" json:"quantity"`
	Unit         string      `gorm:"size:10" json:"unit"`
	Remarks      string      `gorm:"type:text" json:"remarks"`
	SerialNumber string      `gorm:"size:150" json:"serial_number"`
	Status       AssetStatus `gorm:"type:varchar(3);not null;default:'A'" json:"status"`

	AssetTagability string `gorm:"size:150" json:"asset_tagability"`

	Cost decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"cost"`
	Life decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"life"`
	Audited

	Depreciation []MonthlyDepreciation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (a Asset) String() string {
	return a.Description
}

func (a *Asset) BeforeSave(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusActive
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	return nil
}

// MonthlyDepreciationExpense is cost spread evenly over life.
func (a *Asset) MonthlyDepreciationExpense() (decimal.Decimal, error) {
	if a.Life.IsZero() {
		return decimal.Zero, ErrZeroLife
	}
	return a.Cost.Div(a.Life), nil
}

// NetBookValue is cost less the accumulated depreciation, which the caller
// aggregates from the ledger.
func (a *Asset) NetBookValue(accumulated decimal.Decimal) decimal.Decimal {
	return a.Cost.Sub(accumulated)
}

// Valuation is the derived, never stored, view of an asset's book value.
type Valuation struct {
	Cost                    decimal.Decimal  `json:"cost"`
	AccumulatedDepreciation decimal.Decimal  `json:"accumulated_depreciation"`
	NetBookValue            decimal.Decimal  `json:"net_book_value"`
	MonthlyExpense          *decimal.Decimal `json:"monthly_depreciation_expense"`
}

func (a *Asset) Valuation(accumulated decimal.Decimal) Valuation {
	v := Valuation{
		Cost:                    a.Cost,
		AccumulatedDepreciation: accumulated,
		NetBookValue:            a.NetBookValue(accumulated),
	}
	if m, err := a.MonthlyDepreciationExpense(); err == nil {
		v.MonthlyExpense = &m
	}
	return v
}

// MonthlyDepreciation is one period's expense for an asset. Rows are append-only.
type MonthlyDepreciation struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	AssetID   uint            `gorm:"not null;index" json:"asset_id"`
	DateAdded time.Time       `gorm:"<-:create;type:date;not null" json:"date_added"`
	Expense   decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"expense"`
}

func (MonthlyDepreciation) TableName() string {
	return "monthly_depreciations"
}

// BeforeCreate stamps the posting date; callers cannot choose it.
func (m *MonthlyDepreciation) BeforeCreate(tx *gorm.DB) error {
	now := tx.NowFunc()
	m.DateAdded = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}
