package database

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"asset-register/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AssetInput struct {
	AssetNo         string
	DateAcquired    time.Time
	AssetClassID    uint
	Description     string
	Location        string
	DepotCode       string
	Quantity        int
	Unit            string
	Remarks         string
	SerialNumber    string
	Status          models.AssetStatus
	AssetTagability string
	Cost            decimal.Decimal
	Life            decimal.Decimal
}

// maxAmount is the largest value a decimal(16,2) column holds.
var maxAmount = decimal.New(1, 14)

func maxLen(field, v string, n int) error {
	if utf8.RuneCountInString(v) > n {
		return invalid(field, fmt.Sprintf("must be at most %d characters", n))
	}
	return nil
}

func (in *AssetInput) normalize() error {
	in.AssetNo = strings.TrimSpace(in.AssetNo)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.DepotCode = strings.ToUpper(strings.TrimSpace(in.DepotCode))
	in.Unit = strings.TrimSpace(in.Unit)
	in.SerialNumber = strings.TrimSpace(in.SerialNumber)
	in.AssetTagability = strings.TrimSpace(in.AssetTagability)

	if in.Description == "" {
		return invalid("description", "must not be empty")
	}
	if in.DepotCode == "" {
		return invalid("depot_code", "is required")
	}
	if in.AssetClassID == 0 {
		return invalid("asset_class_id", "is required")
	}
	if in.DateAcquired.IsZero() {
		return invalid("date_acquired", "is required")
	}
	if in.Quantity < 0 {
		return invalid("quantity", "must not be negative")
	}
	if in.Cost.IsNegative() {
		return invalid("cost", "must not be negative")
	}
	if !in.Life.IsPositive() {
		return invalid("life", "must be greater than zero")
	}
	if in.Cost.GreaterThanOrEqual(maxAmount) || in.Life.GreaterThanOrEqual(maxAmount) {
		return invalid("cost", "exceeds 14 integer digits")
	}
	in.Cost = in.Cost.Round(2)
	in.Life = in.Life.Round(2)

	if in.Status == "" {
		in.Status = models.StatusActive
	}
	if !in.Status.Valid() {
		return invalid("status", fmt.Sprintf("unknown status %q", in.Status))
	}

	for _, f := range []struct {
		name string
		v    string
		n    int
	}{
		{"asset_no", in.AssetNo, 150},
		{"description", in.Description, 150},
		{"location", in.Location, 150},
		{"unit", in.Unit, 10},
		{"serial_number", in.SerialNumber, 150},
		{"asset_tagability", in.AssetTagability, 150},
		{"remarks", in.Remarks, 1000},
	} {
		if err := maxLen(f.name, f.v, f.n); err != nil {
			return err
		}
	}
	return nil
}

func assetKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func checkAssetRefs(tx *gorm.DB, depotCode string, classID uint) error {
	if _, err := GetDepot(tx, depotCode); err != nil {
		if errors.Is(err, ErrNotFound) {
			return invalid("depot_code", "depot does not exist")
		}
		return err
	}
	if _, err := GetAssetClass(tx, classID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return invalid("asset_class_id", "asset class does not exist")
		}
		return err
	}
	return nil
}

// CreateAsset registers an asset. Without an asset number one is issued from
// the depot's counter in the same transaction as the insert.
func CreateAsset(db *gorm.DB, in AssetInput, by *models.User) (*models.Asset, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	asset := &models.Asset{
		AssetNo:         in.AssetNo,
		DateAcquired:    in.DateAcquired,
		AssetClassID:    in.AssetClassID,
		Description:     in.Description,
		Location:        in.Location,
		DepotCode:       in.DepotCode,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		Remarks:         in.Remarks,
		SerialNumber:    in.SerialNumber,
		Status:          in.Status,
		AssetTagability: in.AssetTagability,
		Cost:            in.Cost,
		Life:            in.Life,
	}
	asset.StampCreated(by)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkAssetRefs(tx, in.DepotCode, in.AssetClassID); err != nil {
			return err
		}
		if asset.AssetNo == "" {
			n, err := NextAssetNumber(tx, asset.DepotCode)
			if err != nil {
				return fmt.Errorf("issue asset number: %w", err)
			}
			asset.AssetNo = models.FormatAssetNo(asset.DepotCode, n)
		}
		return tx.Create(asset).Error
	})
	if err != nil {
		return nil, err
	}

	CreateAuditLog(db, by, "asset", assetKey(asset.ID), models.ActionCreate,
		fmt.Sprintf("registered asset %s (%s) at %s", asset.AssetNo, asset.Description, asset.DepotCode))
	return asset, nil
}

func GetAsset(db *gorm.DB, id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := db.Preload("Depot").Preload("AssetClass").First(&asset, id).Error; err != nil {
		return nil, notFound("asset", id, err)
	}
	return &asset, nil
}

type AssetFilter struct {
	DepotCode    string
	AssetClassID uint
	Status       models.AssetStatus
}

func ListAssets(db *gorm.DB, f AssetFilter) ([]models.Asset, error) {
	q := db.Preload("Depot").Preload("AssetClass").Order("depot_code asc, asset_no asc")
	if f.DepotCode != "" {
		q = q.Where("depot_code = ?", strings.ToUpper(f.DepotCode))
	}
	if f.AssetClassID != 0 {
		q = q.Where("asset_class_id = ?", f.AssetClassID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var assets []models.Asset
	err := q.Find(&assets).Error
	return assets, err
}

// UpdateAsset edits the descriptive and financial fields. Depot moves go
// through TransferAsset and status changes through SetAssetStatus, so both
// must match the stored values here.
func UpdateAsset(db *gorm.DB, id uint, in AssetInput, by *models.User) (*models.Asset, error) {
	asset, err := GetAsset(db, id)
	if err != nil {
		return nil, err
	}
	if in.DepotCode == "" {
		in.DepotCode = asset.DepotCode
	}
	if in.Status == "" {
		in.Status = asset.Status
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if in.DepotCode != asset.DepotCode {
		return nil, invalid("depot_code", "use a transfer to move an asset")
	}
	if in.Status != asset.Status {
		return nil, invalid("status", "use a status change to update the status")
	}
	if in.AssetNo == "" {
		in.AssetNo = asset.AssetNo
	}
	if in.AssetClassID != asset.AssetClassID {
		if err := checkAssetRefs(db, asset.DepotCode, in.AssetClassID); err != nil {
			return nil, err
		}
	}

	asset.AssetNo = in.AssetNo
	asset.DateAcquired = in.DateAcquired
	asset.AssetClassID = in.AssetClassID
	asset.AssetClass = nil
	asset.Depot = nil
	asset.Description = in.Description
	asset.Location = in.Location
	asset.Quantity = in.Quantity
	asset.Unit = in.Unit
	asset.Remarks = in.Remarks
	asset.SerialNumber = in.SerialNumber
	asset.AssetTagability = in.AssetTagability
	asset.Cost = in.Cost
	asset.Life = in.Life
	asset.StampUpdated(by)

	if err := db.Save(asset).Error; err != nil {
		return nil, err
	}
	CreateAuditLog(db, by, "asset", assetKey(id), models.ActionUpdate, "updated asset "+asset.AssetNo)
	return GetAsset(db, id)
}

// SetAssetStatus moves an asset to any of the enumerated statuses.
func SetAssetStatus(db *gorm.DB, id uint, status models.AssetStatus, by *models.User) (*models.Asset, error) {
	if !status.Valid() {
		return nil, invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	asset, err := GetAsset(db, id)
	if err != nil {
		return nil, err
	}
	if asset.Status == status {
		return asset, nil
	}

	from := asset.Status
	updates := map[string]any{"status": status}
	if by != nil {
		updates["updated_by_id"] = by.ID
	}
	if err := db.Model(&models.Asset{ID: id}).Updates(updates).Error; err != nil {
		return nil, err
	}
	CreateAuditLog(db, by, "asset", assetKey(id), models.ActionStatusChange,
		fmt.Sprintf("%s: %s -> %s", asset.AssetNo, from.Label(), status.Label()))
	return GetAsset(db, id)
}

func DisposeAsset(db *gorm.DB, id uint, by *models.User) (*models.Asset, error) {
	return SetAssetStatus(db, id, models.StatusDisposed, by)
}

// TransferAsset moves an asset to another depot. An empty location keeps the
// current one. Disposed assets stay where they are.
func TransferAsset(db *gorm.DB, id uint, depotCode, location string, by *models.User) (*models.Asset, error) {
	depotCode = strings.ToUpper(strings.TrimSpace(depotCode))
	if depotCode == "" {
		return nil, invalid("depot_code", "is required")
	}
	location = strings.TrimSpace(location)
	if err := maxLen("location", location, 150); err != nil {
		return nil, err
	}

	asset, err := GetAsset(db, id)
	if err != nil {
		return nil, err
	}
	if asset.Status == models.StatusDisposed {
		return nil, invalid("status", "a disposed asset cannot be transferred")
	}
	if asset.DepotCode == depotCode {
		return nil, invalid("depot_code", "asset is already at "+depotCode)
	}
	if _, err := GetDepot(db, depotCode); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalid("depot_code", "depot does not exist")
		}
		return nil, err
	}

	from := asset.DepotCode
	updates := map[string]any{"depot_code": depotCode}
	if location != "" {
		updates["location"] = location
	}
	if by != nil {
		updates["updated_by_id"] = by.ID
	}
	if err := db.Model(&models.Asset{ID: id}).Updates(updates).Error; err != nil {
		return nil, err
	}
	CreateAuditLog(db, by, "asset", assetKey(id), models.ActionTransfer,
		fmt.Sprintf("%s: %s -> %s", asset.AssetNo, from, depotCode))
	return GetAsset(db, id)
}

// DeleteAsset removes an asset together with its depreciation ledger.
func DeleteAsset(db *gorm.DB, id uint, by *models.User) error {
	var assetNo string
	err := db.Transaction(func(tx *gorm.DB) error {
		asset, err := GetAsset(tx, id)
		if err != nil {
			return err
		}
		assetNo = asset.AssetNo
		if err := tx.Where("asset_id = ?", id).Delete(&models.MonthlyDepreciation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Asset{}, id).Error
	})
	if err != nil {
		return err
	}
	CreateAuditLog(db, by, "asset", assetKey(id), models.ActionDelete, "deleted asset "+assetNo)
	return nil
}
