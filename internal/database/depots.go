package database

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"asset-register/internal/models"

	"gorm.io/gorm"
)

type DepotInput struct {
	Code           string
	Name           string
	CompanyID      uint
	MapCoordinates models.Coordinates
}

func (in *DepotInput) normalize() error {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	if in.Code == "" {
		return invalid("code", "must not be empty")
	}
	if utf8.RuneCountInString(in.Code) > 10 {
		return invalid("code", "must be at most 10 characters")
	}
	name, err := validName("name", in.Name)
	if err != nil {
		return err
	}
	in.Name = name
	if in.CompanyID == 0 {
		return invalid("company_id", "is required")
	}
	if err := in.MapCoordinates.Validate(); err != nil {
		return invalid("map_coordinates", err.Error())
	}
	return nil
}

// CreateDepot saves a depot and its asset number counter together.
func CreateDepot(db *gorm.DB, in DepotInput, by *models.User) (*models.Depot, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	depot := &models.Depot{
		Code:           in.Code,
		Name:           in.Name,
		CompanyID:      in.CompanyID,
		MapCoordinates: in.MapCoordinates,
	}
	depot.StampCreated(by)

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetCompany(tx, in.CompanyID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return invalid("company_id", "company does not exist")
			}
			return err
		}
		var count int64
		if err := tx.Model(&models.Depot{}).Where("code = ?", in.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return invalid("code", fmt.Sprintf("depot %s already exists", in.Code))
		}
		if err := tx.Create(depot).Error; err != nil {
			return err
		}
		return tx.Create(&models.DepotAssetID{DepotCode: depot.Code, NextID: 1}).Error
	})
	if err != nil {
		return nil, err
	}

	CreateAuditLog(db, by, "depot", depot.Code, models.ActionCreate, "created depot "+depot.Name)
	return depot, nil
}

func GetDepot(db *gorm.DB, code string) (*models.Depot, error) {
	var depot models.Depot
	if err := db.Preload("Company").Where("code = ?", strings.ToUpper(code)).First(&depot).Error; err != nil {
		return nil, notFound("depot", code, err)
	}
	return &depot, nil
}

// ListDepots returns every depot, or only the company's when companyID is set.
func ListDepots(db *gorm.DB, companyID uint) ([]models.Depot, error) {
	q := db.Preload("Company").Order("code asc")
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	var depots []models.Depot
	err := q.Find(&depots).Error
	return depots, err
}

// UpdateDepot changes everything but the code.
func UpdateDepot(db *gorm.DB, code string, in DepotInput, by *models.User) (*models.Depot, error) {
	in.Code = code
	if err := in.normalize(); err != nil {
		return nil, err
	}
	depot, err := GetDepot(db, in.Code)
	if err != nil {
		return nil, err
	}
	if depot.CompanyID != in.CompanyID {
		if _, err := GetCompany(db, in.CompanyID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, invalid("company_id", "company does not exist")
			}
			return nil, err
		}
	}

	depot.Name = in.Name
	depot.CompanyID = in.CompanyID
	depot.Company = nil
	depot.MapCoordinates = in.MapCoordinates
	depot.StampUpdated(by)
	if err := db.Save(depot).Error; err != nil {
		return nil, err
	}
	CreateAuditLog(db, by, "depot", depot.Code, models.ActionUpdate, "updated depot "+depot.Name)
	return GetDepot(db, depot.Code)
}

// DeleteDepot refuses while any asset is held at the depot. The counter row
// goes with it.
func DeleteDepot(db *gorm.DB, code string, by *models.User) error {
	code = strings.ToUpper(code)
	err := db.Transaction(func(tx *gorm.DB) error {
		depot, err := GetDepot(tx, code)
		if err != nil {
			return err
		}
		var assets int64
		if err := tx.Model(&models.Asset{}).Where("depot_code = ?", code).Count(&assets).Error; err != nil {
			return err
		}
		if assets > 0 {
			return inUse("depot", depot.Code, "assets", assets)
		}
		if err := tx.Where("depot_code = ?", code).Delete(&models.DepotAssetID{}).Error; err != nil {
			return err
		}
		return tx.Where("code = ?", code).Delete(&models.Depot{}).Error
	})
	if err != nil {
		return err
	}
	CreateAuditLog(db, by, "depot", code, models.ActionDelete, "deleted depot "+code)
	return nil
}

// NextAssetNumber issues the depot's next asset number. The increment and the
// read happen on the same row inside tx, so concurrent issuers serialize on
// the row lock and a number is never handed out twice.
func NextAssetNumber(tx *gorm.DB, depotCode string) (int64, error) {
	res := tx.Model(&models.DepotAssetID{}).
		Where("depot_code = ?", depotCode).
		UpdateColumn("next_id", gorm.Expr("next_id + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// depots created before the counter existed
		return insertCounter(tx, depotCode)
	}
	return readIssued(tx, depotCode)
}

// insertCounter creates a missing counter and issues number 1. If another
// issuer created the row first, it falls back to incrementing that row. The
// insert runs under a savepoint so a failed attempt leaves tx usable.
func insertCounter(tx *gorm.DB, depotCode string) (int64, error) {
	err := tx.Transaction(func(sp *gorm.DB) error {
		return sp.Create(&models.DepotAssetID{DepotCode: depotCode, NextID: 2}).Error
	})
	if err == nil {
		return 1, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, err
	}

	res := tx.Model(&models.DepotAssetID{}).
		Where("depot_code = ?", depotCode).
		UpdateColumn("next_id", gorm.Expr("next_id + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	return readIssued(tx, depotCode)
}

func readIssued(tx *gorm.DB, depotCode string) (int64, error) {
	var counter models.DepotAssetID
	if err := tx.Where("depot_code = ?", depotCode).First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.NextID - 1, nil
}
