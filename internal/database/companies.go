package database

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"asset-register/internal/models"

	"gorm.io/gorm"
)

func validName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid(field, "must not be empty")
	}
	if utf8.RuneCountInString(name) > 150 {
		return "", invalid(field, "must be at most 150 characters")
	}
	return name, nil
}

func CreateCompany(db *gorm.DB, name string, by *models.User) (*models.Company, error) {
	name, err := validName("name", name)
	if err != nil {
		return nil, err
	}
	company := &models.Company{Name: name}
	company.StampCreated(by)
	if err := db.Create(company).Error; err != nil {
		return nil, err
	}
	CreateAuditLog(db, by, "company", strconv.FormatUint(uint64(company.ID), 10), models.ActionCreate, "created company "+company.Name)
	return company, nil
}

func GetCompany(db *gorm.DB, id uint) (*models.Company, error) {
	var company models.Company
	if err := db.First(&company, id).Error; err != nil {
		return nil, notFound("company", id, err)
	}
	return &company, nil
}

func ListCompanies(db *gorm.DB) ([]models.Company, error) {
	var companies []models.Company
	err := db.Order("name asc").Find(&companies).Error
	return companies, err
}

func UpdateCompany(db *gorm.DB, id uint, name string, by *models.User) (*models.Company, error) {
	name, err := validName("name", name)
	if err != nil {
		return nil, err
	}
	company, err := GetCompany(db, id)
	if err != nil {
		return nil, err
	}
	company.Name = name
	company.StampUpdated(by)
	if err := db.Save(company).Error; err != nil {
		return nil, err
	}
	CreateAuditLog(db, by, "company", strconv.FormatUint(uint64(id), 10), models.ActionUpdate, "renamed company to "+name)
	return company, nil
}

// DeleteCompany refuses while any depot belongs to the company.
func DeleteCompany(db *gorm.DB, id uint, by *models.User) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		company, err := GetCompany(tx, id)
		if err != nil {
			return err
		}
		var depots int64
		if err := tx.Model(&models.Depot{}).Where("company_id = ?", id).Count(&depots).Error; err != nil {
			return err
		}
		if depots > 0 {
			return inUse("company", company.Name, "depots", depots)
		}
		return tx.Delete(company).Error
	})
	if err != nil {
		return err
	}
	CreateAuditLog(db, by, "company", strconv.FormatUint(uint64(id), 10), models.ActionDelete, fmt.Sprintf("deleted company %d", id))
	return nil
}
