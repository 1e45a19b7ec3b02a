package database

import (
	"fmt"
	"strconv"

	"asset-register/internal/models"

	"gorm.io/gorm"
)

func CreateAssetClass(db *gorm.DB, name string, by *models.User) (*models.AssetClass, error) {
	name, err := validName("name", name)
	if err != nil {
		return nil, err
	}
	class := &models.AssetClass{Name: name}
	class.StampCreated(by)
	if err := db.Create(class).Error; err != nil {
		return nil, err
	}
	CreateAuditLog(db, by, "asset_class", strconv.FormatUint(uint64(class.ID), 10), models.ActionCreate, "created asset class "+class.Name)
	return class, nil
}

func GetAssetClass(db *gorm.DB, id uint) (*models.AssetClass, error) {
	var class models.AssetClass
	if err := db.First(&class, id).Error; err != nil {
		return nil, notFound("asset class", id, err)
	}
	return &class, nil
}

func ListAssetClasses(db *gorm.DB) ([]models.AssetClass, error) {
	var classes []models.AssetClass
	err := db.Order("name asc").Find(&classes).Error
	return classes, err
}

func UpdateAssetClass(db *gorm.DB, id uint, name string, by *models.User) (*models.AssetClass, error) {
	name, err := validName("name", name)
	if err != nil {
		return nil, err
	}
	class, err := GetAssetClass(db, id)
	if err != nil {
		return nil, err
	}
	class.Name = name
	class.StampUpdated(by)
	if err := db.Save(class).Error; err != nil {
		return nil, err
	}
	CreateAuditLog(db, by, "asset_class", strconv.FormatUint(uint64(id), 10), models.ActionUpdate, "renamed asset class to "+name)
	return class, nil
}

// DeleteAssetClass refuses while any asset is filed under the class.
func DeleteAssetClass(db *gorm.DB, id uint, by *models.User) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		class, err := GetAssetClass(tx, id)
		if err != nil {
			return err
		}
		var assets int64
		if err := tx.Model(&models.Asset{}).Where("asset_class_id = ?", id).Count(&assets).Error; err != nil {
			return err
		}
		if assets > 0 {
			return inUse("asset class", class.Name, "assets", assets)
		}
		return tx.Delete(class).Error
	})
	if err != nil {
		return err
	}
	CreateAuditLog(db, by, "asset_class", strconv.FormatUint(uint64(id), 10), models.ActionDelete, fmt.Sprintf("deleted asset class %d", id))
	return nil
}
