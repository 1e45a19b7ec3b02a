package database

import (
	"errors"

	"asset-register/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccumulatedDepreciation sums the asset's ledger. An empty ledger is zero.
// Rows are scale 2, so the sum is rounded back to cents: SQLite sums the
// column as a float.
func AccumulatedDepreciation(db *gorm.DB, assetID uint) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := db.Model(&models.MonthlyDepreciation{}).
		Select("SUM(expense)").
		Where("asset_id = ?", assetID).
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal.Round(2), nil
}

// AssetValuation computes the derived book values of an asset on read.
func AssetValuation(db *gorm.DB, asset *models.Asset) (models.Valuation, error) {
	acc, err := AccumulatedDepreciation(db, asset.ID)
	if err != nil {
		return models.Valuation{}, err
	}
	return asset.Valuation(acc), nil
}

func ListDepreciation(db *gorm.DB, assetID uint) ([]models.MonthlyDepreciation, error) {
	if _, err := GetAsset(db, assetID); err != nil {
		return nil, err
	}
	var rows []models.MonthlyDepreciation
	err := db.Where("asset_id = ?", assetID).Order("date_added asc, id asc").Find(&rows).Error
	return rows, err
}

// RecordDepreciation appends one period's expense to the asset's ledger.
func RecordDepreciation(db *gorm.DB, assetID uint, expense decimal.Decimal, by *models.User) (*models.MonthlyDepreciation, error) {
	if !expense.IsPositive() {
		return nil, invalid("expense", "must be greater than zero")
	}
	if expense.GreaterThanOrEqual(maxAmount) {
		return nil, invalid("expense", "exceeds 14 integer digits")
	}
	asset, err := GetAsset(db, assetID)
	if err != nil {
		return nil, err
	}

	row := &models.MonthlyDepreciation{AssetID: assetID, Expense: expense.Round(2)}
	if err := db.Create(row).Error; err != nil {
		return nil, err
	}
	CreateAuditLog(db, by, "asset", assetKey(assetID), models.ActionDepreciate,
		asset.AssetNo+": recorded depreciation "+row.Expense.StringFixed(2))
	return row, nil
}

// DepreciateAsset posts one month at cost/life, capped at what is left of the
// net book value. Disposed and fully depreciated assets are refused.
func DepreciateAsset(db *gorm.DB, assetID uint, by *models.User) (*models.MonthlyDepreciation, error) {
	var row *models.MonthlyDepreciation
	var assetNo string
	err := db.Transaction(func(tx *gorm.DB) error {
		asset, err := GetAsset(tx, assetID)
		if err != nil {
			return err
		}
		assetNo = asset.AssetNo
		if asset.Status == models.StatusDisposed {
			return invalid("status", "a disposed asset is not depreciated")
		}

		monthly, err := asset.MonthlyDepreciationExpense()
		if err != nil {
			return err
		}
		acc, err := AccumulatedDepreciation(tx, assetID)
		if err != nil {
			return err
		}
		remaining := asset.NetBookValue(acc)
		if !remaining.IsPositive() {
			return ErrFullyDepreciated
		}

		expense := decimal.Min(monthly, remaining).Round(2)
		if !expense.IsPositive() {
			return ErrFullyDepreciated
		}
		row = &models.MonthlyDepreciation{AssetID: assetID, Expense: expense}
		return tx.Create(row).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrZeroLife) {
			return nil, invalid("life", "asset life is zero")
		}
		return nil, err
	}

	CreateAuditLog(db, by, "asset", assetKey(assetID), models.ActionDepreciate,
		assetNo+": posted monthly depreciation "+row.Expense.StringFixed(2))
	return row, nil
}
