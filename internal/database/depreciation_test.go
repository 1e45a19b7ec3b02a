package database

import (
	"testing"
	"time"

	"asset-register/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestAccumulatedDepreciation(t *testing.T) {
	db := setupTestDB(t)
	f := newFixture(t, db)
	asset, err := CreateAsset(db, f.assetInput(1200, 12), f.user)
	require.NoError(t, err)

	t.Run("empty ledger is zero and book value is cost", func(t *testing.T) {
		acc, err := AccumulatedDepreciation(db, asset.ID)
		require.NoError(t, err)
		assert.True(t, acc.IsZero())

		v, err := AssetValuation(db, asset)
		require.NoError(t, err)
		assert.True(t, v.NetBookValue.Equal(dec("1200")), v.NetBookValue.String())
		require.NotNil(t, v.MonthlyExpense)
		assert.True(t, v.MonthlyExpense.Equal(dec("100")))
	})

	t.Run("sums the ledger", func(t *testing.T) {
		_, err := RecordDepreciation(db, asset.ID, dec("100"), f.user)
		require.NoError(t, err)
		_, err = RecordDepreciation(db, asset.ID, dec("100"), f.user)
		require.NoError(t, err)

		v, err := AssetValuation(db, asset)
		require.NoError(t, err)
		assert.True(t, v.AccumulatedDepreciation.Equal(dec("200")), v.AccumulatedDepreciation.String())
		assert.True(t, v.NetBookValue.Equal(dec("1000")), v.NetBookValue.String())
	})

	t.Run("fractional amounts", func(t *testing.T) {
		other, err := CreateAsset(db, f.assetInput(1000, 3), f.user)
		require.NoError(t, err)
		_, err = RecordDepreciation(db, other.ID, dec("333.33"), f.user)
		require.NoError(t, err)
		_, err = RecordDepreciation(db, other.ID, dec("333.33"), f.user)
		require.NoError(t, err)

		acc, err := AccumulatedDepreciation(db, other.ID)
		require.NoError(t, err)
		assert.True(t, acc.Equal(dec("666.66")), acc.String())
	})

	t.Run("cents add up exactly", func(t *testing.T) {
		other, err := CreateAsset(db, f.assetInput(1, 10), f.user)
		require.NoError(t, err)
		_, err = RecordDepreciation(db, other.ID, dec("0.1"), f.user)
		require.NoError(t, err)
		_, err = RecordDepreciation(db, other.ID, dec("0.2"), f.user)
		require.NoError(t, err)

		v, err := AssetValuation(db, other)
		require.NoError(t, err)
		assert.True(t, v.AccumulatedDepreciation.Equal(dec("0.3")), v.AccumulatedDepreciation.String())
		assert.True(t, v.NetBookValue.Equal(dec("0.7")), v.NetBookValue.String())
	})
}

func TestRecordDepreciation(t *testing.T) {
	db := setupTestDB(t)
	f := newFixture(t, db)
	asset, err := CreateAsset(db, f.assetInput(1200, 12), f.user)
	require.NoError(t, err)

	_, err = RecordDepreciation(db, asset.ID, decimal.Zero, f.user)
	require.ErrorIs(t, err, ErrValidation)
	_, err = RecordDepreciation(db, 999, dec("10"), f.user)
	require.ErrorIs(t, err, ErrNotFound)

	row, err := RecordDepreciation(db, asset.ID, dec("100"), f.user)
	require.NoError(t, err)
	assert.False(t, row.DateAdded.IsZero())

	t.Run("date added is write-once", func(t *testing.T) {
		original := row.DateAdded
		row.DateAdded = original.AddDate(-1, 0, 0)
		require.NoError(t, db.Save(row).Error)

		var stored models.MonthlyDepreciation
		require.NoError(t, db.First(&stored, row.ID).Error)
		assert.Equal(t, original.Format(time.DateOnly), stored.DateAdded.Format(time.DateOnly))
	})

	t.Run("several rows per period are allowed", func(t *testing.T) {
		_, err := RecordDepreciation(db, asset.ID, dec("100"), f.user)
		require.NoError(t, err)
		rows, err := ListDepreciation(db, asset.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}

func TestDepreciateAsset(t *testing.T) {
	db := setupTestDB(t)
	f := newFixture(t, db)

	t.Run("posts cost over life", func(t *testing.T) {
		asset, err := CreateAsset(db, f.assetInput(1200, 12), nil)
		require.NoError(t, err)
		row, err := DepreciateAsset(db, asset.ID, nil)
		require.NoError(t, err)
		assert.True(t, row.Expense.Equal(dec("100")), row.Expense.String())
	})

	t.Run("caps the last period at the book value", func(t *testing.T) {
		asset, err := CreateAsset(db, f.assetInput(250, 2), nil)
		require.NoError(t, err)

		first, err := DepreciateAsset(db, asset.ID, nil)
		require.NoError(t, err)
		assert.True(t, first.Expense.Equal(dec("125")))
		_, err = RecordDepreciation(db, asset.ID, dec("100"), nil)
		require.NoError(t, err)

		last, err := DepreciateAsset(db, asset.ID, nil)
		require.NoError(t, err)
		assert.True(t, last.Expense.Equal(dec("25")), last.Expense.String())

		_, err = DepreciateAsset(db, asset.ID, nil)
		require.ErrorIs(t, err, ErrFullyDepreciated)

		v, err := AssetValuation(db, asset)
		require.NoError(t, err)
		assert.True(t, v.NetBookValue.IsZero(), v.NetBookValue.String())
	})

	t.Run("refuses disposed assets", func(t *testing.T) {
		asset, err := CreateAsset(db, f.assetInput(100, 10), nil)
		require.NoError(t, err)
		_, err = DisposeAsset(db, asset.ID, nil)
		require.NoError(t, err)
		_, err = DepreciateAsset(db, asset.ID, nil)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("zero life stored by hand is reported, not divided", func(t *testing.T) {
		asset, err := CreateAsset(db, f.assetInput(100, 10), nil)
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.Asset{ID: asset.ID}).UpdateColumn("life", decimal.Zero).Error)

		_, err = DepreciateAsset(db, asset.ID, nil)
		require.ErrorIs(t, err, ErrValidation)
	})
}
