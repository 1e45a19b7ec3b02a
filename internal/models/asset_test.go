package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssetStatus(t *testing.T) {
	cases := map[string]AssetStatus{
		"A":         StatusActive,
		"active":    StatusActive,
		"IA":        StatusInactive,
		"Inactive":  StatusInactive,
		"d":         StatusDisposed,
		" Idle ":    StatusIdle,
		"IN":        StatusInstalled,
		"installed": StatusInstalled,
		"R":         StatusReclass,
	}
	for in, want := range cases {
		got, err := ParseAssetStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "X", "Retired", "AA"} {
		_, err := ParseAssetStatus(bad)
		assert.ErrorIs(t, err, ErrInvalidStatus, bad)
	}
}

func TestAssetStatusesAreSix(t *testing.T) {
	assert.Len(t, AssetStatuses, 6)
	for _, s := range AssetStatuses {
		assert.True(t, s.Valid())
		assert.NotEmpty(t, s.Label())
	}
	assert.False(t, AssetStatus("Z").Valid())
}

func TestAssetBeforeSave(t *testing.T) {
	a := &Asset{}
	require.NoError(t, a.BeforeSave(nil))
	assert.Equal(t, StatusActive, a.Status)

	a.Status = "Broken"
	assert.ErrorIs(t, a.BeforeSave(nil), ErrInvalidStatus)
}

func TestDerivedValues(t *testing.T) {
	a := &Asset{Cost: decimal.NewFromInt(1200), Life: decimal.NewFromInt(12)}

	monthly, err := a.MonthlyDepreciationExpense()
	require.NoError(t, err)
	assert.True(t, monthly.Equal(decimal.NewFromInt(100)))

	assert.True(t, a.NetBookValue(decimal.NewFromInt(200)).Equal(decimal.NewFromInt(1000)))
	assert.True(t, a.NetBookValue(decimal.Zero).Equal(a.Cost))

	v := a.Valuation(decimal.NewFromInt(200))
	assert.True(t, v.AccumulatedDepreciation.Equal(decimal.NewFromInt(200)))
	assert.True(t, v.NetBookValue.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, v.MonthlyExpense)
	assert.True(t, v.MonthlyExpense.Equal(decimal.NewFromInt(100)))
}

func TestZeroLifeIsGuarded(t *testing.T) {
	a := &Asset{Cost: decimal.NewFromInt(1200)}

	_, err := a.MonthlyDepreciationExpense()
	assert.ErrorIs(t, err, ErrZeroLife)

	v := a.Valuation(decimal.Zero)
	assert.Nil(t, v.MonthlyExpense)
	assert.True(t, v.NetBookValue.Equal(a.Cost))
}
