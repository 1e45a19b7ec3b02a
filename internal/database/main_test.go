package database

import (
	"testing"
	"time"

	"asset-register/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite:file::memory:", &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type fixture struct {
	user    *models.User
	company *models.Company
	depot   *models.Depot
	class   *models.AssetClass
}

func newFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	user, err := CreateUser(db, "clerk@example.com", "s3cret-pass", UserFields{})
	require.NoError(t, err)
	company, err := CreateCompany(db, "Acme Holdings", user)
	require.NoError(t, err)
	depot, err := CreateDepot(db, DepotInput{
		Code:           "MNL",
		Name:           "Manila Depot",
		CompanyID:      company.ID,
		MapCoordinates: models.Coordinates{Latitude: 14.5995, Longitude: 120.9842},
	}, user)
	require.NoError(t, err)
	class, err := CreateAssetClass(db, "Vehicles", user)
	require.NoError(t, err)
	return fixture{user: user, company: company, depot: depot, class: class}
}

func (f fixture) assetInput(cost, life int64) AssetInput {
	return AssetInput{
		DateAcquired: mustDate("2024-01-15"),
		AssetClassID: f.class.ID,
		Description:  "Forklift",
		Location:     "Bay 3",
		DepotCode:    f.depot.Code,
		Quantity:     1,
		Unit:         "unit",
		SerialNumber: "FL-0091",
		Cost:         decimal.NewFromInt(cost),
		Life:         decimal.NewFromInt(life),
	}
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
