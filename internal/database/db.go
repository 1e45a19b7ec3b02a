package database

import (
	"strings"
	"time"

	"asset-register/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

const sqlitePrefix = "sqlite:"

// Dialector picks the driver from the DSN. "sqlite:<path>" opens a local
// SQLite file with foreign keys on, anything else is handed to postgres.
func Dialector(dsn string) gorm.Dialector {
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		return sqlite.Open(SQLiteDSN(path))
	}
	return postgres.Open(dsn)
}

// SQLiteDSN turns on foreign key enforcement, which SQLite leaves off.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Open connects without migrating. SQLite gets a single connection: writers
// serialize there anyway, and an in-memory database lives per connection.
func Open(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &gorm.Config{}
	}
	// unique and foreign key violations surface as gorm.ErrDuplicatedKey
	// and gorm.ErrForeignKeyViolated
	cfg.TranslateError = true
	db, err := gorm.Open(Dialector(dsn), cfg)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(dsn, sqlitePrefix) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.WithField("attempt", i).Infof("connecting to database (max %d attempts)", maxAttempts)

		DB, err = Open(dsn, &gorm.Config{})
		if err == nil {
			log.Info("connected to database")
			break
		}

		log.WithError(err).Warn("failed to connect to database")
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.WithError(err).Fatalf("failed to connect to database after %d attempts", maxAttempts)
	}

	if err := Migrate(DB); err != nil {
		log.WithError(err).Fatal("failed to migrate")
	}
}

// Migrate creates or updates every table. Parents come before children so
// the foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserPermission{},
		&models.Company{},
		&models.Depot{},
		&models.DepotAssetID{},
		&models.AssetClass{},
		&models.Asset{},
		&models.MonthlyDepreciation{},
		&models.AuditLog{},
	)
}

// SeedSuperuser creates the bootstrap superuser unless one already exists.
func SeedSuperuser(db *gorm.DB, email, password string) {
	var count int64
	if err := db.Model(&models.User{}).
		Where("is_superuser = ?", true).
		Count(&count).Error; err != nil {
		log.WithError(err).Error("failed to check for superuser")
		return
	}
	if count > 0 {
		return
	}

	if password == "" {
		log.Warn("no superuser exists and ADMIN_PASSWORD is empty, skipping seed")
		return
	}

	user, err := CreateSuperuser(db, email, password, UserFields{})
	if err != nil {
		log.WithError(err).WithField("email", email).Error("failed to create superuser")
		return
	}

	log.WithField("email", user.Email).Info("created superuser")
}
