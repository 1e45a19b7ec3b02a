package database

import (
	"errors"
	"fmt"
	"strings"

	"asset-register/internal/models"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// unusablePassword never matches a bcrypt comparison.
const unusablePassword = "!"

var validate = validator.New()

// UserFields are the optional attributes of a new user. Nil flags take the
// defaults of the factory being called.
type UserFields struct {
	FirstName   string
	LastName    string
	IsStaff     *bool
	IsSuperuser *bool
	IsActive    *bool
}

// NormalizeEmail trims the address and lowercases its domain part. The local
// part is left alone.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return unusablePassword, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CreateUser creates and saves a user with the given email and password.
func CreateUser(db *gorm.DB, email, password string, f UserFields) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, invalid("email", "the email must be set")
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, invalid("email", "not a valid email address")
	}

	user := &models.User{
		Email:     email,
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		IsActive:  true,
	}
	if f.IsStaff != nil {
		user.IsStaff = *f.IsStaff
	}
	if f.IsSuperuser != nil {
		user.IsSuperuser = *f.IsSuperuser
	}
	if f.IsActive != nil {
		user.IsActive = *f.IsActive
	}
	if user.IsSuperuser && (!user.IsStaff || !user.IsActive) {
		return nil, invalid("is_superuser", "a superuser must be staff and active")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, invalid("email", "a user with this email already exists")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := insertUser(db, user); err != nil {
		return nil, err
	}
	return user, nil
}

// insertUser maps a unique violation from a concurrent create of the same
// email onto the same validation error the pre-check gives.
func insertUser(db *gorm.DB, user *models.User) error {
	err := db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return invalid("email", "a user with this email already exists")
	}
	return err
}

// CreateSuperuser creates and saves a superuser. Staff, superuser and active
// default to true; passing false for staff or superuser is an error.
func CreateSuperuser(db *gorm.DB, email, password string, f UserFields) (*models.User, error) {
	yes := true
	if f.IsStaff == nil {
		f.IsStaff = &yes
	}
	if f.IsSuperuser == nil {
		f.IsSuperuser = &yes
	}
	if f.IsActive == nil {
		f.IsActive = &yes
	}

	if !*f.IsStaff {
		return nil, invalid("is_staff", "superuser must have is_staff=true")
	}
	if !*f.IsSuperuser {
		return nil, invalid("is_superuser", "superuser must have is_superuser=true")
	}
	return CreateUser(db, email, password, f)
}

// Authenticate checks an email/password pair and stamps the last login.
// Unknown, inactive and mismatched users all fail the same way.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Preload("Permissions").
		Where("email = ?", NormalizeEmail(email)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || user.PasswordHash == unusablePassword {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := db.NowFunc()
	if err := db.Model(&user).UpdateColumn("last_login", now).Error; err != nil {
		return nil, err
	}
	user.LastLogin = &now
	return &user, nil
}

func SetPassword(db *gorm.DB, userID uint, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	res := db.Model(&models.User{}).Where("id = ?", userID).UpdateColumn("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}

func GetUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.Preload("Permissions").First(&user, id).Error; err != nil {
		return nil, notFound("user", id, err)
	}
	return &user, nil
}

func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Preload("Permissions").Order("email asc").Find(&users).Error
	return users, err
}

func GrantPermission(db *gorm.DB, userID uint, perm models.Permission) error {
	if !perm.Valid() {
		return invalid("codename", fmt.Sprintf("unknown permission %q", perm))
	}
	if _, err := GetUser(db, userID); err != nil {
		return err
	}
	p := models.UserPermission{UserID: userID, Codename: perm}
	return db.Where(p).FirstOrCreate(&p).Error
}

func RevokePermission(db *gorm.DB, userID uint, perm models.Permission) error {
	return db.Where("user_id = ? AND codename = ?", userID, perm).
		Delete(&models.UserPermission{}).Error
}

// DeleteUser removes a user. Records the user created or updated are kept
// with their audit references cleared.
func DeleteUser(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetUser(tx, id); err != nil {
			return err
		}
		for _, table := range models.AuditedTables {
			for _, col := range []string{"created_by_id", "updated_by_id"} {
				if err := tx.Table(table).Where(col+" = ?", id).UpdateColumn(col, nil).Error; err != nil {
					return fmt.Errorf("clear %s.%s: %w", table, col, err)
				}
			}
		}
		if err := tx.Model(&models.AuditLog{}).Where("user_id = ?", id).UpdateColumn("user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
