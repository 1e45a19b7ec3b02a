package database

import (
	"testing"

	"asset-register/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "John.Doe@example.com", NormalizeEmail("  John.Doe@EXAMPLE.Com "))
	assert.Equal(t, "no-at-sign", NormalizeEmail("no-at-sign"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)

	t.Run("empty email fails and persists nothing", func(t *testing.T) {
		for _, email := range []string{"", "   "} {
			user, err := CreateUser(db, email, "password123", UserFields{})
			require.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, user)
		}
		var count int64
		require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("malformed email fails", func(t *testing.T) {
		_, err := CreateUser(db, "not-an-email", "password123", UserFields{})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("stores a hash, never the plaintext", func(t *testing.T) {
		user, err := CreateUser(db, "Alice@Example.COM", "password123", UserFields{FirstName: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, "Alice@example.com", user.Email)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NotEmpty(t, user.PasswordHash)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsStaff)
		assert.False(t, user.IsSuperuser)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.NotEqual(t, "password123", stored.PasswordHash)
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		_, err := CreateUser(db, "alice@example.com", "other-pass", UserFields{})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("superuser flag without staff fails", func(t *testing.T) {
		_, err := CreateUser(db, "bob@example.com", "password123", UserFields{IsSuperuser: boolPtr(true)})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("inactive user is persisted inactive", func(t *testing.T) {
		user, err := CreateUser(db, "carol@example.com", "password123", UserFields{IsActive: boolPtr(false)})
		require.NoError(t, err)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.False(t, stored.IsActive)
	})
}

func TestCreateSuperuser(t *testing.T) {
	db := setupTestDB(t)

	t.Run("defaults every flag to true", func(t *testing.T) {
		user, err := CreateSuperuser(db, "root@example.com", "password123", UserFields{})
		require.NoError(t, err)
		assert.True(t, user.IsStaff)
		assert.True(t, user.IsSuperuser)
		assert.True(t, user.IsActive)
	})

	t.Run("explicit is_staff=false fails", func(t *testing.T) {
		_, err := CreateSuperuser(db, "a@example.com", "password123", UserFields{IsStaff: boolPtr(false)})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "is_staff", verr.Field)
	})

	t.Run("explicit is_superuser=false fails", func(t *testing.T) {
		_, err := CreateSuperuser(db, "b@example.com", "password123", UserFields{IsSuperuser: boolPtr(false)})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "is_superuser", verr.Field)
	})

	t.Run("inactive superuser fails", func(t *testing.T) {
		_, err := CreateSuperuser(db, "c@example.com", "password123", UserFields{IsActive: boolPtr(false)})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("save hook keeps the invariant", func(t *testing.T) {
		var user models.User
		require.NoError(t, db.Where("email = ?", "root@example.com").First(&user).Error)
		user.IsStaff = false
		err := db.Save(&user).Error
		require.ErrorIs(t, err, models.ErrSuperuserFlags)
	})
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	_, err := CreateUser(db, "dave@Example.com", "correct-horse", UserFields{})
	require.NoError(t, err)
	_, err = CreateUser(db, "nopass@example.com", "", UserFields{})
	require.NoError(t, err)
	_, err = CreateUser(db, "gone@example.com", "correct-horse", UserFields{IsActive: boolPtr(false)})
	require.NoError(t, err)

	user, err := Authenticate(db, "dave@EXAMPLE.COM", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "dave@example.com", user.Email)
	assert.NotNil(t, user.LastLogin)

	_, err = Authenticate(db, "dave@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = Authenticate(db, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = Authenticate(db, "nopass@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = Authenticate(db, "gone@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, SetPassword(db, user.ID, "battery-staple"))
	_, err = Authenticate(db, "dave@example.com", "battery-staple")
	assert.NoError(t, err)
}

func TestPermissions(t *testing.T) {
	db := setupTestDB(t)
	user, err := CreateUser(db, "ops@example.com", "password123", UserFields{IsStaff: boolPtr(true)})
	require.NoError(t, err)

	require.NoError(t, GrantPermission(db, user.ID, models.PermDisposeAsset))
	// granting twice is a no-op
	require.NoError(t, GrantPermission(db, user.ID, models.PermDisposeAsset))
	require.ErrorIs(t, GrantPermission(db, user.ID, "can_fly"), ErrValidation)

	loaded, err := GetUser(db, user.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Permissions, 1)
	assert.True(t, loaded.HasPerm(models.PermDisposeAsset))
	assert.False(t, loaded.HasPerm(models.PermTransferAsset))

	require.NoError(t, RevokePermission(db, user.ID, models.PermDisposeAsset))
	loaded, err = GetUser(db, user.ID)
	require.NoError(t, err)
	assert.False(t, loaded.HasPerm(models.PermDisposeAsset))
}

func TestDeleteUserClearsAuditReferences(t *testing.T) {
	db := setupTestDB(t)
	f := newFixture(t, db)
	asset, err := CreateAsset(db, f.assetInput(1200, 12), f.user)
	require.NoError(t, err)
	require.NotNil(t, asset.CreatedByID)

	require.NoError(t, DeleteUser(db, f.user.ID))

	_, err = GetUser(db, f.user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	reloaded, err := GetAsset(db, asset.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CreatedByID)
	assert.Nil(t, reloaded.UpdatedByID)

	depot, err := GetDepot(db, f.depot.Code)
	require.NoError(t, err)
	assert.Nil(t, depot.CreatedByID)

	var logs int64
	require.NoError(t, db.Model(&models.AuditLog{}).Where("user_id = ?", f.user.ID).Count(&logs).Error)
	assert.Zero(t, logs)
}

func TestSeedSuperuser(t *testing.T) {
	db := setupTestDB(t)
	superusers := func() []models.User {
		var users []models.User
		require.NoError(t, db.Where("is_superuser = ?", true).Find(&users).Error)
		return users
	}

	t.Run("empty password seeds nothing", func(t *testing.T) {
		SeedSuperuser(db, "admin@assets.local", "")
		assert.Empty(t, superusers())
	})

	t.Run("creates one active staff superuser", func(t *testing.T) {
		SeedSuperuser(db, "admin@assets.local", "admin-pass-123")
		users := superusers()
		require.Len(t, users, 1)
		assert.Equal(t, "admin@assets.local", users[0].Email)
		assert.True(t, users[0].IsStaff)
		assert.True(t, users[0].IsSuperuser)
		assert.True(t, users[0].IsActive)
	})

	t.Run("existing superuser skips the seed", func(t *testing.T) {
		SeedSuperuser(db, "other@assets.local", "other-pass-123")
		users := superusers()
		require.Len(t, users, 1)
		assert.Equal(t, "admin@assets.local", users[0].Email)
	})
}

func TestInsertUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	_, err := CreateUser(db, "erin@example.com", "password123", UserFields{})
	require.NoError(t, err)

	// same row the losing side of two concurrent creates would insert
	err = insertUser(db, &models.User{Email: "erin@example.com", PasswordHash: unusablePassword, IsActive: true})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}
