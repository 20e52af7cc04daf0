package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAdminTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&identity.Admin{}))
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB, email string) *identity.Admin {
	t.Helper()

	admin, err := identity.NewAdmin("priya", email, "$2a$10$fakehashfakehashfakehash", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, db.Save(admin).Error)
	return admin
}

func TestGormAdminRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("matches case-insensitively", func(t *testing.T) {
		db := setupAdminTestDB(t)
		repo := NewGormAdminRepository(db)
		admin := seedAdmin(t, db, "priya@schoolkart.in")

		found, err := repo.FindByEmail(ctx, "Priya@SchoolKart.in")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, found.ID)
	})

	t.Run("returns not found for unknown email", func(t *testing.T) {
		db := setupAdminTestDB(t)
		repo := NewGormAdminRepository(db)

		_, err := repo.FindByEmail(ctx, "nobody@schoolkart.in")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormAdminRepository_ExistsByEmail(t *testing.T) {
	ctx := context.Background()

	db := setupAdminTestDB(t)
	repo := NewGormAdminRepository(db)
	seedAdmin(t, db, "priya@schoolkart.in")

	exists, err := repo.ExistsByEmail(ctx, "PRIYA@schoolkart.in")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "other@schoolkart.in")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormAdminRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	db := setupAdminTestDB(t)
	repo := NewGormAdminRepository(db)
	admin := seedAdmin(t, db, "priya@schoolkart.in")

	found, err := repo.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.Email, found.Email)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
