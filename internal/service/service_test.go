package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KingDev1404/freshbulk/internal/database"
	"github.com/KingDev1404/freshbulk/internal/guard"
	"github.com/KingDev1404/freshbulk/internal/models"
	"github.com/KingDev1404/freshbulk/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return repo.New(db)
}

func seedProduct(t *testing.T, r *repo.GormRepo, name, price string) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:        name,
		Description: "test description",
		Price:       decimal.RequireFromString(price),
		ImageURL:    "https://example.com/" + name + ".jpg",
		Category:    "Vegetables",
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}

func seedUser(t *testing.T, r *repo.GormRepo, email, role string) *models.User {
	t.Helper()

	u := &models.User{
		Name:         "Test " + role,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func buyerIdentity(u *models.User) guard.Identity {
	return guard.Identity{UserID: u.ID, Role: models.RoleBuyer}
}

func adminIdentity(u *models.User) guard.Identity {
	return guard.Identity{UserID: u.ID, Role: models.RoleAdmin}
}
