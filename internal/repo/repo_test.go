package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carecraft/storefront/internal/config"
	"github.com/carecraft/storefront/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return New(db)
}

func seedSeller(t *testing.T, r *GormRepo, name, email string) *models.Seller {
	t.Helper()

	seller := &models.Seller{
		Name:    name,
		Contact: models.SellerContact{Email: email},
	}
	_, err := r.CreateSeller(context.Background(), seller)
	require.NoError(t, err)
	return seller
}

func seedCategory(t *testing.T, r *GormRepo, name string) *models.Category {
	t.Helper()

	cat := &models.Category{Name: name}
	_, err := r.CreateCategory(context.Background(), cat)
	require.NoError(t, err)
	return cat
}

func seedProduct(t *testing.T, r *GormRepo, seller *models.Seller, cat *models.Category, name string, price float64) *models.Product {
	t.Helper()

	prod := &models.Product{
		Name:       name,
		Price:      price,
		Category:   cat.Name,
		CategoryID: cat.ID,
		SellerID:   seller.ID,
		SellerName: seller.Name,
		InStock:    true,
	}
	_, err := r.CreateProduct(context.Background(), prod)
	require.NoError(t, err)
	return prod
}

func seedUser(t *testing.T, r *GormRepo, name, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	_, err := r.CreateUser(context.Background(), user)
	require.NoError(t, err)
	return user
}
