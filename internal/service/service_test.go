package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carecraft/storefront/internal/config"
	"github.com/carecraft/storefront/internal/models"
	"github.com/carecraft/storefront/internal/repo"
)

func newTestDB(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return repo.New(db)
}

func mustSeller(t *testing.T, r *repo.GormRepo, name, email string) *models.Seller {
	t.Helper()

	seller := &models.Seller{Name: name, Contact: models.SellerContact{Email: email}}
	_, err := r.CreateSeller(context.Background(), seller)
	require.NoError(t, err)
	return seller
}

func mustCategory(t *testing.T, r *repo.GormRepo, name string) *models.Category {
	t.Helper()

	cat := &models.Category{Name: name}
	_, err := r.CreateCategory(context.Background(), cat)
	require.NoError(t, err)
	return cat
}

func mustProduct(t *testing.T, r *repo.GormRepo, seller *models.Seller, cat *models.Category, name string, price float64) *models.Product {
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
