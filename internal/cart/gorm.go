package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/carecraft/storefront/internal/models"
)

// GormStore persists carts as cart_items rows, one row per (user, product).
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Items(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	var rows []models.CartItem
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			ProductID: row.ProductID,
			Name:      row.Name,
			Price:     row.Price,
			Quantity:  row.Quantity,
		})
	}
	return items, nil
}

func (s *GormStore) Get(ctx context.Context, userID, productID uuid.UUID) (*Item, error) {
	var row models.CartItem
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Item{ProductID: row.ProductID, Name: row.Name, Price: row.Price, Quantity: row.Quantity}, nil
}

func (s *GormStore) Put(ctx context.Context, userID uuid.UUID, item Item) error {
	row := models.CartItem{
		UserID:    userID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		Quantity:  item.Quantity,
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "price", "quantity"}),
	}).Create(&row).Error
}

func (s *GormStore) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

func (s *GormStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
