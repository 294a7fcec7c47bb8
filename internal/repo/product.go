package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carecraft/storefront/internal/models"
	"github.com/carecraft/storefront/internal/transport"
)

// ProductFilter holds the recognized list options. Zero values mean "not set".
type ProductFilter struct {
	Search     string
	Category   string
	CategoryID uuid.UUID
	SellerID   uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
}

func (f ProductFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.CategoryID != uuid.Nil {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.SellerID != uuid.Nil {
		q = q.Where("seller_id = ?", f.SellerID)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	return q
}

// order maps the sort keys to SQL; equal keys fall back to creation order.
func (f ProductFilter) order(q *gorm.DB) *gorm.DB {
	switch f.SortBy {
	case "price-low":
		return q.Order("price ASC, created_at ASC")
	case "price-high":
		return q.Order("price DESC, created_at ASC")
	case "rating":
		return q.Order("rating DESC, created_at ASC")
	case "newest":
		return q.Order("created_at DESC")
	default: // featured
		return q.Order("featured DESC, created_at ASC")
	}
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).
		Preload("Images").
		Preload("Specifications").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, f ProductFilter, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Product{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	q := f.apply(r.DB.WithContext(ctx).Model(&models.Product{}))
	if err := f.order(q).
		Preload("Images").
		Preload("Specifications").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uuid.UUID) (*models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&prod).Error; err != nil {
			return err
		}

		if req.Name != nil {
			prod.Name = *req.Name
		}
		if req.Price != nil {
			prod.Price = *req.Price
		}
		if req.Description != nil {
			prod.Description = *req.Description
		}
		if req.Featured != nil {
			prod.Featured = *req.Featured
		}
		if req.InStock != nil {
			prod.InStock = *req.InStock
		}
		if req.CategoryID != nil {
			catID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				return err
			}
			var cat models.Category
			if err := tx.Where("id = ?", catID).First(&cat).Error; err != nil {
				return err
			}
			prod.CategoryID = cat.ID
			prod.Category = cat.Name
		}

		if err := tx.Save(&prod).Error; err != nil {
			return err
		}

		if req.Images != nil {
			if err := replaceImages(tx, prod.ID, req.Images); err != nil {
				return err
			}
		}
		if req.Specifications != nil {
			if err := replaceSpecifications(tx, prod.ID, req.Specifications); err != nil {
				return err
			}
		}

		return tx.Preload("Images").Preload("Specifications").
			Where("id = ?", prod.ID).First(&prod).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

// DeleteProduct cascades to images, specifications and reviews, the same way
// the store-level ON DELETE CASCADE would.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSpecification{}).Error; err != nil {
			return err
		}
		return tx.Where("product_id = ?", id).Delete(&models.Review{}).Error
	})
}

func replaceImages(tx *gorm.DB, productID uuid.UUID, urls []string) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	for i, url := range urls {
		img := models.ProductImage{ProductID: productID, ImageURL: url, IsPrimary: i == 0}
		if err := tx.Create(&img).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceSpecifications(tx *gorm.DB, productID uuid.UUID, specs map[string]string) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductSpecification{}).Error; err != nil {
		return err
	}
	for k, v := range specs {
		spec := models.ProductSpecification{ProductID: productID, SpecKey: k, SpecValue: v}
		if err := tx.Create(&spec).Error; err != nil {
			return err
		}
	}
	return nil
}
