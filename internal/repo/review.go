package repo

import (
	"context"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carecraft/storefront/internal/models"
	"github.com/carecraft/storefront/internal/transport"
)

func (r *GormRepo) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) GetProductReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormRepo) HasReview(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateReview writes the review and recomputes the product rating in one
// transaction so the aggregate is never left stale.
func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (r *GormRepo) PatchReview(ctx context.Context, req transport.PatchReviewRequest, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&review).Error; err != nil {
			return err
		}
		if req.Rating != nil {
			review.Rating = *req.Rating
		}
		if req.Comment != nil {
			review.Comment = *req.Comment
		}
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.Where("id = ?", id).First(&review).Error; err != nil {
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.ProductID)
	})
}

// recomputeRating sets product.rating to the mean of its reviews' ratings
// rounded to one decimal, or zero when no reviews remain.
func recomputeRating(tx *gorm.DB, productID uuid.UUID) error {
	var avg *float64
	if err := tx.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return err
	}

	rating := 0.0
	if avg != nil {
		rating = math.Round(*avg*10) / 10
	}

	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("rating", rating).Error
}
