package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carecraft/storefront/internal/models"
	"github.com/carecraft/storefront/internal/repo"
	"github.com/carecraft/storefront/internal/token"
	"github.com/carecraft/storefront/internal/transport"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

func (s *ReviewService) GetProductReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	return s.Repo.GetProductReviews(ctx, productID)
}

// CreateReview enforces one review per (user, product) at the store level,
// not just in the client.
func (s *ReviewService) CreateReview(ctx context.Context, claims *token.Claims, req transport.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product_id is not a uuid: %w", ErrValidation)
	}
	userID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("token id is not a uuid: %w", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, productID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	} else if err != nil {
		return nil, err
	}

	exists, err := s.Repo.HasReview(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("review already exists for this product: %w", ErrConflict)
	}

	review := models.Review{
		ProductID: productID,
		UserID:    userID,
		UserName:  claims.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	created, err := s.Repo.CreateReview(ctx, &review)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Concurrent creates can both pass the pre-check; the unique index
		// settles the race.
		return nil, fmt.Errorf("review already exists for this product: %w", ErrConflict)
	}
	return created, err
}

func (s *ReviewService) PatchReview(ctx context.Context, claims *token.Claims, req transport.PatchReviewRequest, id uuid.UUID) (*models.Review, error) {
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}

	review, err := s.Repo.GetReview(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !s.canMutate(claims, review) {
		return nil, fmt.Errorf("review belongs to another user: %w", ErrForbidden)
	}

	return s.Repo.PatchReview(ctx, req, id)
}

func (s *ReviewService) DeleteReview(ctx context.Context, claims *token.Claims, id uuid.UUID) error {
	review, err := s.Repo.GetReview(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !s.canMutate(claims, review) {
		return fmt.Errorf("review belongs to another user: %w", ErrForbidden)
	}
	return s.Repo.DeleteReview(ctx, id)
}

func (s *ReviewService) canMutate(claims *token.Claims, review *models.Review) bool {
	return claims.Role == models.RoleAdmin || review.UserID.String() == claims.ID
}
