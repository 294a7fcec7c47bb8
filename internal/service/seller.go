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

type SellerService struct {
	Repo *repo.GormRepo
}

func (s *SellerService) GetSeller(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	seller, err := s.Repo.GetSeller(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("seller %s: %w", id, ErrNotFound)
	}
	return seller, err
}

func (s *SellerService) GetSellerByEmail(ctx context.Context, email string) (*models.Seller, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", ErrValidation)
	}
	seller, err := s.Repo.GetSellerByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("seller with email %s: %w", email, ErrNotFound)
	}
	return seller, err
}

func (s *SellerService) GetSellers(ctx context.Context, offset, limit int) (int64, []models.Seller, error) {
	return s.Repo.GetSellers(ctx, offset, limit)
}

// PatchSeller is allowed for the owning account (matched by contact email)
// and for admins. Rating and review/sale counters are server-derived and not
// part of the patchable surface.
func (s *SellerService) PatchSeller(ctx context.Context, claims *token.Claims, req transport.PatchSellerRequest, id uuid.UUID) (*models.Seller, error) {
	seller, err := s.GetSeller(ctx, id)
	if err != nil {
		return nil, err
	}
	if claims.Role != models.RoleAdmin && seller.Contact.Email != claims.Email {
		return nil, fmt.Errorf("seller profile belongs to another account: %w", ErrForbidden)
	}
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("name cannot be empty: %w", ErrValidation)
	}

	patched, err := s.Repo.PatchSeller(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("seller %s: %w", id, ErrNotFound)
	}
	return patched, err
}
