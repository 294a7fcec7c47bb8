package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carecraft/storefront/internal/models"
	"github.com/carecraft/storefront/internal/repo"
	"github.com/carecraft/storefront/internal/search"
	"github.com/carecraft/storefront/internal/transport"
)

type CatalogService struct {
	Repo    *repo.GormRepo
	Indexer *search.Indexer
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return prod, err
}

func (s *CatalogService) GetProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, f, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	catID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("category_id is not a uuid: %w", ErrValidation)
	}
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return nil, fmt.Errorf("seller_id is not a uuid: %w", ErrValidation)
	}

	// Every product must reference an existing category and seller.
	cat, err := s.Repo.GetCategory(ctx, catID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("category %s: %w", catID, ErrValidation)
	} else if err != nil {
		return nil, err
	}
	seller, err := s.Repo.GetSeller(ctx, sellerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("seller %s: %w", sellerID, ErrValidation)
	} else if err != nil {
		return nil, err
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	prod := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    cat.Name,
		CategoryID:  cat.ID,
		SellerID:    seller.ID,
		SellerName:  seller.Name,
		Featured:    req.Featured,
		InStock:     inStock,
	}
	for i, url := range req.Images {
		prod.Images = append(prod.Images, models.ProductImage{ImageURL: url, IsPrimary: i == 0})
	}
	for k, v := range req.Specifications {
		prod.Specifications = append(prod.Specifications, models.ProductSpecification{SpecKey: k, SpecValue: v})
	}

	created, err := s.Repo.CreateProduct(ctx, &prod)
	if err != nil {
		return nil, err
	}
	s.index(ctx, created)
	return created, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uuid.UUID) (*models.Product, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("name cannot be empty: %w", ErrValidation)
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("category_id is not a uuid: %w", ErrValidation)
		}
		if _, err := s.Repo.GetCategory(ctx, catID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", catID, ErrValidation)
		} else if err != nil {
			return nil, err
		}
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.index(ctx, prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if s.Indexer != nil {
		s.Indexer.DeleteProduct(ctx, id)
	}
	return nil
}

// index mirrors the product into the search index, best effort.
func (s *CatalogService) index(ctx context.Context, prod *models.Product) {
	if s.Indexer != nil {
		s.Indexer.IndexProduct(ctx, prod)
	}
}
