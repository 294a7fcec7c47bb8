package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carecraft/storefront/internal/hash"
	"github.com/carecraft/storefront/internal/models"
	"github.com/carecraft/storefront/internal/repo"
	"github.com/carecraft/storefront/internal/transport"
)

type AccountService struct {
	Repo *repo.GormRepo
}

func validRole(role string) bool {
	switch role {
	case models.RoleBuyer, models.RoleSeller, models.RoleAdmin:
		return true
	}
	return false
}

func (s *AccountService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Name == "" || req.Password == "" {
		return nil, fmt.Errorf("email, name and password are required: %w", ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = models.RoleBuyer
	}
	if !validRole(role) {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrValidation)
	}

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("user with this email already exists: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: pwHash,
		Role:         role,
	}
	return s.Repo.CreateUser(ctx, &user)
}

func (s *AccountService) Login(ctx context.Context, req transport.LoginRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("invalid email or password: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("invalid email or password: %w", ErrNotFound)
	}
	return user, nil
}

// UpdateAccount merges name/email/role; the handler re-issues the session
// token from the returned user so the cookie never goes stale.
func (s *AccountService) UpdateAccount(ctx context.Context, userID uuid.UUID, req transport.UpdateAccountRequest) (*models.User, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if req.Role != "" && !validRole(req.Role) {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, ErrValidation)
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email != "" {
		if existing, err := s.Repo.GetUserByEmail(ctx, email); err == nil && existing.ID != userID {
			return nil, fmt.Errorf("user with this email already exists: %w", ErrConflict)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	user, err := s.Repo.UpdateUser(ctx, userID, req.Name, email, req.Role)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("user with this email already exists: %w", ErrConflict)
	}
	return user, err
}

func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return user, err
}
