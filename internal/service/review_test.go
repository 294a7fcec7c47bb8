package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecraft/storefront/internal/models"
	"github.com/carecraft/storefront/internal/token"
	"github.com/carecraft/storefront/internal/transport"
)

func buyerClaims(name string) *token.Claims {
	return &token.Claims{
		ID:   uuid.NewString(),
		Name: name,
		Role: models.RoleBuyer,
	}
}

func TestCreateReview_SecondReviewConflicts(t *testing.T) {
	t.Parallel()

	r := newTestDB(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()
	seller := mustSeller(t, r, "Anna's Crafts", "anna@example.com")
	cat := mustCategory(t, r, "Medical Supplies")
	prod := mustProduct(t, r, seller, cat, "Thermometer", 25)

	claims := buyerClaims("Alice")
	first, err := svc.CreateReview(ctx, claims, transport.CreateReviewRequest{
		ProductID: prod.ID.String(), Rating: 4, Comment: "works well",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", first.UserName)

	_, err = svc.CreateReview(ctx, claims, transport.CreateReviewRequest{
		ProductID: prod.ID.String(), Rating: 2,
	})
	assert.ErrorIs(t, err, ErrConflict)

	// The rating reflects only the first review.
	got, err := r.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Rating)
}

func TestCreateReview_ConcurrentDuplicatesConflict(t *testing.T) {
	t.Parallel()

	r := newTestDB(t)
	sqlDB, err := r.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	svc := &ReviewService{Repo: r}
	ctx := context.Background()
	seller := mustSeller(t, r, "Anna's Crafts", "anna@example.com")
	cat := mustCategory(t, r, "Medical Supplies")
	prod := mustProduct(t, r, seller, cat, "Thermometer", 25)

	claims := buyerClaims("Alice")
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.CreateReview(ctx, claims, transport.CreateReviewRequest{
				ProductID: prod.ID.String(), Rating: 4,
			})
			errs <- err
		}()
	}

	// Whichever loses, whether at the pre-check or at the unique index, it
	// must come back as a conflict, never a bare storage error.
	var conflicts, oks int
	for i := 0; i < 2; i++ {
		err := <-errs
		switch {
		case err == nil:
			oks++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, oks)
	assert.Equal(t, 1, conflicts)

	reviews, err := r.GetProductReviews(ctx, prod.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestCreateReview_Validation(t *testing.T) {
	t.Parallel()

	r := newTestDB(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()
	seller := mustSeller(t, r, "Anna's Crafts", "anna@example.com")
	cat := mustCategory(t, r, "Medical Supplies")
	prod := mustProduct(t, r, seller, cat, "Thermometer", 25)
	claims := buyerClaims("Alice")

	_, err := svc.CreateReview(ctx, claims, transport.CreateReviewRequest{ProductID: prod.ID.String(), Rating: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateReview(ctx, claims, transport.CreateReviewRequest{ProductID: prod.ID.String(), Rating: 6})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateReview(ctx, claims, transport.CreateReviewRequest{ProductID: "nope", Rating: 3})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateReview(ctx, claims, transport.CreateReviewRequest{ProductID: uuid.NewString(), Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatchReview_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	r := newTestDB(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()
	seller := mustSeller(t, r, "Anna's Crafts", "anna@example.com")
	cat := mustCategory(t, r, "Medical Supplies")
	prod := mustProduct(t, r, seller, cat, "Thermometer", 25)

	owner := buyerClaims("Alice")
	review, err := svc.CreateReview(ctx, owner, transport.CreateReviewRequest{
		ProductID: prod.ID.String(), Rating: 3,
	})
	require.NoError(t, err)

	newRating := 5
	_, err = svc.PatchReview(ctx, buyerClaims("Mallory"), transport.PatchReviewRequest{Rating: &newRating}, review.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	patched, err := svc.PatchReview(ctx, owner, transport.PatchReviewRequest{Rating: &newRating}, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, patched.Rating)

	// Admins may edit anyone's review.
	admin := &token.Claims{ID: uuid.NewString(), Name: "Root", Role: models.RoleAdmin}
	lower := 1
	_, err = svc.PatchReview(ctx, admin, transport.PatchReviewRequest{Rating: &lower}, review.ID)
	require.NoError(t, err)
}

func TestDeleteReview_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	r := newTestDB(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()
	seller := mustSeller(t, r, "Anna's Crafts", "anna@example.com")
	cat := mustCategory(t, r, "Medical Supplies")
	prod := mustProduct(t, r, seller, cat, "Thermometer", 25)

	owner := buyerClaims("Alice")
	review, err := svc.CreateReview(ctx, owner, transport.CreateReviewRequest{
		ProductID: prod.ID.String(), Rating: 3,
	})
	require.NoError(t, err)

	err = svc.DeleteReview(ctx, buyerClaims("Mallory"), review.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteReview(ctx, owner, review.ID))

	err = svc.DeleteReview(ctx, owner, review.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
