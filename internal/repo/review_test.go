package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carecraft/storefront/internal/models"
	"github.com/carecraft/storefront/internal/transport"
)

func productRating(t *testing.T, r *GormRepo, id uuid.UUID) float64 {
	t.Helper()

	var prod models.Product
	require.NoError(t, r.DB.Where("id = ?", id).First(&prod).Error)
	return prod.Rating
}

func TestCreateReview_RecomputesRating(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	seller := seedSeller(t, r, "Anna's Crafts", "anna@example.com")
	cat := seedCategory(t, r, "Medical Supplies")
	prod := seedProduct(t, r, seller, cat, "Thermometer", 25)
	alice := seedUser(t, r, "Alice", "alice@example.com", models.RoleBuyer)
	bob := seedUser(t, r, "Bob", "bob@example.com", models.RoleBuyer)

	assert.Zero(t, productRating(t, r, prod.ID))

	_, err := r.CreateReview(ctx, &models.Review{ProductID: prod.ID, UserID: alice.ID, Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4.0, productRating(t, r, prod.ID))

	_, err = r.CreateReview(ctx, &models.Review{ProductID: prod.ID, UserID: bob.ID, Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, 3.5, productRating(t, r, prod.ID))
}

func TestCreateReview_RatingRoundedToOneDecimal(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	seller := seedSeller(t, r, "Anna's Crafts", "anna@example.com")
	cat := seedCategory(t, r, "Medical Supplies")
	prod := seedProduct(t, r, seller, cat, "Thermometer", 25)

	// 5, 4, 4 averages to 4.333..., stored as 4.3.
	for i, rating := range []int{5, 4, 4} {
		user := seedUser(t, r, "User", string(rune('a'+i))+"@example.com", models.RoleBuyer)
		_, err := r.CreateReview(ctx, &models.Review{ProductID: prod.ID, UserID: user.ID, Rating: rating})
		require.NoError(t, err)
	}

	assert.Equal(t, 4.3, productRating(t, r, prod.ID))
}

func TestCreateReview_DuplicateUserRejected(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	seller := seedSeller(t, r, "Anna's Crafts", "anna@example.com")
	cat := seedCategory(t, r, "Medical Supplies")
	prod := seedProduct(t, r, seller, cat, "Thermometer", 25)
	alice := seedUser(t, r, "Alice", "alice@example.com", models.RoleBuyer)

	_, err := r.CreateReview(ctx, &models.Review{ProductID: prod.ID, UserID: alice.ID, Rating: 4})
	require.NoError(t, err)

	_, err = r.CreateReview(ctx, &models.Review{ProductID: prod.ID, UserID: alice.ID, Rating: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The failed insert must not poison the aggregate.
	assert.Equal(t, 4.0, productRating(t, r, prod.ID))

	reviews, err := r.GetProductReviews(ctx, prod.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestPatchReview_RecomputesRating(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	seller := seedSeller(t, r, "Anna's Crafts", "anna@example.com")
	cat := seedCategory(t, r, "Medical Supplies")
	prod := seedProduct(t, r, seller, cat, "Thermometer", 25)
	alice := seedUser(t, r, "Alice", "alice@example.com", models.RoleBuyer)

	created, err := r.CreateReview(ctx, &models.Review{ProductID: prod.ID, UserID: alice.ID, Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	newRating := 5
	newComment := "much better after the firmware update"
	patched, err := r.PatchReview(ctx, transport.PatchReviewRequest{Rating: &newRating, Comment: &newComment}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, patched.Rating)
	assert.Equal(t, newComment, patched.Comment)

	assert.Equal(t, 5.0, productRating(t, r, prod.ID))
}

func TestDeleteReview_RecomputesRating(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	seller := seedSeller(t, r, "Anna's Crafts", "anna@example.com")
	cat := seedCategory(t, r, "Medical Supplies")
	prod := seedProduct(t, r, seller, cat, "Thermometer", 25)
	alice := seedUser(t, r, "Alice", "alice@example.com", models.RoleBuyer)
	bob := seedUser(t, r, "Bob", "bob@example.com", models.RoleBuyer)

	first, err := r.CreateReview(ctx, &models.Review{ProductID: prod.ID, UserID: alice.ID, Rating: 4})
	require.NoError(t, err)
	second, err := r.CreateReview(ctx, &models.Review{ProductID: prod.ID, UserID: bob.ID, Rating: 2})
	require.NoError(t, err)

	require.NoError(t, r.DeleteReview(ctx, first.ID))
	assert.Equal(t, 2.0, productRating(t, r, prod.ID))

	require.NoError(t, r.DeleteReview(ctx, second.ID))
	assert.Zero(t, productRating(t, r, prod.ID))

	err = r.DeleteReview(ctx, second.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
