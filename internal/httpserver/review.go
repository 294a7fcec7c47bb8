package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carecraft/storefront/internal/events"
	"github.com/carecraft/storefront/internal/logging"
	"github.com/carecraft/storefront/internal/middleware/auth"
	"github.com/carecraft/storefront/internal/service"
	"github.com/carecraft/storefront/internal/transport"
)

type ReviewHandler struct {
	Svc      *service.ReviewService
	Producer *events.Producer
}

func (h *ReviewHandler) GetProductReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.get_product_reviews")

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_reviews_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	reviews, err := h.Svc.GetProductReviews(ctx, productID)
	if err != nil {
		l.Error("get_reviews_failed", "status", 500, "reason", "cannot list reviews", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list reviews")
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create_review")

	claims := auth.ClaimsFrom(c)

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("review_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.CreateReview(ctx, claims, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("review_create_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("review_create_failed", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("review_create_failed", "status", 409, "reason", "duplicate review", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "you have already reviewed this product")
		}
		l.Error("review_create_failed", "status", 500, "reason", "cannot create review", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create review")
	}

	publish(c, h.Producer, events.TopicReviewEvents, review.ID.String(), map[string]interface{}{
		"type":      "review_created",
		"reviewID":  review.ID,
		"productID": review.ProductID,
		"rating":    review.Rating,
	})

	l.Info("create_review_success", "reviewID", review.ID)
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) PatchReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.patch_review")

	claims := auth.ClaimsFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("review_patch_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.PatchReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("review_patch_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.PatchReview(ctx, claims, req, id)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("review_patch_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("review_patch_failed", "status", 404, "reason", "review not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "review not found")
		}
		if errors.Is(err, service.ErrForbidden) {
			l.Warn("review_patch_failed", "status", 403, "reason", "not the owner", "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		l.Error("review_patch_failed", "status", 500, "reason", "cannot update review", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update review")
	}

	l.Info("patch_review_success", "reviewID", review.ID)
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.delete_review")

	claims := auth.ClaimsFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("review_delete_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteReview(ctx, claims, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("review_delete_failed", "status", 404, "reason", "review not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "review not found")
		}
		if errors.Is(err, service.ErrForbidden) {
			l.Warn("review_delete_failed", "status", 403, "reason", "not the owner", "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		l.Error("review_delete_failed", "status", 500, "reason", "cannot delete review", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete review")
	}

	publish(c, h.Producer, events.TopicReviewEvents, id.String(), map[string]interface{}{
		"type":     "review_deleted",
		"reviewID": id,
	})

	l.Info("delete_review_success", "reviewID", id)
	return c.NoContent(http.StatusNoContent)
}
