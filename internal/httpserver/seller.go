package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carecraft/storefront/internal/logging"
	"github.com/carecraft/storefront/internal/middleware/auth"
	"github.com/carecraft/storefront/internal/service"
	"github.com/carecraft/storefront/internal/transport"
)

type SellerHandler struct {
	Svc *service.SellerService
}

func (h *SellerHandler) GetSellers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.get_sellers")

	page, offset, limit := pageParams(c)

	total, items, err := h.Svc.GetSellers(ctx, offset, limit)
	if err != nil {
		l.Error("get_sellers_failed", "status", 500, "reason", "cannot list sellers", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list sellers")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": listMeta(page, limit, offset, total),
	})
}

func (h *SellerHandler) GetSeller(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.get_seller")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_seller_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	seller, err := h.Svc.GetSeller(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_seller_failed", "status", 404, "reason", "seller not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "seller not found")
		}
		l.Error("get_seller_failed", "status", 500, "reason", "cannot get seller", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get seller")
	}

	return c.JSON(http.StatusOK, seller)
}

func (h *SellerHandler) GetSellerByEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.get_seller_by_email")

	seller, err := h.Svc.GetSellerByEmail(ctx, c.QueryParam("email"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("get_seller_failed", "status", 400, "reason", "email is required", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "email is required")
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_seller_failed", "status", 404, "reason", "seller not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "seller not found")
		}
		l.Error("get_seller_failed", "status", 500, "reason", "cannot get seller", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get seller")
	}

	return c.JSON(http.StatusOK, seller)
}

func (h *SellerHandler) PatchSeller(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.patch_seller")

	claims := auth.ClaimsFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("seller_patch_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.PatchSellerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("seller_patch_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	seller, err := h.Svc.PatchSeller(ctx, claims, req, id)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("seller_patch_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("seller_patch_failed", "status", 404, "reason", "seller not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "seller not found")
		}
		if errors.Is(err, service.ErrForbidden) {
			l.Warn("seller_patch_failed", "status", 403, "reason", "not the owner", "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		l.Error("seller_patch_failed", "status", 500, "reason", "cannot update seller", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update seller")
	}

	l.Info("patch_seller_success", "sellerID", seller.ID)
	return c.JSON(http.StatusOK, seller)
}
