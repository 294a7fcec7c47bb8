package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carecraft/storefront/internal/cart"
	"github.com/carecraft/storefront/internal/events"
	"github.com/carecraft/storefront/internal/logging"
	"github.com/carecraft/storefront/internal/middleware/auth"
	"github.com/carecraft/storefront/internal/service"
	"github.com/carecraft/storefront/internal/transport"
)

type CartHandler struct {
	Store    cart.Store
	Catalog  *service.CatalogService
	Producer *events.Producer
}

func (h *CartHandler) userCart(c echo.Context) (*cart.Cart, error) {
	claims := auth.ClaimsFrom(c)
	userID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token payload")
	}
	return cart.New(h.Store, userID), nil
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	crt, err := h.userCart(c)
	if err != nil {
		return err
	}

	items, err := crt.Items(ctx)
	if err != nil {
		l.Error("get_cart_failed", "status", 500, "reason", "cannot load cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load cart")
	}
	total, err := crt.TotalPrice(ctx)
	if err != nil {
		l.Error("get_cart_failed", "status", 500, "reason", "cannot total cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot total cart")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"total": total,
	})
}

// AddToCart copies name and price from the catalog so the stored item shows
// what the buyer saw at add time.
func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	crt, err := h.userCart(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_add_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		l.Warn("cart_add_failed", "status", 400, "reason", "product_id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is not a uuid")
	}

	prod, err := h.Catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("cart_add_failed", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("cart_add_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	item, err := crt.Add(ctx, cart.Item{
		ProductID: prod.ID,
		Name:      prod.Name,
		Price:     prod.Price,
		Quantity:  req.Quantity,
	})
	if err != nil {
		l.Error("cart_add_failed", "status", 500, "reason", "cannot save cart item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart item")
	}

	publish(c, h.Producer, events.TopicCartEvents, prod.ID.String(), map[string]interface{}{
		"type":      "cart_item_added",
		"productID": prod.ID,
		"quantity":  item.Quantity,
	})

	l.Info("cart_add_success", "productID", prod.ID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	crt, err := h.userCart(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("cart_update_failed", "status", 400, "reason", "productId is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId is not a uuid")
	}

	var req transport.UpdateCartQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := crt.UpdateQuantity(ctx, productID, req.Quantity)
	if err != nil {
		l.Error("cart_update_failed", "status", 500, "reason", "cannot update cart item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update cart item")
	}
	if item == nil {
		l.Warn("cart_update_failed", "status", 404, "reason", "item not in cart")
		return echo.NewHTTPError(http.StatusNotFound, "item not in cart")
	}

	l.Info("cart_update_success", "productID", productID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_from_cart")

	crt, err := h.userCart(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("cart_remove_failed", "status", 400, "reason", "productId is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId is not a uuid")
	}

	if err := crt.Remove(ctx, productID); err != nil {
		l.Error("cart_remove_failed", "status", 500, "reason", "cannot remove cart item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove cart item")
	}

	publish(c, h.Producer, events.TopicCartEvents, productID.String(), map[string]interface{}{
		"type":      "cart_item_removed",
		"productID": productID,
	})

	return c.NoContent(http.StatusNoContent)
}
