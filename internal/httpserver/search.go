package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carecraft/storefront/internal/logging"
	"github.com/carecraft/storefront/internal/search"
)

type SearchHandler struct {
	Indexer *search.Indexer
}

func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_failed", "status", 400, "reason", "q is required")
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	if h.Indexer == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	_, from, size := pageParams(c)

	total, products, err := h.Indexer.Search(ctx, q, from, size)
	if err != nil {
		l.Error("search_failed", "status", 500, "reason", "search backend error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search backend error")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
