package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/carecraft/storefront/internal/logging"
	mwauth "github.com/carecraft/storefront/internal/middleware/auth"
	"github.com/carecraft/storefront/internal/models"
)

type Deps struct {
	Auth      *mwauth.CookieAuth
	Logger    *slog.Logger
	AuthH     *AuthHandler
	AccountH  *AccountHandler
	ProductH  *ProductHandler
	SellerH   *SellerHandler
	CategoryH *CategoryHandler
	ReviewH   *ReviewHandler
	CartH     *CartHandler
	SearchH   *SearchHandler
}

// errorHandler renders {"error": msg}; unexpected errors stay generic so no
// internal detail leaks to the client.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}

	if err := c.JSON(code, echo.Map{"error": msg}); err != nil {
		c.Logger().Error(err)
	}
}

// requestLogger puts a request-scoped slog.Logger into the context.
func requestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			l := base.With("request_id", reqID, "method", c.Request().Method, "path", c.Path())
			ctx := logging.IntoContext(c.Request().Context(), l)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = errorHandler
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	if d.Logger != nil {
		e.Use(requestLogger(d.Logger))
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/register", d.AuthH.Register)
	api.POST("/login", d.AuthH.Login)
	api.POST("/logout", d.AuthH.Logout)

	// current-user lookup; the path mirrors the account-update form it serves
	api.GET("/account/update/auth/me", d.AuthH.Me)
	api.POST("/account/update", d.AccountH.UpdateAccount, d.Auth.RequireLogin)

	products := api.Group("/products")
	products.GET("", d.ProductH.GetProducts)
	products.GET("/search", d.SearchH.Search)
	products.GET("/:id", d.ProductH.GetProduct)
	products.GET("/:id/reviews", d.ReviewH.GetProductReviews)

	sellerOnly := d.Auth.RequireRole(models.RoleSeller, models.RoleAdmin)
	products.POST("/create", d.ProductH.CreateProduct, sellerOnly)
	products.PATCH("/:id", d.ProductH.PatchProduct, sellerOnly)
	products.DELETE("/:id", d.ProductH.DeleteProduct, sellerOnly)

	reviews := api.Group("/reviews", d.Auth.RequireLogin)
	reviews.POST("", d.ReviewH.CreateReview)
	reviews.PUT("/:id", d.ReviewH.PatchReview)
	reviews.DELETE("/:id", d.ReviewH.DeleteReview)

	categories := api.Group("/categories")
	categories.GET("", d.CategoryH.GetCategories)
	categories.GET("/:id", d.CategoryH.GetCategory)

	adminOnly := d.Auth.RequireRole(models.RoleAdmin)
	categories.POST("", d.CategoryH.CreateCategory, adminOnly)
	categories.PUT("/:id", d.CategoryH.PatchCategory, adminOnly)
	categories.DELETE("/:id", d.CategoryH.DeleteCategory, adminOnly)

	sellers := api.Group("/sellers")
	sellers.GET("", d.SellerH.GetSellers)
	sellers.GET("/byEmail", d.SellerH.GetSellerByEmail)
	sellers.GET("/:id", d.SellerH.GetSeller)
	sellers.PUT("/:id", d.SellerH.PatchSeller, d.Auth.RequireLogin)

	cartGroup := api.Group("/cart", d.Auth.RequireLogin)
	cartGroup.GET("", d.CartH.GetCart)
	cartGroup.POST("", d.CartH.AddToCart)
	cartGroup.PUT("/:productId", d.CartH.UpdateQuantity)
	cartGroup.DELETE("/:productId", d.CartH.RemoveFromCart)
}
