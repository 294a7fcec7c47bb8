package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carecraft/storefront/internal/token"
)

const CookieName = "token"

type CookieAuth struct {
	Secret []byte
}

// CurrentUser distinguishes anonymous (nil, nil) from a broken token
// (nil, ErrInvalidToken).
func (a *CookieAuth) CurrentUser(c echo.Context) (*token.Claims, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return nil, nil
	}
	return token.Verify(a.Secret, cookie.Value)
}

// RequireLogin rejects requests without a valid session token and stores the
// claims on the echo context for downstream handlers.
func (a *CookieAuth) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := a.CurrentUser(c)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
		}
		setUserContext(c, claims)
		return next(c)
	}
}

// RequireRole implies RequireLogin and additionally gates on the token role.
func (a *CookieAuth) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := a.CurrentUser(c)
			if err != nil || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
			}
			for _, role := range roles {
				if claims.Role == role {
					setUserContext(c, claims)
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
	}
}

func setUserContext(c echo.Context, claims *token.Claims) {
	c.Set("claims", claims)
	c.Set("userID", claims.ID)
	c.Set("role", claims.Role)
}

// ClaimsFrom returns the claims a Require* middleware stored, nil otherwise.
func ClaimsFrom(c echo.Context) *token.Claims {
	if v, ok := c.Get("claims").(*token.Claims); ok {
		return v
	}
	return nil
}
