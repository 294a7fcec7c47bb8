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
	"github.com/carecraft/storefront/internal/token"
	"github.com/carecraft/storefront/internal/transport"
)

type AccountHandler struct {
	Svc       *service.AccountService
	JWTSecret []byte
	Producer  *events.Producer
	Secure    bool
}

// UpdateAccount updates the profile and re-issues the session token so the
// cookie reflects the new name/email/role immediately.
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.update_account")

	claims := auth.ClaimsFrom(c)
	userID, err := uuid.Parse(claims.ID)
	if err != nil {
		l.Warn("account_update_failed", "status", 401, "reason", "token id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token payload")
	}

	var req transport.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("account_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateAccount(ctx, userID, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("account_update_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("account_update_failed", "status", 404, "reason", "user not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "user not found after update")
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("account_update_failed", "status", 409, "reason", "email taken", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "user with this email already exists")
		}
		l.Error("account_update_failed", "status", 500, "reason", "cannot update user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update user")
	}

	signed, err := token.Issue(h.JWTSecret, user)
	if err != nil {
		l.Error("account_update_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}
	c.SetCookie(sessionCookie(signed, h.Secure))

	publish(c, h.Producer, events.TopicUserEvents, user.ID.String(), map[string]interface{}{
		"type":   "user_updated",
		"userID": user.ID,
	})

	l.Info("account_update_success", "userID", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User updated",
		"user":    user,
	})
}
