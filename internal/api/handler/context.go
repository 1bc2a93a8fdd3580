package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

// ctxIdentity resolves the claims injected by the Auth middleware to a full
// user record. Token claims alone are not trusted for authorization: the
// credential store is the authority on role and active status, so a token
// minted before a deactivation stops working here.
func ctxIdentity(c echo.Context, auth ports.AuthService) (*domain.User, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	user, err := auth.CurrentUser(c.Request().Context(), username)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return user, nil
}
