package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "easyfindshub/internal/errors"
	"easyfindshub/internal/model"
)

// ContextKeySession is where the auth middleware stores the *model.Session.
const ContextKeySession = "session"

func currentSession(c echo.Context) (*model.Session, error) {
	session, ok := c.Get(ContextKeySession).(*model.Session)
	if !ok || session == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return session, nil
}

// bearerToken returns the raw token from the Authorization header.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func invalidRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: msg,
		Code:  "INVALID_REQUEST",
	})
}
