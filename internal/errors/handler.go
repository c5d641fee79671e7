package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GlobalErrorHandler renders every error that reaches echo as an ErrorResponse.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if resp, ok := he.Message.(ErrorResponse); ok {
				_ = c.JSON(he.Code, resp)
				return
			}
			_ = c.JSON(he.Code, ErrorResponse{Error: fmt.Sprintf("%v", he.Message), Code: http.StatusText(he.Code)})
			return
		}

		httpErr := MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			slog.Error("unhandled error",
				"error", err,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		}
		_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
}
