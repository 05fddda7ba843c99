package httpapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the wire shape for every error the API produces.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler converts any error escaping a handler into the
// {"error": <message>} envelope. Unmatched routes keep echo's 404/405
// status codes; everything else without an explicit code becomes a 400,
// since business and persistence failures are reported to the client
// rather than treated as server faults.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusBadRequest
		msg := err.Error()

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = fmt.Sprintf("%v", he.Message)
			if he.Internal != nil {
				msg = he.Internal.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, ErrorResponse{Error: msg})
	}
}

// NotFound reports a missing record as a 404 with the envelope message.
func NotFound(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, message)
}

// BadRequest reports a validation or processing failure as a 400.
func BadRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}
