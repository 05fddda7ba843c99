package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not the error envelope: %s", rec.Body.String())
	}
	return resp.Error
}

func TestErrorHandlerPlainErrorBecomes400(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(e)(errors.New("something went wrong"), c)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got != "something went wrong" {
		t.Errorf("error = %q", got)
	}
}

func TestErrorHandlerKeepsHTTPErrorCode(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(e)(NotFound("patient not found"), c)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if got := decodeError(t, rec); got != "patient not found" {
		t.Errorf("error = %q", got)
	}
}

func TestErrorHandlerMethodNotAllowed(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(e)
	e.GET("/patients", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodDelete, "/patients", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if decodeError(t, rec) == "" {
		t.Error("expected an error message")
	}
}
