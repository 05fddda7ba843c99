package translate

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/palliacare/outreach/internal/platform/httpapi"
)

type Handler struct {
	tr Translator
}

func NewHandler(tr Translator) *Handler {
	return &Handler{tr: tr}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/translate", h.Translate)
}

type translateRequest struct {
	Text string `json:"text"`
}

type translateResponse struct {
	Translated string `json:"translated"`
}

func (h *Handler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return httpapi.BadRequest(err.Error())
	}
	if req.Text == "" {
		return c.JSON(http.StatusOK, translateResponse{Translated: ""})
	}
	out, err := h.tr.Translate(c.Request().Context(), req.Text)
	if err != nil {
		return httpapi.BadRequest(err.Error())
	}
	return c.JSON(http.StatusOK, translateResponse{Translated: out})
}
