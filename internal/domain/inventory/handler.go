package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/palliacare/outreach/internal/platform/httpapi"
	"github.com/palliacare/outreach/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/inventory", h.List)
	api.POST("/inventory", h.Create)
	api.GET("/inventory/:id", h.Get)
	api.PUT("/inventory/:id", h.Update)
	api.GET("/inventory/:id/history", h.History)
}

type createRequest struct {
	ItemName    string  `json:"item_name"`
	Category    string  `json:"category"`
	Count       int     `json:"count"`
	Description *string `json:"description"`
}

// updateRequest carries AddStock as raw JSON so "5" and 5 both work.
type updateRequest struct {
	Update
	AddStock json.RawMessage `json:"add_stock"`
}

func (h *Handler) List(c echo.Context) error {
	params := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, params.Limit, params.Offset))
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return httpapi.BadRequest(err.Error())
	}
	if req.ItemName == "" {
		return httpapi.BadRequest("item_name is required")
	}
	it := &Item{ItemName: req.ItemName, Category: req.Category, Count: req.Count, Description: req.Description}
	if err := h.svc.Create(c.Request().Context(), it); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	it, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return httpapi.NotFound("inventory item not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, it)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return httpapi.BadRequest(err.Error())
	}

	var it *Item
	if len(req.AddStock) > 0 && string(req.AddStock) != "null" {
		delta, cerr := coerceInt(req.AddStock)
		if cerr != nil {
			return httpapi.BadRequest("invalid add_stock value")
		}
		it, err = h.svc.AddStock(c.Request().Context(), id, delta)
	} else {
		it, err = h.svc.UpdateItem(c.Request().Context(), id, &req.Update)
	}
	if errors.Is(err, ErrNotFound) {
		return httpapi.NotFound("inventory item not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, it)
}

func (h *Handler) History(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	it, stats, history, err := h.svc.History(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return httpapi.NotFound("inventory item not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"item":    it,
		"stats":   stats,
		"history": history,
	})
}

func coerceInt(raw json.RawMessage) (int, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	return strconv.Atoi(s)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httpapi.BadRequest("invalid id")
	}
	return id, nil
}
