package allocation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/palliacare/outreach/internal/platform/httpapi"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/allocations", h.ListForPatient)
	api.POST("/patients/:id/allocations", h.Create)
	api.PUT("/allocations/:id", h.Update)
}

type createRequest struct {
	MaterialName    string  `json:"material_name"`
	InventoryItemID *int64  `json:"inventory_item_id"`
	AllocationDate  string  `json:"allocation_date"`
	IsReturnable    bool    `json:"is_returnable"`
	ReturnDate      *string `json:"return_date"`
	IsDamaged       bool    `json:"is_damaged"`
}

func (h *Handler) ListForPatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	allocs, err := h.svc.ListByPatient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, allocs)
}

func (h *Handler) Create(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return httpapi.BadRequest(err.Error())
	}
	if req.MaterialName == "" {
		return httpapi.BadRequest("material_name is required")
	}

	a := &Allocation{
		PatientID:       id,
		MaterialName:    req.MaterialName,
		InventoryItemID: req.InventoryItemID,
		AllocationDate:  req.AllocationDate,
		IsReturnable:    req.IsReturnable,
		ReturnDate:      req.ReturnDate,
		IsDamaged:       req.IsDamaged,
	}
	if err := h.svc.Allocate(c.Request().Context(), a); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return httpapi.BadRequest(err.Error())
	}
	a, err := h.svc.UpdateAllocation(c.Request().Context(), id, &upd)
	if errors.Is(err, ErrNotFound) {
		return httpapi.NotFound("allocation not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httpapi.BadRequest("invalid id")
	}
	return id, nil
}
