package patient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	api.GET("/patients", h.List)
	api.POST("/patients", h.Create)
	api.GET("/patients/:id", h.Get)
	api.PUT("/patients/:id", h.Update)
}

type createRequest struct {
	FullName      string          `json:"full_name"`
	Gender        string          `json:"gender"`
	DOB           string          `json:"dob"`
	Age           json.RawMessage `json:"age"`
	Address       string          `json:"address"`
	Condition     string          `json:"condition"`
	Disease       string          `json:"disease"`
	GuardianName  string          `json:"guardian_name"`
	GuardianPhone string          `json:"guardian_phone"`
	RelativeName  *string         `json:"relative_name"`
}

func (h *Handler) List(c echo.Context) error {
	params := pagination.FromContext(c)
	patients, total, err := h.svc.List(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients, total, params.Limit, params.Offset))
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return httpapi.BadRequest(err.Error())
	}
	age, err := CoerceInt(req.Age)
	if err != nil {
		return httpapi.BadRequest("Invalid Age")
	}

	p := &Patient{
		FullName:      req.FullName,
		Gender:        req.Gender,
		DOB:           req.DOB,
		Age:           age,
		Address:       req.Address,
		Condition:     req.Condition,
		Disease:       req.Disease,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		RelativeName:  req.RelativeName,
	}
	if err := h.svc.Register(c.Request().Context(), p); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return httpapi.NotFound("patient not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
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
	p, err := h.svc.UpdatePatient(c.Request().Context(), id, &upd)
	if errors.Is(err, ErrNotFound) {
		return httpapi.NotFound("patient not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httpapi.BadRequest("invalid id")
	}
	return id, nil
}
