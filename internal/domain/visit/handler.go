package visit

import (
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
	api.GET("/visits", h.List)
	api.POST("/visits", h.Create)
	api.GET("/visits/:id", h.Get)
	api.PUT("/visits/:id", h.Update)
	api.GET("/patients/:id/visits", h.ListForPatient)
	api.POST("/patients/:id/visits", h.CreateForPatient)
}

type createRequest struct {
	PatientID           int64   `json:"patient_id"`
	ScheduledDate       *string `json:"scheduled_date"`
	VisitDate           *string `json:"visit_date"`
	TimeSpent           *string `json:"time_spent"`
	IsCompleted         bool    `json:"is_completed"`
	ServicePerformed    *string `json:"service_performed"`
	ConditionAssessment *string `json:"condition_assessment"`
	SymptomsMalayalam   *string `json:"symptoms_malayalam"`
	SymptomsEnglish     *string `json:"symptoms_english"`
	NotesMalayalam      *string `json:"notes_malayalam"`
	NotesEnglish        *string `json:"notes_english"`
}

func (req *createRequest) toVisit() *Visit {
	return &Visit{
		PatientID:           req.PatientID,
		ScheduledDate:       req.ScheduledDate,
		VisitDate:           req.VisitDate,
		TimeSpent:           req.TimeSpent,
		IsCompleted:         req.IsCompleted,
		ServicePerformed:    req.ServicePerformed,
		ConditionAssessment: req.ConditionAssessment,
		SymptomsMalayalam:   req.SymptomsMalayalam,
		SymptomsEnglish:     req.SymptomsEnglish,
		NotesMalayalam:      req.NotesMalayalam,
		NotesEnglish:        req.NotesEnglish,
	}
}

func (h *Handler) List(c echo.Context) error {
	params := pagination.FromContext(c)
	visits, total, err := h.svc.List(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(visits, total, params.Limit, params.Offset))
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return httpapi.BadRequest(err.Error())
	}
	if req.PatientID == 0 {
		return httpapi.BadRequest("patient_id is required")
	}
	return h.create(c, &req)
}

func (h *Handler) CreateForPatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return httpapi.BadRequest(err.Error())
	}
	req.PatientID = id
	return h.create(c, &req)
}

func (h *Handler) create(c echo.Context, req *createRequest) error {
	v := req.toVisit()
	if err := h.svc.CreateVisit(c.Request().Context(), v); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return httpapi.NotFound("visit not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
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
	v, err := h.svc.UpdateVisit(c.Request().Context(), id, &upd)
	if errors.Is(err, ErrNotFound) {
		return httpapi.NotFound("visit not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) ListForPatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	visits, err := h.svc.ListByPatient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, visits)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httpapi.BadRequest("invalid id")
	}
	return id, nil
}
