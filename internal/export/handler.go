package export

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/palliacare/outreach/internal/platform/httpapi"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	src Source
}

func NewHandler(src Source) *Handler {
	return &Handler{src: src}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/export/patients", h.Patients)
	api.GET("/export/visits", h.Visits)
}

func (h *Handler) Patients(c echo.Context) error {
	records, err := h.src.Patients(c.Request().Context())
	if err != nil {
		return err
	}
	records = FilterPatients(records, PatientFilter{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		AgeMin:   c.QueryParam("age_min"),
		AgeMax:   c.QueryParam("age_max"),
		Disease:  c.QueryParam("disease"),
		Material: c.QueryParam("material"),
	})

	if c.QueryParam("format") == "pdf" {
		return sendPDF(c, PatientsPDF(records), "patients.pdf")
	}
	f, err := PatientsExcel(records)
	if err != nil {
		return httpapi.BadRequest(err.Error())
	}
	return sendExcel(c, f, "patients.xlsx")
}

func (h *Handler) Visits(c echo.Context) error {
	records, err := h.src.Visits(c.Request().Context())
	if err != nil {
		return err
	}
	records = FilterVisits(records, VisitFilter{
		Date:  c.QueryParam("date"),
		Month: c.QueryParam("month"),
	})

	if c.QueryParam("format") == "pdf" {
		return sendPDF(c, VisitsPDF(records), "visits.pdf")
	}
	f, err := VisitsExcel(records)
	if err != nil {
		return httpapi.BadRequest(err.Error())
	}
	return sendExcel(c, f, "visits.xlsx")
}

func sendExcel(c echo.Context, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return httpapi.BadRequest(err.Error())
	}
	attach(c, filename)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func sendPDF(c echo.Context, pdf *gofpdf.Fpdf, filename string) error {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return httpapi.BadRequest(err.Error())
	}
	attach(c, filename)
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

func attach(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
}
