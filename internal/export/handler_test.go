package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakeSource struct {
	patients []PatientRecord
	visits   []VisitRecord
}

func (f *fakeSource) Patients(_ context.Context) ([]PatientRecord, error) { return f.patients, nil }
func (f *fakeSource) Visits(_ context.Context) ([]VisitRecord, error)     { return f.visits, nil }

func doExport(h echo.HandlerFunc, target string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func TestExportPatientsDefaultsToExcel(t *testing.T) {
	h := NewHandler(&fakeSource{patients: samplePatients()})
	rec, err := doExport(h.Patients, "/export/patients")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentType); !strings.Contains(got, "spreadsheetml") {
		t.Errorf("content type = %q", got)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, `filename="patients.xlsx"`) {
		t.Errorf("disposition = %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty body")
	}
}

func TestExportPatientsPDF(t *testing.T) {
	h := NewHandler(&fakeSource{patients: samplePatients()})
	rec, err := doExport(h.Patients, "/export/patients?format=pdf")
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.Header().Get(echo.HeaderContentType); !strings.Contains(got, "application/pdf") {
		t.Errorf("content type = %q", got)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, `filename="patients.pdf"`) {
		t.Errorf("disposition = %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("body is not a PDF document")
	}
}

func TestExportVisitsAppliesDateFilter(t *testing.T) {
	src := &fakeSource{visits: []VisitRecord{
		{PatientName: "A", ScheduledDate: "2024-03-15"},
		{PatientName: "B", ScheduledDate: "2024-04-01"},
	}}
	h := NewHandler(src)
	rec, err := doExport(h.Visits, "/export/visits?date=2024-03-15")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, `filename="visits.xlsx"`) {
		t.Errorf("disposition = %q", got)
	}
}
