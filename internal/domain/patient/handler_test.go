package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler(repo *mockRepo) *Handler {
	return NewHandler(newTestService(repo))
}

func doRequest(h echo.HandlerFunc, method, target, body string, params map[string]string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	return rec, h(c)
}

func TestCreatePatient(t *testing.T) {
	h := newTestHandler(newMockRepo())
	body := `{"full_name":"Thomas","gender":"M","age":72,"condition":"Bedridden","disease":"CA Lung"}`
	rec, err := doRequest(h.Create, http.MethodPost, "/patients", body, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var p Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.ID == 0 || p.CurrentStatus != "Bedridden" || p.Age != 72 {
		t.Errorf("unexpected response: %+v", p)
	}
}

func TestCreatePatientStringAge(t *testing.T) {
	h := newTestHandler(newMockRepo())
	rec, err := doRequest(h.Create, http.MethodPost, "/patients", `{"full_name":"A","age":"65"}`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var p Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Age != 65 {
		t.Errorf("age = %d, want 65", p.Age)
	}
}

func TestCreatePatientInvalidAge(t *testing.T) {
	for _, body := range []string{
		`{"full_name":"A","age":"old"}`,
		`{"full_name":"A"}`,
	} {
		h := newTestHandler(newMockRepo())
		_, err := doRequest(h.Create, http.MethodPost, "/patients", body, nil)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: err = %v, want 400", body, err)
		}
		if he.Message != "Invalid Age" {
			t.Errorf("body %s: message = %v, want Invalid Age", body, he.Message)
		}
	}
}

func TestGetPatientNotFound(t *testing.T) {
	h := newTestHandler(newMockRepo())
	_, err := doRequest(h.Get, http.MethodGet, "/patients/42", "", map[string]string{"id": "42"})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestGetPatientInvalidID(t *testing.T) {
	h := newTestHandler(newMockRepo())
	_, err := doRequest(h.Get, http.MethodGet, "/patients/abc", "", map[string]string{"id": "abc"})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestUpdatePatientIgnoresUnknownFields(t *testing.T) {
	repo := newMockRepo()
	h := newTestHandler(repo)
	p := &Patient{FullName: "A", CurrentStatus: "Active"}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	body := `{"full_name":"B","id":999,"registration_date":"1999-01-01","bogus":true}`
	rec, err := doRequest(h.Update, http.MethodPut, "/patients/1", body,
		map[string]string{"id": strconv.FormatInt(p.ID, 10)})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := repo.patients[p.ID]
	if got.FullName != "B" {
		t.Errorf("full_name = %q, want B", got.FullName)
	}
	if got.ID != p.ID || got.RegistrationDate != p.RegistrationDate {
		t.Errorf("protected fields changed: %+v", got)
	}
}

func TestListPatientsEnvelope(t *testing.T) {
	repo := newMockRepo()
	h := newTestHandler(repo)
	if err := repo.Create(context.Background(), &Patient{FullName: "A"}); err != nil {
		t.Fatal(err)
	}
	rec, err := doRequest(h.List, http.MethodGet, "/patients", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	var resp struct {
		Data  []Patient `json:"data"`
		Total int       `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Errorf("unexpected envelope: %s", rec.Body.String())
	}
}
