package visit

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	visits map[int64]*Visit
	nextID int64
}

func newMockRepo() *mockRepo { return &mockRepo{visits: map[int64]*Visit{}} }

func (m *mockRepo) Create(_ context.Context, v *Visit) error {
	m.nextID++
	v.ID = m.nextID
	cp := *v
	m.visits[v.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Visit, error) {
	v, ok := m.visits[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *v
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, v *Visit) error { cp := *v; m.visits[v.ID] = &cp; return nil }

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Visit, int, error) {
	var out []*Visit
	for _, v := range m.visits {
		out = append(out, v)
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID int64) ([]*Visit, error) {
	var out []*Visit
	for _, v := range m.visits {
		if v.PatientID == patientID {
			out = append(out, v)
		}
	}
	return out, nil
}

type mockStatusUpdater struct {
	calls  int
	lastID int64
	last   string
}

func (m *mockStatusUpdater) SetCurrentStatus(_ context.Context, id int64, status string) error {
	m.calls++
	m.lastID = id
	m.last = status
	return nil
}

func strptr(s string) *string { return &s }

func TestCreateVisitPropagatesAssessment(t *testing.T) {
	updater := &mockStatusUpdater{}
	svc := NewService(newMockRepo(), updater)

	v := &Visit{PatientID: 7, ConditionAssessment: strptr("Severe")}
	if err := svc.CreateVisit(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	if updater.calls != 1 || updater.lastID != 7 || updater.last != "Severe" {
		t.Errorf("propagation = %+v, want one call with (7, Severe)", updater)
	}
}

func TestCreateVisitWithoutAssessmentDoesNotPropagate(t *testing.T) {
	for _, assessment := range []*string{nil, strptr("")} {
		updater := &mockStatusUpdater{}
		svc := NewService(newMockRepo(), updater)
		v := &Visit{PatientID: 7, ConditionAssessment: assessment}
		if err := svc.CreateVisit(context.Background(), v); err != nil {
			t.Fatal(err)
		}
		if updater.calls != 0 {
			t.Errorf("assessment %v: expected no propagation, got %d calls", assessment, updater.calls)
		}
	}
}

func TestUpdateVisitPropagatesOnlyCarriedAssessment(t *testing.T) {
	repo := newMockRepo()
	updater := &mockStatusUpdater{}
	svc := NewService(repo, updater)

	v := &Visit{PatientID: 3, ConditionAssessment: strptr("Moderate")}
	if err := repo.Create(context.Background(), v); err != nil {
		t.Fatal(err)
	}

	// Completing the visit without touching the assessment must not
	// re-push the stored value onto the patient.
	done := true
	if _, err := svc.UpdateVisit(context.Background(), v.ID, &Update{IsCompleted: &done}); err != nil {
		t.Fatal(err)
	}
	if updater.calls != 0 {
		t.Fatalf("expected no propagation, got %d calls", updater.calls)
	}

	if _, err := svc.UpdateVisit(context.Background(), v.ID, &Update{ConditionAssessment: strptr("Severe")}); err != nil {
		t.Fatal(err)
	}
	if updater.calls != 1 || updater.lastID != 3 || updater.last != "Severe" {
		t.Errorf("propagation = %+v, want one call with (3, Severe)", updater)
	}
}

func TestUpdateVisitPartial(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockStatusUpdater{})

	v := &Visit{PatientID: 1, ScheduledDate: strptr("2024-03-15"), ServicePerformed: strptr("Wound care")}
	if err := repo.Create(context.Background(), v); err != nil {
		t.Fatal(err)
	}

	done := true
	got, err := svc.UpdateVisit(context.Background(), v.ID, &Update{
		IsCompleted: &done,
		VisitDate:   strptr("2024-03-16"),
		TimeSpent:   strptr("45 min"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsCompleted || *got.VisitDate != "2024-03-16" || *got.TimeSpent != "45 min" {
		t.Errorf("update not applied: %+v", got)
	}
	if *got.ScheduledDate != "2024-03-15" || *got.ServicePerformed != "Wound care" {
		t.Errorf("unset fields changed: %+v", got)
	}
}

func TestUpdateVisitNotFound(t *testing.T) {
	svc := NewService(newMockRepo(), &mockStatusUpdater{})
	if _, err := svc.UpdateVisit(context.Background(), 42, &Update{}); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
