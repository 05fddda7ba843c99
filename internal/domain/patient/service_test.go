package patient

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	patients map[int64]*Patient
	nextID   int64
}

func newMockRepo() *mockRepo { return &mockRepo{patients: map[int64]*Patient{}} }

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error { cp := *p; m.patients[p.ID] = &cp; return nil }

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	all, _ := m.ListAll(context.Background())
	return all, len(all), nil
}

func (m *mockRepo) ListAll(_ context.Context) ([]*Patient, error) {
	var out []*Patient
	for i := m.nextID; i >= 1; i-- {
		if p, ok := m.patients[i]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) SetCurrentStatus(_ context.Context, id int64, status string) error {
	if p, ok := m.patients[id]; ok {
		p.CurrentStatus = status
	}
	return nil
}

type mockNamer struct{ names map[int64][]string }

func (m *mockNamer) OutstandingNamesByPatient(_ context.Context) (map[int64][]string, error) {
	return m.names, nil
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, &mockNamer{names: map[int64][]string{}})
}

func TestRegisterDerivesStatusFromCondition(t *testing.T) {
	cases := []struct {
		condition string
		want      string
	}{
		{"Stable", "Stable"},
		{"Moderate", "Moderate"},
		{"Severe", "Severe"},
		{"Critical", "Critical"},
		{"Bedridden", "Bedridden"},
		{"Not Bedridden", "Active"},
		{"", "Active"},
		{"something else", "Active"},
	}
	for _, tc := range cases {
		svc := newTestService(newMockRepo())
		p := &Patient{FullName: "A", Condition: tc.condition}
		if err := svc.Register(context.Background(), p); err != nil {
			t.Fatalf("Register(%q): %v", tc.condition, err)
		}
		if p.CurrentStatus != tc.want {
			t.Errorf("condition %q: status = %q, want %q", tc.condition, p.CurrentStatus, tc.want)
		}
		if p.Condition != tc.condition {
			t.Errorf("condition %q was rewritten to %q", tc.condition, p.Condition)
		}
	}
}

func TestRegisterStampsRegistrationDate(t *testing.T) {
	svc := newTestService(newMockRepo())
	p := &Patient{FullName: "A"}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if len(p.RegistrationDate) != len("2006-01-02") {
		t.Errorf("registration_date = %q, want YYYY-MM-DD", p.RegistrationDate)
	}
	if p.ID == 0 {
		t.Error("expected id to be assigned")
	}
}

func TestUpdatePatientPartial(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	p := &Patient{FullName: "A", Gender: "F", Age: 70, Disease: "CA Lung"}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	name := "B"
	expired := true
	got, err := svc.UpdatePatient(context.Background(), p.ID, &Update{FullName: &name, IsExpired: &expired})
	if err != nil {
		t.Fatal(err)
	}
	if got.FullName != "B" || !got.IsExpired {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Age != 70 || got.Disease != "CA Lung" {
		t.Errorf("unset fields changed: %+v", got)
	}
}

func TestUpdatePatientNotFound(t *testing.T) {
	svc := newTestService(newMockRepo())
	if _, err := svc.UpdatePatient(context.Background(), 99, &Update{}); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListAttachesOutstandingAllocations(t *testing.T) {
	repo := newMockRepo()
	namer := &mockNamer{names: map[int64][]string{}}
	svc := NewService(repo, namer)

	a := &Patient{FullName: "A"}
	b := &Patient{FullName: "B"}
	for _, p := range []*Patient{a, b} {
		if err := svc.Register(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}
	namer.names[a.ID] = []string{"Wheelchair", "Water Bed"}

	patients, total, err := svc.List(context.Background(), 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	for _, p := range patients {
		switch p.ID {
		case a.ID:
			if len(p.Allocations) != 2 {
				t.Errorf("patient A allocations = %v", p.Allocations)
			}
		case b.ID:
			if len(p.Allocations) != 0 {
				t.Errorf("patient B allocations = %v", p.Allocations)
			}
		}
	}
}
