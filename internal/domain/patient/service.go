package patient

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("patient not found")

// AllocationNamer reports the outstanding material names per patient so
// the list endpoint can show what each patient currently holds.
type AllocationNamer interface {
	OutstandingNamesByPatient(ctx context.Context) (map[int64][]string, error)
}

type Service struct {
	repo  Repository
	names AllocationNamer
}

func NewService(repo Repository, names AllocationNamer) *Service {
	return &Service{repo: repo, names: names}
}

// conditionStatuses are the registration conditions that seed
// current_status directly. Anything else keeps the "Active" default.
var conditionStatuses = map[string]bool{
	"Stable":    true,
	"Moderate":  true,
	"Severe":    true,
	"Critical":  true,
	"Bedridden": true,
}

// Register creates a patient, stamping the registration date server-side
// and deriving the initial status from the reported condition.
func (s *Service) Register(ctx context.Context, p *Patient) error {
	p.RegistrationDate = time.Now().Format("2006-01-02")
	p.CurrentStatus = "Active"
	if conditionStatuses[p.Condition] {
		p.CurrentStatus = p.Condition
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// UpdatePatient applies the allow-listed fields onto the stored record.
func (s *Service) UpdatePatient(ctx context.Context, id int64, upd *Update) (*Patient, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns a page of patients, each annotated with the names of the
// materials currently out with them.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	patients, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	names, err := s.names.OutstandingNamesByPatient(ctx)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range patients {
		p.Allocations = names[p.ID]
	}
	return patients, total, nil
}
