package visit

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("visit not found")

// PatientStatusUpdater propagates a visit's condition assessment onto the
// owning patient record.
type PatientStatusUpdater interface {
	SetCurrentStatus(ctx context.Context, id int64, status string) error
}

type Service struct {
	repo     Repository
	patients PatientStatusUpdater
}

func NewService(repo Repository, patients PatientStatusUpdater) *Service {
	return &Service{repo: repo, patients: patients}
}

// CreateVisit records the visit and, when it carries a condition
// assessment, pushes that assessment onto the patient's current status.
func (s *Service) CreateVisit(ctx context.Context, v *Visit) error {
	if err := s.repo.Create(ctx, v); err != nil {
		return err
	}
	return s.propagate(ctx, v.PatientID, v.ConditionAssessment)
}

func (s *Service) Get(ctx context.Context, id int64) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

// UpdateVisit applies the allow-listed fields. Only an assessment carried
// by this update propagates; re-saving an old assessment does not.
func (s *Service) UpdateVisit(ctx context.Context, id int64, upd *Update) (*Visit, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(v)
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	if err := s.propagate(ctx, v.PatientID, upd.ConditionAssessment); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) propagate(ctx context.Context, patientID int64, assessment *string) error {
	if assessment == nil || *assessment == "" {
		return nil
	}
	return s.patients.SetCurrentStatus(ctx, patientID, *assessment)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Visit, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Visit, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
