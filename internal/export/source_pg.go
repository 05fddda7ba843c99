package export

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type sourcePG struct{ pool *pgxpool.Pool }

// NewSourcePG reads export rows straight from the database. Filtering
// happens in memory; the export sets are small enough that one scan per
// request beats maintaining a SQL mirror of the filter pipeline.
func NewSourcePG(pool *pgxpool.Pool) Source {
	return &sourcePG{pool: pool}
}

func (s *sourcePG) Patients(ctx context.Context) ([]PatientRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.full_name, p.age, p.gender, p.condition, p.current_status,
			p.disease, p.is_expired,
			COALESCE(array_agg(a.material_name ORDER BY a.allocation_date DESC, a.id DESC)
				FILTER (WHERE a.id IS NOT NULL), '{}')
		FROM patients p
		LEFT JOIN material_allocations a ON a.patient_id = p.id
		GROUP BY p.id
		ORDER BY p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PatientRecord
	for rows.Next() {
		var r PatientRecord
		if err := rows.Scan(&r.ID, &r.FullName, &r.Age, &r.Gender, &r.Condition,
			&r.CurrentStatus, &r.Disease, &r.IsExpired, &r.Materials); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sourcePG) Visits(ctx context.Context) ([]VisitRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.full_name,
			COALESCE(v.scheduled_date, ''), COALESCE(v.visit_date, ''),
			COALESCE(v.service_performed, ''), COALESCE(v.condition_assessment, ''),
			v.is_completed, COALESCE(v.time_spent, '')
		FROM visits v
		JOIN patients p ON p.id = v.patient_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VisitRecord
	for rows.Next() {
		var r VisitRecord
		if err := rows.Scan(&r.PatientName, &r.ScheduledDate, &r.VisitDate,
			&r.ServicePerformed, &r.ConditionAssessment, &r.IsCompleted, &r.TimeSpent); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
