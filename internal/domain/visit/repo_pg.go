package visit

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/palliacare/outreach/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const visitCols = `v.id, v.patient_id, p.full_name, v.scheduled_date, v.visit_date,
	v.time_spent, v.is_completed, v.service_performed, v.condition_assessment,
	v.symptoms_malayalam, v.symptoms_english, v.notes_malayalam, v.notes_english`

const visitFrom = ` FROM visits v JOIN patients p ON p.id = v.patient_id`

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.PatientID, &v.PatientName, &v.ScheduledDate, &v.VisitDate,
		&v.TimeSpent, &v.IsCompleted, &v.ServicePerformed, &v.ConditionAssessment,
		&v.SymptomsMalayalam, &v.SymptomsEnglish, &v.NotesMalayalam, &v.NotesEnglish)
	return &v, err
}

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO visits (patient_id, scheduled_date, visit_date, time_spent,
			is_completed, service_performed, condition_assessment,
			symptoms_malayalam, symptoms_english, notes_malayalam, notes_english)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id`,
		v.PatientID, v.ScheduledDate, v.VisitDate, v.TimeSpent,
		v.IsCompleted, v.ServicePerformed, v.ConditionAssessment,
		v.SymptomsMalayalam, v.SymptomsEnglish, v.NotesMalayalam, v.NotesEnglish).Scan(&v.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Visit, error) {
	return scanVisit(r.conn(ctx).QueryRow(ctx, `SELECT `+visitCols+visitFrom+` WHERE v.id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, v *Visit) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE visits SET scheduled_date=$2, visit_date=$3, time_spent=$4,
			is_completed=$5, service_performed=$6, condition_assessment=$7,
			symptoms_malayalam=$8, symptoms_english=$9, notes_malayalam=$10, notes_english=$11
		WHERE id = $1`,
		v.ID, v.ScheduledDate, v.VisitDate, v.TimeSpent,
		v.IsCompleted, v.ServicePerformed, v.ConditionAssessment,
		v.SymptomsMalayalam, v.SymptomsEnglish, v.NotesMalayalam, v.NotesEnglish)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM visits`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+visitCols+visitFrom+` ORDER BY v.scheduled_date DESC NULLS LAST, v.id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	visits, err := collect(rows)
	return visits, total, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Visit, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+visitCols+visitFrom+` WHERE v.patient_id = $1 ORDER BY v.scheduled_date DESC NULLS LAST, v.id DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]*Visit, error) {
	var out []*Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
