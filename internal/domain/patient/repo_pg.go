package patient

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

const patientCols = `id, full_name, gender, dob, age, address, condition, disease,
	is_expired, current_status, registration_date,
	guardian_name, guardian_phone, relative_name`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.Gender, &p.DOB, &p.Age, &p.Address, &p.Condition, &p.Disease,
		&p.IsExpired, &p.CurrentStatus, &p.RegistrationDate,
		&p.GuardianName, &p.GuardianPhone, &p.RelativeName)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (full_name, gender, dob, age, address, condition, disease,
			is_expired, current_status, registration_date,
			guardian_name, guardian_phone, relative_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id`,
		p.FullName, p.Gender, p.DOB, p.Age, p.Address, p.Condition, p.Disease,
		p.IsExpired, p.CurrentStatus, p.RegistrationDate,
		p.GuardianName, p.GuardianPhone, p.RelativeName).Scan(&p.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET full_name=$2, gender=$3, dob=$4, age=$5, address=$6,
			condition=$7, disease=$8, is_expired=$9, current_status=$10,
			guardian_name=$11, guardian_phone=$12, relative_name=$13
		WHERE id = $1`,
		p.ID, p.FullName, p.Gender, p.DOB, p.Age, p.Address,
		p.Condition, p.Disease, p.IsExpired, p.CurrentStatus,
		p.GuardianName, p.GuardianPhone, p.RelativeName)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListAll(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repoPG) SetCurrentStatus(ctx context.Context, id int64, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE patients SET current_status = $2 WHERE id = $1`, id, status)
	return err
}
