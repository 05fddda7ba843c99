package allocation

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

const allocCols = `a.id, a.patient_id, p.full_name, a.material_name, a.inventory_item_id,
	a.allocation_date, a.is_returnable, a.return_date, a.is_damaged`

const allocFrom = ` FROM material_allocations a JOIN patients p ON p.id = a.patient_id`

func scanAllocation(row pgx.Row) (*Allocation, error) {
	var a Allocation
	err := row.Scan(&a.ID, &a.PatientID, &a.PatientName, &a.MaterialName, &a.InventoryItemID,
		&a.AllocationDate, &a.IsReturnable, &a.ReturnDate, &a.IsDamaged)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Allocation) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO material_allocations (patient_id, material_name, inventory_item_id,
			allocation_date, is_returnable, return_date, is_damaged)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`,
		a.PatientID, a.MaterialName, a.InventoryItemID,
		a.AllocationDate, a.IsReturnable, a.ReturnDate, a.IsDamaged).Scan(&a.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Allocation, error) {
	return scanAllocation(r.conn(ctx).QueryRow(ctx, `SELECT `+allocCols+allocFrom+` WHERE a.id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Allocation) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE material_allocations SET material_name=$2, inventory_item_id=$3,
			allocation_date=$4, is_returnable=$5, return_date=$6, is_damaged=$7
		WHERE id = $1`,
		a.ID, a.MaterialName, a.InventoryItemID,
		a.AllocationDate, a.IsReturnable, a.ReturnDate, a.IsDamaged)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Allocation, error) {
	return r.list(ctx, `SELECT `+allocCols+allocFrom+` WHERE a.patient_id = $1 ORDER BY a.allocation_date DESC, a.id DESC`, patientID)
}

func (r *repoPG) ListByInventoryItem(ctx context.Context, itemID int64) ([]*Allocation, error) {
	return r.list(ctx, `SELECT `+allocCols+allocFrom+` WHERE a.inventory_item_id = $1 ORDER BY a.allocation_date DESC, a.id DESC`, itemID)
}

// ListLegacyByName matches pre-linking rows by material name. The substring
// match is deliberately loose; these rows predate the inventory table.
func (r *repoPG) ListLegacyByName(ctx context.Context, itemName string) ([]*Allocation, error) {
	return r.list(ctx, `SELECT `+allocCols+allocFrom+`
		WHERE a.inventory_item_id IS NULL AND a.material_name ILIKE '%' || $1 || '%'
		ORDER BY a.allocation_date DESC, a.id DESC`, itemName)
}

func (r *repoPG) list(ctx context.Context, sql string, args ...interface{}) ([]*Allocation, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repoPG) OutstandingNamesByPatient(ctx context.Context) (map[int64][]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT patient_id, material_name FROM material_allocations
		WHERE return_date IS NULL OR return_date = ''
		ORDER BY allocation_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := map[int64][]string{}
	for rows.Next() {
		var patientID int64
		var name string
		if err := rows.Scan(&patientID, &name); err != nil {
			return nil, err
		}
		names[patientID] = append(names[patientID], name)
	}
	return names, rows.Err()
}
