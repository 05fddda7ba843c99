package inventory

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

const itemCols = `id, item_name, category, count, description`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.ItemName, &it.Category, &it.Count, &it.Description)
	return &it, err
}

func (r *repoPG) Create(ctx context.Context, it *Item) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO inventory_items (item_name, category, count, description)
		VALUES ($1,$2,$3,$4)
		RETURNING id`,
		it.ItemName, it.Category, it.Count, it.Description).Scan(&it.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Item, error) {
	return scanItem(r.conn(ctx).QueryRow(ctx, `SELECT `+itemCols+` FROM inventory_items WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, it *Item) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE inventory_items SET item_name=$2, category=$3, count=$4, description=$5
		WHERE id = $1`,
		it.ID, it.ItemName, it.Category, it.Count, it.Description)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Item, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+itemCols+` FROM inventory_items ORDER BY item_name, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

// AddStock increments count in SQL so concurrent returns don't lose updates.
func (r *repoPG) AddStock(ctx context.Context, id int64, delta int) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE inventory_items SET count = count + $2 WHERE id = $1`, id, delta)
	return err
}
