package inventory

import "context"

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, it *Item) error
	List(ctx context.Context, limit, offset int) ([]*Item, int, error)
	AddStock(ctx context.Context, id int64, delta int) error
}
