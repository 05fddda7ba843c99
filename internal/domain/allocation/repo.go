package allocation

import "context"

type Repository interface {
	Create(ctx context.Context, a *Allocation) error
	GetByID(ctx context.Context, id int64) (*Allocation, error)
	Update(ctx context.Context, a *Allocation) error
	ListByPatient(ctx context.Context, patientID int64) ([]*Allocation, error)
	ListByInventoryItem(ctx context.Context, itemID int64) ([]*Allocation, error)
	ListLegacyByName(ctx context.Context, itemName string) ([]*Allocation, error)
	OutstandingNamesByPatient(ctx context.Context) (map[int64][]string, error)
}
