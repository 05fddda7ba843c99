package allocation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("allocation not found")

// Restocker puts a returned material back on the shelf.
type Restocker interface {
	AddStock(ctx context.Context, itemID int64, delta int) error
}

// TxRunner runs fn atomically; repository calls made with the derived
// context join the same transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo      Repository
	inventory Restocker
	tx        TxRunner
}

func NewService(repo Repository, inventory Restocker, tx TxRunner) *Service {
	if tx == nil {
		tx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &Service{repo: repo, inventory: inventory, tx: tx}
}

// Allocate records a material handed to a patient. The allocation date
// defaults to today when the caller leaves it empty.
func (s *Service) Allocate(ctx context.Context, a *Allocation) error {
	if a.AllocationDate == "" {
		a.AllocationDate = time.Now().Format("2006-01-02")
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id int64) (*Allocation, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Allocation, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// UpdateAllocation applies the update and runs the return rule: when this
// update introduces a return date on a row that had none, the damage flag is
// taken from the request (absent means undamaged), and an undamaged return
// of a returnable, inventory-linked material puts one unit back in stock.
// Re-saving an already-returned row never restocks again. The allocation
// write and the restock commit together.
func (s *Service) UpdateAllocation(ctx context.Context, id int64, upd *Update) (*Allocation, error) {
	var out *Allocation
	err := s.tx(ctx, func(ctx context.Context) error {
		a, err := s.Get(ctx, id)
		if err != nil {
			return err
		}

		wasReturned := a.Returned()
		upd.Apply(a)

		returning := !wasReturned && a.Returned()
		if returning {
			a.IsDamaged = upd.IsDamaged != nil && *upd.IsDamaged
		}

		if err := s.repo.Update(ctx, a); err != nil {
			return err
		}

		if returning && a.IsReturnable && !a.IsDamaged && a.InventoryItemID != nil {
			if err := s.inventory.AddStock(ctx, *a.InventoryItemID, 1); err != nil {
				return err
			}
		}
		out = a
		return nil
	})
	return out, err
}
