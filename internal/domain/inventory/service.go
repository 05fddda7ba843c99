package inventory

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("inventory item not found")

// AllocationSource exposes the allocation rows the history view needs.
// ListLegacyByName matches unlinked allocations whose material name contains
// the given item name, case-insensitively; these predate inventory linking.
type AllocationSource interface {
	ListByInventoryItem(ctx context.Context, itemID int64) ([]AllocationRecord, error)
	ListLegacyByName(ctx context.Context, itemName string) ([]AllocationRecord, error)
}

type Service struct {
	repo        Repository
	allocations AllocationSource
}

func NewService(repo Repository, allocations AllocationSource) *Service {
	return &Service{repo: repo, allocations: allocations}
}

func (s *Service) Create(ctx context.Context, it *Item) error {
	return s.repo.Create(ctx, it)
}

func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return it, err
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Item, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// AddStock bumps the shelf count by delta without touching other fields.
func (s *Service) AddStock(ctx context.Context, id int64, delta int) (*Item, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.AddStock(ctx, id, delta); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateItem applies the allow-listed fields onto the stored record.
func (s *Service) UpdateItem(ctx context.Context, id int64, upd *Update) (*Item, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(it)
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// History merges the item's linked allocations with legacy rows matched by
// material name, de-duplicated and ordered newest first, plus summary stats.
func (s *Service) History(ctx context.Context, id int64) (*Item, Stats, []AllocationRecord, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, Stats{}, nil, err
	}

	linked, err := s.allocations.ListByInventoryItem(ctx, it.ID)
	if err != nil {
		return nil, Stats{}, nil, err
	}
	legacy, err := s.allocations.ListLegacyByName(ctx, it.ItemName)
	if err != nil {
		return nil, Stats{}, nil, err
	}

	seen := make(map[int64]bool, len(linked))
	history := make([]AllocationRecord, 0, len(linked)+len(legacy))
	for _, rec := range linked {
		seen[rec.ID] = true
		history = append(history, rec)
	}
	for _, rec := range legacy {
		if !seen[rec.ID] {
			seen[rec.ID] = true
			history = append(history, rec)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].AllocationDate != history[j].AllocationDate {
			return history[i].AllocationDate > history[j].AllocationDate
		}
		return history[i].ID > history[j].ID
	})

	return it, computeStats(history), history, nil
}

func computeStats(history []AllocationRecord) Stats {
	st := Stats{TotalAllocated: len(history)}
	for _, rec := range history {
		returned := rec.ReturnDate != nil && *rec.ReturnDate != ""
		switch {
		case returned && rec.IsDamaged:
			st.ReturnedDamaged++
		case returned:
			st.ReturnedGood++
		case rec.IsReturnable:
			// Consumables that were never returnable don't count as out
			// with a patient.
			st.WithPatient++
		}
	}
	return st
}
