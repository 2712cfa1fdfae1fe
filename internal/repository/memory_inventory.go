package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/techsanasilver/SanaSilver/internal/domain"
)

// MemoryInventory репозиторий складских записей
type MemoryInventory struct{ store *MemoryStore }

func NewMemoryInventory(store *MemoryStore) *MemoryInventory {
	return &MemoryInventory{store: store}
}

var _ InventoryRepository = (*MemoryInventory)(nil)

func (mi *MemoryInventory) Create(ctx context.Context, inv *domain.Inventory) error {
	mi.store.wlock(ctx)
	defer mi.store.wunlock(ctx)
	if _, taken := mi.store.invByKey[inv.Key]; taken {
		return ErrConflict
	}
	inv.ID = uuid.NewString()
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	mi.store.invByID[inv.ID] = cloneInventory(*inv)
	mi.store.invByKey[inv.Key] = inv.ID
	return nil
}

func (mi *MemoryInventory) GetByID(ctx context.Context, id string) (*domain.Inventory, error) {
	mi.store.rlock(ctx)
	defer mi.store.runlock(ctx)
	inv, ok := mi.store.invByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneInventory(inv)
	return &cp, nil
}

func (mi *MemoryInventory) GetByKey(ctx context.Context, key domain.InventoryKey) (*domain.Inventory, error) {
	mi.store.rlock(ctx)
	defer mi.store.runlock(ctx)
	id, ok := mi.store.invByKey[key]
	if !ok {
		return nil, ErrNotFound
	}
	inv := mi.store.invByID[id]
	cp := cloneInventory(inv)
	return &cp, nil
}

func (mi *MemoryInventory) Update(ctx context.Context, inv *domain.Inventory) error {
	mi.store.wlock(ctx)
	defer mi.store.wunlock(ctx)
	cur, ok := mi.store.invByID[inv.ID]
	if !ok {
		return ErrNotFound
	}
	// the key and the movement log prefix never change
	inv.Key = cur.Key
	inv.CreatedAt = cur.CreatedAt
	inv.UpdatedAt = time.Now().UTC()
	mi.store.invByID[inv.ID] = cloneInventory(*inv)
	return nil
}

func (mi *MemoryInventory) List(ctx context.Context) ([]domain.Inventory, error) {
	mi.store.rlock(ctx)
	defer mi.store.runlock(ctx)
	out := make([]domain.Inventory, 0, len(mi.store.invByID))
	for _, inv := range mi.store.invByID {
		out = append(out, cloneInventory(inv))
	}
	return out, nil
}
