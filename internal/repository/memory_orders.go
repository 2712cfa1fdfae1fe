package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/techsanasilver/SanaSilver/internal/domain"
)

// MemoryOrders репозиторий заказов. Номер заказа формируется под блокировкой
// записи из дневного счётчика, поэтому конкурентные создания не дают дублей.
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o.ID = uuid.NewString()
	now := time.Now().UTC()
	o.OrderNumber = mo.store.nextOrderNumber(now)
	o.CreatedAt = now
	o.UpdatedAt = now
	mo.store.ordersByID[o.ID] = cloneOrder(*o)
	mo.store.orderNumbers[o.OrderNumber] = o.ID
	return nil
}

// nextOrderNumber выдаёт следующий номер вида <префикс><yyyymmdd><0001>.
// Вызывается только под блокировкой записи хранилища.
func (m *MemoryStore) nextOrderNumber(now time.Time) string {
	day := now.Format("20060102")
	for {
		m.orderSeq[day]++
		n := fmt.Sprintf("%s%s%04d", m.orderPrefix, day, m.orderSeq[day])
		if _, taken := m.orderNumbers[n]; !taken {
			return n
		}
	}
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneOrder(o)
	return &cp, nil
}

func (mo *MemoryOrders) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	id, ok := mo.store.orderNumbers[number]
	if !ok {
		return nil, ErrNotFound
	}
	o := mo.store.ordersByID[id]
	cp := cloneOrder(o)
	return &cp, nil
}

func (mo *MemoryOrders) Update(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	cur, ok := mo.store.ordersByID[o.ID]
	if !ok {
		return ErrNotFound
	}
	// order number is immutable once assigned
	o.OrderNumber = cur.OrderNumber
	o.CreatedAt = cur.CreatedAt
	o.UpdatedAt = time.Now().UTC()
	mo.store.ordersByID[o.ID] = cloneOrder(*o)
	return nil
}

func (mo *MemoryOrders) List(ctx context.Context) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, 0, len(mo.store.ordersByID))
	for _, o := range mo.store.ordersByID {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}
