package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/techsanasilver/SanaSilver/internal/domain"
)

// MemoryStore объединённое in-memory хранилище с индексами уникальности
// и счётчиком дневной последовательности номеров заказов
type MemoryStore struct {
	mu sync.RWMutex

	adminsByID  map[string]domain.Admin
	adminEmails map[string]string // lower(email) -> admin id

	customersByID  map[string]domain.Customer
	customerEmails map[string]string

	categoriesByID map[string]domain.Category

	productsByID map[string]domain.Product
	productSKUs  map[string]string // sku -> product id

	couponsByID map[string]domain.Coupon
	couponCodes map[string]string // upper(code) -> coupon id

	invByID  map[string]domain.Inventory
	invByKey map[domain.InventoryKey]string

	ordersByID   map[string]domain.Order
	orderNumbers map[string]string // number -> order id
	orderSeq     map[string]int64  // yyyymmdd -> last issued sequence

	orderPrefix string
}

func NewMemoryStore(orderPrefix string) *MemoryStore {
	return &MemoryStore{
		adminsByID:     make(map[string]domain.Admin),
		adminEmails:    make(map[string]string),
		customersByID:  make(map[string]domain.Customer),
		customerEmails: make(map[string]string),
		categoriesByID: make(map[string]domain.Category),
		productsByID:   make(map[string]domain.Product),
		productSKUs:    make(map[string]string),
		couponsByID:    make(map[string]domain.Coupon),
		couponCodes:    make(map[string]string),
		invByID:        make(map[string]domain.Inventory),
		invByKey:       make(map[domain.InventoryKey]string),
		ordersByID:     make(map[string]domain.Order),
		orderNumbers:   make(map[string]string),
		orderSeq:       make(map[string]int64),
		orderPrefix:    orderPrefix,
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// ProductRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, taken := m.productSKUs[p.SKU]; taken {
		return ErrConflict
	}
	p.ID = uuid.NewString()
	for i := range p.Variants {
		if p.Variants[i].ID == "" {
			p.Variants[i].ID = uuid.NewString()
		}
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.productsByID[p.ID] = cloneProduct(*p)
	m.productSKUs[p.SKU] = p.ID
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneProduct(p)
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	cur, ok := m.productsByID[p.ID]
	if !ok {
		return ErrNotFound
	}
	if p.SKU != cur.SKU {
		if _, taken := m.productSKUs[p.SKU]; taken {
			return ErrConflict
		}
		delete(m.productSKUs, cur.SKU)
		m.productSKUs[p.SKU] = p.ID
	}
	for i := range p.Variants {
		if p.Variants[i].ID == "" {
			p.Variants[i].ID = uuid.NewString()
		}
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	m.productsByID[p.ID] = cloneProduct(*p)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	p, ok := m.productsByID[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.productSKUs, p.SKU)
	delete(m.productsByID, id)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0)
	for _, p := range m.productsByID {
		if !containsIgnoreCase(p.Name, f.NameSubstring) {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

// deep-copy helpers: значения в картах не должны делить слайсы с вызывающим кодом

func cloneProduct(p domain.Product) domain.Product {
	if p.Variants != nil {
		p.Variants = append([]domain.Variant(nil), p.Variants...)
	}
	return p
}

func cloneAdmin(a domain.Admin) domain.Admin {
	if a.Permissions != nil {
		a.Permissions = append([]string(nil), a.Permissions...)
	}
	return a
}

func cloneInventory(inv domain.Inventory) domain.Inventory {
	if inv.Movements != nil {
		inv.Movements = append([]domain.Movement(nil), inv.Movements...)
	}
	return inv
}

func cloneOrder(o domain.Order) domain.Order {
	if o.Items != nil {
		o.Items = append([]domain.OrderItem(nil), o.Items...)
	}
	if o.StatusHistory != nil {
		o.StatusHistory = append([]domain.StatusChange(nil), o.StatusHistory...)
	}
	return o
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи.
	// Вложенный вызов выполняется в уже открытой транзакции.
	if isTx(ctx) {
		return fn(ctx)
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
