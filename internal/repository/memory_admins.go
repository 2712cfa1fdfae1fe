package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/techsanasilver/SanaSilver/internal/domain"
)

// MemoryAdmins репозиторий администраторов поверх общего хранилища.
// Email является уникальным ключом без учёта регистра.
type MemoryAdmins struct{ store *MemoryStore }

func NewMemoryAdmins(store *MemoryStore) *MemoryAdmins { return &MemoryAdmins{store: store} }

var _ AdminRepository = (*MemoryAdmins)(nil)

func (ma *MemoryAdmins) Create(ctx context.Context, a *domain.Admin) error {
	ma.store.wlock(ctx)
	defer ma.store.wunlock(ctx)
	key := strings.ToLower(a.Email)
	if _, taken := ma.store.adminEmails[key]; taken {
		return ErrConflict
	}
	a.ID = uuid.NewString()
	a.Email = key
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	ma.store.adminsByID[a.ID] = cloneAdmin(*a)
	ma.store.adminEmails[key] = a.ID
	return nil
}

func (ma *MemoryAdmins) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	ma.store.rlock(ctx)
	defer ma.store.runlock(ctx)
	a, ok := ma.store.adminsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneAdmin(a)
	return &cp, nil
}

func (ma *MemoryAdmins) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	ma.store.rlock(ctx)
	defer ma.store.runlock(ctx)
	id, ok := ma.store.adminEmails[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	a := ma.store.adminsByID[id]
	cp := cloneAdmin(a)
	return &cp, nil
}

// Update перезаписывает запись целиком; хеш пароля и версия токена
// фиксируются одной записью
func (ma *MemoryAdmins) Update(ctx context.Context, a *domain.Admin) error {
	ma.store.wlock(ctx)
	defer ma.store.wunlock(ctx)
	cur, ok := ma.store.adminsByID[a.ID]
	if !ok {
		return ErrNotFound
	}
	key := strings.ToLower(a.Email)
	if key != cur.Email {
		if _, taken := ma.store.adminEmails[key]; taken {
			return ErrConflict
		}
		delete(ma.store.adminEmails, cur.Email)
		ma.store.adminEmails[key] = a.ID
		a.Email = key
	}
	a.CreatedAt = cur.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	ma.store.adminsByID[a.ID] = cloneAdmin(*a)
	return nil
}

func (ma *MemoryAdmins) List(ctx context.Context) ([]domain.Admin, error) {
	ma.store.rlock(ctx)
	defer ma.store.runlock(ctx)
	out := make([]domain.Admin, 0, len(ma.store.adminsByID))
	for _, a := range ma.store.adminsByID {
		out = append(out, cloneAdmin(a))
	}
	return out, nil
}

// MemoryCustomers репозиторий покупателей
type MemoryCustomers struct{ store *MemoryStore }

func NewMemoryCustomers(store *MemoryStore) *MemoryCustomers { return &MemoryCustomers{store: store} }

var _ CustomerRepository = (*MemoryCustomers)(nil)

func (mc *MemoryCustomers) Create(ctx context.Context, c *domain.Customer) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	key := strings.ToLower(c.Email)
	if _, taken := mc.store.customerEmails[key]; taken {
		return ErrConflict
	}
	c.ID = uuid.NewString()
	c.Email = key
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	mc.store.customersByID[c.ID] = *c
	mc.store.customerEmails[key] = c.ID
	return nil
}

func (mc *MemoryCustomers) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	c, ok := mc.store.customersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (mc *MemoryCustomers) Update(ctx context.Context, c *domain.Customer) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	cur, ok := mc.store.customersByID[c.ID]
	if !ok {
		return ErrNotFound
	}
	key := strings.ToLower(c.Email)
	if key != cur.Email {
		if _, taken := mc.store.customerEmails[key]; taken {
			return ErrConflict
		}
		delete(mc.store.customerEmails, cur.Email)
		mc.store.customerEmails[key] = c.ID
		c.Email = key
	}
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	mc.store.customersByID[c.ID] = *c
	return nil
}

func (mc *MemoryCustomers) List(ctx context.Context) ([]domain.Customer, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	out := make([]domain.Customer, 0, len(mc.store.customersByID))
	for _, c := range mc.store.customersByID {
		out = append(out, c)
	}
	return out, nil
}

// MemoryCategories репозиторий категорий
type MemoryCategories struct{ store *MemoryStore }

func NewMemoryCategories(store *MemoryStore) *MemoryCategories {
	return &MemoryCategories{store: store}
}

var _ CategoryRepository = (*MemoryCategories)(nil)

func (mc *MemoryCategories) Create(ctx context.Context, c *domain.Category) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	mc.store.categoriesByID[c.ID] = *c
	return nil
}

func (mc *MemoryCategories) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	c, ok := mc.store.categoriesByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (mc *MemoryCategories) Update(ctx context.Context, c *domain.Category) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	cur, ok := mc.store.categoriesByID[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.CreatedAt = cur.CreatedAt
	mc.store.categoriesByID[c.ID] = *c
	return nil
}

func (mc *MemoryCategories) List(ctx context.Context) ([]domain.Category, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	out := make([]domain.Category, 0, len(mc.store.categoriesByID))
	for _, c := range mc.store.categoriesByID {
		out = append(out, c)
	}
	return out, nil
}

// MemoryCoupons репозиторий купонов; код уникален без учёта регистра
type MemoryCoupons struct{ store *MemoryStore }

func NewMemoryCoupons(store *MemoryStore) *MemoryCoupons { return &MemoryCoupons{store: store} }

var _ CouponRepository = (*MemoryCoupons)(nil)

func (mc *MemoryCoupons) Create(ctx context.Context, c *domain.Coupon) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	key := strings.ToUpper(c.Code)
	if _, taken := mc.store.couponCodes[key]; taken {
		return ErrConflict
	}
	c.ID = uuid.NewString()
	c.Code = key
	c.CreatedAt = time.Now().UTC()
	mc.store.couponsByID[c.ID] = *c
	mc.store.couponCodes[key] = c.ID
	return nil
}

func (mc *MemoryCoupons) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	c, ok := mc.store.couponsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (mc *MemoryCoupons) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	id, ok := mc.store.couponCodes[strings.ToUpper(code)]
	if !ok {
		return nil, ErrNotFound
	}
	c := mc.store.couponsByID[id]
	cp := c
	return &cp, nil
}

func (mc *MemoryCoupons) Update(ctx context.Context, c *domain.Coupon) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	cur, ok := mc.store.couponsByID[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.Code = cur.Code // code is immutable once issued
	c.CreatedAt = cur.CreatedAt
	mc.store.couponsByID[c.ID] = *c
	return nil
}

func (mc *MemoryCoupons) List(ctx context.Context) ([]domain.Coupon, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	out := make([]domain.Coupon, 0, len(mc.store.couponsByID))
	for _, c := range mc.store.couponsByID {
		out = append(out, c)
	}
	return out, nil
}
