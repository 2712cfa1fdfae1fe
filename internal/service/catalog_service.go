package service

import (
	"context"

	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/repository"
)

// CategoryService простой CRUD категорий
type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.Name == "" || c.Slug == "" {
		return nil, ErrInvalidInput
	}
	cp := c
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.ID == "" || c.Name == "" {
		return nil, ErrInvalidInput
	}
	cp := c
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

// CustomerService простой CRUD покупателей
type CustomerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if c.Name == "" || c.Email == "" {
		return nil, ErrInvalidInput
	}
	cp := c
	cp.Active = true
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CustomerService) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if c.ID == "" || c.Name == "" || c.Email == "" {
		return nil, ErrInvalidInput
	}
	cp := c
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

// CouponService CRUD купонов; применение купона к заказу живёт в OrderService
type CouponService struct {
	repo repository.CouponRepository
}

func NewCouponService(repo repository.CouponRepository) *CouponService {
	return &CouponService{repo: repo}
}

func (s *CouponService) Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	if c.Code == "" || c.Value <= 0 || c.MinOrderAmount < 0 || c.MaxDiscount < 0 {
		return nil, ErrInvalidInput
	}
	if c.Type != domain.CouponPercent && c.Type != domain.CouponFixed {
		return nil, ErrInvalidInput
	}
	if c.Type == domain.CouponPercent && c.Value > 100 {
		return nil, ErrInvalidInput
	}
	if !c.ValidUntil.After(c.ValidFrom) {
		return nil, ErrInvalidInput
	}
	cp := c
	cp.UsedCount = 0
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CouponService) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CouponService) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	if code == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByCode(ctx, code)
}

func (s *CouponService) Update(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	if c.ID == "" || c.Value <= 0 {
		return nil, ErrInvalidInput
	}
	cp := c
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CouponService) List(ctx context.Context) ([]domain.Coupon, error) {
	return s.repo.List(ctx)
}
