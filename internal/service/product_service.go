package service

import (
	"context"
	"errors"
	"sync"

	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/repository"
)

// ProductService инкапсулирует бизнес-логику вокруг товаров и вариантов
type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

var ErrInvalidInput = errors.New("invalid input")

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Name == "" || p.SKU == "" || p.Price < 0 || p.MakingCharge < 0 {
		return nil, ErrInvalidInput
	}
	for _, v := range p.Variants {
		if v.SKU == "" || v.Price < 0 {
			return nil, ErrInvalidInput
		}
	}
	cp := p
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" || p.Name == "" || p.SKU == "" || p.Price < 0 || p.MakingCharge < 0 {
		return nil, ErrInvalidInput
	}
	cp := p
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, f)
}

// AddVariant добавляет вариант к существующему товару
func (s *ProductService) AddVariant(ctx context.Context, productID string, v domain.Variant) (*domain.Product, error) {
	if productID == "" || v.SKU == "" || v.Price < 0 {
		return nil, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	for _, existing := range p.Variants {
		if existing.SKU == v.SKU {
			return nil, repository.ErrConflict
		}
	}
	p.Variants = append(p.Variants, v)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// BulkDeleteResult итог удаления одного товара в пакетной операции
type BulkDeleteResult struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

// BulkDelete удаляет товары параллельно. Ошибка по одному товару не
// прерывает остальные: результаты собираются по каждому ID.
func (s *ProductService) BulkDelete(ctx context.Context, ids []string) []BulkDeleteResult {
	results := make([]BulkDeleteResult, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = BulkDeleteResult{ID: id}
			if err := s.Delete(ctx, id); err != nil {
				results[i].Error = err.Error()
			}
		}(i, id)
	}
	wg.Wait()
	return results
}
