package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/repository"
)

var (
	ErrNotEnoughStock = errors.New("not enough stock")
	ErrInvalidState   = errors.New("invalid state")
)

// InventoryService ведёт журнал складских движений. Движения только
// добавляются; остаток хранится в записи и меняется вместе с движением,
// а не пересчитывается из истории.
type InventoryService struct {
	repo repository.InventoryRepository
	tx   repository.TxManager
}

func NewInventoryService(repo repository.InventoryRepository, tx repository.TxManager) *InventoryService {
	return &InventoryService{repo: repo, tx: tx}
}

// MovementInput параметры складского движения
type MovementInput struct {
	Key         domain.InventoryKey
	Type        domain.MovementType
	Quantity    int64 // signed effect on stock
	Reason      string
	Reference   string
	PerformedBy string
}

// RecordMovement добавляет движение и применяет его эффект к остатку.
// Остаток не может уйти в минус и не может опуститься ниже резерва.
// Первое поступление по новому ключу создаёт складскую запись.
func (s *InventoryService) RecordMovement(ctx context.Context, in MovementInput) (*domain.Inventory, error) {
	if !in.Type.Valid() || in.Quantity == 0 || in.Key.ProductID == "" || in.Key.Warehouse == "" {
		return nil, ErrInvalidInput
	}
	// the ledger entry must not misstate the direction of the effect
	switch in.Type {
	case domain.MovementIn, domain.MovementReturn:
		if in.Quantity < 0 {
			return nil, ErrInvalidInput
		}
	case domain.MovementOut:
		if in.Quantity > 0 {
			return nil, ErrInvalidInput
		}
	}
	var result *domain.Inventory
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetByKey(ctx, in.Key)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			if in.Quantity < 0 {
				return ErrNotEnoughStock
			}
			inv = &domain.Inventory{Key: in.Key}
			if err := s.repo.Create(ctx, inv); err != nil {
				return err
			}
		case err != nil:
			return err
		}

		newStock := inv.Stock + in.Quantity
		if newStock < 0 || newStock < inv.Reserved {
			return ErrNotEnoughStock
		}
		inv.Stock = newStock
		inv.Movements = append(inv.Movements, domain.Movement{
			ID:          uuid.NewString(),
			Type:        in.Type,
			Quantity:    in.Quantity,
			Reason:      in.Reason,
			Reference:   in.Reference,
			PerformedBy: in.PerformedBy,
			CreatedAt:   time.Now().UTC(),
		})
		if err := s.repo.Update(ctx, inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reserve удерживает количество под заказ; доступный остаток не занижается
func (s *InventoryService) Reserve(ctx context.Context, key domain.InventoryKey, qty int64) (*domain.Inventory, error) {
	if qty <= 0 {
		return nil, ErrInvalidInput
	}
	var result *domain.Inventory
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetByKey(ctx, key)
		if err != nil {
			return err
		}
		if inv.Available() < qty {
			return ErrNotEnoughStock
		}
		inv.Reserved += qty
		if err := s.repo.Update(ctx, inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Release снимает удержание
func (s *InventoryService) Release(ctx context.Context, key domain.InventoryKey, qty int64) (*domain.Inventory, error) {
	if qty <= 0 {
		return nil, ErrInvalidInput
	}
	var result *domain.Inventory
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetByKey(ctx, key)
		if err != nil {
			return err
		}
		if qty > inv.Reserved {
			return ErrInvalidInput
		}
		inv.Reserved -= qty
		if err := s.repo.Update(ctx, inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get возвращает складскую запись по ключу
func (s *InventoryService) Get(ctx context.Context, key domain.InventoryKey) (*domain.Inventory, error) {
	return s.repo.GetByKey(ctx, key)
}

// List возвращает все складские записи
func (s *InventoryService) List(ctx context.Context) ([]domain.Inventory, error) {
	return s.repo.List(ctx)
}
