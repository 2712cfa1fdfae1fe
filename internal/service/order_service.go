package service

import (
	"context"
	"time"

	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/repository"
)

// OrderService реализует жизненный цикл заказа: создание со снимком цен,
// смену статусов с журналом и платёжную запись. Складские эффекты идут
// через журнал движений InventoryService.
type OrderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	coupons   repository.CouponRepository
	inventory *InventoryService
	tx        repository.TxManager
	warehouse string
}

func NewOrderService(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	coupons repository.CouponRepository,
	inventory *InventoryService,
	tx repository.TxManager,
	warehouse string,
) *OrderService {
	return &OrderService{
		orders:    orders,
		customers: customers,
		products:  products,
		coupons:   coupons,
		inventory: inventory,
		tx:        tx,
		warehouse: warehouse,
	}
}

// OrderItemInput позиция при создании заказа; цена единицы снимается с товара
type OrderItemInput struct {
	ProductID    string
	VariantID    string
	Quantity     int64
	MakingCharge float64
	Tax          float64
}

// CreateOrderInput параметры создания заказа
type CreateOrderInput struct {
	CustomerID      string
	Items           []OrderItemInput
	ShippingAddress domain.Address
	BillingAddress  domain.Address
	CouponCode      string
	Shipping        float64
	PaymentMethod   string
	CreatedBy       string // admin id
}

// CreateOrder атомарно резервирует номер, фиксирует цены, применяет купон
// и списывает остатки движениями "out"
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if in.CustomerID == "" || len(in.Items) == 0 || in.Shipping < 0 {
		return nil, ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity < 1 || it.MakingCharge < 0 || it.Tax < 0 {
			return nil, ErrInvalidInput
		}
	}

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if !customer.Active {
			return ErrInvalidState
		}

		// price snapshot + stock check before any write
		items := make([]domain.OrderItem, 0, len(in.Items))
		var subtotal, tax float64
		for _, it := range in.Items {
			p, err := s.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			key := domain.InventoryKey{ProductID: it.ProductID, VariantID: it.VariantID, Warehouse: s.warehouse}
			inv, err := s.inventory.Get(ctx, key)
			if err != nil || inv.Available() < it.Quantity {
				return ErrNotEnoughStock
			}
			unit := p.UnitPrice(it.VariantID)
			line := domain.OrderItem{
				ProductID:    it.ProductID,
				VariantID:    it.VariantID,
				Quantity:     it.Quantity,
				UnitPrice:    unit,
				MakingCharge: it.MakingCharge,
				Tax:          it.Tax,
				// unit price already carries the making charge
				Subtotal: float64(it.Quantity)*unit + it.Tax,
			}
			items = append(items, line)
			subtotal += line.Subtotal
			tax += it.Tax
		}

		var discount float64
		var couponCode string
		if in.CouponCode != "" {
			c, err := s.coupons.GetByCode(ctx, in.CouponCode)
			if err != nil {
				return err
			}
			// a coupon that cannot apply must not be consumed
			if !c.IsCurrentlyValid(time.Now().UTC()) || subtotal < c.MinOrderAmount {
				return ErrInvalidState
			}
			discount = c.DiscountFor(subtotal)
			c.UsedCount++
			if err := s.coupons.Update(ctx, c); err != nil {
				return err
			}
			couponCode = c.Code
		}

		now := time.Now().UTC()
		o := domain.Order{
			CustomerID:      in.CustomerID,
			Items:           items,
			ShippingAddress: in.ShippingAddress,
			BillingAddress:  in.BillingAddress,
			Pricing: domain.Pricing{
				Subtotal:   subtotal,
				Shipping:   in.Shipping,
				Discount:   discount,
				CouponCode: couponCode,
				Tax:        tax,
				Total:      subtotal + in.Shipping - discount,
			},
			Payment: domain.Payment{Method: in.PaymentMethod, Status: domain.PaymentPending},
			Status:  domain.OrderStatusPending,
			StatusHistory: []domain.StatusChange{
				{Status: domain.OrderStatusPending, ChangedBy: in.CreatedBy, ChangedAt: now},
			},
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}

		// stock already verified above, so the deductions cannot fail
		for _, it := range items {
			key := domain.InventoryKey{ProductID: it.ProductID, VariantID: it.VariantID, Warehouse: s.warehouse}
			if _, err := s.inventory.RecordMovement(ctx, MovementInput{
				Key:         key,
				Type:        domain.MovementOut,
				Quantity:    -it.Quantity,
				Reason:      "order placed",
				Reference:   o.OrderNumber,
				PerformedBy: in.CreatedBy,
			}); err != nil {
				return err
			}
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SetStatus переводит заказ в новый статус. Повторная установка того же
// статуса — no-op без записи в журнал; недопустимый переход — ошибка.
// Отмена возвращает позиции на склад движениями "return".
func (s *OrderService) SetStatus(ctx context.Context, id string, status domain.OrderStatus, note, actorID string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o.Status == status {
			updated = o
			return nil
		}
		if !o.Status.CanTransition(status) {
			return ErrInvalidState
		}
		if status == domain.OrderStatusCancelled {
			for _, it := range o.Items {
				key := domain.InventoryKey{ProductID: it.ProductID, VariantID: it.VariantID, Warehouse: s.warehouse}
				if _, err := s.inventory.RecordMovement(ctx, MovementInput{
					Key:         key,
					Type:        domain.MovementReturn,
					Quantity:    it.Quantity,
					Reason:      "order cancelled",
					Reference:   o.OrderNumber,
					PerformedBy: actorID,
				}); err != nil {
					return err
				}
			}
		}
		o.Status = status
		o.StatusHistory = append(o.StatusHistory, domain.StatusChange{
			Status:    status,
			Note:      note,
			ChangedBy: actorID,
			ChangedAt: time.Now().UTC(),
		})
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RecordPayment обновляет платёжную запись; переход в "paid" штампует время оплаты
func (s *OrderService) RecordPayment(ctx context.Context, id string, status domain.PaymentStatus, transactionID, gatewayOrderID string) (*domain.Order, error) {
	if id == "" || !status.Valid() {
		return nil, ErrInvalidInput
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		o.Payment.Status = status
		if transactionID != "" {
			o.Payment.TransactionID = transactionID
		}
		if gatewayOrderID != "" {
			o.Payment.GatewayOrderID = gatewayOrderID
		}
		if status == domain.PaymentPaid && o.Payment.PaidAt.IsZero() {
			o.Payment.PaidAt = time.Now().UTC()
		}
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetOrder возвращает заказ по id
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// GetOrderByNumber возвращает заказ по номеру
func (s *OrderService) GetOrderByNumber(ctx context.Context, number string) (*domain.Order, error) {
	if number == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByNumber(ctx, number)
}

// ListOrders возвращает все заказы
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}
