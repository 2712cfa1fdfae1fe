package domain

import "time"

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Terminal сообщает, что из статуса нет переходов
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// next допустимый следующий статус в прямой цепочке
var next = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusConfirmed,
	OrderStatusConfirmed:  OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// CanTransition проверяет допустимость перехода: вперёд по цепочке
// либо отмена из любого нетерминального статуса
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	return next[s] == to
}

// PaymentStatus статус оплаты
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid сообщает, входит ли значение в набор статусов оплаты
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Address почтовый адрес; в заказ попадает копией на момент оформления
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	PostCode string `json:"post_code"`
	Country  string `json:"country"`
}

// OrderItem позиция заказа с зафиксированными ценами
type OrderItem struct {
	ProductID    string  `json:"product_id"`
	VariantID    string  `json:"variant_id,omitempty"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`     // inclusive of making charge
	MakingCharge float64 `json:"making_charge"`  // breakdown component, not additive
	Tax          float64 `json:"tax"`
	Subtotal     float64 `json:"subtotal"` // Quantity*UnitPrice + Tax
}

// Pricing итоговая сводка стоимости заказа
type Pricing struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Discount   float64 `json:"discount"`
	CouponCode string  `json:"coupon_code,omitempty"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"` // Subtotal + Shipping - Discount
}

// Payment платёжная запись заказа
type Payment struct {
	Method         string        `json:"method"`
	Status         PaymentStatus `json:"status"`
	TransactionID  string        `json:"transaction_id,omitempty"`
	GatewayOrderID string        `json:"gateway_order_id,omitempty"`
	PaidAt         time.Time     `json:"paid_at,omitempty"`
}

// StatusChange запись журнала смены статусов; журнал только пополняется
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	ChangedBy string      `json:"changed_by,omitempty"` // admin id
	ChangedAt time.Time   `json:"changed_at"`
}

// Order сущность заказа
type Order struct {
	ID              string         `json:"id"`
	OrderNumber     string         `json:"order_number"` // immutable once assigned
	CustomerID      string         `json:"customer_id"`
	Items           []OrderItem    `json:"items"`
	ShippingAddress Address        `json:"shipping_address"`
	BillingAddress  Address        `json:"billing_address"`
	Pricing         Pricing        `json:"pricing"`
	Payment         Payment        `json:"payment"`
	Status          OrderStatus    `json:"status"`
	StatusHistory   []StatusChange `json:"status_history"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
