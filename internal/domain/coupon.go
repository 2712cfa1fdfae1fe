package domain

import "time"

// CouponType способ расчёта скидки
type CouponType string

const (
	CouponPercent CouponType = "percent"
	CouponFixed   CouponType = "fixed"
)

// Coupon скидочный купон
type Coupon struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"` // stored uppercased
	Type           CouponType `json:"type"`
	Value          float64    `json:"value"`
	MinOrderAmount float64    `json:"min_order_amount"`
	MaxDiscount    float64    `json:"max_discount"` // cap for percent coupons, 0 = no cap
	UsageLimit     int64      `json:"usage_limit"`  // 0 = unlimited
	UsedCount      int64      `json:"used_count"`
	ValidFrom      time.Time  `json:"valid_from"`
	ValidUntil     time.Time  `json:"valid_until"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
}

// IsCurrentlyValid вычисляется на лету и никогда не сохраняется
func (c *Coupon) IsCurrentlyValid(now time.Time) bool {
	if !c.Active {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return false
	}
	return true
}

// DiscountFor возвращает размер скидки для суммы заказа (0, если купон неприменим)
func (c *Coupon) DiscountFor(subtotal float64) float64 {
	if subtotal < c.MinOrderAmount {
		return 0
	}
	switch c.Type {
	case CouponPercent:
		d := subtotal * c.Value / 100
		if c.MaxDiscount > 0 && d > c.MaxDiscount {
			d = c.MaxDiscount
		}
		return d
	case CouponFixed:
		if c.Value > subtotal {
			return subtotal
		}
		return c.Value
	}
	return 0
}
