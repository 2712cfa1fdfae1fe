package domain

import "time"

// Category категория каталога
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Variant вариант изделия (размер, вес, собственный SKU и цена)
type Variant struct {
	ID     string  `json:"id"`
	SKU    string  `json:"sku"`
	Size   string  `json:"size,omitempty"`
	Weight float64 `json:"weight,omitempty"` // grams
	Price  float64 `json:"price"`            // overrides product price when > 0
}

// Product товар в каталоге
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	CategoryID   string    `json:"category_id,omitempty"`
	Price        float64   `json:"price"` // inclusive of making charge
	MakingCharge float64   `json:"making_charge"`
	Active       bool      `json:"active"`
	Variants     []Variant `json:"variants,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UnitPrice возвращает цену позиции с учётом варианта
func (p *Product) UnitPrice(variantID string) float64 {
	if variantID != "" {
		for _, v := range p.Variants {
			if v.ID == variantID && v.Price > 0 {
				return v.Price
			}
		}
	}
	return p.Price
}
