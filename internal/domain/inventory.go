package domain

import "time"

// MovementType тип складского движения
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
	MovementTransfer   MovementType = "transfer"
	MovementReturn     MovementType = "return"
)

// Valid сообщает, входит ли значение в набор типов движений
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment, MovementTransfer, MovementReturn:
		return true
	}
	return false
}

// Movement неизменяемая запись об изменении запаса; движения только добавляются
type Movement struct {
	ID          string       `json:"id"`
	Type        MovementType `json:"type"`
	Quantity    int64        `json:"quantity"` // signed effect on stock
	Reason      string       `json:"reason"`
	Reference   string       `json:"reference,omitempty"`    // external doc: order number etc.
	PerformedBy string       `json:"performed_by,omitempty"` // admin id
	CreatedAt   time.Time    `json:"created_at"`
}

// InventoryKey уникальный ключ складской записи
type InventoryKey struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Warehouse string `json:"warehouse"`
}

// Inventory складская запись по (товар, вариант, склад)
type Inventory struct {
	ID        string       `json:"id"`
	Key       InventoryKey `json:"key"`
	Stock     int64        `json:"stock"`    // never negative
	Reserved  int64        `json:"reserved"` // never exceeds Stock
	Movements []Movement   `json:"movements"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Available вычисляется на лету и никогда не сохраняется
func (inv *Inventory) Available() int64 {
	return inv.Stock - inv.Reserved
}
