package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked part. QuantityOnHand may go negative: consuming a
// part that was never received is allowed and surfaces as a reorder alert.
type InventoryItem struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name           string          `gorm:"column:name;not null" json:"name"`
	SKU            string          `gorm:"column:sku;not null;uniqueIndex" json:"sku"`
	Description    *string         `gorm:"column:description" json:"description,omitempty"`
	QuantityOnHand int             `gorm:"column:quantity_on_hand;not null;default:0" json:"quantityOnHand"`
	ReorderPoint   int             `gorm:"column:reorder_point;not null;default:0" json:"reorderPoint"`
	UnitCost       decimal.Decimal `gorm:"column:unit_cost;type:numeric(10,2);not null" json:"unitCost"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unitPrice"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
