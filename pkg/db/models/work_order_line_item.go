package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderLineItem is one billable component of a work order. Exactly one of
// InventoryItemID (PART) or ServiceItemID (SERVICE) is set.
type WorkOrderLineItem struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WorkOrderID     int64           `gorm:"column:work_order_id;not null" json:"workOrderId"`
	InventoryItemID *int64          `gorm:"column:inventory_item_id" json:"inventoryItemId,omitempty"`
	InventoryItem   *InventoryItem  `gorm:"foreignKey:InventoryItemID" json:"inventoryItem,omitempty"`
	ServiceItemID   *int64          `gorm:"column:service_item_id" json:"serviceItemId,omitempty"`
	ServiceItem     *ServiceItem    `gorm:"foreignKey:ServiceItemID" json:"serviceItem,omitempty"`
	Description     string          `gorm:"column:description;not null" json:"description"`
	Quantity        int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unitPrice"`
	LineTotal       decimal.Decimal `gorm:"column:line_total;type:numeric(10,2);not null" json:"lineTotal"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
