package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceItem is a labour charge in the service catalog.
type ServiceItem struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description  *string         `gorm:"column:description" json:"description,omitempty"`
	DefaultPrice decimal.Decimal `gorm:"column:default_price;type:numeric(10,2);not null" json:"defaultPrice"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
