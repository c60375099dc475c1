package models

import (
	"time"

	"github.com/dmarroquin/gearbox-backend/pkg/enums"
)

// WorkOrderLog is an append-only audit entry owned by a work order.
type WorkOrderLog struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WorkOrderID int64             `gorm:"column:work_order_id;not null" json:"workOrderId"`
	Message     string            `gorm:"column:message;not null" json:"message"`
	Author      string            `gorm:"column:author;not null;default:'system'" json:"author"`
	Category    enums.LogCategory `gorm:"column:category;type:text;not null;default:'SYSTEM'" json:"category"`
	Timestamp   time.Time         `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}
