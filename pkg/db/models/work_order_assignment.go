package models

import "time"

// WorkOrderAssignment links one worker to one work order. ServicesCount is the
// workload credited to the worker while the assignment is live.
type WorkOrderAssignment struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WorkOrderID   int64     `gorm:"column:work_order_id;not null" json:"workOrderId"`
	WorkerID      int64     `gorm:"column:worker_id;not null" json:"workerId"`
	Worker        *Worker   `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	Role          *string   `gorm:"column:role" json:"role,omitempty"`
	Notes         *string   `gorm:"column:notes" json:"notes,omitempty"`
	ServicesCount int       `gorm:"column:services_count;not null;default:0" json:"servicesCount"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
