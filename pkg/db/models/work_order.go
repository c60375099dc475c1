package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmarroquin/gearbox-backend/pkg/enums"
)

// WorkOrder is the billable job tracked against one vehicle and, optionally,
// one customer. TotalCost is always labor+parts+taxes+parking-discount.
type WorkOrder struct {
	ID            int64                 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code          string                `gorm:"column:code;not null;uniqueIndex" json:"code"`
	VehicleID     int64                 `gorm:"column:vehicle_id;not null" json:"vehicleId"`
	Vehicle       *Vehicle              `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	CustomerID    *int64                `gorm:"column:customer_id" json:"customerId,omitempty"`
	Customer      *Customer             `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Description   string                `gorm:"column:description;not null" json:"description"`
	Status        enums.WorkOrderStatus `gorm:"column:status;type:text;not null;default:'IN_PROGRESS'" json:"status"`
	IsHistorical  bool                  `gorm:"column:is_historical;not null;default:false" json:"isHistorical"`
	ArrivalDate   time.Time             `gorm:"column:arrival_date;not null" json:"arrivalDate"`
	QuotedAt      *time.Time            `gorm:"column:quoted_at" json:"quotedAt,omitempty"`
	ScheduledDate *time.Time            `gorm:"column:scheduled_date" json:"scheduledDate,omitempty"`
	CompletedDate *time.Time            `gorm:"column:completed_date" json:"completedDate,omitempty"`
	ParkingCharge decimal.Decimal       `gorm:"column:parking_charge;type:numeric(10,2);not null" json:"parkingCharge"`
	LaborCost     decimal.Decimal       `gorm:"column:labor_cost;type:numeric(10,2);not null" json:"laborCost"`
	PartsCost     decimal.Decimal       `gorm:"column:parts_cost;type:numeric(10,2);not null" json:"partsCost"`
	Taxes         decimal.Decimal       `gorm:"column:taxes;type:numeric(10,2);not null" json:"taxes"`
	Discount      decimal.Decimal       `gorm:"column:discount;type:numeric(10,2);not null" json:"discount"`
	TotalCost     decimal.Decimal       `gorm:"column:total_cost;type:numeric(10,2);not null" json:"totalCost"`
	Notes         *string               `gorm:"column:notes" json:"notes,omitempty"`
	LineItems     []WorkOrderLineItem   `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE" json:"lineItems,omitempty"`
	Assignments   []WorkOrderAssignment `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
	Logs          []WorkOrderLog        `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE" json:"logs,omitempty"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
