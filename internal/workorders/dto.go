package workorders

import (
	"time"

	"github.com/dmarroquin/gearbox-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// LineItemInput is one requested billable line. PART lines reference (or
// auto-provision) an inventory item, SERVICE lines a service catalog entry.
type LineItemInput struct {
	Type            enums.LineItemType `json:"type" validate:"required,oneof=PART SERVICE"`
	InventoryItemID *int64             `json:"inventoryItemId,omitempty" validate:"omitempty,gt=0"`
	ServiceItemID   *int64             `json:"serviceItemId,omitempty" validate:"omitempty,gt=0"`
	Name            string             `json:"name" validate:"required"`
	SKU             *string            `json:"sku,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Quantity        int                `json:"quantity" validate:"required,gt=0"`
	UnitPrice       decimal.Decimal    `json:"unitPrice"`
	InitialStock    *int               `json:"initialStock,omitempty"`
}

// AssignmentInput links a worker (by id or name) to the order.
type AssignmentInput struct {
	WorkerID      *int64  `json:"workerId,omitempty" validate:"omitempty,gt=0"`
	WorkerName    *string `json:"workerName,omitempty"`
	Role          *string `json:"role,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	ServicesCount *int    `json:"servicesCount,omitempty" validate:"omitempty,gte=0"`
}

// CreatePayload carries everything needed to open a work order in one shot.
type CreatePayload struct {
	VehicleID         int64                  `json:"vehicleId" validate:"required,gt=0"`
	CustomerID        *int64                 `json:"customerId,omitempty" validate:"omitempty,gt=0"`
	Description       string                 `json:"description" validate:"required"`
	Status            *enums.WorkOrderStatus `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Mode              *enums.WorkOrderMode   `json:"mode,omitempty" validate:"omitempty,oneof=NEW HISTORICAL"`
	IsHistorical      *bool                  `json:"isHistorical,omitempty"`
	ArrivalDate       *time.Time             `json:"arrivalDate,omitempty"`
	QuotedAt          *time.Time             `json:"quotedAt,omitempty"`
	ScheduledDate     *time.Time             `json:"scheduledDate,omitempty"`
	CompletedDate     *time.Time             `json:"completedDate,omitempty"`
	CreatedAtOverride *time.Time             `json:"createdAtOverride,omitempty"`
	LaborCost         *decimal.Decimal       `json:"laborCost,omitempty"`
	PartsCost         *decimal.Decimal       `json:"partsCost,omitempty"`
	Taxes             *decimal.Decimal       `json:"taxes,omitempty"`
	Discount          *decimal.Decimal       `json:"discount,omitempty"`
	ParkingCharge     *decimal.Decimal       `json:"parkingCharge,omitempty"`
	Notes             *string                `json:"notes,omitempty"`
	LineItems         []LineItemInput        `json:"lineItems,omitempty" validate:"omitempty,dive"`
	Assignments       []AssignmentInput      `json:"assignments,omitempty" validate:"omitempty,dive"`
}

// UpdatePayload is a partial amendment. Nil fields keep their stored values.
// LineItems and Assignments are pointers to distinguish "untouched" (nil) from
// "replace the whole set" (non-nil, possibly empty). A CustomerID of 0 clears
// the customer reference.
type UpdatePayload struct {
	VehicleID         *int64                 `json:"vehicleId,omitempty" validate:"omitempty,gt=0"`
	CustomerID        *int64                 `json:"customerId,omitempty" validate:"omitempty,gte=0"`
	Description       *string                `json:"description,omitempty"`
	Status            *enums.WorkOrderStatus `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Mode              *enums.WorkOrderMode   `json:"mode,omitempty" validate:"omitempty,oneof=NEW HISTORICAL"`
	IsHistorical      *bool                  `json:"isHistorical,omitempty"`
	ArrivalDate       *time.Time             `json:"arrivalDate,omitempty"`
	QuotedAt          *time.Time             `json:"quotedAt,omitempty"`
	ScheduledDate     *time.Time             `json:"scheduledDate,omitempty"`
	CompletedDate     *time.Time             `json:"completedDate,omitempty"`
	CreatedAtOverride *time.Time             `json:"createdAtOverride,omitempty"`
	LaborCost         *decimal.Decimal       `json:"laborCost,omitempty"`
	PartsCost         *decimal.Decimal       `json:"partsCost,omitempty"`
	Taxes             *decimal.Decimal       `json:"taxes,omitempty"`
	Discount          *decimal.Decimal       `json:"discount,omitempty"`
	ParkingCharge     *decimal.Decimal       `json:"parkingCharge,omitempty"`
	Notes             *string                `json:"notes,omitempty"`
	LineItems         *[]LineItemInput       `json:"lineItems,omitempty" validate:"omitempty,dive"`
	Assignments       *[]AssignmentInput     `json:"assignments,omitempty" validate:"omitempty,dive"`
}

// ListFilters narrows the work order listing. A Status of "ALL" (or nil)
// matches every status.
type ListFilters struct {
	Status     *string
	From       *time.Time
	To         *time.Time
	Search     string
	Historical *bool
	Limit      int
}
