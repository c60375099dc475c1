package dashboard

import (
	"time"

	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"github.com/dmarroquin/gearbox-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Totals are the headline counters on the dashboard.
type Totals struct {
	Customers      int64 `json:"customers"`
	Vehicles       int64 `json:"vehicles"`
	OpenWorkOrders int64 `json:"openWorkOrders"`
}

// CompletedOrderSummary is one recently completed work order.
type CompletedOrderSummary struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	TotalCost decimal.Decimal `json:"totalCost"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TopWorker is one entry of the workload leaderboard.
type TopWorker struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	TotalJobs     int    `json:"totalJobs"`
	TotalServices int    `json:"totalServices"`
}

// Summary is the aggregated read model served to the dashboard.
type Summary struct {
	Totals                    Totals                  `json:"totals"`
	RevenueLast30Days         decimal.Decimal         `json:"revenueLast30Days"`
	RecentCompletedWorkOrders []CompletedOrderSummary `json:"recentCompletedWorkOrders"`
	InventoryAlertsCount      int                     `json:"inventoryAlertsCount"`
	LowStockItems             []models.InventoryItem  `json:"lowStockItems"`
	TopWorkers                []TopWorker             `json:"topWorkers"`
}

var openStatuses = []enums.WorkOrderStatus{
	enums.WorkOrderStatusPending,
	enums.WorkOrderStatusInProgress,
}
