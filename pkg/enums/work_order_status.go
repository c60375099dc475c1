package enums

import "fmt"

// WorkOrderStatus tracks the lifecycle of a work order.
type WorkOrderStatus string

const (
	WorkOrderStatusPending    WorkOrderStatus = "PENDING"
	WorkOrderStatusInProgress WorkOrderStatus = "IN_PROGRESS"
	WorkOrderStatusCompleted  WorkOrderStatus = "COMPLETED"
	WorkOrderStatusCancelled  WorkOrderStatus = "CANCELLED"
)

var validWorkOrderStatuses = []WorkOrderStatus{
	WorkOrderStatusPending,
	WorkOrderStatusInProgress,
	WorkOrderStatusCompleted,
	WorkOrderStatusCancelled,
}

// String implements fmt.Stringer.
func (w WorkOrderStatus) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WorkOrderStatus.
func (w WorkOrderStatus) IsValid() bool {
	for _, candidate := range validWorkOrderStatuses {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWorkOrderStatus converts raw input into a WorkOrderStatus.
func ParseWorkOrderStatus(value string) (WorkOrderStatus, error) {
	for _, candidate := range validWorkOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid work order status %q", value)
}
