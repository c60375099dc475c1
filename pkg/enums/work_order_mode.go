package enums

import "fmt"

// WorkOrderMode distinguishes live intake from backfilled records.
type WorkOrderMode string

const (
	WorkOrderModeNew        WorkOrderMode = "NEW"
	WorkOrderModeHistorical WorkOrderMode = "HISTORICAL"
)

var validWorkOrderModes = []WorkOrderMode{
	WorkOrderModeNew,
	WorkOrderModeHistorical,
}

// String implements fmt.Stringer.
func (m WorkOrderMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known WorkOrderMode.
func (m WorkOrderMode) IsValid() bool {
	for _, candidate := range validWorkOrderModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseWorkOrderMode converts raw input into a WorkOrderMode.
func ParseWorkOrderMode(value string) (WorkOrderMode, error) {
	for _, candidate := range validWorkOrderModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid work order mode %q", value)
}
