package enums

import "fmt"

// LineItemType says whether a billable line consumes a part or charges labour.
type LineItemType string

const (
	LineItemTypePart    LineItemType = "PART"
	LineItemTypeService LineItemType = "SERVICE"
)

var validLineItemTypes = []LineItemType{
	LineItemTypePart,
	LineItemTypeService,
}

// String implements fmt.Stringer.
func (t LineItemType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known LineItemType.
func (t LineItemType) IsValid() bool {
	for _, candidate := range validLineItemTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseLineItemType converts raw input into a LineItemType.
func ParseLineItemType(value string) (LineItemType, error) {
	for _, candidate := range validLineItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line item type %q", value)
}
