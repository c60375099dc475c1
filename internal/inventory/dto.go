package inventory

import "github.com/shopspring/decimal"

// CreatePayload describes a new stocked part. A blank SKU gets generated from
// the name.
type CreatePayload struct {
	Name           string           `json:"name" validate:"required"`
	SKU            *string          `json:"sku,omitempty"`
	Description    *string          `json:"description,omitempty"`
	QuantityOnHand *int             `json:"quantityOnHand,omitempty"`
	ReorderPoint   *int             `json:"reorderPoint,omitempty" validate:"omitempty,gte=0"`
	UnitCost       *decimal.Decimal `json:"unitCost,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unitPrice,omitempty"`
}

// UpdatePayload is a partial amendment; nil fields keep their stored values.
type UpdatePayload struct {
	Name           *string          `json:"name,omitempty"`
	SKU            *string          `json:"sku,omitempty"`
	Description    *string          `json:"description,omitempty"`
	QuantityOnHand *int             `json:"quantityOnHand,omitempty"`
	ReorderPoint   *int             `json:"reorderPoint,omitempty" validate:"omitempty,gte=0"`
	UnitCost       *decimal.Decimal `json:"unitCost,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unitPrice,omitempty"`
}
