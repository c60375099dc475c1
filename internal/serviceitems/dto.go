package serviceitems

import "github.com/shopspring/decimal"

// CreatePayload describes a new labour charge in the service catalog.
type CreatePayload struct {
	Name         string          `json:"name" validate:"required"`
	Description  *string         `json:"description,omitempty"`
	DefaultPrice decimal.Decimal `json:"defaultPrice"`
}

// UpdatePayload is a partial amendment; nil fields keep their stored values.
type UpdatePayload struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	DefaultPrice *decimal.Decimal `json:"defaultPrice,omitempty"`
}
