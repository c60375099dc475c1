package workers

import "github.com/shopspring/decimal"

// CreatePayload describes a new shop mechanic.
type CreatePayload struct {
	Name           string           `json:"name" validate:"required"`
	Email          *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string          `json:"phone,omitempty"`
	CommuteExpense *decimal.Decimal `json:"commuteExpense,omitempty"`
	ShiftExpense   *decimal.Decimal `json:"shiftExpense,omitempty"`
	MealExpense    *decimal.Decimal `json:"mealExpense,omitempty"`
	OtherExpense   *decimal.Decimal `json:"otherExpense,omitempty"`
}

// UpdatePayload is a partial amendment; nil fields keep their stored values.
// TotalJobs and TotalServices are owned by the work order engine and cannot be
// set here.
type UpdatePayload struct {
	Name           *string          `json:"name,omitempty"`
	Email          *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string          `json:"phone,omitempty"`
	CommuteExpense *decimal.Decimal `json:"commuteExpense,omitempty"`
	ShiftExpense   *decimal.Decimal `json:"shiftExpense,omitempty"`
	MealExpense    *decimal.Decimal `json:"mealExpense,omitempty"`
	OtherExpense   *decimal.Decimal `json:"otherExpense,omitempty"`
}
