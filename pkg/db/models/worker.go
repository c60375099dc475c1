package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker is a shop mechanic. TotalJobs and TotalServices are running sums of
// the deltas applied by the currently live work order assignments.
type Worker struct {
	ID             int64                 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name           string                `gorm:"column:name;not null" json:"name"`
	Email          *string               `gorm:"column:email" json:"email,omitempty"`
	Phone          *string               `gorm:"column:phone" json:"phone,omitempty"`
	TotalJobs      int                   `gorm:"column:total_jobs;not null;default:0" json:"totalJobs"`
	TotalServices  int                   `gorm:"column:total_services;not null;default:0" json:"totalServices"`
	CommuteExpense *decimal.Decimal      `gorm:"column:commute_expense;type:numeric(10,2)" json:"commuteExpense,omitempty"`
	ShiftExpense   *decimal.Decimal      `gorm:"column:shift_expense;type:numeric(10,2)" json:"shiftExpense,omitempty"`
	MealExpense    *decimal.Decimal      `gorm:"column:meal_expense;type:numeric(10,2)" json:"mealExpense,omitempty"`
	OtherExpense   *decimal.Decimal      `gorm:"column:other_expense;type:numeric(10,2)" json:"otherExpense,omitempty"`
	Assignments    []WorkOrderAssignment `gorm:"foreignKey:WorkerID" json:"assignments,omitempty"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
