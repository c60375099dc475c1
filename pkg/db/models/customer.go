package models

import "time"

// Customer is the owner of one or more vehicles serviced by the shop.
type Customer struct {
	ID           int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FirstName    string      `gorm:"column:first_name;not null" json:"firstName"`
	LastName     string      `gorm:"column:last_name;not null" json:"lastName"`
	Email        *string     `gorm:"column:email" json:"email,omitempty"`
	Phone        string      `gorm:"column:phone;not null" json:"phone"`
	Company      *string     `gorm:"column:company" json:"company,omitempty"`
	Notes        *string     `gorm:"column:notes" json:"notes,omitempty"`
	AddressLine1 *string     `gorm:"column:address_line1" json:"addressLine1,omitempty"`
	AddressLine2 *string     `gorm:"column:address_line2" json:"addressLine2,omitempty"`
	City         *string     `gorm:"column:city" json:"city,omitempty"`
	State        *string     `gorm:"column:state" json:"state,omitempty"`
	PostalCode   *string     `gorm:"column:postal_code" json:"postalCode,omitempty"`
	Vehicles     []Vehicle   `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
	WorkOrders   []WorkOrder `gorm:"foreignKey:CustomerID" json:"workOrders,omitempty"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
