package models

import "time"

// Vehicle is the unit of work for the shop; every work order targets one.
type Vehicle struct {
	ID           int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerID   int64       `gorm:"column:customer_id;not null" json:"customerId"`
	Customer     *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	VIN          string      `gorm:"column:vin;not null;uniqueIndex" json:"vin"`
	Make         string      `gorm:"column:make;not null" json:"make"`
	Model        string      `gorm:"column:model;not null" json:"model"`
	Year         int         `gorm:"column:year;not null" json:"year"`
	LicensePlate *string     `gorm:"column:license_plate" json:"licensePlate,omitempty"`
	Mileage      *int        `gorm:"column:mileage" json:"mileage,omitempty"`
	Color        *string     `gorm:"column:color" json:"color,omitempty"`
	Engine       *string     `gorm:"column:engine" json:"engine,omitempty"`
	Notes        *string     `gorm:"column:notes" json:"notes,omitempty"`
	WorkOrders   []WorkOrder `gorm:"foreignKey:VehicleID" json:"workOrders,omitempty"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
