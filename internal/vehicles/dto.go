package vehicles

// CreatePayload describes a new vehicle tied to its owning customer.
type CreatePayload struct {
	CustomerID   int64   `json:"customerId" validate:"required,gt=0"`
	VIN          string  `json:"vin" validate:"required"`
	Make         string  `json:"make" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Year         int     `json:"year" validate:"required,gte=1900"`
	LicensePlate *string `json:"licensePlate,omitempty"`
	Mileage      *int    `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	Color        *string `json:"color,omitempty"`
	Engine       *string `json:"engine,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// UpdatePayload is a partial amendment; nil fields keep their stored values.
type UpdatePayload struct {
	CustomerID   *int64  `json:"customerId,omitempty" validate:"omitempty,gt=0"`
	VIN          *string `json:"vin,omitempty"`
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	Year         *int    `json:"year,omitempty" validate:"omitempty,gte=1900"`
	LicensePlate *string `json:"licensePlate,omitempty"`
	Mileage      *int    `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	Color        *string `json:"color,omitempty"`
	Engine       *string `json:"engine,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}
