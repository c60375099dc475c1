package customers

// CreatePayload describes a new customer record.
type CreatePayload struct {
	FirstName    string  `json:"firstName" validate:"required"`
	LastName     string  `json:"lastName" validate:"required"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string  `json:"phone" validate:"required"`
	Company      *string `json:"company,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	AddressLine1 *string `json:"addressLine1,omitempty"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	PostalCode   *string `json:"postalCode,omitempty"`
}

// UpdatePayload is a partial amendment; nil fields keep their stored values.
type UpdatePayload struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty"`
	Company      *string `json:"company,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	AddressLine1 *string `json:"addressLine1,omitempty"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	PostalCode   *string `json:"postalCode,omitempty"`
}
