package domain

import "time"

type Customer struct {
	ID           int32     `json:"id"`
	CustomerCode string    `json:"customer_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Email        *string   `json:"email,omitempty"`
	AadharNumber *string   `json:"aadhar_number,omitempty"`
	PANNumber    *string   `json:"pan_number,omitempty"`
	PhotoRef     string    `json:"photo,omitempty"`
	AadharRef    string    `json:"aadhar_card,omitempty"`
	PANRef       string    `json:"pan_card,omitempty"`
	BranchID     *int32    `json:"branch_id,omitempty"`
	CreatedBy    int32     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "is required")
	}
	if c.Phone == "" {
		return NewValidationError("phone", "is required")
	}
	if c.Address == "" {
		return NewValidationError("address", "is required")
	}
	return nil
}
