package domain

import "time"

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)

type User struct {
	ID            int32     `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	Role          UserRole  `json:"role"`
	FullName      string    `json:"full_name"`
	Email         *string   `json:"email,omitempty"`
	PhoneNumber   string    `json:"phone_number"`
	Address       string    `json:"address"`
	IDProofNumber string    `json:"id_proof_number"`
	BranchID      *int32    `json:"branch_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StaffInput carries staff create/update fields. Empty fields are left unchanged on update.
type StaffInput struct {
	Username      string  `json:"username"`
	Password      string  `json:"password"`
	FullName      string  `json:"full_name"`
	Email         *string `json:"email,omitempty"`
	PhoneNumber   string  `json:"phone_number"`
	Address       string  `json:"address"`
	IDProofNumber string  `json:"id_proof_number"`
	BranchID      *int32  `json:"branch_id,omitempty"`
}
