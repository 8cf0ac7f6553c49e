package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scheme is a loan product template. Loans copy the interest rate at issuance,
// so edits here never reach existing loans.
type Scheme struct {
	ID                int32           `json:"id"`
	Name              string          `json:"scheme_name"`
	InterestRate      decimal.Decimal `json:"interest_rate"` // percent per month
	TenureMonths      int32           `json:"tenure_months"`
	MaxLoanPercentage decimal.Decimal `json:"max_loan_percentage"`
	PreInterestMonths int32           `json:"pre_interest_months"`
	Description       string          `json:"description"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (s *Scheme) Validate() error {
	if s.Name == "" {
		return NewValidationError("scheme_name", "is required")
	}
	if !s.InterestRate.IsPositive() {
		return NewValidationError("interest_rate", "must be greater than zero")
	}
	if s.TenureMonths < 1 {
		return NewValidationError("tenure_months", "must be at least one month")
	}
	if !s.MaxLoanPercentage.IsPositive() || s.MaxLoanPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return NewValidationError("max_loan_percentage", "must be within (0, 100]")
	}
	if s.PreInterestMonths < 0 {
		return NewValidationError("pre_interest_months", "must not be negative")
	}
	return nil
}
