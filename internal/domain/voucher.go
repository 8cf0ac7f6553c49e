package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VoucherType string

const (
	VoucherTypeExpense VoucherType = "expense"
	VoucherTypeIncome  VoucherType = "income"
)

func (t VoucherType) Valid() bool {
	return t == VoucherTypeExpense || t == VoucherTypeIncome
}

// Suggested categories; any non-empty category is accepted.
const (
	VoucherCategoryAuctionSale = "Auction Sale"
	VoucherCategorySalary      = "Salary"
	VoucherCategoryRent        = "Rent"
	VoucherCategoryStationery  = "Stationery"
	VoucherCategoryTeaCoffee   = "Tea/Coffee"
)

type Voucher struct {
	ID          int32           `json:"id"`
	Type        VoucherType     `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedBy   int32           `json:"created_by"`
	BranchID    *int32          `json:"branch_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (v *Voucher) Validate() error {
	if !v.Type.Valid() {
		return NewValidationError("type", "must be expense or income")
	}
	if v.Category == "" {
		return NewValidationError("category", "is required")
	}
	if !v.Amount.IsPositive() {
		return NewValidationError("amount", "must be greater than zero")
	}
	return CheckMoney("amount", v.Amount)
}

// VoucherFilter narrows voucher listings; zero times are open bounds.
type VoucherFilter struct {
	BranchID *int32
	From     time.Time
	To       time.Time
}
