package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeInterest       PaymentType = "interest"
	PaymentTypePrincipal      PaymentType = "principal"
	PaymentTypeFullSettlement PaymentType = "full_settlement"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeInterest, PaymentTypePrincipal, PaymentTypeFullSettlement:
		return true
	}
	return false
}

// ReducesBalance reports whether the payment is applied against the outstanding principal.
func (t PaymentType) ReducesBalance() bool {
	return t == PaymentTypePrincipal || t == PaymentTypeFullSettlement
}

type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "cash"
	PaymentModeOnline       PaymentMode = "online"
	PaymentModeBankTransfer PaymentMode = "bank_transfer"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeOnline, PaymentModeBankTransfer:
		return true
	}
	return false
}

// Payment is immutable once recorded.
type Payment struct {
	ID          int32           `json:"id"`
	LoanID      int32           `json:"loan_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        PaymentType     `json:"type"`
	Mode        PaymentMode     `json:"payment_mode"`
	Remarks     string          `json:"remarks"`
	PaymentDate time.Time       `json:"payment_date"`
	ReceivedBy  int32           `json:"received_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PaymentRequest struct {
	LoanID  int32           `json:"loan_id"`
	Amount  decimal.Decimal `json:"amount"`
	Type    PaymentType     `json:"type"`
	Mode    PaymentMode     `json:"payment_mode"`
	Remarks string          `json:"remarks"`
}

func (r *PaymentRequest) Validate() error {
	if r.LoanID <= 0 {
		return NewValidationError("loan_id", "is required")
	}
	if !r.Type.Valid() {
		return NewValidationError("type", "must be interest, principal or full_settlement")
	}
	if r.Mode == "" {
		r.Mode = PaymentModeCash
	}
	if !r.Mode.Valid() {
		return NewValidationError("payment_mode", "must be cash, online or bank_transfer")
	}
	return CheckMoney("amount", r.Amount)
}
