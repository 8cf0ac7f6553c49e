package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusOverdue   LoanStatus = "overdue"
	LoanStatusClosed    LoanStatus = "closed"
	LoanStatusAuctioned LoanStatus = "auctioned"
)

// AcceptsPayments reports whether a loan in this status may still be paid against.
func (s LoanStatus) AcceptsPayments() bool {
	return s == LoanStatusActive || s == LoanStatusOverdue
}

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusActive, LoanStatusOverdue, LoanStatusClosed, LoanStatusAuctioned:
		return true
	}
	return false
}

type Purity string

const (
	Purity22k Purity = "22k"
	Purity24k Purity = "24k"
)

func (p Purity) Valid() bool {
	return p == Purity22k || p == Purity24k
}

// Item is a pledged piece of gold. Weight and purity are fixed once the loan is issued.
type Item struct {
	ID          int32           `json:"id"`
	LoanID      int32           `json:"loan_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	NetWeight   decimal.Decimal `json:"net_weight"` // grams
	Purity      Purity          `json:"purity"`
	Photos      []string        `json:"photos"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AuctionDetails struct {
	AuctionDate   time.Time       `json:"auction_date"`
	AuctionAmount decimal.Decimal `json:"auction_amount"`
	BidderName    string          `json:"bidder_name"`
	BidderContact string          `json:"bidder_contact"`
	Remarks       string          `json:"remarks"`
}

type Loan struct {
	ID                int32           `json:"id"`
	LoanNumber        string          `json:"loan_id"`
	CustomerID        int32           `json:"customer_id"`
	SchemeID          int32           `json:"scheme_id"`
	BranchID          int32           `json:"branch_id"`
	Items             []Item          `json:"items,omitempty"`
	TotalWeight       decimal.Decimal `json:"total_weight"`
	GoldRateID        int32           `json:"gold_rate_id"`
	GoldRateAtPledge  decimal.Decimal `json:"gold_rate_at_pledge"` // 22k rate of the snapshot used
	Valuation         decimal.Decimal `json:"valuation"`
	LoanAmount        decimal.Decimal `json:"loan_amount"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	PreInterestAmount decimal.Decimal `json:"pre_interest_amount"`
	LoanDate          time.Time       `json:"loan_date"`
	DueDate           time.Time       `json:"due_date"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	Status            LoanStatus      `json:"status"`
	Auction           *AuctionDetails `json:"auction_details,omitempty"`
	OverdueNoticeSent *time.Time      `json:"overdue_notice_sent_at,omitempty"`
	CreatedBy         int32           `json:"created_by"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Populated on detail reads.
	Customer *Customer `json:"customer,omitempty"`
	Scheme   *Scheme   `json:"scheme,omitempty"`
}

// LoanFilter narrows loan listings. Nil fields are not applied.
type LoanFilter struct {
	BranchID   *int32
	CustomerID *int32
	Statuses   []LoanStatus
	Limit      int32
}

// PledgeItem is an item as submitted for a new pledge, before it is persisted.
type PledgeItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	NetWeight   decimal.Decimal `json:"net_weight"`
	Purity      Purity          `json:"purity"`
	Photos      []string        `json:"photos"`
}

type PledgeRequest struct {
	CustomerID        int32            `json:"customer_id"`
	SchemeID          int32            `json:"scheme_id"`
	BranchID          *int32           `json:"branch_id,omitempty"`
	Items             []PledgeItem     `json:"items"`
	RequestedAmount   decimal.Decimal  `json:"requested_loan_amount"`
	PreInterestAmount *decimal.Decimal `json:"pre_interest_amount,omitempty"`
}

func (r *PledgeRequest) Validate() error {
	if r.CustomerID <= 0 {
		return NewValidationError("customer_id", "is required")
	}
	if r.SchemeID <= 0 {
		return NewValidationError("scheme_id", "is required")
	}
	if len(r.Items) == 0 {
		return NewValidationError("items", "at least one item is required")
	}
	for _, it := range r.Items {
		if it.Name == "" {
			return NewValidationError("items.name", "is required")
		}
		if !it.NetWeight.IsPositive() {
			return NewValidationError("items.net_weight", "must be greater than zero")
		}
		if err := checkWeight("items.net_weight", it.NetWeight); err != nil {
			return err
		}
		if !it.Purity.Valid() {
			return NewValidationError("items.purity", "must be 22k or 24k")
		}
	}
	if !r.RequestedAmount.IsPositive() {
		return NewValidationError("requested_loan_amount", "must be greater than zero")
	}
	if err := CheckMoney("requested_loan_amount", r.RequestedAmount); err != nil {
		return err
	}
	if r.PreInterestAmount != nil {
		if r.PreInterestAmount.IsNegative() {
			return NewValidationError("pre_interest_amount", "must not be negative")
		}
		return CheckMoney("pre_interest_amount", *r.PreInterestAmount)
	}
	return nil
}

type AuctionRequest struct {
	AuctionDate   *time.Time      `json:"auction_date,omitempty"`
	AuctionAmount decimal.Decimal `json:"auction_amount"`
	BidderName    string          `json:"bidder_name"`
	BidderContact string          `json:"bidder_contact"`
	Remarks       string          `json:"remarks"`
}

func (r *AuctionRequest) Validate() error {
	if !r.AuctionAmount.IsPositive() {
		return NewValidationError("auction_amount", "must be greater than zero")
	}
	if err := CheckMoney("auction_amount", r.AuctionAmount); err != nil {
		return err
	}
	if r.BidderName == "" {
		return NewValidationError("bidder_name", "is required")
	}
	return nil
}
