package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryDirection string

const (
	EntryDebit  EntryDirection = "DEBIT"
	EntryCredit EntryDirection = "CREDIT"
)

const (
	DayBookCategoryLoanIssue   = "Loan Issue"
	DayBookCategoryLoanPayment = "Loan Payment"
)

type DayBookEntry struct {
	Type        EntryDirection  `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Time        time.Time       `json:"time"`
	Reference   string          `json:"reference,omitempty"`
}

type DayBookSummary struct {
	TotalIn   decimal.Decimal `json:"total_in"`
	TotalOut  decimal.Decimal `json:"total_out"`
	NetChange decimal.Decimal `json:"net_change"`
}

type DayBook struct {
	Date         time.Time      `json:"date"`
	Transactions []DayBookEntry `json:"transactions"`
	Summary      DayBookSummary `json:"summary"`
}

// CashTotals are all-time sums feeding the cash position figures.
type CashTotals struct {
	Payments         decimal.Decimal
	InterestPayments decimal.Decimal
	Disbursed        decimal.Decimal
	IncomeVouchers   decimal.Decimal
	ExpenseVouchers  decimal.Decimal
}

func (t CashTotals) TotalIn() decimal.Decimal {
	return t.Payments.Add(t.IncomeVouchers)
}

func (t CashTotals) TotalOut() decimal.Decimal {
	return t.Disbursed.Add(t.ExpenseVouchers)
}

func (t CashTotals) CashInHand() decimal.Decimal {
	return t.TotalIn().Sub(t.TotalOut())
}

type FinancialStats struct {
	CashInHand         decimal.Decimal `json:"cash_in_hand"`
	OutstandingLoans   decimal.Decimal `json:"outstanding_loans"`
	GoldStockValuation decimal.Decimal `json:"gold_stock_valuation"`
	InterestIncome     decimal.Decimal `json:"interest_income"`
	OtherIncome        decimal.Decimal `json:"other_income"`
	OperatingExpenses  decimal.Decimal `json:"operating_expenses"`
	NetProfit          decimal.Decimal `json:"net_profit"`
}

type BusinessReport struct {
	PrincipalOutstanding decimal.Decimal `json:"principal_outstanding"`
	TotalDisbursed       decimal.Decimal `json:"total_disbursed"`
	InterestCollected    decimal.Decimal `json:"interest_collected"`
	OtherIncome          decimal.Decimal `json:"other_income"`
	CashInHand           decimal.Decimal `json:"cash_in_hand"`
	TotalIn              decimal.Decimal `json:"total_in"`
	TotalOut             decimal.Decimal `json:"total_out"`
}

type DemandEntry struct {
	LoanID        int32           `json:"id"`
	LoanNumber    string          `json:"loan_id"`
	CustomerID    int32           `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	MaturityDate  time.Time       `json:"maturity_date"`
	Status        LoanStatus      `json:"status"`

	// Whole months since issue and one month's interest on the current balance.
	MonthsElapsed   int             `json:"months_elapsed"`
	MonthlyInterest decimal.Decimal `json:"monthly_interest"`
}

// DemandCandidate is an open loan with what the demand report needs to compute maturity.
type DemandCandidate struct {
	Loan          Loan
	CustomerName  string
	CustomerPhone string
	TenureMonths  int32
}

type LoanCounts struct {
	Total   int32 `json:"total"`
	Active  int32 `json:"active"`
	Overdue int32 `json:"overdue"`
}

type SchemeShare struct {
	Name   string          `json:"name"`
	Count  int32           `json:"value"`
	Amount decimal.Decimal `json:"amount"`
}

type MonthlyDisbursal struct {
	Month  string          `json:"month"` // YYYY-MM
	Count  int32           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type DashboardStats struct {
	Counts       LoanCounts         `json:"counts"`
	Disbursed    decimal.Decimal    `json:"disbursed"`
	Outstanding  decimal.Decimal    `json:"outstanding"`
	SchemeStats  []SchemeShare      `json:"scheme_stats"`
	MonthlyTrend []MonthlyDisbursal `json:"monthly_trend"`
	RecentLoans  []Loan             `json:"recent_loans"`
}

type StaffDashboardStats struct {
	LoansIssuedCount   int32           `json:"loans_count"`
	LoansIssuedAmount  decimal.Decimal `json:"loans_amount"`
	PaymentsReceived   decimal.Decimal `json:"payments_received"`
	InterestCollected  decimal.Decimal `json:"interest_collected"`
	PendingRedemptions int32           `json:"pending_redemptions"`
	ActiveLoans        int32           `json:"active_loans"`
	OutstandingAmount  decimal.Decimal `json:"outstanding_amount"`
}

// PaymentEntry is a payment joined with the loan it settles, for day-book lines.
type PaymentEntry struct {
	Payment    Payment
	LoanNumber string
}

// IssuedLoanEntry is a loan joined with its customer's name, for day-book lines.
type IssuedLoanEntry struct {
	Loan         Loan
	CustomerName string
}

// LoanPortfolio is a single-pass aggregate over the loans table. Open means active or overdue.
type LoanPortfolio struct {
	TotalCount     int32
	ActiveCount    int32
	OverdueCount   int32
	TotalDisbursed decimal.Decimal
	OpenPrincipal  decimal.Decimal
	OpenBalance    decimal.Decimal
	OpenValuation  decimal.Decimal
}

// OverdueNotice is an overdue loan awaiting its one-time notice.
type OverdueNotice struct {
	Loan          Loan
	CustomerName  string
	CustomerEmail *string
	CustomerPhone string
}
