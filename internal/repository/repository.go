package repository

import (
	"context"
	"time"

	"pawnledger-backend/internal/domain"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) error
	GetByID(ctx context.Context, id int32) (*domain.Branch, error)
	List(ctx context.Context) ([]domain.Branch, error)
	Delete(ctx context.Context, id int32) error
	// IsReferenced reports whether any loan, staff account, customer or voucher points at the branch.
	IsReferenced(ctx context.Context, id int32) (bool, error)
}

type SchemeRepository interface {
	Create(ctx context.Context, scheme *domain.Scheme) error
	Update(ctx context.Context, scheme *domain.Scheme) error
	GetByID(ctx context.Context, id int32) (*domain.Scheme, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Scheme, error)
}

type GoldRateRepository interface {
	Create(ctx context.Context, rate *domain.GoldRate) error
	// CreateSystemRate inserts a job-generated rate for day unless one already exists.
	// It returns false when the insert was skipped.
	CreateSystemRate(ctx context.Context, rate *domain.GoldRate, day time.Time) (bool, error)
	ExistsForDay(ctx context.Context, from, to time.Time) (bool, error)
	GetLatest(ctx context.Context, asOf time.Time) (*domain.GoldRate, error)
	List(ctx context.Context, limit int32) ([]domain.GoldRate, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	Search(ctx context.Context, keyword string, branchID *int32, limit int32) ([]domain.Customer, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	CreateItem(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	GetByNumber(ctx context.Context, loanNumber string) (*domain.Loan, error)
	// GetForUpdate locks the loan row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int32) (*domain.Loan, error)
	ListItems(ctx context.Context, loanID int32) ([]domain.Item, error)
	List(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
	UpdateBalance(ctx context.Context, loan *domain.Loan) error
	MarkAuctioned(ctx context.Context, loanID int32, details *domain.AuctionDetails) error
	// MarkOverdue flips active loans past due with a positive balance and returns their ids.
	MarkOverdue(ctx context.Context, now time.Time) ([]int32, error)
	ListOverdueUnnotified(ctx context.Context, limit int32) ([]domain.OverdueNotice, error)
	MarkNoticeSent(ctx context.Context, loanID int32, at time.Time) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByLoan(ctx context.Context, loanID int32) ([]domain.Payment, error)
}

type VoucherRepository interface {
	Create(ctx context.Context, voucher *domain.Voucher) error
	GetByID(ctx context.Context, id int32) (*domain.Voucher, error)
	List(ctx context.Context, filter domain.VoucherFilter) ([]domain.Voucher, error)
	Delete(ctx context.Context, id int32) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, role domain.UserRole, branchID *int32) ([]domain.User, error)
}

// ReportRepository holds the read-side aggregates. A nil branchID means all branches.
type ReportRepository interface {
	CashTotals(ctx context.Context, branchID *int32) (*domain.CashTotals, error)
	Portfolio(ctx context.Context, branchID *int32) (*domain.LoanPortfolio, error)
	LoansIssuedBetween(ctx context.Context, branchID *int32, from, to time.Time) ([]domain.IssuedLoanEntry, error)
	PaymentsBetween(ctx context.Context, branchID *int32, from, to time.Time) ([]domain.PaymentEntry, error)
	SchemeDistribution(ctx context.Context, branchID *int32) ([]domain.SchemeShare, error)
	MonthlyDisbursals(ctx context.Context, branchID *int32, since time.Time) ([]domain.MonthlyDisbursal, error)
	RecentLoans(ctx context.Context, branchID *int32, limit int32) ([]domain.Loan, error)
	DemandCandidates(ctx context.Context, branchID *int32) ([]domain.DemandCandidate, error)
	CountOpenDueBy(ctx context.Context, branchID *int32, threshold time.Time) (int32, error)
}

// Repositories bundles every repository over one connection or transaction.
type Repositories struct {
	Branches  BranchRepository
	Schemes   SchemeRepository
	GoldRates GoldRateRepository
	Customers CustomerRepository
	Loans     LoanRepository
	Payments  PaymentRepository
	Vouchers  VoucherRepository
	Users     UserRepository
	Reports   ReportRepository
}

// TxManager runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
