package service

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/storage"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, *domain.User, error) // token, expiry, user
}

type BranchService interface {
	CreateBranch(ctx context.Context, actor domain.Actor, branch *domain.Branch) error
	GetBranch(ctx context.Context, actor domain.Actor, id int32) (*domain.Branch, error)
	ListBranches(ctx context.Context, actor domain.Actor) ([]domain.Branch, error)
	DeleteBranch(ctx context.Context, actor domain.Actor, id int32) error
}

type SchemeService interface {
	CreateScheme(ctx context.Context, actor domain.Actor, scheme *domain.Scheme) error
	UpdateScheme(ctx context.Context, actor domain.Actor, scheme *domain.Scheme) error
	GetScheme(ctx context.Context, id int32) (*domain.Scheme, error)
	ListSchemes(ctx context.Context, activeOnly bool) ([]domain.Scheme, error)
}

// RateService is the Rate Provider.
type RateService interface {
	CurrentRate(ctx context.Context, asOf time.Time) (*domain.GoldRate, error)
	SetRate(ctx context.Context, actor domain.Actor, rate22k, rate24k decimal.Decimal, date time.Time) (*domain.GoldRate, error)
	ListRates(ctx context.Context, limit int32) ([]domain.GoldRate, error)
	// EnsureTodayRate creates the day's system rate if no rate exists for today.
	EnsureTodayRate(ctx context.Context) (*domain.GoldRate, bool, error)
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, actor domain.Actor, customer *domain.Customer) error
	UpdateCustomer(ctx context.Context, actor domain.Actor, customer *domain.Customer) error
	GetCustomer(ctx context.Context, actor domain.Actor, id int32) (*domain.Customer, error)
	SearchCustomers(ctx context.Context, actor domain.Actor, keyword string, branchID *int32) ([]domain.Customer, error)
	CustomerLoans(ctx context.Context, actor domain.Actor, customerID int32) ([]domain.Loan, error)
}

type DocumentService interface {
	StoreDocument(ctx context.Context, actor domain.Actor, kind storage.DocumentKind, filename, contentType string, r io.Reader) (string, string, error) // ref, url
	OpenDocument(ctx context.Context, actor domain.Actor, ref string) (io.ReadCloser, string, error)
	DeleteDocument(ctx context.Context, actor domain.Actor, ref string) error
}

// PledgeService is the Pledge Issuer.
type PledgeService interface {
	IssuePledge(ctx context.Context, actor domain.Actor, req *domain.PledgeRequest) (*domain.Loan, error)
	// GetLoan accepts a numeric id or a loan number.
	GetLoan(ctx context.Context, actor domain.Actor, idOrNumber string) (*domain.Loan, error)
	ListLoans(ctx context.Context, actor domain.Actor, filter domain.LoanFilter) ([]domain.Loan, error)
}

// PaymentService is the Payment Processor.
type PaymentService interface {
	RecordPayment(ctx context.Context, actor domain.Actor, req *domain.PaymentRequest) (*domain.Payment, *domain.Loan, error)
	ListPayments(ctx context.Context, actor domain.Actor, loanID int32) ([]domain.Payment, error)
}

// LifecycleService is the Status/Lifecycle Manager.
type LifecycleService interface {
	MarkOverdueLoans(ctx context.Context) ([]int32, error)
	SendOverdueNotices(ctx context.Context) (int, error)
	ListAuctionEligible(ctx context.Context, actor domain.Actor, branchID *int32) ([]domain.Loan, error)
	AuctionLoan(ctx context.Context, actor domain.Actor, loanID int32, req *domain.AuctionRequest) (*domain.Loan, error)
}

type VoucherService interface {
	AddVoucher(ctx context.Context, actor domain.Actor, voucher *domain.Voucher) error
	ListVouchers(ctx context.Context, actor domain.Actor, date *time.Time, branchID *int32) ([]domain.Voucher, error)
	DeleteVoucher(ctx context.Context, actor domain.Actor, id int32) error
}

type StaffService interface {
	CreateStaff(ctx context.Context, actor domain.Actor, in domain.StaffInput) (*domain.User, error)
	UpdateStaff(ctx context.Context, actor domain.Actor, id int32, in domain.StaffInput) (*domain.User, error)
	ListStaff(ctx context.Context, actor domain.Actor, branchID *int32) ([]domain.User, error)
	DeleteStaff(ctx context.Context, actor domain.Actor, id int32) error
}

// ReportService is the Report Aggregator. Every report is recomputed from source records.
type ReportService interface {
	DayBook(ctx context.Context, actor domain.Actor, date time.Time, branchID *int32) (*domain.DayBook, error)
	FinancialStats(ctx context.Context, actor domain.Actor, branchID *int32) (*domain.FinancialStats, error)
	BusinessReport(ctx context.Context, actor domain.Actor) (*domain.BusinessReport, error)
	DemandReport(ctx context.Context, actor domain.Actor, days int, branchID *int32) ([]domain.DemandEntry, error)
	Dashboard(ctx context.Context, actor domain.Actor, branchID *int32) (*domain.DashboardStats, error)
	StaffDashboard(ctx context.Context, actor domain.Actor) (*domain.StaffDashboardStats, error)
}
