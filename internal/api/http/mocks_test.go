package http

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/storage"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, time.Time, *domain.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(2).(*domain.User)
	return args.String(0), args.Get(1).(time.Time), user, args.Error(3)
}

type MockBranchService struct{ mock.Mock }

func (m *MockBranchService) CreateBranch(ctx context.Context, actor domain.Actor, b *domain.Branch) error {
	return m.Called(ctx, actor, b).Error(0)
}
func (m *MockBranchService) GetBranch(ctx context.Context, actor domain.Actor, id int32) (*domain.Branch, error) {
	args := m.Called(ctx, actor, id)
	b, _ := args.Get(0).(*domain.Branch)
	return b, args.Error(1)
}
func (m *MockBranchService) ListBranches(ctx context.Context, actor domain.Actor) ([]domain.Branch, error) {
	args := m.Called(ctx, actor)
	list, _ := args.Get(0).([]domain.Branch)
	return list, args.Error(1)
}
func (m *MockBranchService) DeleteBranch(ctx context.Context, actor domain.Actor, id int32) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockPledgeService struct{ mock.Mock }

func (m *MockPledgeService) IssuePledge(ctx context.Context, actor domain.Actor, req *domain.PledgeRequest) (*domain.Loan, error) {
	args := m.Called(ctx, actor, req)
	loan, _ := args.Get(0).(*domain.Loan)
	return loan, args.Error(1)
}
func (m *MockPledgeService) GetLoan(ctx context.Context, actor domain.Actor, idOrNumber string) (*domain.Loan, error) {
	args := m.Called(ctx, actor, idOrNumber)
	loan, _ := args.Get(0).(*domain.Loan)
	return loan, args.Error(1)
}
func (m *MockPledgeService) ListLoans(ctx context.Context, actor domain.Actor, filter domain.LoanFilter) ([]domain.Loan, error) {
	args := m.Called(ctx, actor, filter)
	list, _ := args.Get(0).([]domain.Loan)
	return list, args.Error(1)
}

type MockPaymentService struct{ mock.Mock }

func (m *MockPaymentService) RecordPayment(ctx context.Context, actor domain.Actor, req *domain.PaymentRequest) (*domain.Payment, *domain.Loan, error) {
	args := m.Called(ctx, actor, req)
	p, _ := args.Get(0).(*domain.Payment)
	loan, _ := args.Get(1).(*domain.Loan)
	return p, loan, args.Error(2)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, actor domain.Actor, loanID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, actor, loanID)
	list, _ := args.Get(0).([]domain.Payment)
	return list, args.Error(1)
}

type MockReportService struct{ mock.Mock }

func (m *MockReportService) DayBook(ctx context.Context, actor domain.Actor, date time.Time, branchID *int32) (*domain.DayBook, error) {
	args := m.Called(ctx, actor, date, branchID)
	b, _ := args.Get(0).(*domain.DayBook)
	return b, args.Error(1)
}
func (m *MockReportService) FinancialStats(ctx context.Context, actor domain.Actor, branchID *int32) (*domain.FinancialStats, error) {
	args := m.Called(ctx, actor, branchID)
	s, _ := args.Get(0).(*domain.FinancialStats)
	return s, args.Error(1)
}
func (m *MockReportService) BusinessReport(ctx context.Context, actor domain.Actor) (*domain.BusinessReport, error) {
	args := m.Called(ctx, actor)
	b, _ := args.Get(0).(*domain.BusinessReport)
	return b, args.Error(1)
}
func (m *MockReportService) DemandReport(ctx context.Context, actor domain.Actor, days int, branchID *int32) ([]domain.DemandEntry, error) {
	args := m.Called(ctx, actor, days, branchID)
	list, _ := args.Get(0).([]domain.DemandEntry)
	return list, args.Error(1)
}
func (m *MockReportService) Dashboard(ctx context.Context, actor domain.Actor, branchID *int32) (*domain.DashboardStats, error) {
	args := m.Called(ctx, actor, branchID)
	s, _ := args.Get(0).(*domain.DashboardStats)
	return s, args.Error(1)
}
func (m *MockReportService) StaffDashboard(ctx context.Context, actor domain.Actor) (*domain.StaffDashboardStats, error) {
	args := m.Called(ctx, actor)
	s, _ := args.Get(0).(*domain.StaffDashboardStats)
	return s, args.Error(1)
}

type MockDocumentService struct{ mock.Mock }

func (m *MockDocumentService) StoreDocument(ctx context.Context, actor domain.Actor, kind storage.DocumentKind, filename, contentType string, r io.Reader) (string, string, error) {
	args := m.Called(ctx, actor, kind, filename, contentType, r)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockDocumentService) OpenDocument(ctx context.Context, actor domain.Actor, ref string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, actor, ref)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.String(1), args.Error(2)
}
func (m *MockDocumentService) DeleteDocument(ctx context.Context, actor domain.Actor, ref string) error {
	return m.Called(ctx, actor, ref).Error(0)
}
