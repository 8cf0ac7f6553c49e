package service

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/notify"
	"pawnledger-backend/internal/repository"
	"pawnledger-backend/internal/storage"
)

// MockBranchRepo
type MockBranchRepo struct {
	mock.Mock
}

func (m *MockBranchRepo) Create(ctx context.Context, b *domain.Branch) error {
	return m.Called(ctx, b).Error(0)
}
func (m *MockBranchRepo) GetByID(ctx context.Context, id int32) (*domain.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}
func (m *MockBranchRepo) List(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	branches, _ := args.Get(0).([]domain.Branch)
	return branches, args.Error(1)
}
func (m *MockBranchRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockBranchRepo) IsReferenced(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockSchemeRepo
type MockSchemeRepo struct {
	mock.Mock
}

func (m *MockSchemeRepo) Create(ctx context.Context, s *domain.Scheme) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSchemeRepo) Update(ctx context.Context, s *domain.Scheme) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSchemeRepo) GetByID(ctx context.Context, id int32) (*domain.Scheme, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scheme), args.Error(1)
}
func (m *MockSchemeRepo) List(ctx context.Context, activeOnly bool) ([]domain.Scheme, error) {
	args := m.Called(ctx, activeOnly)
	schemes, _ := args.Get(0).([]domain.Scheme)
	return schemes, args.Error(1)
}

// MockGoldRateRepo
type MockGoldRateRepo struct {
	mock.Mock
}

func (m *MockGoldRateRepo) Create(ctx context.Context, g *domain.GoldRate) error {
	return m.Called(ctx, g).Error(0)
}
func (m *MockGoldRateRepo) CreateSystemRate(ctx context.Context, g *domain.GoldRate, day time.Time) (bool, error) {
	args := m.Called(ctx, g, day)
	return args.Bool(0), args.Error(1)
}
func (m *MockGoldRateRepo) ExistsForDay(ctx context.Context, from, to time.Time) (bool, error) {
	args := m.Called(ctx, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockGoldRateRepo) GetLatest(ctx context.Context, asOf time.Time) (*domain.GoldRate, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoldRate), args.Error(1)
}
func (m *MockGoldRateRepo) List(ctx context.Context, limit int32) ([]domain.GoldRate, error) {
	args := m.Called(ctx, limit)
	rates, _ := args.Get(0).([]domain.GoldRate)
	return rates, args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Search(ctx context.Context, keyword string, branchID *int32, limit int32) ([]domain.Customer, error) {
	args := m.Called(ctx, keyword, branchID, limit)
	customers, _ := args.Get(0).([]domain.Customer)
	return customers, args.Error(1)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, l *domain.Loan) error {
	return m.Called(ctx, l).Error(0)
}
func (m *MockLoanRepo) CreateItem(ctx context.Context, it *domain.Item) error {
	return m.Called(ctx, it).Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) GetByNumber(ctx context.Context, n string) (*domain.Loan, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) GetForUpdate(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListItems(ctx context.Context, loanID int32) ([]domain.Item, error) {
	args := m.Called(ctx, loanID)
	items, _ := args.Get(0).([]domain.Item)
	return items, args.Error(1)
}
func (m *MockLoanRepo) List(ctx context.Context, f domain.LoanFilter) ([]domain.Loan, error) {
	args := m.Called(ctx, f)
	loans, _ := args.Get(0).([]domain.Loan)
	return loans, args.Error(1)
}
func (m *MockLoanRepo) UpdateBalance(ctx context.Context, l *domain.Loan) error {
	return m.Called(ctx, l).Error(0)
}
func (m *MockLoanRepo) MarkAuctioned(ctx context.Context, loanID int32, d *domain.AuctionDetails) error {
	return m.Called(ctx, loanID, d).Error(0)
}
func (m *MockLoanRepo) MarkOverdue(ctx context.Context, now time.Time) ([]int32, error) {
	args := m.Called(ctx, now)
	ids, _ := args.Get(0).([]int32)
	return ids, args.Error(1)
}
func (m *MockLoanRepo) ListOverdueUnnotified(ctx context.Context, limit int32) ([]domain.OverdueNotice, error) {
	args := m.Called(ctx, limit)
	notices, _ := args.Get(0).([]domain.OverdueNotice)
	return notices, args.Error(1)
}
func (m *MockLoanRepo) MarkNoticeSent(ctx context.Context, loanID int32, at time.Time) error {
	return m.Called(ctx, loanID, at).Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentRepo) ListByLoan(ctx context.Context, loanID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, loanID)
	payments, _ := args.Get(0).([]domain.Payment)
	return payments, args.Error(1)
}

// MockVoucherRepo
type MockVoucherRepo struct {
	mock.Mock
}

func (m *MockVoucherRepo) Create(ctx context.Context, v *domain.Voucher) error {
	return m.Called(ctx, v).Error(0)
}
func (m *MockVoucherRepo) GetByID(ctx context.Context, id int32) (*domain.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherRepo) List(ctx context.Context, f domain.VoucherFilter) ([]domain.Voucher, error) {
	args := m.Called(ctx, f)
	vouchers, _ := args.Get(0).([]domain.Voucher)
	return vouchers, args.Error(1)
}
func (m *MockVoucherRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserRepo) List(ctx context.Context, role domain.UserRole, branchID *int32) ([]domain.User, error) {
	args := m.Called(ctx, role, branchID)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) CashTotals(ctx context.Context, branchID *int32) (*domain.CashTotals, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTotals), args.Error(1)
}
func (m *MockReportRepo) Portfolio(ctx context.Context, branchID *int32) (*domain.LoanPortfolio, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanPortfolio), args.Error(1)
}
func (m *MockReportRepo) LoansIssuedBetween(ctx context.Context, branchID *int32, from, to time.Time) ([]domain.IssuedLoanEntry, error) {
	args := m.Called(ctx, branchID, from, to)
	entries, _ := args.Get(0).([]domain.IssuedLoanEntry)
	return entries, args.Error(1)
}
func (m *MockReportRepo) PaymentsBetween(ctx context.Context, branchID *int32, from, to time.Time) ([]domain.PaymentEntry, error) {
	args := m.Called(ctx, branchID, from, to)
	entries, _ := args.Get(0).([]domain.PaymentEntry)
	return entries, args.Error(1)
}
func (m *MockReportRepo) SchemeDistribution(ctx context.Context, branchID *int32) ([]domain.SchemeShare, error) {
	args := m.Called(ctx, branchID)
	shares, _ := args.Get(0).([]domain.SchemeShare)
	return shares, args.Error(1)
}
func (m *MockReportRepo) MonthlyDisbursals(ctx context.Context, branchID *int32, since time.Time) ([]domain.MonthlyDisbursal, error) {
	args := m.Called(ctx, branchID, since)
	rows, _ := args.Get(0).([]domain.MonthlyDisbursal)
	return rows, args.Error(1)
}
func (m *MockReportRepo) RecentLoans(ctx context.Context, branchID *int32, limit int32) ([]domain.Loan, error) {
	args := m.Called(ctx, branchID, limit)
	loans, _ := args.Get(0).([]domain.Loan)
	return loans, args.Error(1)
}
func (m *MockReportRepo) DemandCandidates(ctx context.Context, branchID *int32) ([]domain.DemandCandidate, error) {
	args := m.Called(ctx, branchID)
	candidates, _ := args.Get(0).([]domain.DemandCandidate)
	return candidates, args.Error(1)
}
func (m *MockReportRepo) CountOpenDueBy(ctx context.Context, branchID *int32, threshold time.Time) (int32, error) {
	args := m.Called(ctx, branchID, threshold)
	return args.Get(0).(int32), args.Error(1)
}

// MockSender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg notify.Message) error {
	return m.Called(ctx, msg).Error(0)
}

// MockPriceFeed
type MockPriceFeed struct {
	mock.Mock
}

func (m *MockPriceFeed) Price24k(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockDocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Save(ctx context.Context, kind storage.DocumentKind, filename, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, kind, filename, contentType, r)
	return args.String(0), args.Error(1)
}
func (m *MockDocumentStore) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, ref)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.String(1), args.Error(2)
}
func (m *MockDocumentStore) Delete(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}
func (m *MockDocumentStore) URL(ref string) string {
	return m.Called(ref).String(0)
}

// mockRepos bundles one mock per repository.
type mockRepos struct {
	branches  *MockBranchRepo
	schemes   *MockSchemeRepo
	rates     *MockGoldRateRepo
	customers *MockCustomerRepo
	loans     *MockLoanRepo
	payments  *MockPaymentRepo
	vouchers  *MockVoucherRepo
	users     *MockUserRepo
	reports   *MockReportRepo
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		branches:  new(MockBranchRepo),
		schemes:   new(MockSchemeRepo),
		rates:     new(MockGoldRateRepo),
		customers: new(MockCustomerRepo),
		loans:     new(MockLoanRepo),
		payments:  new(MockPaymentRepo),
		vouchers:  new(MockVoucherRepo),
		users:     new(MockUserRepo),
		reports:   new(MockReportRepo),
	}
}

func (m *mockRepos) repositories() repository.Repositories {
	return repository.Repositories{
		Branches:  m.branches,
		Schemes:   m.schemes,
		GoldRates: m.rates,
		Customers: m.customers,
		Loans:     m.loans,
		Payments:  m.payments,
		Vouchers:  m.vouchers,
		Users:     m.users,
		Reports:   m.reports,
	}
}

// fakeTx runs fn against the mock repositories and records whether it committed.
type fakeTx struct {
	repos     repository.Repositories
	commits   int
	rollbacks int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := fn(f.repos); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}
