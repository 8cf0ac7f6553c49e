package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pawnledger-backend/internal/domain"
)

// TestReportService_DayBook verifies the day book union and totals.
// Goal: Verify that:
// 1. One 10000 loan and one 500 interest payment give [DEBIT 10000, CREDIT 500], in 500, out 10000, net -9500.
// 2. Vouchers become DEBIT for expense and CREDIT for income.
// 3. Lines are ordered newest first.
func TestReportService_DayBook(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	t.Run("LoanAndInterest", func(t *testing.T) {
		m := newMockRepos()
		svc := NewReportService(m.repositories(), testSettings())

		m.reports.On("LoansIssuedBetween", ctx, int32Ptr(10), day, next).Return([]domain.IssuedLoanEntry{
			{Loan: domain.Loan{LoanNumber: "GL-1", LoanAmount: dec("10000"), LoanDate: day.Add(15 * time.Hour)}, CustomerName: "Lakshmi"},
		}, nil).Once()
		m.reports.On("PaymentsBetween", ctx, int32Ptr(10), day, next).Return([]domain.PaymentEntry{
			{Payment: domain.Payment{Amount: dec("500"), Type: domain.PaymentTypeInterest, PaymentDate: day.Add(11 * time.Hour)}, LoanNumber: "GL-0"},
		}, nil).Once()
		m.vouchers.On("List", ctx, domain.VoucherFilter{BranchID: int32Ptr(10), From: day, To: next}).Return(nil, nil).Once()

		book, err := svc.DayBook(ctx, staffActor, day.Add(9*time.Hour), nil)
		require.NoError(t, err)
		require.Len(t, book.Transactions, 2)
		assert.Equal(t, domain.EntryDebit, book.Transactions[0].Type)
		assert.Equal(t, "10000", book.Transactions[0].Amount.String())
		assert.Equal(t, domain.EntryCredit, book.Transactions[1].Type)
		assert.Equal(t, "500", book.Transactions[1].Amount.String())
		assert.Equal(t, "500", book.Summary.TotalIn.String())
		assert.Equal(t, "10000", book.Summary.TotalOut.String())
		assert.Equal(t, "-9500", book.Summary.NetChange.String())
	})

	t.Run("Vouchers", func(t *testing.T) {
		m := newMockRepos()
		svc := NewReportService(m.repositories(), testSettings())

		m.reports.On("LoansIssuedBetween", ctx, (*int32)(nil), day, next).Return(nil, nil).Once()
		m.reports.On("PaymentsBetween", ctx, (*int32)(nil), day, next).Return(nil, nil).Once()
		m.vouchers.On("List", ctx, domain.VoucherFilter{From: day, To: next}).Return([]domain.Voucher{
			{Type: domain.VoucherTypeExpense, Category: domain.VoucherCategoryRent, Amount: dec("1500"), Date: day.Add(10 * time.Hour)},
			{Type: domain.VoucherTypeIncome, Category: domain.VoucherCategoryAuctionSale, Amount: dec("52000"), Date: day.Add(12 * time.Hour)},
		}, nil).Once()

		book, err := svc.DayBook(ctx, adminActor, day, nil)
		require.NoError(t, err)
		require.Len(t, book.Transactions, 2)
		assert.Equal(t, domain.VoucherCategoryAuctionSale, book.Transactions[0].Category)
		assert.Equal(t, domain.EntryCredit, book.Transactions[0].Type)
		assert.Equal(t, domain.EntryDebit, book.Transactions[1].Type)
		assert.True(t, book.Summary.NetChange.Equal(book.Summary.TotalIn.Sub(book.Summary.TotalOut)))
		assert.Equal(t, "50500", book.Summary.NetChange.String())
	})

	t.Run("FailureIsNotAnEmptyBook", func(t *testing.T) {
		m := newMockRepos()
		svc := NewReportService(m.repositories(), testSettings())
		m.reports.On("LoansIssuedBetween", ctx, int32Ptr(10), day, next).Return(nil, errors.New("db down")).Once()

		book, err := svc.DayBook(ctx, staffActor, day, nil)
		assert.Error(t, err)
		assert.Nil(t, book)
	})

	t.Run("StaffCannotReadOtherBranch", func(t *testing.T) {
		m := newMockRepos()
		svc := NewReportService(m.repositories(), testSettings())
		_, err := svc.DayBook(ctx, staffActor, day, int32Ptr(20))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func sampleTotals() *domain.CashTotals {
	return &domain.CashTotals{
		Payments:         dec("30000"),
		InterestPayments: dec("4000"),
		Disbursed:        dec("100000"),
		IncomeVouchers:   dec("2000"),
		ExpenseVouchers:  dec("1500"),
	}
}

func samplePortfolio() *domain.LoanPortfolio {
	return &domain.LoanPortfolio{
		TotalCount:     5,
		ActiveCount:    3,
		OverdueCount:   1,
		TotalDisbursed: dec("100000"),
		OpenPrincipal:  dec("80000"),
		OpenBalance:    dec("74000"),
		OpenValuation:  dec("110000"),
	}
}

func TestReportService_FinancialStats(t *testing.T) {
	ctx := context.Background()
	m := newMockRepos()
	svc := NewReportService(m.repositories(), testSettings())

	m.reports.On("CashTotals", mock.Anything, int32Ptr(10)).Return(sampleTotals(), nil).Once()
	m.reports.On("Portfolio", mock.Anything, int32Ptr(10)).Return(samplePortfolio(), nil).Once()

	stats, err := svc.FinancialStats(ctx, staffActor, nil)
	require.NoError(t, err)
	assert.Equal(t, "-69500", stats.CashInHand.String())
	assert.Equal(t, "80000", stats.OutstandingLoans.String())
	assert.Equal(t, "110000", stats.GoldStockValuation.String())
	assert.Equal(t, "4000", stats.InterestIncome.String())
	assert.Equal(t, "4500", stats.NetProfit.String())
}

func TestReportService_BusinessReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin", func(t *testing.T) {
		m := newMockRepos()
		svc := NewReportService(m.repositories(), testSettings())
		m.reports.On("CashTotals", mock.Anything, (*int32)(nil)).Return(sampleTotals(), nil).Once()
		m.reports.On("Portfolio", mock.Anything, (*int32)(nil)).Return(samplePortfolio(), nil).Once()

		report, err := svc.BusinessReport(ctx, adminActor)
		require.NoError(t, err)
		assert.Equal(t, "74000", report.PrincipalOutstanding.String())
		assert.Equal(t, "32000", report.TotalIn.String())
		assert.Equal(t, "101500", report.TotalOut.String())
	})

	t.Run("StaffForbidden", func(t *testing.T) {
		m := newMockRepos()
		svc := NewReportService(m.repositories(), testSettings())
		_, err := svc.BusinessReport(ctx, staffActor)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("AggregateFailure", func(t *testing.T) {
		m := newMockRepos()
		svc := NewReportService(m.repositories(), testSettings())
		m.reports.On("CashTotals", mock.Anything, (*int32)(nil)).Return(nil, errors.New("timeout")).Once()
		m.reports.On("Portfolio", mock.Anything, (*int32)(nil)).Return(samplePortfolio(), nil).Maybe()

		_, err := svc.BusinessReport(ctx, adminActor)
		assert.Error(t, err)
	})
}

// TestReportService_DemandReport verifies the demand horizon.
// Goal: Verify that every overdue loan is listed, active loans maturing within the
// horizon are listed, and later maturities are not.
func TestReportService_DemandReport(t *testing.T) {
	ctx := context.Background()
	m := newMockRepos()
	svc := NewReportService(m.repositories(), testSettings())

	candidate := func(id int32, status domain.LoanStatus, loanDate time.Time, tenure int32) domain.DemandCandidate {
		return domain.DemandCandidate{
			Loan:         domain.Loan{ID: id, Status: status, LoanDate: loanDate, LoanAmount: dec("1000"), CurrentBalance: dec("1000"), InterestRate: dec("2")},
			CustomerName: "C",
			TenureMonths: tenure,
		}
	}
	m.reports.On("DemandCandidates", ctx, int32Ptr(10)).Return([]domain.DemandCandidate{
		candidate(1, domain.LoanStatusOverdue, fixedNow.AddDate(1, 0, 0), 12), // overdue regardless of maturity
		candidate(2, domain.LoanStatusActive, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 6), // matures Nov 1
		candidate(3, domain.LoanStatusActive, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), 6), // matures Apr 1
		candidate(4, domain.LoanStatusActive, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 6), // matured Oct 1, sweep pending
	}, nil)

	entries, err := svc.DemandReport(ctx, staffActor, 0, nil)
	require.NoError(t, err)
	var ids []int32
	for _, e := range entries {
		ids = append(ids, e.LoanID)
	}
	assert.Equal(t, []int32{1, 2, 4}, ids)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), entries[1].MaturityDate)
	assert.Equal(t, 5, entries[1].MonthsElapsed)
	assert.Equal(t, "20", entries[1].MonthlyInterest.String())

	entries, err = svc.DemandReport(ctx, staffActor, 365, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()
	m := newMockRepos()
	svc := NewReportService(m.repositories(), testSettings())
	since := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	m.reports.On("Portfolio", mock.Anything, int32Ptr(10)).Return(samplePortfolio(), nil).Once()
	m.reports.On("SchemeDistribution", mock.Anything, int32Ptr(10)).Return([]domain.SchemeShare{{Name: "Gold Standard", Count: 5}}, nil).Once()
	m.reports.On("MonthlyDisbursals", mock.Anything, int32Ptr(10), since).Return([]domain.MonthlyDisbursal{
		{Month: "2026-07", Count: 2, Amount: dec("20000")},
		{Month: "2026-10", Count: 1, Amount: dec("10000")},
	}, nil).Once()
	m.reports.On("RecentLoans", mock.Anything, int32Ptr(10), int32(recentLoansLimit)).Return(nil, nil).Once()

	stats, err := svc.Dashboard(ctx, staffActor, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanCounts{Total: 5, Active: 3, Overdue: 1}, stats.Counts)
	assert.Equal(t, "74000", stats.Outstanding.String())
	require.Len(t, stats.MonthlyTrend, 6)
	assert.Equal(t, "2026-05", stats.MonthlyTrend[0].Month)
	assert.True(t, stats.MonthlyTrend[0].Amount.IsZero())
	assert.Equal(t, int32(2), stats.MonthlyTrend[2].Count)
	assert.Equal(t, "2026-10", stats.MonthlyTrend[5].Month)
	assert.NotNil(t, stats.RecentLoans)
}

func TestReportService_StaffDashboard(t *testing.T) {
	ctx := context.Background()
	m := newMockRepos()
	svc := NewReportService(m.repositories(), testSettings())
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	m.reports.On("LoansIssuedBetween", ctx, int32Ptr(10), day, day.AddDate(0, 0, 1)).Return([]domain.IssuedLoanEntry{
		{Loan: domain.Loan{LoanAmount: dec("10000")}},
		{Loan: domain.Loan{LoanAmount: dec("5000")}},
	}, nil).Once()
	m.reports.On("PaymentsBetween", ctx, int32Ptr(10), day, day.AddDate(0, 0, 1)).Return([]domain.PaymentEntry{
		{Payment: domain.Payment{Amount: dec("500"), Type: domain.PaymentTypeInterest}},
		{Payment: domain.Payment{Amount: dec("2000"), Type: domain.PaymentTypePrincipal}},
	}, nil).Once()
	m.reports.On("CountOpenDueBy", ctx, int32Ptr(10), fixedNow.AddDate(0, 0, 7)).Return(int32(3), nil).Once()
	m.reports.On("Portfolio", ctx, int32Ptr(10)).Return(samplePortfolio(), nil).Once()

	stats, err := svc.StaffDashboard(ctx, staffActor)
	require.NoError(t, err)
	assert.Equal(t, int32(2), stats.LoansIssuedCount)
	assert.Equal(t, "15000", stats.LoansIssuedAmount.String())
	assert.Equal(t, "2500", stats.PaymentsReceived.String())
	assert.Equal(t, "500", stats.InterestCollected.String())
	assert.Equal(t, int32(3), stats.PendingRedemptions)
	assert.Equal(t, int32(3), stats.ActiveLoans)

	_, err = svc.StaffDashboard(ctx, domain.Actor{UserID: 9, Role: domain.UserRoleStaff})
	assert.ErrorIs(t, err, domain.ErrForbidden, "staff without a branch")
}

func TestFillTrend(t *testing.T) {
	since := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	trend := fillTrend(nil, since, 3)
	assert.Equal(t, []string{"2026-11", "2026-12", "2027-01"}, []string{trend[0].Month, trend[1].Month, trend[2].Month})
	assert.True(t, trend[2].Amount.Equal(decimal.Zero))
}
