package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/repository"
	"pawnledger-backend/internal/utils"
	"pawnledger-backend/internal/valuation"
)

const (
	trendMonths      = 6
	recentLoansLimit = 5
)

type reportService struct {
	repos    repository.Repositories
	settings Settings
}

func NewReportService(repos repository.Repositories, settings Settings) ReportService {
	return &reportService{repos: repos, settings: settings}
}

// DayBook lists the cash events of one business day, newest first.
func (s *reportService) DayBook(ctx context.Context, actor domain.Actor, date time.Time, branchID *int32) (*domain.DayBook, error) {
	scoped, err := actor.ScopeBranch(branchID)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = s.settings.now()
	}
	from, to := utils.DayBounds(date.In(s.settings.location()))

	loans, err := s.repos.Reports.LoansIssuedBetween(ctx, scoped, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load issued loans: %w", err)
	}
	payments, err := s.repos.Reports.PaymentsBetween(ctx, scoped, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	vouchers, err := s.repos.Vouchers.List(ctx, domain.VoucherFilter{BranchID: scoped, From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to load vouchers: %w", err)
	}

	book := &domain.DayBook{
		Date:         from,
		Transactions: make([]domain.DayBookEntry, 0, len(loans)+len(payments)+len(vouchers)),
	}
	for _, e := range loans {
		book.Transactions = append(book.Transactions, domain.DayBookEntry{
			Type:        domain.EntryDebit,
			Category:    domain.DayBookCategoryLoanIssue,
			Description: fmt.Sprintf("Loan issued to %s", e.CustomerName),
			Amount:      e.Loan.LoanAmount,
			Time:        e.Loan.LoanDate,
			Reference:   e.Loan.LoanNumber,
		})
	}
	for _, e := range payments {
		book.Transactions = append(book.Transactions, domain.DayBookEntry{
			Type:        domain.EntryCredit,
			Category:    domain.DayBookCategoryLoanPayment,
			Description: fmt.Sprintf("%s payment for %s", e.Payment.Type, e.LoanNumber),
			Amount:      e.Payment.Amount,
			Time:        e.Payment.PaymentDate,
			Reference:   e.LoanNumber,
		})
	}
	for _, v := range vouchers {
		direction := domain.EntryCredit
		if v.Type == domain.VoucherTypeExpense {
			direction = domain.EntryDebit
		}
		book.Transactions = append(book.Transactions, domain.DayBookEntry{
			Type:        direction,
			Category:    v.Category,
			Description: v.Description,
			Amount:      v.Amount,
			Time:        v.Date,
		})
	}

	sort.SliceStable(book.Transactions, func(i, j int) bool {
		return book.Transactions[i].Time.After(book.Transactions[j].Time)
	})

	book.Summary = summarize(book.Transactions)
	return book, nil
}

func summarize(entries []domain.DayBookEntry) domain.DayBookSummary {
	sum := domain.DayBookSummary{TotalIn: decimal.Zero, TotalOut: decimal.Zero}
	for _, e := range entries {
		if e.Type == domain.EntryCredit {
			sum.TotalIn = sum.TotalIn.Add(e.Amount)
		} else {
			sum.TotalOut = sum.TotalOut.Add(e.Amount)
		}
	}
	sum.NetChange = sum.TotalIn.Sub(sum.TotalOut)
	return sum
}

func (s *reportService) FinancialStats(ctx context.Context, actor domain.Actor, branchID *int32) (*domain.FinancialStats, error) {
	scoped, err := actor.ScopeBranch(branchID)
	if err != nil {
		return nil, err
	}

	totals, portfolio, err := s.cashAndPortfolio(ctx, scoped)
	if err != nil {
		return nil, err
	}

	return &domain.FinancialStats{
		CashInHand:         totals.CashInHand(),
		OutstandingLoans:   portfolio.OpenPrincipal,
		GoldStockValuation: portfolio.OpenValuation,
		InterestIncome:     totals.InterestPayments,
		OtherIncome:        totals.IncomeVouchers,
		OperatingExpenses:  totals.ExpenseVouchers,
		NetProfit:          totals.InterestPayments.Add(totals.IncomeVouchers).Sub(totals.ExpenseVouchers),
	}, nil
}

// BusinessReport is the cross-branch view; only admins may read it.
func (s *reportService) BusinessReport(ctx context.Context, actor domain.Actor) (*domain.BusinessReport, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	totals, portfolio, err := s.cashAndPortfolio(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &domain.BusinessReport{
		PrincipalOutstanding: portfolio.OpenBalance,
		TotalDisbursed:       totals.Disbursed,
		InterestCollected:    totals.InterestPayments,
		OtherIncome:          totals.IncomeVouchers,
		CashInHand:           totals.CashInHand(),
		TotalIn:              totals.TotalIn(),
		TotalOut:             totals.TotalOut(),
	}, nil
}

// cashAndPortfolio runs the two aggregate queries concurrently.
func (s *reportService) cashAndPortfolio(ctx context.Context, branchID *int32) (*domain.CashTotals, *domain.LoanPortfolio, error) {
	var (
		totals    *domain.CashTotals
		portfolio *domain.LoanPortfolio
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if totals, err = s.repos.Reports.CashTotals(gctx, branchID); err != nil {
			return fmt.Errorf("failed to load cash totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if portfolio, err = s.repos.Reports.Portfolio(gctx, branchID); err != nil {
			return fmt.Errorf("failed to load loan portfolio: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return totals, portfolio, nil
}

// DemandReport lists overdue loans and open loans maturing within days from now.
func (s *reportService) DemandReport(ctx context.Context, actor domain.Actor, days int, branchID *int32) ([]domain.DemandEntry, error) {
	scoped, err := actor.ScopeBranch(branchID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = s.settings.DemandHorizonDays
	}

	candidates, err := s.repos.Reports.DemandCandidates(ctx, scoped)
	if err != nil {
		return nil, fmt.Errorf("failed to load demand candidates: %w", err)
	}

	now := s.settings.now()
	horizon := now.AddDate(0, 0, days)
	entries := make([]domain.DemandEntry, 0, len(candidates))
	for _, c := range candidates {
		maturity := utils.AddMonths(c.Loan.LoanDate, int(c.TenureMonths))
		if c.Loan.Status != domain.LoanStatusOverdue && maturity.After(horizon) {
			continue
		}
		entries = append(entries, domain.DemandEntry{
			LoanID:        c.Loan.ID,
			LoanNumber:    c.Loan.LoanNumber,
			CustomerID:    c.Loan.CustomerID,
			CustomerName:  c.CustomerName,
			CustomerPhone: c.CustomerPhone,
			Amount:        c.Loan.LoanAmount,
			Balance:       c.Loan.CurrentBalance,
			MaturityDate:  maturity,
			Status:        c.Loan.Status,

			MonthsElapsed:   utils.WholeMonthsBetween(c.Loan.LoanDate, now),
			MonthlyInterest: valuation.MonthlyInterest(c.Loan.CurrentBalance, c.Loan.InterestRate).Round(2),
		})
	}
	return entries, nil
}

func (s *reportService) Dashboard(ctx context.Context, actor domain.Actor, branchID *int32) (*domain.DashboardStats, error) {
	scoped, err := actor.ScopeBranch(branchID)
	if err != nil {
		return nil, err
	}

	now := s.settings.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	since := utils.AddMonths(monthStart, -(trendMonths - 1))

	var (
		portfolio *domain.LoanPortfolio
		shares    []domain.SchemeShare
		monthly   []domain.MonthlyDisbursal
		recent    []domain.Loan
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		portfolio, err = s.repos.Reports.Portfolio(gctx, scoped)
		return err
	})
	g.Go(func() (err error) {
		shares, err = s.repos.Reports.SchemeDistribution(gctx, scoped)
		return err
	})
	g.Go(func() (err error) {
		monthly, err = s.repos.Reports.MonthlyDisbursals(gctx, scoped, since)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.repos.Reports.RecentLoans(gctx, scoped, recentLoansLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	if shares == nil {
		shares = []domain.SchemeShare{}
	}
	if recent == nil {
		recent = []domain.Loan{}
	}
	return &domain.DashboardStats{
		Counts: domain.LoanCounts{
			Total:   portfolio.TotalCount,
			Active:  portfolio.ActiveCount,
			Overdue: portfolio.OverdueCount,
		},
		Disbursed:    portfolio.TotalDisbursed,
		Outstanding:  portfolio.OpenBalance,
		SchemeStats:  shares,
		MonthlyTrend: fillTrend(monthly, since, trendMonths),
		RecentLoans:  recent,
	}, nil
}

// fillTrend returns one entry per month starting at since, zero for months with no loans.
func fillTrend(rows []domain.MonthlyDisbursal, since time.Time, months int) []domain.MonthlyDisbursal {
	byMonth := make(map[string]domain.MonthlyDisbursal, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}
	trend := make([]domain.MonthlyDisbursal, 0, months)
	for i := 0; i < months; i++ {
		key := utils.AddMonths(since, i).Format("2006-01")
		entry, ok := byMonth[key]
		if !ok {
			entry = domain.MonthlyDisbursal{Month: key, Amount: decimal.Zero}
		}
		trend = append(trend, entry)
	}
	return trend
}

// StaffDashboard summarizes today's activity for the actor's branch.
func (s *reportService) StaffDashboard(ctx context.Context, actor domain.Actor) (*domain.StaffDashboardStats, error) {
	scoped, err := actor.ScopeBranch(nil)
	if err != nil {
		return nil, err
	}

	now := s.settings.now()
	from, to := utils.DayBounds(now)

	issued, err := s.repos.Reports.LoansIssuedBetween(ctx, scoped, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load issued loans: %w", err)
	}
	payments, err := s.repos.Reports.PaymentsBetween(ctx, scoped, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	pending, err := s.repos.Reports.CountOpenDueBy(ctx, scoped, now.AddDate(0, 0, s.settings.RedemptionWindowDays))
	if err != nil {
		return nil, fmt.Errorf("failed to count pending redemptions: %w", err)
	}
	portfolio, err := s.repos.Reports.Portfolio(ctx, scoped)
	if err != nil {
		return nil, fmt.Errorf("failed to load loan portfolio: %w", err)
	}

	stats := &domain.StaffDashboardStats{
		LoansIssuedAmount:  decimal.Zero,
		PaymentsReceived:   decimal.Zero,
		InterestCollected:  decimal.Zero,
		PendingRedemptions: pending,
		ActiveLoans:        portfolio.ActiveCount,
		OutstandingAmount:  portfolio.OpenBalance,
	}
	for _, e := range issued {
		stats.LoansIssuedCount++
		stats.LoansIssuedAmount = stats.LoansIssuedAmount.Add(e.Loan.LoanAmount)
	}
	for _, e := range payments {
		stats.PaymentsReceived = stats.PaymentsReceived.Add(e.Payment.Amount)
		if e.Payment.Type == domain.PaymentTypeInterest {
			stats.InterestCollected = stats.InterestCollected.Add(e.Payment.Amount)
		}
	}
	return stats, nil
}
