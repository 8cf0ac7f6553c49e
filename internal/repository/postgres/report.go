package postgres

import (
	"context"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/repository"
)

type reportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) repository.ReportRepository {
	return &reportRepository{db: db}
}

// Every query takes the branch filter as a nullable integer parameter.
const (
	branchFilterLoans    = `($1::INTEGER IS NULL OR l.branch_id = $1)`
	branchFilterVouchers = `($1::INTEGER IS NULL OR v.branch_id = $1)`
	openStatuses         = `('active', 'overdue')`
)

func (r *reportRepository) CashTotals(ctx context.Context, branchID *int32) (*domain.CashTotals, error) {
	logger.EnterMethod("reportRepository.CashTotals", "branchID", branchID)

	query := `SELECT
	    (SELECT COALESCE(SUM(p.amount), 0) FROM payments p JOIN loans l ON l.id = p.loan_id WHERE ` + branchFilterLoans + `),
	    (SELECT COALESCE(SUM(p.amount), 0) FROM payments p JOIN loans l ON l.id = p.loan_id WHERE p.type = 'interest' AND ` + branchFilterLoans + `),
	    (SELECT COALESCE(SUM(l.loan_amount), 0) FROM loans l WHERE ` + branchFilterLoans + `),
	    (SELECT COALESCE(SUM(v.amount), 0) FROM vouchers v WHERE v.type = 'income' AND ` + branchFilterVouchers + `),
	    (SELECT COALESCE(SUM(v.amount), 0) FROM vouchers v WHERE v.type = 'expense' AND ` + branchFilterVouchers + `)`

	t := &domain.CashTotals{}
	err := r.db.QueryRowContext(ctx, query, branchID).Scan(&t.Payments, &t.InterestPayments, &t.Disbursed, &t.IncomeVouchers, &t.ExpenseVouchers)
	if err != nil {
		logger.ExitMethodWithError("reportRepository.CashTotals", err)
		return nil, err
	}

	logger.ExitMethod("reportRepository.CashTotals")
	return t, nil
}

func (r *reportRepository) Portfolio(ctx context.Context, branchID *int32) (*domain.LoanPortfolio, error) {
	query := `SELECT
	    COUNT(*),
	    COUNT(*) FILTER (WHERE l.status = 'active'),
	    COUNT(*) FILTER (WHERE l.status = 'overdue'),
	    COALESCE(SUM(l.loan_amount), 0),
	    COALESCE(SUM(l.loan_amount) FILTER (WHERE l.status IN ` + openStatuses + `), 0),
	    COALESCE(SUM(l.current_balance) FILTER (WHERE l.status IN ` + openStatuses + `), 0),
	    COALESCE(SUM(l.valuation) FILTER (WHERE l.status IN ` + openStatuses + `), 0)
	    FROM loans l WHERE ` + branchFilterLoans

	p := &domain.LoanPortfolio{}
	err := r.db.QueryRowContext(ctx, query, branchID).Scan(&p.TotalCount, &p.ActiveCount, &p.OverdueCount,
		&p.TotalDisbursed, &p.OpenPrincipal, &p.OpenBalance, &p.OpenValuation)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *reportRepository) LoansIssuedBetween(ctx context.Context, branchID *int32, from, to time.Time) ([]domain.IssuedLoanEntry, error) {
	query := `SELECT ` + loanColumns + `, c.name
	          FROM loans l JOIN customers c ON c.id = l.customer_id
	          WHERE ` + branchFilterLoans + ` AND l.loan_date >= $2 AND l.loan_date < $3
	          ORDER BY l.loan_date DESC`
	rows, err := r.db.QueryContext(ctx, query, branchID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.IssuedLoanEntry
	for rows.Next() {
		var e domain.IssuedLoanEntry
		l, err := scanLoan(rows, &e.CustomerName)
		if err != nil {
			return nil, err
		}
		e.Loan = *l
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *reportRepository) PaymentsBetween(ctx context.Context, branchID *int32, from, to time.Time) ([]domain.PaymentEntry, error) {
	query := `SELECT p.id, p.loan_id, p.amount, p.type, p.payment_mode, p.remarks, p.payment_date, p.received_by, p.created_at, l.loan_number
	          FROM payments p JOIN loans l ON l.id = p.loan_id
	          WHERE ` + branchFilterLoans + ` AND p.payment_date >= $2 AND p.payment_date < $3
	          ORDER BY p.payment_date DESC`
	rows, err := r.db.QueryContext(ctx, query, branchID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PaymentEntry
	for rows.Next() {
		var e domain.PaymentEntry
		p := &e.Payment
		if err := rows.Scan(&p.ID, &p.LoanID, &p.Amount, &p.Type, &p.Mode, &p.Remarks, &p.PaymentDate, &p.ReceivedBy, &p.CreatedAt, &e.LoanNumber); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *reportRepository) SchemeDistribution(ctx context.Context, branchID *int32) ([]domain.SchemeShare, error) {
	query := `SELECT s.name, COUNT(*), COALESCE(SUM(l.loan_amount), 0)
	          FROM loans l JOIN schemes s ON s.id = l.scheme_id
	          WHERE ` + branchFilterLoans + `
	          GROUP BY s.name ORDER BY COUNT(*) DESC, s.name`
	rows, err := r.db.QueryContext(ctx, query, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []domain.SchemeShare
	for rows.Next() {
		var s domain.SchemeShare
		if err := rows.Scan(&s.Name, &s.Count, &s.Amount); err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}

func (r *reportRepository) MonthlyDisbursals(ctx context.Context, branchID *int32, since time.Time) ([]domain.MonthlyDisbursal, error) {
	query := `SELECT to_char(date_trunc('month', l.loan_date), 'YYYY-MM') AS month, COUNT(*), COALESCE(SUM(l.loan_amount), 0)
	          FROM loans l
	          WHERE ` + branchFilterLoans + ` AND l.loan_date >= $2
	          GROUP BY month ORDER BY month`
	rows, err := r.db.QueryContext(ctx, query, branchID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []domain.MonthlyDisbursal
	for rows.Next() {
		var m domain.MonthlyDisbursal
		if err := rows.Scan(&m.Month, &m.Count, &m.Amount); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

func (r *reportRepository) RecentLoans(ctx context.Context, branchID *int32, limit int32) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + `, c.name
	          FROM loans l JOIN customers c ON c.id = l.customer_id
	          WHERE ` + branchFilterLoans + `
	          ORDER BY l.created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, branchID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var name string
		l, err := scanLoan(rows, &name)
		if err != nil {
			return nil, err
		}
		l.Customer = &domain.Customer{ID: l.CustomerID, Name: name}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}

func (r *reportRepository) DemandCandidates(ctx context.Context, branchID *int32) ([]domain.DemandCandidate, error) {
	query := `SELECT ` + loanColumns + `, c.name, c.phone, s.tenure_months
	          FROM loans l
	          JOIN customers c ON c.id = l.customer_id
	          JOIN schemes s ON s.id = l.scheme_id
	          WHERE ` + branchFilterLoans + ` AND l.status IN ` + openStatuses + `
	          ORDER BY l.loan_date`
	rows, err := r.db.QueryContext(ctx, query, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.DemandCandidate
	for rows.Next() {
		var c domain.DemandCandidate
		l, err := scanLoan(rows, &c.CustomerName, &c.CustomerPhone, &c.TenureMonths)
		if err != nil {
			return nil, err
		}
		c.Loan = *l
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *reportRepository) CountOpenDueBy(ctx context.Context, branchID *int32, threshold time.Time) (int32, error) {
	query := `SELECT COUNT(*) FROM loans l WHERE ` + branchFilterLoans + ` AND l.status IN ` + openStatuses + ` AND l.due_date <= $2`
	var n int32
	err := r.db.QueryRowContext(ctx, query, branchID, threshold).Scan(&n)
	return n, err
}
