package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawnledger-backend/internal/domain"
)

func TestReportRepository_CashTotals(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)
	branch := int32(2)

	mock.ExpectQuery("SELECT \\(SELECT COALESCE\\(SUM\\(p.amount\\), 0\\) FROM payments p").
		WithArgs(int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"payments", "interest", "disbursed", "income", "expense"}).
			AddRow("1500.00", "500.00", "10000.00", "200.00", "300.00"))

	totals, err := repo.CashTotals(context.Background(), &branch)
	require.NoError(t, err)
	assert.True(t, totals.TotalIn().Equal(decimal.NewFromInt(1700)))
	assert.True(t, totals.TotalOut().Equal(decimal.NewFromInt(10300)))
	assert.True(t, totals.CashInHand().Equal(decimal.NewFromInt(-8600)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_Portfolio(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COUNT\\(\\*\\) FILTER").
		WithArgs(nil).
		WillReturnRows(sqlmock.NewRows([]string{"total", "active", "overdue", "disbursed", "principal", "balance", "valuation"}).
			AddRow(10, 6, 2, "100000.00", "70000.00", "65000.00", "95000.00"))

	p, err := repo.Portfolio(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(10), p.TotalCount)
	assert.Equal(t, int32(6), p.ActiveCount)
	assert.Equal(t, int32(2), p.OverdueCount)
	assert.True(t, p.OpenBalance.Equal(decimal.NewFromInt(65000)))
}

func TestReportRepository_DayBookSources(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()
	from := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	cols := append(append([]string{}, loanColumnNames...), "name")
	mock.ExpectQuery("FROM loans l JOIN customers c (.+) l.loan_date >= \\$2 AND l.loan_date < \\$3").
		WithArgs(nil, from, to).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(loanRowValues(1, "active", from.Add(10*time.Hour), "Asha")...))

	loans, err := repo.LoansIssuedBetween(ctx, nil, from, to)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "Asha", loans[0].CustomerName)

	mock.ExpectQuery("FROM payments p JOIN loans l (.+) p.payment_date >= \\$2").
		WithArgs(nil, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "loan_id", "amount", "type", "payment_mode", "remarks", "payment_date", "received_by", "created_at", "loan_number"}).
			AddRow(1, 1, "500.00", "interest", "cash", "", from.Add(11*time.Hour), 5, from, "GL-20261015-AAAA0000"))

	payments, err := repo.PaymentsBetween(ctx, nil, from, to)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, domain.PaymentTypeInterest, payments[0].Payment.Type)
	assert.Equal(t, "GL-20261015-AAAA0000", payments[0].LoanNumber)
}

func TestReportRepository_DemandCandidates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	cols := append(append([]string{}, loanColumnNames...), "name", "phone", "tenure_months")
	mock.ExpectQuery("JOIN schemes s ON s.id = l.scheme_id (.+) l.status IN \\('active', 'overdue'\\)").
		WithArgs(nil).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(loanRowValues(1, "overdue", time.Now(), "Asha", "9000000001", 6)...))

	candidates, err := repo.DemandCandidates(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int32(6), candidates[0].TenureMonths)
	assert.Equal(t, domain.LoanStatusOverdue, candidates[0].Loan.Status)
}

func TestReportRepository_CountOpenDueBy(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)
	branch := int32(1)
	threshold := time.Now().AddDate(0, 0, 7)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM loans l").
		WithArgs(int32(1), threshold).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountOpenDueBy(context.Background(), &branch, threshold)
	require.NoError(t, err)
	assert.Equal(t, int32(3), n)
}
