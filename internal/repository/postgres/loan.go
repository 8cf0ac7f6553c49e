package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/repository"
)

type loanRepository struct {
	db DBTX
}

func NewLoanRepository(db DBTX) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `l.id, l.loan_number, l.customer_id, l.scheme_id, l.branch_id, l.total_weight, l.gold_rate_id,
	l.gold_rate_at_pledge, l.valuation, l.loan_amount, l.interest_rate, l.pre_interest_amount, l.loan_date, l.due_date,
	l.current_balance, l.status, l.auction_date, l.auction_amount, l.bidder_name, l.bidder_contact, l.auction_remarks,
	l.overdue_notice_sent_at, l.created_by, l.created_at, l.updated_at`

// scanLoan reads loanColumns followed by any extra destinations.
func scanLoan(row rowScanner, extra ...any) (*domain.Loan, error) {
	l := &domain.Loan{}
	var (
		auctionDate   *time.Time
		auctionAmount decimal.NullDecimal
		bidderName    sql.NullString
		bidderContact sql.NullString
		remarks       sql.NullString
	)
	dest := []any{
		&l.ID, &l.LoanNumber, &l.CustomerID, &l.SchemeID, &l.BranchID, &l.TotalWeight, &l.GoldRateID,
		&l.GoldRateAtPledge, &l.Valuation, &l.LoanAmount, &l.InterestRate, &l.PreInterestAmount, &l.LoanDate, &l.DueDate,
		&l.CurrentBalance, &l.Status, &auctionDate, &auctionAmount, &bidderName, &bidderContact, &remarks,
		&l.OverdueNoticeSent, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if auctionDate != nil {
		l.Auction = &domain.AuctionDetails{
			AuctionDate:   *auctionDate,
			AuctionAmount: auctionAmount.Decimal,
			BidderName:    bidderName.String,
			BidderContact: bidderContact.String,
			Remarks:       remarks.String,
		}
	}
	return l, nil
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	logger.EnterMethod("loanRepository.Create", "loanNumber", l.LoanNumber, "customerID", l.CustomerID)

	query := `INSERT INTO loans (loan_number, customer_id, scheme_id, branch_id, total_weight, gold_rate_id, gold_rate_at_pledge,
	              valuation, loan_amount, interest_rate, pre_interest_amount, loan_date, due_date, current_balance, status,
	              created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query,
		l.LoanNumber, l.CustomerID, l.SchemeID, l.BranchID, l.TotalWeight, l.GoldRateID, l.GoldRateAtPledge,
		l.Valuation, l.LoanAmount, l.InterestRate, l.PreInterestAmount, l.LoanDate, l.DueDate, l.CurrentBalance, l.Status,
		l.CreatedBy, now, now,
	).Scan(&l.ID)
	if err != nil {
		logger.ExitMethodWithError("loanRepository.Create", err, "loanNumber", l.LoanNumber)
		return mapError(err, domain.ErrLoanNotFound)
	}

	logger.ExitMethod("loanRepository.Create", "loanID", l.ID)
	return nil
}

func (r *loanRepository) CreateItem(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO loan_items (loan_id, name, description, net_weight, purity, photos, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	it.CreatedAt = time.Now()
	photos := it.Photos
	if photos == nil {
		photos = []string{}
	}
	return r.db.QueryRowContext(ctx, query, it.LoanID, it.Name, it.Description, it.NetWeight, it.Purity, pq.Array(photos), it.CreatedAt).Scan(&it.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.id = $1`
	l, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, domain.ErrLoanNotFound)
	}
	return l, nil
}

func (r *loanRepository) GetByNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.loan_number = $1`
	l, err := scanLoan(r.db.QueryRowContext(ctx, query, loanNumber))
	if err != nil {
		return nil, mapError(err, domain.ErrLoanNotFound)
	}
	return l, nil
}

func (r *loanRepository) GetForUpdate(ctx context.Context, id int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.id = $1 FOR UPDATE`
	l, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, domain.ErrLoanNotFound)
	}
	return l, nil
}

func (r *loanRepository) ListItems(ctx context.Context, loanID int32) ([]domain.Item, error) {
	query := `SELECT id, loan_id, name, description, net_weight, purity, photos, created_at FROM loan_items WHERE loan_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.LoanID, &it.Name, &it.Description, &it.NetWeight, &it.Purity, pq.Array(&it.Photos), &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *loanRepository) List(ctx context.Context, f domain.LoanFilter) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE 1=1`
	var args []any
	argIdx := 1

	if f.BranchID != nil {
		query += fmt.Sprintf(" AND l.branch_id = $%d", argIdx)
		args = append(args, *f.BranchID)
		argIdx++
	}
	if f.CustomerID != nil {
		query += fmt.Sprintf(" AND l.customer_id = $%d", argIdx)
		args = append(args, *f.CustomerID)
		argIdx++
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		query += fmt.Sprintf(" AND l.status = ANY($%d)", argIdx)
		args = append(args, pq.Array(statuses))
		argIdx++
	}
	query += " ORDER BY l.created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) UpdateBalance(ctx context.Context, l *domain.Loan) error {
	query := `UPDATE loans SET current_balance=$1, status=$2, due_date=$3, overdue_notice_sent_at=$4, updated_at=$5
	          WHERE id=$6`
	l.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, query, l.CurrentBalance, l.Status, l.DueDate, l.OverdueNoticeSent, l.UpdatedAt, l.ID)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrLoanNotFound)
}

func (r *loanRepository) MarkAuctioned(ctx context.Context, loanID int32, d *domain.AuctionDetails) error {
	logger.EnterMethod("loanRepository.MarkAuctioned", "loanID", loanID)

	query := `UPDATE loans SET status=$1, current_balance=0, auction_date=$2, auction_amount=$3, bidder_name=$4,
	              bidder_contact=$5, auction_remarks=$6, updated_at=$7
	          WHERE id=$8 AND status=$9`
	res, err := r.db.ExecContext(ctx, query, domain.LoanStatusAuctioned, d.AuctionDate, d.AuctionAmount, d.BidderName,
		d.BidderContact, d.Remarks, time.Now(), loanID, domain.LoanStatusOverdue)
	if err != nil {
		logger.ExitMethodWithError("loanRepository.MarkAuctioned", err, "loanID", loanID)
		return err
	}
	if err := expectOneRow(res, domain.ErrNotAuctionable); err != nil {
		logger.ExitMethodWithError("loanRepository.MarkAuctioned", err, "loanID", loanID)
		return err
	}

	logger.ExitMethod("loanRepository.MarkAuctioned", "loanID", loanID)
	return nil
}

func (r *loanRepository) MarkOverdue(ctx context.Context, now time.Time) ([]int32, error) {
	query := `UPDATE loans SET status=$1, updated_at=$2
	          WHERE status=$3 AND due_date < $2 AND current_balance > 0
	          RETURNING id`
	logger.DatabaseCall("MarkOverdue", query)
	rows, err := r.db.QueryContext(ctx, query, domain.LoanStatusOverdue, now, domain.LoanStatusActive)
	if err != nil {
		logger.DatabaseResult("MarkOverdue", 0, err)
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	logger.DatabaseResult("MarkOverdue", int64(len(ids)), rows.Err())
	return ids, rows.Err()
}

func (r *loanRepository) ListOverdueUnnotified(ctx context.Context, limit int32) ([]domain.OverdueNotice, error) {
	query := `SELECT ` + loanColumns + `, c.name, c.email, c.phone
	          FROM loans l JOIN customers c ON c.id = l.customer_id
	          WHERE l.status = $1 AND l.overdue_notice_sent_at IS NULL
	          ORDER BY l.due_date LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, domain.LoanStatusOverdue, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []domain.OverdueNotice
	for rows.Next() {
		var n domain.OverdueNotice
		l, err := scanLoan(rows, &n.CustomerName, &n.CustomerEmail, &n.CustomerPhone)
		if err != nil {
			return nil, err
		}
		n.Loan = *l
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// MarkNoticeSent stamps the loan only once; a second stamp is a no-op.
func (r *loanRepository) MarkNoticeSent(ctx context.Context, loanID int32, at time.Time) error {
	query := `UPDATE loans SET overdue_notice_sent_at=$1 WHERE id=$2 AND overdue_notice_sent_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, at, loanID)
	return err
}
