package postgres

import (
	"context"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/repository"
)

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (loan_id, amount, type, payment_mode, remarks, payment_date, received_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	p.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, p.LoanID, p.Amount, p.Type, p.Mode, p.Remarks, p.PaymentDate, p.ReceivedBy, p.CreatedAt).Scan(&p.ID)
}

func (r *paymentRepository) ListByLoan(ctx context.Context, loanID int32) ([]domain.Payment, error) {
	query := `SELECT id, loan_id, amount, type, payment_mode, remarks, payment_date, received_by, created_at
	          FROM payments WHERE loan_id = $1 ORDER BY payment_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.LoanID, &p.Amount, &p.Type, &p.Mode, &p.Remarks, &p.PaymentDate, &p.ReceivedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
