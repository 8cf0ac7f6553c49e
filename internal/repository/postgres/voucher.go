package postgres

import (
	"context"
	"fmt"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/repository"
)

type voucherRepository struct {
	db DBTX
}

func NewVoucherRepository(db DBTX) repository.VoucherRepository {
	return &voucherRepository{db: db}
}

const voucherColumns = `id, type, category, amount, description, voucher_date, created_by, branch_id, created_at`

func scanVoucher(row rowScanner) (*domain.Voucher, error) {
	v := &domain.Voucher{}
	if err := row.Scan(&v.ID, &v.Type, &v.Category, &v.Amount, &v.Description, &v.Date, &v.CreatedBy, &v.BranchID, &v.CreatedAt); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *voucherRepository) Create(ctx context.Context, v *domain.Voucher) error {
	query := `INSERT INTO vouchers (type, category, amount, description, voucher_date, created_by, branch_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	v.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, v.Type, v.Category, v.Amount, v.Description, v.Date, v.CreatedBy, v.BranchID, v.CreatedAt).Scan(&v.ID)
}

func (r *voucherRepository) GetByID(ctx context.Context, id int32) (*domain.Voucher, error) {
	v, err := scanVoucher(r.db.QueryRowContext(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, domain.ErrVoucherNotFound)
	}
	return v, nil
}

func (r *voucherRepository) List(ctx context.Context, f domain.VoucherFilter) ([]domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE 1=1`
	var args []any
	argIdx := 1

	if f.BranchID != nil {
		query += fmt.Sprintf(" AND branch_id = $%d", argIdx)
		args = append(args, *f.BranchID)
		argIdx++
	}
	if !f.From.IsZero() {
		query += fmt.Sprintf(" AND voucher_date >= $%d", argIdx)
		args = append(args, f.From)
		argIdx++
	}
	if !f.To.IsZero() {
		query += fmt.Sprintf(" AND voucher_date < $%d", argIdx)
		args = append(args, f.To)
	}
	query += " ORDER BY voucher_date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, *v)
	}
	return vouchers, rows.Err()
}

func (r *voucherRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vouchers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrVoucherNotFound)
}
