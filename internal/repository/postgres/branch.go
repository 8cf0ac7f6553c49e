package postgres

import (
	"context"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/repository"
)

type branchRepository struct {
	db DBTX
}

func NewBranchRepository(db DBTX) repository.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, b *domain.Branch) error {
	logger.EnterMethod("branchRepository.Create", "name", b.Name)

	query := `INSERT INTO branches (name, address, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, b.Name, b.Address, b.IsActive, now, now).Scan(&b.ID)
	if err != nil {
		logger.ExitMethodWithError("branchRepository.Create", err, "name", b.Name)
		return mapError(err, domain.ErrBranchNotFound)
	}

	logger.ExitMethod("branchRepository.Create", "branchID", b.ID)
	return nil
}

func (r *branchRepository) GetByID(ctx context.Context, id int32) (*domain.Branch, error) {
	b := &domain.Branch{}
	query := `SELECT id, name, address, is_active, created_at, updated_at FROM branches WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Address, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, mapError(err, domain.ErrBranchNotFound)
	}
	return b, nil
}

func (r *branchRepository) List(ctx context.Context) ([]domain.Branch, error) {
	query := `SELECT id, name, address, is_active, created_at, updated_at FROM branches ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []domain.Branch
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

func (r *branchRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrBranchNotFound)
}

func (r *branchRepository) IsReferenced(ctx context.Context, id int32) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM loans WHERE branch_id = $1)
	              OR EXISTS (SELECT 1 FROM users WHERE branch_id = $1)
	              OR EXISTS (SELECT 1 FROM customers WHERE branch_id = $1)
	              OR EXISTS (SELECT 1 FROM vouchers WHERE branch_id = $1)`
	var referenced bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&referenced)
	return referenced, err
}
