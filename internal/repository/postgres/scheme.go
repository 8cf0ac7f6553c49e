package postgres

import (
	"context"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/repository"
)

type schemeRepository struct {
	db DBTX
}

func NewSchemeRepository(db DBTX) repository.SchemeRepository {
	return &schemeRepository{db: db}
}

const schemeColumns = `id, name, interest_rate, tenure_months, max_loan_percentage, pre_interest_months, description, is_active, created_at, updated_at`

func scanScheme(row rowScanner) (*domain.Scheme, error) {
	s := &domain.Scheme{}
	err := row.Scan(&s.ID, &s.Name, &s.InterestRate, &s.TenureMonths, &s.MaxLoanPercentage, &s.PreInterestMonths, &s.Description, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *schemeRepository) Create(ctx context.Context, s *domain.Scheme) error {
	query := `INSERT INTO schemes (name, interest_rate, tenure_months, max_loan_percentage, pre_interest_months, description, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, s.Name, s.InterestRate, s.TenureMonths, s.MaxLoanPercentage, s.PreInterestMonths, s.Description, s.IsActive, now, now).Scan(&s.ID)
	return mapError(err, domain.ErrSchemeNotFound)
}

func (r *schemeRepository) Update(ctx context.Context, s *domain.Scheme) error {
	query := `UPDATE schemes SET name=$1, interest_rate=$2, tenure_months=$3, max_loan_percentage=$4, pre_interest_months=$5, description=$6, is_active=$7, updated_at=$8 WHERE id=$9`
	s.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, query, s.Name, s.InterestRate, s.TenureMonths, s.MaxLoanPercentage, s.PreInterestMonths, s.Description, s.IsActive, s.UpdatedAt, s.ID)
	if err != nil {
		return mapError(err, domain.ErrSchemeNotFound)
	}
	return expectOneRow(res, domain.ErrSchemeNotFound)
}

func (r *schemeRepository) GetByID(ctx context.Context, id int32) (*domain.Scheme, error) {
	query := `SELECT ` + schemeColumns + ` FROM schemes WHERE id = $1`
	s, err := scanScheme(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, domain.ErrSchemeNotFound)
	}
	return s, nil
}

func (r *schemeRepository) List(ctx context.Context, activeOnly bool) ([]domain.Scheme, error) {
	query := `SELECT ` + schemeColumns + ` FROM schemes WHERE ($1 = FALSE OR is_active) ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schemes []domain.Scheme
	for rows.Next() {
		s, err := scanScheme(rows)
		if err != nil {
			return nil, err
		}
		schemes = append(schemes, *s)
	}
	return schemes, rows.Err()
}
