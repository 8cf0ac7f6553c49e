package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/repository"
	"pawnledger-backend/internal/utils"
)

type goldRateRepository struct {
	db DBTX
}

func NewGoldRateRepository(db DBTX) repository.GoldRateRepository {
	return &goldRateRepository{db: db}
}

const goldRateColumns = `id, rate_date, rate_22k, rate_24k, set_by, created_at`

func scanGoldRate(row rowScanner) (*domain.GoldRate, error) {
	g := &domain.GoldRate{}
	if err := row.Scan(&g.ID, &g.RateDate, &g.RatePerGram22k, &g.RatePerGram24k, &g.SetBy, &g.CreatedAt); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *goldRateRepository) Create(ctx context.Context, g *domain.GoldRate) error {
	query := `INSERT INTO gold_rates (rate_date, rate_day, rate_22k, rate_24k, set_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	g.CreatedAt = time.Now()
	err := r.db.QueryRowContext(ctx, query, g.RateDate, g.RateDate.Format(utils.DateLayout), g.RatePerGram22k, g.RatePerGram24k, g.SetBy, g.CreatedAt).Scan(&g.ID)
	return mapError(err, domain.ErrRateNotSet)
}

func (r *goldRateRepository) CreateSystemRate(ctx context.Context, g *domain.GoldRate, day time.Time) (bool, error) {
	logger.EnterMethod("goldRateRepository.CreateSystemRate", "day", day.Format(utils.DateLayout))

	query := `INSERT INTO gold_rates (rate_date, rate_day, rate_22k, rate_24k, set_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (rate_day) WHERE set_by = 'system' DO NOTHING
	          RETURNING id`
	g.SetBy = domain.SystemSetter
	g.CreatedAt = time.Now()
	err := r.db.QueryRowContext(ctx, query, g.RateDate, day.Format(utils.DateLayout), g.RatePerGram22k, g.RatePerGram24k, g.SetBy, g.CreatedAt).Scan(&g.ID)
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethod("goldRateRepository.CreateSystemRate", "inserted", false)
		return false, nil
	}
	if err != nil {
		logger.ExitMethodWithError("goldRateRepository.CreateSystemRate", err)
		return false, err
	}

	logger.ExitMethod("goldRateRepository.CreateSystemRate", "inserted", true, "rateID", g.ID)
	return true, nil
}

func (r *goldRateRepository) ExistsForDay(ctx context.Context, from, to time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM gold_rates WHERE rate_date >= $1 AND rate_date < $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&exists)
	return exists, err
}

func (r *goldRateRepository) GetLatest(ctx context.Context, asOf time.Time) (*domain.GoldRate, error) {
	query := `SELECT ` + goldRateColumns + ` FROM gold_rates WHERE rate_date <= $1 ORDER BY rate_date DESC, id DESC LIMIT 1`
	g, err := scanGoldRate(r.db.QueryRowContext(ctx, query, asOf))
	if err != nil {
		return nil, mapError(err, domain.ErrRateNotSet)
	}
	return g, nil
}

func (r *goldRateRepository) List(ctx context.Context, limit int32) ([]domain.GoldRate, error) {
	query := `SELECT ` + goldRateColumns + ` FROM gold_rates ORDER BY rate_date DESC, id DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []domain.GoldRate
	for rows.Next() {
		g, err := scanGoldRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, *g)
	}
	return rates, rows.Err()
}
