package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/repository"
	"pawnledger-backend/internal/utils"
)

var (
	ratio22k = decimal.NewFromInt(22)
	ratio24k = decimal.NewFromInt(24)
)

// PriceFeed supplies the market 24k per-gram price.
type PriceFeed interface {
	Price24k(ctx context.Context) (decimal.Decimal, error)
}

type rateService struct {
	rates    repository.GoldRateRepository
	feed     PriceFeed
	settings Settings
	jitter   func() float64 // uniform in [-1, 1]
}

// NewRateService builds the Rate Provider. feed may be nil, in which case the daily
// rate is synthesized from the previous one.
func NewRateService(rates repository.GoldRateRepository, feed PriceFeed, settings Settings) RateService {
	return &rateService{
		rates:    rates,
		feed:     feed,
		settings: settings,
		jitter:   func() float64 { return rand.Float64()*2 - 1 },
	}
}

// CurrentRate returns the most recent rate dated at or before asOf. A zero asOf means now.
// domain.ErrRateNotSet is returned when no rate has ever been recorded.
func (s *rateService) CurrentRate(ctx context.Context, asOf time.Time) (*domain.GoldRate, error) {
	if asOf.IsZero() {
		asOf = s.settings.now()
	}
	ctx, cancel := s.settings.lookupContext(ctx)
	defer cancel()
	return s.rates.GetLatest(ctx, asOf)
}

func (s *rateService) SetRate(ctx context.Context, actor domain.Actor, rate22k, rate24k decimal.Decimal, date time.Time) (*domain.GoldRate, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if !rate22k.IsPositive() {
		return nil, domain.NewValidationError("rate_per_gram_22k", "must be greater than zero")
	}
	if rate24k.LessThan(rate22k) {
		return nil, domain.NewValidationError("rate_per_gram_24k", "must not be below the 22k rate")
	}
	if err := domain.CheckMoney("rate_per_gram_22k", rate22k); err != nil {
		return nil, err
	}
	if err := domain.CheckMoney("rate_per_gram_24k", rate24k); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = s.settings.now()
	}

	rate := &domain.GoldRate{
		RateDate:       date,
		RatePerGram22k: rate22k,
		RatePerGram24k: rate24k,
		SetBy:          strconv.Itoa(int(actor.UserID)),
	}
	if err := s.rates.Create(ctx, rate); err != nil {
		return nil, err
	}
	logger.WithActor(actor.UserID, string(actor.Role)).Info("Gold rate set", "rate_22k", rate22k.String(), "rate_24k", rate24k.String())
	return rate, nil
}

func (s *rateService) ListRates(ctx context.Context, limit int32) ([]domain.GoldRate, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	return s.rates.List(ctx, limit)
}

func (s *rateService) EnsureTodayRate(ctx context.Context) (*domain.GoldRate, bool, error) {
	now := s.settings.now()
	from, to := utils.DayBounds(now)

	exists, err := s.rates.ExistsForDay(ctx, from, to)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check today's rate: %w", err)
	}
	if exists {
		logger.Debug("Gold rate already set for today", "day", from.Format(utils.DateLayout))
		return nil, false, nil
	}

	rate22k, rate24k, source, err := s.nextRate(ctx, now)
	if err != nil {
		return nil, false, err
	}

	rate := &domain.GoldRate{RateDate: now, RatePerGram22k: rate22k, RatePerGram24k: rate24k}
	created, err := s.rates.CreateSystemRate(ctx, rate, from)
	if err != nil {
		return nil, false, fmt.Errorf("failed to store system rate: %w", err)
	}
	if !created {
		return nil, false, nil
	}

	logger.Info("Daily gold rate created", "source", source, "rate_22k", rate22k.String(), "rate_24k", rate24k.String())
	return rate, true, nil
}

// nextRate prefers the market feed and falls back to a bounded walk from the previous 22k rate.
func (s *rateService) nextRate(ctx context.Context, now time.Time) (decimal.Decimal, decimal.Decimal, string, error) {
	if s.feed != nil {
		price24k, err := s.feed.Price24k(ctx)
		if err == nil {
			rate24k := price24k.Round(0)
			return rate24k.Mul(ratio22k).Div(ratio24k).Round(0), rate24k, "market_feed", nil
		}
		logger.Warn("Market feed unavailable, synthesizing rate", "error", err)
	}

	base := s.settings.BaseRate22k
	prev, err := s.rates.GetLatest(ctx, now)
	switch {
	case err == nil:
		base = prev.RatePerGram22k
	case errors.Is(err, domain.ErrRateNotSet):
	default:
		return decimal.Zero, decimal.Zero, "", fmt.Errorf("failed to read previous rate: %w", err)
	}

	delta := s.settings.RateVariance.Mul(decimal.NewFromFloat(s.jitter()))
	rate22k := base.Add(delta).Round(0)
	rate24k := rate22k.Mul(ratio24k).Div(ratio22k).Round(0)
	return rate22k, rate24k, "simulated", nil
}
