package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"pawnledger-backend/internal/config"
)

// Settings carries the policies and runtime knobs shared by the ledger services.
type Settings struct {
	Location               *time.Location
	QueryTimeout           time.Duration
	InterestPolicy         string
	RevertOverdueOnPayment bool
	DemandHorizonDays      int
	RedemptionWindowDays   int
	BaseRate22k            decimal.Decimal
	RateVariance           decimal.Decimal
	Now                    func() time.Time
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Location:               cfg.Location(),
		QueryTimeout:           cfg.QueryTimeout(),
		InterestPolicy:         cfg.Ledger.InterestPolicy,
		RevertOverdueOnPayment: cfg.Ledger.RevertOverdueOnPayment,
		DemandHorizonDays:      cfg.Ledger.DemandHorizonDays,
		RedemptionWindowDays:   cfg.Ledger.RedemptionWindowDays,
		BaseRate22k:            cfg.GoldRate.Base(),
		RateVariance:           cfg.GoldRate.Spread(),
		Now:                    time.Now,
	}
}

// now returns the current time in the business location.
func (s Settings) now() time.Time {
	clock := s.Now
	if clock == nil {
		clock = time.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return clock().In(loc)
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// lookupContext bounds rate and scheme reads so a stalled store rejects the operation.
func (s Settings) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.QueryTimeout)
}

func (s Settings) extendsDueDateOnInterest() bool {
	return s.InterestPolicy == config.InterestPolicyExtendDueDate
}
