package service

import (
	"time"

	"github.com/shopspring/decimal"

	"pawnledger-backend/internal/config"
	"pawnledger-backend/internal/domain"
)

var fixedNow = time.Date(2026, 10, 15, 11, 30, 0, 0, time.UTC)

func testSettings() Settings {
	return Settings{
		Location:             time.UTC,
		QueryTimeout:         time.Second,
		InterestPolicy:       config.InterestPolicyRevenueOnly,
		DemandHorizonDays:    30,
		RedemptionWindowDays: 7,
		BaseRate22k:          decimal.NewFromInt(6750),
		RateVariance:         decimal.NewFromInt(50),
		Now:                  func() time.Time { return fixedNow },
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func int32Ptr(v int32) *int32 { return &v }

func strPtr(s string) *string { return &s }

var (
	adminActor = domain.Actor{UserID: 1, Role: domain.UserRoleAdmin}
	staffActor = domain.Actor{UserID: 2, Role: domain.UserRoleStaff, BranchID: int32Ptr(10)}
	otherStaff = domain.Actor{UserID: 3, Role: domain.UserRoleStaff, BranchID: int32Ptr(20)}
)
