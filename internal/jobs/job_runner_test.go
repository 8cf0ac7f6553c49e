package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pawnledger-backend/internal/config"
	"pawnledger-backend/internal/domain"
)

type MockRateService struct{ mock.Mock }

func (m *MockRateService) CurrentRate(ctx context.Context, asOf time.Time) (*domain.GoldRate, error) {
	args := m.Called(ctx, asOf)
	r, _ := args.Get(0).(*domain.GoldRate)
	return r, args.Error(1)
}
func (m *MockRateService) SetRate(ctx context.Context, actor domain.Actor, rate22k, rate24k decimal.Decimal, date time.Time) (*domain.GoldRate, error) {
	args := m.Called(ctx, actor, rate22k, rate24k, date)
	r, _ := args.Get(0).(*domain.GoldRate)
	return r, args.Error(1)
}
func (m *MockRateService) ListRates(ctx context.Context, limit int32) ([]domain.GoldRate, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]domain.GoldRate)
	return list, args.Error(1)
}
func (m *MockRateService) EnsureTodayRate(ctx context.Context) (*domain.GoldRate, bool, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(*domain.GoldRate)
	return r, args.Bool(1), args.Error(2)
}

type MockLifecycleService struct{ mock.Mock }

func (m *MockLifecycleService) MarkOverdueLoans(ctx context.Context) ([]int32, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]int32)
	return ids, args.Error(1)
}
func (m *MockLifecycleService) SendOverdueNotices(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockLifecycleService) ListAuctionEligible(ctx context.Context, actor domain.Actor, branchID *int32) ([]domain.Loan, error) {
	args := m.Called(ctx, actor, branchID)
	list, _ := args.Get(0).([]domain.Loan)
	return list, args.Error(1)
}
func (m *MockLifecycleService) AuctionLoan(ctx context.Context, actor domain.Actor, loanID int32, req *domain.AuctionRequest) (*domain.Loan, error) {
	args := m.Called(ctx, actor, loanID, req)
	l, _ := args.Get(0).(*domain.Loan)
	return l, args.Error(1)
}

func newRunner() (*JobRunner, *MockRateService, *MockLifecycleService) {
	rates := new(MockRateService)
	lifecycle := new(MockLifecycleService)
	return NewJobRunner(&Services{Rates: rates, Lifecycle: lifecycle}, &config.Config{}), rates, lifecycle
}

func TestJobRunner_EnsureTodayRate(t *testing.T) {
	jr, rates, _ := newRunner()
	rate := &domain.GoldRate{RatePerGram22k: decimal.NewFromInt(6775), RatePerGram24k: decimal.NewFromInt(7391)}

	rates.On("EnsureTodayRate", mock.Anything).Return(rate, true, nil).Once()
	assert.NoError(t, jr.EnsureTodayRate())

	rates.On("EnsureTodayRate", mock.Anything).Return(nil, false, nil).Once()
	assert.NoError(t, jr.EnsureTodayRate(), "already set is not a failure")

	rates.On("EnsureTodayRate", mock.Anything).Return(nil, false, errors.New("db down")).Once()
	assert.Error(t, jr.EnsureTodayRate())
	rates.AssertExpectations(t)
}

func TestJobRunner_RecoversPanic(t *testing.T) {
	jr, _, lifecycle := newRunner()
	lifecycle.On("MarkOverdueLoans", mock.Anything).Run(func(mock.Arguments) { panic("nil map") }).Once()

	var err error
	assert.NotPanics(t, func() { err = jr.MarkOverdueLoans() })
	assert.ErrorContains(t, err, "panicked")
}

func TestJobRunner_JobContextHasDeadline(t *testing.T) {
	jr, _, lifecycle := newRunner()
	lifecycle.On("SendOverdueNotices", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(2, nil).Once()

	assert.NoError(t, jr.SendOverdueNotices())
	lifecycle.AssertExpectations(t)
}

func TestJobRunner_RunByName(t *testing.T) {
	jr, rates, lifecycle := newRunner()
	rates.On("EnsureTodayRate", mock.Anything).Return(nil, false, nil)
	lifecycle.On("MarkOverdueLoans", mock.Anything).Return([]int32{1, 2}, nil)
	lifecycle.On("SendOverdueNotices", mock.Anything).Return(0, errors.New("smtp down"))

	assert.NoError(t, jr.RunByName(JobMarkOverdueLoans))
	assert.Error(t, jr.RunByName(JobSendOverdueNotices))
	assert.ErrorIs(t, jr.RunByName("rebuild-everything"), ErrUnknownJob)

	// One failing job does not stop the others.
	err := jr.RunByName(JobAllDaily)
	assert.ErrorContains(t, err, "smtp down")
	rates.AssertCalled(t, "EnsureTodayRate", mock.Anything)
	lifecycle.AssertNumberOfCalls(t, "MarkOverdueLoans", 2)
}
