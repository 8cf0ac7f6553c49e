package service

import (
	"context"
	"strings"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/repository"
	"pawnledger-backend/internal/utils"
)

type voucherService struct {
	vouchers repository.VoucherRepository
	settings Settings
}

func NewVoucherService(vouchers repository.VoucherRepository, settings Settings) VoucherService {
	return &voucherService{vouchers: vouchers, settings: settings}
}

func (s *voucherService) AddVoucher(ctx context.Context, actor domain.Actor, v *domain.Voucher) error {
	v.Category = strings.TrimSpace(v.Category)
	if err := v.Validate(); err != nil {
		return err
	}
	branchID, err := actor.WriteBranch(v.BranchID)
	if err != nil {
		return err
	}
	v.BranchID = &branchID
	if v.Date.IsZero() {
		v.Date = s.settings.now()
	}
	v.CreatedBy = actor.UserID
	return s.vouchers.Create(ctx, v)
}

// ListVouchers lists one day's vouchers when date is set, otherwise all visible vouchers.
func (s *voucherService) ListVouchers(ctx context.Context, actor domain.Actor, date *time.Time, branchID *int32) ([]domain.Voucher, error) {
	scoped, err := actor.ScopeBranch(branchID)
	if err != nil {
		return nil, err
	}
	filter := domain.VoucherFilter{BranchID: scoped}
	if date != nil {
		filter.From, filter.To = utils.DayBounds(date.In(s.settings.location()))
	}
	return s.vouchers.List(ctx, filter)
}

func (s *voucherService) DeleteVoucher(ctx context.Context, actor domain.Actor, id int32) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	return s.vouchers.Delete(ctx, id)
}
