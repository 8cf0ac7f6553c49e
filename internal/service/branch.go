package service

import (
	"context"
	"fmt"
	"strings"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/repository"
)

type branchService struct {
	branches repository.BranchRepository
}

func NewBranchService(branches repository.BranchRepository) BranchService {
	return &branchService{branches: branches}
}

func (s *branchService) CreateBranch(ctx context.Context, actor domain.Actor, b *domain.Branch) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	b.IsActive = true
	return s.branches.Create(ctx, b)
}

func (s *branchService) GetBranch(ctx context.Context, actor domain.Actor, id int32) (*domain.Branch, error) {
	if !actor.CanSee(id) {
		return nil, domain.ErrBranchNotFound
	}
	return s.branches.GetByID(ctx, id)
}

// ListBranches returns every branch to admins and only their own to staff.
func (s *branchService) ListBranches(ctx context.Context, actor domain.Actor) ([]domain.Branch, error) {
	if actor.IsAdmin() {
		return s.branches.List(ctx)
	}
	if actor.BranchID == nil {
		return []domain.Branch{}, nil
	}
	b, err := s.branches.GetByID(ctx, *actor.BranchID)
	if err != nil {
		return nil, err
	}
	return []domain.Branch{*b}, nil
}

// DeleteBranch refuses while loans, staff, customers or vouchers still point at the branch.
func (s *branchService) DeleteBranch(ctx context.Context, actor domain.Actor, id int32) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	referenced, err := s.branches.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: branch %d", domain.ErrBranchInUse, id)
	}
	return s.branches.Delete(ctx, id)
}
