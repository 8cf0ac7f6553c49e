package service

import (
	"context"
	"strings"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/repository"
)

const minPasswordLength = 8

type staffService struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
}

func NewStaffService(userRepo repository.UserRepository, branchRepo repository.BranchRepository) StaffService {
	return &staffService{userRepo: userRepo, branchRepo: branchRepo}
}

func (s *staffService) CreateStaff(ctx context.Context, actor domain.Actor, in domain.StaffInput) (*domain.User, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password", "must be at least 8 characters")
	}
	if in.FullName == "" {
		return nil, domain.NewValidationError("full_name", "is required")
	}
	if in.BranchID == nil {
		return nil, domain.NewValidationError("branch_id", "is required for staff")
	}
	if _, err := s.branchRepo.GetByID(ctx, *in.BranchID); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:      in.Username,
		PasswordHash:  hash,
		Role:          domain.UserRoleStaff,
		FullName:      in.FullName,
		Email:         blankToNil(in.Email),
		PhoneNumber:   in.PhoneNumber,
		Address:       in.Address,
		IDProofNumber: in.IDProofNumber,
		BranchID:      in.BranchID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateStaff applies the non-empty fields of in. The role never changes here.
func (s *staffService) UpdateStaff(ctx context.Context, actor domain.Actor, id int32, in domain.StaffInput) (*domain.User, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u := strings.TrimSpace(in.Username); u != "" {
		user.Username = u
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return nil, domain.NewValidationError("password", "must be at least 8 characters")
		}
		if user.PasswordHash, err = HashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Email != nil {
		user.Email = blankToNil(in.Email)
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.Address != "" {
		user.Address = in.Address
	}
	if in.IDProofNumber != "" {
		user.IDProofNumber = in.IDProofNumber
	}
	if in.BranchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *in.BranchID); err != nil {
			return nil, err
		}
		user.BranchID = in.BranchID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *staffService) ListStaff(ctx context.Context, actor domain.Actor, branchID *int32) ([]domain.User, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, domain.UserRoleStaff, branchID)
}

// DeleteStaff removes a staff account. Admin accounts are never deleted here.
func (s *staffService) DeleteStaff(ctx context.Context, actor domain.Actor, id int32) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if id == actor.UserID {
		return domain.NewValidationError("id", "cannot delete your own account")
	}
	return s.userRepo.Delete(ctx, id)
}
