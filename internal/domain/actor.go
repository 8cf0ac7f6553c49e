package domain

import "fmt"

// Actor is the authenticated caller every core operation runs on behalf of.
type Actor struct {
	UserID   int32
	Role     UserRole
	BranchID *int32
}

func (a Actor) IsAdmin() bool {
	return a.Role == UserRoleAdmin
}

// ScopeBranch resolves the branch filter a read should apply. Staff are pinned to
// their own branch whatever they request; admins get the requested branch or nil for all.
func (a Actor) ScopeBranch(requested *int32) (*int32, error) {
	if a.IsAdmin() {
		return requested, nil
	}
	if a.BranchID == nil {
		return nil, fmt.Errorf("%w: staff account has no branch", ErrForbidden)
	}
	if requested != nil && *requested != *a.BranchID {
		return nil, fmt.Errorf("%w: branch %d is not visible to this account", ErrForbidden, *requested)
	}
	return a.BranchID, nil
}

// WriteBranch resolves the branch a new record belongs to. Admins must name one
// unless they are themselves assigned to a branch.
func (a Actor) WriteBranch(requested *int32) (int32, error) {
	scoped, err := a.ScopeBranch(requested)
	if err != nil {
		return 0, err
	}
	if scoped == nil {
		scoped = a.BranchID
	}
	if scoped == nil {
		return 0, NewValidationError("branch_id", "is required")
	}
	return *scoped, nil
}

// CanSee reports whether a record owned by branchID is visible to the actor.
func (a Actor) CanSee(branchID int32) bool {
	if a.IsAdmin() {
		return true
	}
	return a.BranchID != nil && *a.BranchID == branchID
}

func (a Actor) RequireAdmin() error {
	if !a.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}
