package service

import (
	"context"
	"strings"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/repository"
	"pawnledger-backend/internal/utils"
)

const customerSearchLimit = 50

type customerService struct {
	customers repository.CustomerRepository
	loans     repository.LoanRepository
}

func NewCustomerService(customers repository.CustomerRepository, loans repository.LoanRepository) CustomerService {
	return &customerService{customers: customers, loans: loans}
}

// CreateCustomer registers a KYC record. Phone, email, Aadhar and PAN uniqueness is
// enforced by the store and surfaces as domain.ErrDuplicate.
func (s *customerService) CreateCustomer(ctx context.Context, actor domain.Actor, c *domain.Customer) error {
	normalizeCustomer(c)
	if err := c.Validate(); err != nil {
		return err
	}
	branchID, err := actor.WriteBranch(c.BranchID)
	if err != nil {
		return err
	}
	c.BranchID = &branchID
	if c.CustomerCode == "" {
		c.CustomerCode = utils.NewCustomerCode()
	}
	c.CreatedBy = actor.UserID
	return s.customers.Create(ctx, c)
}

// UpdateCustomer rewrites the mutable KYC fields. Code, branch and creator are kept.
func (s *customerService) UpdateCustomer(ctx context.Context, actor domain.Actor, c *domain.Customer) error {
	existing, err := s.GetCustomer(ctx, actor, c.ID)
	if err != nil {
		return err
	}
	normalizeCustomer(c)
	if err := c.Validate(); err != nil {
		return err
	}
	c.CustomerCode = existing.CustomerCode
	c.BranchID = existing.BranchID
	c.CreatedBy = existing.CreatedBy
	c.CreatedAt = existing.CreatedAt
	return s.customers.Update(ctx, c)
}

func (s *customerService) GetCustomer(ctx context.Context, actor domain.Actor, id int32) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.BranchID != nil && !actor.CanSee(*c.BranchID) {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (s *customerService) SearchCustomers(ctx context.Context, actor domain.Actor, keyword string, branchID *int32) ([]domain.Customer, error) {
	scoped, err := actor.ScopeBranch(branchID)
	if err != nil {
		return nil, err
	}
	return s.customers.Search(ctx, strings.TrimSpace(keyword), scoped, customerSearchLimit)
}

func (s *customerService) CustomerLoans(ctx context.Context, actor domain.Actor, customerID int32) ([]domain.Loan, error) {
	if _, err := s.GetCustomer(ctx, actor, customerID); err != nil {
		return nil, err
	}
	scoped, err := actor.ScopeBranch(nil)
	if err != nil {
		return nil, err
	}
	return s.loans.List(ctx, domain.LoanFilter{BranchID: scoped, CustomerID: &customerID, Limit: defaultLoanListLimit})
}

// normalizeCustomer trims input and turns blank optional identifiers into nil so they
// do not collide on the unique indexes.
func normalizeCustomer(c *domain.Customer) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.Email = blankToNil(c.Email)
	c.AadharNumber = blankToNil(c.AadharNumber)
	if c.PANNumber = blankToNil(c.PANNumber); c.PANNumber != nil {
		upper := strings.ToUpper(*c.PANNumber)
		c.PANNumber = &upper
	}
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
