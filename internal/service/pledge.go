package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/repository"
	"pawnledger-backend/internal/utils"
	"pawnledger-backend/internal/valuation"
)

const defaultLoanListLimit = 200

type pledgeService struct {
	repos    repository.Repositories
	tx       repository.TxManager
	settings Settings
}

func NewPledgeService(repos repository.Repositories, tx repository.TxManager, settings Settings) PledgeService {
	return &pledgeService{repos: repos, tx: tx, settings: settings}
}

// IssuePledge values the items at the current rate, enforces the scheme's loan-to-value
// limit and writes the loan with its items in one transaction.
func (s *pledgeService) IssuePledge(ctx context.Context, actor domain.Actor, req *domain.PledgeRequest) (*domain.Loan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	branchID, err := actor.WriteBranch(req.BranchID)
	if err != nil {
		return nil, err
	}

	now := s.settings.now()
	scheme, customer, rate, err := s.resolvePledgeInputs(ctx, actor, req, now)
	if err != nil {
		return nil, err
	}

	val := valuation.Valuate(valuation.PiecesFrom(req.Items), rate)
	// The limit is checked against the valuation as it will be stored.
	val.TotalValuation = val.TotalValuation.Round(domain.MoneyPlaces)
	maxLoan := valuation.MaxLoan(val.TotalValuation, scheme)
	if req.RequestedAmount.GreaterThan(maxLoan) {
		return nil, fmt.Errorf("%w: requested %s, maximum %s", domain.ErrExceedsLimit,
			req.RequestedAmount.StringFixed(2), maxLoan.StringFixed(2))
	}

	preInterest := valuation.PreInterest(req.RequestedAmount, scheme.InterestRate, scheme.PreInterestMonths)
	if req.PreInterestAmount != nil {
		preInterest = *req.PreInterestAmount
	}

	loan := &domain.Loan{
		CustomerID:        customer.ID,
		SchemeID:          scheme.ID,
		BranchID:          branchID,
		TotalWeight:       val.TotalWeight,
		GoldRateID:        rate.ID,
		GoldRateAtPledge:  rate.RatePerGram22k,
		Valuation:         val.TotalValuation,
		LoanAmount:        req.RequestedAmount,
		InterestRate:      scheme.InterestRate,
		PreInterestAmount: preInterest,
		LoanDate:          now,
		DueDate:           utils.AddMonths(now, int(scheme.TenureMonths)),
		CurrentBalance:    req.RequestedAmount,
		Status:            domain.LoanStatusActive,
		CreatedBy:         actor.UserID,
	}

	err = s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		loan.LoanNumber = utils.NewLoanNumber(now)
		if err := repos.Loans.Create(ctx, loan); err != nil {
			return fmt.Errorf("failed to create loan: %w", err)
		}
		items := make([]domain.Item, 0, len(req.Items))
		for _, in := range req.Items {
			item := domain.Item{
				LoanID:      loan.ID,
				Name:        in.Name,
				Description: in.Description,
				NetWeight:   in.NetWeight,
				Purity:      in.Purity,
				Photos:      in.Photos,
			}
			if err := repos.Loans.CreateItem(ctx, &item); err != nil {
				return fmt.Errorf("failed to create item %q: %w", in.Name, err)
			}
			items = append(items, item)
		}
		loan.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	loan.Customer = customer
	loan.Scheme = scheme
	logger.WithActor(actor.UserID, string(actor.Role)).Info("Pledge issued",
		"loan_number", loan.LoanNumber, "amount", loan.LoanAmount.String(), "valuation", loan.Valuation.String())
	return loan, nil
}

// resolvePledgeInputs reads the scheme, customer and current rate under the lookup timeout.
func (s *pledgeService) resolvePledgeInputs(ctx context.Context, actor domain.Actor, req *domain.PledgeRequest, now time.Time) (*domain.Scheme, *domain.Customer, *domain.GoldRate, error) {
	ctx, cancel := s.settings.lookupContext(ctx)
	defer cancel()

	scheme, err := s.repos.Schemes.GetByID(ctx, req.SchemeID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !scheme.IsActive {
		return nil, nil, nil, domain.NewValidationError("scheme_id", "scheme is not active")
	}

	customer, err := s.repos.Customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, nil, nil, err
	}
	if customer.BranchID != nil && !actor.CanSee(*customer.BranchID) {
		return nil, nil, nil, domain.ErrCustomerNotFound
	}

	rate, err := s.repos.GoldRates.GetLatest(ctx, now)
	if err != nil {
		return nil, nil, nil, err
	}
	return scheme, customer, rate, nil
}

func (s *pledgeService) GetLoan(ctx context.Context, actor domain.Actor, idOrNumber string) (*domain.Loan, error) {
	idOrNumber = strings.TrimSpace(idOrNumber)
	if idOrNumber == "" {
		return nil, domain.NewValidationError("loan_id", "is required")
	}

	var (
		loan *domain.Loan
		err  error
	)
	if id, convErr := strconv.ParseInt(idOrNumber, 10, 32); convErr == nil {
		loan, err = s.repos.Loans.GetByID(ctx, int32(id))
	} else {
		loan, err = s.repos.Loans.GetByNumber(ctx, idOrNumber)
	}
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(loan.BranchID) {
		return nil, domain.ErrLoanNotFound
	}

	if loan.Items, err = s.repos.Loans.ListItems(ctx, loan.ID); err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	if loan.Customer, err = s.repos.Customers.GetByID(ctx, loan.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if loan.Scheme, err = s.repos.Schemes.GetByID(ctx, loan.SchemeID); err != nil {
		return nil, fmt.Errorf("failed to load scheme: %w", err)
	}
	return loan, nil
}

func (s *pledgeService) ListLoans(ctx context.Context, actor domain.Actor, filter domain.LoanFilter) ([]domain.Loan, error) {
	branchID, err := actor.ScopeBranch(filter.BranchID)
	if err != nil {
		return nil, err
	}
	filter.BranchID = branchID
	for _, st := range filter.Statuses {
		if !st.Valid() {
			return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", st))
		}
	}
	if filter.Limit <= 0 || filter.Limit > defaultLoanListLimit {
		filter.Limit = defaultLoanListLimit
	}
	return s.repos.Loans.List(ctx, filter)
}
