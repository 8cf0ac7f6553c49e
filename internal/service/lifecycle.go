package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/notify"
	"pawnledger-backend/internal/repository"
)

const overdueNoticeBatch = 100

type lifecycleService struct {
	repos    repository.Repositories
	tx       repository.TxManager
	sender   notify.Sender
	settings Settings
}

func NewLifecycleService(repos repository.Repositories, tx repository.TxManager, sender notify.Sender, settings Settings) LifecycleService {
	if sender == nil {
		sender = notify.LogSender{}
	}
	return &lifecycleService{repos: repos, tx: tx, sender: sender, settings: settings}
}

// MarkOverdueLoans flips active loans past their due date. Running it again in the
// same period finds nothing left to flip.
func (s *lifecycleService) MarkOverdueLoans(ctx context.Context) ([]int32, error) {
	ids, err := s.repos.Loans.MarkOverdue(ctx, s.settings.now())
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue loans: %w", err)
	}
	if len(ids) > 0 {
		logger.Info("Loans marked overdue", "count", len(ids))
	}
	return ids, nil
}

// SendOverdueNotices sends each overdue loan its notice once. Loans whose customer has
// no email are stamped without sending; failed sends stay unstamped for the next run.
func (s *lifecycleService) SendOverdueNotices(ctx context.Context) (int, error) {
	notices, err := s.repos.Loans.ListOverdueUnnotified(ctx, overdueNoticeBatch)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue loans: %w", err)
	}

	sent := 0
	var failures []error
	for _, n := range notices {
		msg, err := notify.OverdueMessage(n)
		switch {
		case errors.Is(err, notify.ErrNoRecipient):
			logger.Info("Overdue loan has no customer email, skipping notice", "loan_number", n.Loan.LoanNumber)
		case err != nil:
			failures = append(failures, err)
			continue
		default:
			if err := s.sender.Send(ctx, msg); err != nil {
				logger.Warn("Failed to send overdue notice", "loan_number", n.Loan.LoanNumber, "error", err)
				failures = append(failures, fmt.Errorf("loan %s: %w", n.Loan.LoanNumber, err))
				continue
			}
			sent++
		}

		if err := s.repos.Loans.MarkNoticeSent(ctx, n.Loan.ID, s.settings.now()); err != nil {
			failures = append(failures, fmt.Errorf("loan %s: failed to stamp notice: %w", n.Loan.LoanNumber, err))
		}
	}

	return sent, errors.Join(failures...)
}

func (s *lifecycleService) ListAuctionEligible(ctx context.Context, actor domain.Actor, branchID *int32) ([]domain.Loan, error) {
	scoped, err := actor.ScopeBranch(branchID)
	if err != nil {
		return nil, err
	}
	return s.repos.Loans.List(ctx, domain.LoanFilter{
		BranchID: scoped,
		Statuses: []domain.LoanStatus{domain.LoanStatusOverdue},
		Limit:    defaultLoanListLimit,
	})
}

// AuctionLoan closes an overdue loan by sale. The sale proceeds are booked as an
// income voucher in the same transaction.
func (s *lifecycleService) AuctionLoan(ctx context.Context, actor domain.Actor, loanID int32, req *domain.AuctionRequest) (*domain.Loan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	details := &domain.AuctionDetails{
		AuctionDate:   s.settings.now(),
		AuctionAmount: req.AuctionAmount,
		BidderName:    req.BidderName,
		BidderContact: req.BidderContact,
		Remarks:       req.Remarks,
	}
	if req.AuctionDate != nil {
		details.AuctionDate = *req.AuctionDate
	}

	var loan *domain.Loan
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		loan, err = repos.Loans.GetForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if !actor.CanSee(loan.BranchID) {
			return domain.ErrLoanNotFound
		}
		if loan.Status != domain.LoanStatusOverdue {
			return fmt.Errorf("%w: loan %s is %s", domain.ErrNotAuctionable, loan.LoanNumber, loan.Status)
		}

		if err := repos.Loans.MarkAuctioned(ctx, loan.ID, details); err != nil {
			return err
		}

		branchID := loan.BranchID
		voucher := &domain.Voucher{
			Type:        domain.VoucherTypeIncome,
			Category:    domain.VoucherCategoryAuctionSale,
			Amount:      details.AuctionAmount,
			Description: fmt.Sprintf("Auction of loan %s to %s", loan.LoanNumber, details.BidderName),
			Date:        details.AuctionDate,
			CreatedBy:   actor.UserID,
			BranchID:    &branchID,
		}
		if err := repos.Vouchers.Create(ctx, voucher); err != nil {
			return fmt.Errorf("failed to record auction income: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	loan.Status = domain.LoanStatusAuctioned
	loan.CurrentBalance = decimal.Zero
	loan.Auction = details
	logger.WithActor(actor.UserID, string(actor.Role)).Info("Loan auctioned",
		"loan_number", loan.LoanNumber, "amount", details.AuctionAmount.String())

	s.notifyAuction(ctx, loan)
	return loan, nil
}

// notifyAuction is best effort; the auction is already committed.
func (s *lifecycleService) notifyAuction(ctx context.Context, loan *domain.Loan) {
	customer, err := s.repos.Customers.GetByID(ctx, loan.CustomerID)
	if err != nil {
		logger.Warn("Failed to load customer for auction notice", "loan_number", loan.LoanNumber, "error", err)
		return
	}
	msg, err := notify.AuctionMessage(customer, loan)
	if err != nil {
		logger.Debug("Auction notice skipped", "loan_number", loan.LoanNumber, "reason", err)
		return
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		logger.Warn("Failed to send auction notice", "loan_number", loan.LoanNumber, "error", err)
	}
}
