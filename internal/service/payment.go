package service

import (
	"context"
	"fmt"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/repository"
	"pawnledger-backend/internal/utils"
	"pawnledger-backend/internal/valuation"
)

type paymentService struct {
	repos    repository.Repositories
	tx       repository.TxManager
	settings Settings
}

func NewPaymentService(repos repository.Repositories, tx repository.TxManager, settings Settings) PaymentService {
	return &paymentService{repos: repos, tx: tx, settings: settings}
}

// RecordPayment applies a payment to a loan. The loan row is locked for the duration
// so concurrent payments against the same loan serialize.
func (s *paymentService) RecordPayment(ctx context.Context, actor domain.Actor, req *domain.PaymentRequest) (*domain.Payment, *domain.Loan, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	now := s.settings.now()
	var (
		payment *domain.Payment
		loan    *domain.Loan
	)
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		loan, err = repos.Loans.GetForUpdate(ctx, req.LoanID)
		if err != nil {
			return err
		}
		if !actor.CanSee(loan.BranchID) {
			return domain.ErrLoanNotFound
		}
		if !loan.Status.AcceptsPayments() {
			return fmt.Errorf("%w: loan %s is %s", domain.ErrLoanClosed, loan.LoanNumber, loan.Status)
		}

		changed, err := s.apply(loan, req, now)
		if err != nil {
			return err
		}
		if changed {
			if err := repos.Loans.UpdateBalance(ctx, loan); err != nil {
				return fmt.Errorf("failed to update loan balance: %w", err)
			}
		}

		payment = &domain.Payment{
			LoanID:      loan.ID,
			Amount:      req.Amount,
			Type:        req.Type,
			Mode:        req.Mode,
			Remarks:     req.Remarks,
			PaymentDate: now,
			ReceivedBy:  actor.UserID,
		}
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.WithActor(actor.UserID, string(actor.Role)).Info("Payment recorded",
		"loan_number", loan.LoanNumber, "type", payment.Type, "amount", payment.Amount.String(),
		"balance", loan.CurrentBalance.String(), "status", loan.Status)
	return payment, loan, nil
}

// apply mutates loan for the payment and reports whether anything changed.
// The caller has already rejected loans that no longer accept payments.
func (s *paymentService) apply(loan *domain.Loan, req *domain.PaymentRequest, now time.Time) (bool, error) {
	if !req.Amount.IsPositive() {
		return false, fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidAmount)
	}
	before := *loan

	switch req.Type {
	case domain.PaymentTypeFullSettlement:
		if !req.Amount.Equal(loan.CurrentBalance) {
			return false, fmt.Errorf("%w: full settlement must equal the balance %s", domain.ErrInvalidAmount, loan.CurrentBalance.StringFixed(2))
		}
	case domain.PaymentTypePrincipal:
		if req.Amount.GreaterThan(loan.CurrentBalance) {
			return false, fmt.Errorf("%w: amount exceeds the balance %s", domain.ErrInvalidAmount, loan.CurrentBalance.StringFixed(2))
		}
	case domain.PaymentTypeInterest:
		if s.settings.extendsDueDateOnInterest() {
			monthly := valuation.MonthlyInterest(loan.CurrentBalance, loan.InterestRate)
			if monthly.IsPositive() {
				months := req.Amount.Div(monthly).Floor().IntPart()
				loan.DueDate = utils.AddMonths(loan.DueDate, int(months))
			}
		}
	}

	if req.Type.ReducesBalance() {
		loan.CurrentBalance = loan.CurrentBalance.Sub(req.Amount)
		if loan.CurrentBalance.IsZero() {
			loan.Status = domain.LoanStatusClosed
		}
	}

	if s.settings.RevertOverdueOnPayment && loan.Status == domain.LoanStatusOverdue &&
		loan.CurrentBalance.IsPositive() && !now.After(loan.DueDate) {
		loan.Status = domain.LoanStatusActive
		// A later lapse gets its own notice.
		loan.OverdueNoticeSent = nil
	}

	changed := !loan.CurrentBalance.Equal(before.CurrentBalance) || loan.Status != before.Status || !loan.DueDate.Equal(before.DueDate)
	return changed, nil
}

func (s *paymentService) ListPayments(ctx context.Context, actor domain.Actor, loanID int32) ([]domain.Payment, error) {
	loan, err := s.repos.Loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(loan.BranchID) {
		return nil, domain.ErrLoanNotFound
	}
	return s.repos.Payments.ListByLoan(ctx, loanID)
}
