// Package notify delivers customer notices for overdue and auctioned pledges.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
)

var ErrNoRecipient = errors.New("customer has no email address")

type Message struct {
	ToEmail   string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them. It is used
// when no mail provider is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	logger.InfoContext(ctx, "Notice (log only)", "to", msg.ToEmail, "subject", msg.Subject)
	return nil
}

// OverdueMessage renders the one-time overdue notice for a loan.
func OverdueMessage(n domain.OverdueNotice) (Message, error) {
	if n.CustomerEmail == nil || strings.TrimSpace(*n.CustomerEmail) == "" {
		return Message{}, ErrNoRecipient
	}
	loan := n.Loan
	subject := fmt.Sprintf("Loan %s is overdue", loan.LoanNumber)
	plain := fmt.Sprintf(
		"Dear %s, your gold loan %s was due on %s. Outstanding balance: %s. Please visit the branch to renew or redeem your pledge.",
		n.CustomerName, loan.LoanNumber, loan.DueDate.Format("02 Jan 2006"), loan.CurrentBalance.StringFixed(2),
	)
	html := fmt.Sprintf(`
		<html>
			<body>
				<h2>Loan overdue</h2>
				<p>Dear %s,</p>
				<p>Your gold loan <strong>%s</strong> was due on <strong>%s</strong>.</p>
				<p>Outstanding balance: <strong>%s</strong></p>
				<p>Please visit the branch to renew or redeem your pledge.</p>
			</body>
		</html>
	`, n.CustomerName, loan.LoanNumber, loan.DueDate.Format("02 Jan 2006"), loan.CurrentBalance.StringFixed(2))

	return Message{ToEmail: *n.CustomerEmail, ToName: n.CustomerName, Subject: subject, PlainText: plain, HTML: html}, nil
}

// AuctionMessage tells the customer their pledge was sold.
func AuctionMessage(customer *domain.Customer, loan *domain.Loan) (Message, error) {
	if customer == nil || customer.Email == nil || strings.TrimSpace(*customer.Email) == "" {
		return Message{}, ErrNoRecipient
	}
	if loan.Auction == nil {
		return Message{}, fmt.Errorf("loan %s has no auction details", loan.LoanNumber)
	}
	subject := fmt.Sprintf("Pledge %s auctioned", loan.LoanNumber)
	plain := fmt.Sprintf(
		"Dear %s, the gold pledged under loan %s was auctioned on %s for %s.",
		customer.Name, loan.LoanNumber, loan.Auction.AuctionDate.Format("02 Jan 2006"), loan.Auction.AuctionAmount.StringFixed(2),
	)
	return Message{ToEmail: *customer.Email, ToName: customer.Name, Subject: subject, PlainText: plain}, nil
}
