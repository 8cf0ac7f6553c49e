package postgres

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var loanColumnNames = []string{
	"id", "loan_number", "customer_id", "scheme_id", "branch_id", "total_weight", "gold_rate_id",
	"gold_rate_at_pledge", "valuation", "loan_amount", "interest_rate", "pre_interest_amount", "loan_date", "due_date",
	"current_balance", "status", "auction_date", "auction_amount", "bidder_name", "bidder_contact", "auction_remarks",
	"overdue_notice_sent_at", "created_by", "created_at", "updated_at",
}

// loanRowValues is an active 45000 loan against 10g of 22k gold.
func loanRowValues(id int64, status string, loanDate time.Time, extra ...driver.Value) []driver.Value {
	values := []driver.Value{
		id, "GL-20260115-ABCDEF12", int64(3), int64(2), int64(1), "10.000", int64(9),
		"6000.00", "60000.00", "45000.00", "1.500", "0.00", loanDate, loanDate.AddDate(0, 6, 0),
		"45000.00", status, nil, nil, nil, nil, nil,
		nil, int64(5), loanDate, loanDate,
	}
	return append(values, extra...)
}
