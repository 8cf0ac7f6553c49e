package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// randomSuffix returns n upper-case hex characters from a random UUID.
func randomSuffix(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(s[:n])
}

// NewLoanNumber builds a human-readable loan identifier such as GL-20260115-4F2A9C1B.
// The random part keeps concurrent issuance on the same day from colliding.
func NewLoanNumber(now time.Time) string {
	return fmt.Sprintf("GL-%s-%s", now.Format("20060102"), randomSuffix(8))
}

// NewCustomerCode builds a customer identifier such as CUST-7D3E91A0.
func NewCustomerCode() string {
	return "CUST-" + randomSuffix(8)
}
