package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemSetter marks rates produced by the daily rate job rather than a staff member.
const SystemSetter = "system"

type GoldRate struct {
	ID             int32           `json:"id"`
	RateDate       time.Time       `json:"rate_date"`
	RatePerGram22k decimal.Decimal `json:"rate_per_gram_22k"`
	RatePerGram24k decimal.Decimal `json:"rate_per_gram_24k"`
	SetBy          string          `json:"set_by"` // staff user id or SystemSetter
	CreatedAt      time.Time       `json:"created_at"`
}

// RateFor returns the per-gram rate for the given purity.
func (r *GoldRate) RateFor(p Purity) decimal.Decimal {
	if p == Purity24k {
		return r.RatePerGram24k
	}
	return r.RatePerGram22k
}

func (r *GoldRate) IsSystem() bool {
	return r.SetBy == SystemSetter
}
