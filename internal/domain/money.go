package domain

import "github.com/shopspring/decimal"

// Decimal places of the ledger's NUMERIC columns. Values with finer digits would be
// rounded silently on write.
const (
	MoneyPlaces  int32 = 2
	WeightPlaces int32 = 3
)

// exceedsPlaces reports whether d has significant digits beyond places.
// Trailing zeros do not count: 10.500 fits in two places.
func exceedsPlaces(d decimal.Decimal, places int32) bool {
	return !d.Equal(d.Round(places))
}

// CheckMoney rejects amounts that cannot be stored to the paisa.
func CheckMoney(field string, d decimal.Decimal) error {
	if exceedsPlaces(d, MoneyPlaces) {
		return NewValidationError(field, "must have at most 2 decimal places")
	}
	return nil
}

func checkWeight(field string, d decimal.Decimal) error {
	if exceedsPlaces(d, WeightPlaces) {
		return NewValidationError(field, "must have at most 3 decimal places")
	}
	return nil
}
