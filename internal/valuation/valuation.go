// Package valuation prices pledged gold against a rate snapshot. Everything here
// is pure: no I/O, no clock, no rounding beyond what decimal arithmetic implies.
package valuation

import (
	"github.com/shopspring/decimal"

	"pawnledger-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Piece is the part of an item that valuation depends on.
type Piece struct {
	Weight decimal.Decimal
	Purity domain.Purity
}

type Result struct {
	TotalWeight    decimal.Decimal
	TotalValuation decimal.Decimal
}

// Valuate sums weight × purity rate over every piece.
func Valuate(pieces []Piece, rate *domain.GoldRate) Result {
	res := Result{TotalWeight: decimal.Zero, TotalValuation: decimal.Zero}
	for _, p := range pieces {
		res.TotalWeight = res.TotalWeight.Add(p.Weight)
		res.TotalValuation = res.TotalValuation.Add(p.Weight.Mul(rate.RateFor(p.Purity)))
	}
	return res
}

// MaxLoan is valuation × scheme.MaxLoanPercentage / 100.
func MaxLoan(valuation decimal.Decimal, scheme *domain.Scheme) decimal.Decimal {
	return valuation.Mul(scheme.MaxLoanPercentage).Div(hundred)
}

// PreInterest is the interest collected up front for a scheme's pre-interest months,
// rounded to paise.
func PreInterest(amount decimal.Decimal, monthlyRate decimal.Decimal, months int32) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	return amount.Mul(monthlyRate).Div(hundred).Mul(decimal.NewFromInt32(months)).Round(2)
}

// MonthlyInterest is one month of interest on the balance at the snapshot rate.
func MonthlyInterest(balance decimal.Decimal, monthlyRate decimal.Decimal) decimal.Decimal {
	return balance.Mul(monthlyRate).Div(hundred)
}

// PiecesFrom converts submitted pledge items.
func PiecesFrom(items []domain.PledgeItem) []Piece {
	pieces := make([]Piece, 0, len(items))
	for _, it := range items {
		pieces = append(pieces, Piece{Weight: it.NetWeight, Purity: it.Purity})
	}
	return pieces
}
