package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// Summary is derived from a ledger and never stored.
type Summary struct {
	TotalDue  float64 `json:"totalDue"`
	TotalPaid float64 `json:"totalPaid"`
	Balance   float64 `json:"balance"`
}

// CalculateSummary folds a ledger into its totals. Entries with an unknown type or
// a non-positive amount are skipped so a single corrupt record cannot poison the sums.
func CalculateSummary(transactions []Transaction) Summary {
	due, paid := decimal.Zero, decimal.Zero
	for _, t := range transactions {
		if !usableAmount(t.Amount) {
			continue
		}
		switch t.Type {
		case Debit:
			due = due.Add(decimal.NewFromFloat(t.Amount))
		case Credit:
			paid = paid.Add(decimal.NewFromFloat(t.Amount))
		}
	}

	totalDue := due.InexactFloat64()
	totalPaid := paid.InexactFloat64()
	return Summary{
		TotalDue:  totalDue,
		TotalPaid: totalPaid,
		Balance:   totalDue - totalPaid,
	}
}

// LabourTotalPaid sums every payment made to a labourer.
func LabourTotalPaid(payments []LabourPayment) float64 {
	total := decimal.Zero
	for _, p := range payments {
		if usableAmount(p.Amount) {
			total = total.Add(decimal.NewFromFloat(p.Amount))
		}
	}
	return total.InexactFloat64()
}

func usableAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
