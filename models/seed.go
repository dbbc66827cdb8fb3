package models

import "time"

type SeedOrigin int

const (
	SeedFromCreation SeedOrigin = iota
	SeedFromImport
)

func (o SeedOrigin) source() string {
	if o == SeedFromImport {
		return "import"
	}
	return "customer creation"
}

// SynthesizeSeedTransactions turns the flat amountDue/amountPaid fields into ledger
// entries: one DEBIT for a positive amountDue, one CREDIT for a positive amountPaid.
func SynthesizeSeedTransactions(amountDue, amountPaid float64, billNumber string, origin SeedOrigin, now time.Time, newID func() string) []Transaction {
	date := FormatLedgerDate(now)
	var out []Transaction
	if usableAmount(amountDue) {
		out = append(out, Transaction{
			ID:         newID(),
			Date:       date,
			Amount:     amountDue,
			Type:       Debit,
			Mode:       ModeOther,
			BillNumber: billNumber,
			Notes:      "Initial bill from " + origin.source(),
			Version:    1,
		})
	}
	if usableAmount(amountPaid) {
		out = append(out, Transaction{
			ID:         newID(),
			Date:       date,
			Amount:     amountPaid,
			Type:       Credit,
			Mode:       ModeOther,
			BillNumber: billNumber,
			Notes:      "Initial payment from " + origin.source(),
			Version:    1,
		})
	}
	return out
}
