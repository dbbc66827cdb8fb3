package models

// StatementLine is a transaction as printed, with the balance after it.
type StatementLine struct {
	Date           string
	Description    string
	Mode           string
	Debit          float64
	Credit         float64
	RunningBalance float64
}

type StatementPDFData struct {
	Company     *BusinessProfile
	Customer    *Customer
	Contacts    string // formatted mobile numbers
	Date        string // statement date
	Lines       []StatementLine
	Summary     Summary
	BalanceWord string
}
