package models

type TransactionType string

const (
	Debit  TransactionType = "DEBIT"  // bill, increases what the customer owes
	Credit TransactionType = "CREDIT" // payment received
)

func (t TransactionType) Valid() bool {
	return t == Debit || t == Credit
}

type PaymentMode string

const (
	ModeCash  PaymentMode = "CASH"
	ModeUPI   PaymentMode = "UPI"
	ModeCard  PaymentMode = "CARD"
	ModeOther PaymentMode = "OTHER"
)

// PaymentModes lists the accepted modes in display order.
var PaymentModes = []PaymentMode{ModeCash, ModeUPI, ModeCard, ModeOther}

func (m PaymentMode) Valid() bool {
	for _, v := range PaymentModes {
		if m == v {
			return true
		}
	}
	return false
}

// Transaction is one ledger entry. ID is unique only within its customer.
type Transaction struct {
	ID         string          `json:"id" bson:"id"`
	Date       string          `json:"date" bson:"date"`
	Amount     float64         `json:"amount" bson:"amount"`
	Type       TransactionType `json:"type" bson:"type"`
	Mode       PaymentMode     `json:"mode" bson:"mode"`
	BillNumber string          `json:"billNumber,omitempty" bson:"billNumber,omitempty"`
	Notes      string          `json:"notes,omitempty" bson:"notes,omitempty"`
	Version    int             `json:"version,omitempty" bson:"version"`
}

// PaymentInput is the payload for addPayment and updateTransaction.
// Version, when non-zero, is the version the caller last saw.
type PaymentInput struct {
	CustomerID string          `json:"customerId"`
	Amount     float64         `json:"amount"`
	Type       TransactionType `json:"type"`
	Mode       PaymentMode     `json:"mode"`
	BillNumber string          `json:"billNumber"`
	Notes      string          `json:"notes"`
	Date       string          `json:"date"`
	Version    int             `json:"version"`
}
