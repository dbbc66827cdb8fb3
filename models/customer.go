package models

import "time"

// Customer owns its transactions; they have no identity outside this document.
type Customer struct {
	ID           string        `json:"id" bson:"-" db:"id"`
	Name         string        `json:"name" bson:"name" db:"name"`
	Phone        string        `json:"phone" bson:"phone" db:"phone"`
	Address      string        `json:"address" bson:"address" db:"address"`
	BillNumber   string        `json:"billNumber,omitempty" bson:"billNumber,omitempty" db:"bill_number"`
	AmountPaid   float64       `json:"amountPaid" bson:"amountPaid" db:"amount_paid"`
	AmountDue    float64       `json:"amountDue" bson:"amountDue" db:"amount_due"`
	Transactions []Transaction `json:"transactions" bson:"transactions" db:"transactions"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty" bson:"updatedAt,omitempty" db:"updated_at"`
}

// CustomerWithSummary is what read paths hand to presentation.
type CustomerWithSummary struct {
	Customer
	Summary
}

// CustomerInput is the payload accepted by addCustomer.
type CustomerInput struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Address    string  `json:"address"`
	BillNumber string  `json:"billNumber"`
	AmountPaid float64 `json:"amountPaid"`
	AmountDue  float64 `json:"amountDue"`
}

// CustomerFields are the only fields updateCustomer may touch.
type CustomerFields struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	BillNumber string `json:"billNumber"`
}
