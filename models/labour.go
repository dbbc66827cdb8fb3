package models

import "time"

// Labour payments are always outflows, so there is no due side.
type Labour struct {
	ID        string          `json:"id" bson:"-" db:"id"`
	Name      string          `json:"name" bson:"name" db:"name"`
	Phone     string          `json:"phone" bson:"phone" db:"phone"`
	Payments  []LabourPayment `json:"payments" bson:"payments" db:"payments"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt" db:"created_at"`
}

type LabourPayment struct {
	ID     string  `json:"id" bson:"id"`
	Date   string  `json:"date" bson:"date"`
	Amount float64 `json:"amount" bson:"amount"`
}

type LabourWithTotal struct {
	Labour
	TotalPaid float64 `json:"totalPaid"`
}

type LabourInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type LabourPaymentInput struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}
