package models

type ModeShare struct {
	Mode   PaymentMode `json:"mode"`
	Count  int         `json:"count"`
	Amount float64     `json:"amount"`
}

type CustomerTotal struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	TotalDue float64 `json:"totalDue"`
	Balance  float64 `json:"balance"`
}

type MonthTotals struct {
	Month     string  `json:"month"` // YYYY-MM
	Billed    float64 `json:"billed"`
	Collected float64 `json:"collected"`
}

type Analytics struct {
	TotalCustomers int             `json:"totalCustomers"`
	TotalDue       float64         `json:"totalDue"`
	TotalPaid      float64         `json:"totalPaid"`
	TotalBalance   float64         `json:"totalBalance"`
	Outstanding    int             `json:"outstanding"`
	Settled        int             `json:"settled"`
	PaymentModes   []ModeShare     `json:"paymentModes"`
	TopCustomers   []CustomerTotal `json:"topCustomers"`
	Monthly        []MonthTotals   `json:"monthly"`
}
