package models

// ImportRow is one customer read from a CSV line or JSON object.
// Problem holds a parse failure that is reported instead of importing the row.
type ImportRow struct {
	Row          int
	Name         string
	Phone        string
	Address      string
	BillNumber   string
	AmountPaid   float64
	AmountDue    float64
	Transactions []Transaction
	Problem      string
}

type ImportResult struct {
	Success    int      `json:"success"`
	Duplicates int      `json:"duplicates"`
	Errors     []string `json:"errors"`
}
