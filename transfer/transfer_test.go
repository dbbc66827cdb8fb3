package transfer

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"abinterior/models"

	"github.com/xuri/excelize/v2"
)

func sampleCustomers() []models.CustomerWithSummary {
	txs := []models.Transaction{
		{ID: "t1", Date: "2024-01-05T00:00:00Z", Amount: 15000, Type: models.Debit, Mode: models.ModeOther, Version: 1},
		{ID: "t2", Date: "2024-01-09T00:00:00Z", Amount: 5000, Type: models.Credit, Mode: models.ModeUPI, Notes: `said "thanks"`, Version: 2},
		{ID: "t3", Date: "2024-02-01T00:00:00Z", Amount: 2500.5, Type: models.Debit, Mode: models.ModeCash, Version: 1},
	}
	c := models.Customer{
		ID: "c1", Name: "Ravi, Kumar", Phone: "+919876543210", Address: `12 "MG" Road`,
		BillNumber: "B-1", AmountPaid: 5000, AmountDue: 15000, Transactions: txs,
	}
	return []models.CustomerWithSummary{{Customer: c, Summary: models.CalculateSummary(txs)}}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, sampleCustomers()); err != nil {
		t.Fatal(err)
	}
	want := "Name,Phone,Address,Bill Number,Amount Paid,Amount Due,Total Due,Total Paid,Balance\n" +
		`"Ravi, Kumar","+919876543210","12 ""MG"" Road","B-1",5000,15000,17500.5,5000,12500.5` + "\n"
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, sampleCustomers()); err != nil {
		t.Fatal(err)
	}
	rows, err := ParseCSV(&buf)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	got := rows[0]
	if got.Row != 2 || got.Name != "Ravi, Kumar" || got.Address != `12 "MG" Road` || got.AmountDue != 15000 || got.AmountPaid != 5000 {
		t.Errorf("row = %+v", got)
	}
}

func TestParseCSVHeaders(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"canonical", "Name,Phone,Address,Bill Number,Amount Paid,Amount Due\nA,1,x,b,0,0\n", false},
		{"loose spelling", "name,PHONE,address,bill_number,amount-paid,AmountDue\nA,1,x,b,0,0\n", false},
		{"reordered", "Phone,Name,Amount Due,Amount Paid,Address,Bill Number\n1,A,0,0,x,b\n", false},
		{"missing column", "Name,Phone,Address,Amount Paid,Amount Due\nA,1,x,0,0\n", true},
		{"unknown column", "Name,Phone,Address,Bill Number,Amount Paid,Amount Due,Email\nA,1,x,b,0,0,e\n", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseCSV(strings.NewReader(tt.input))
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidImport) {
					t.Fatalf("got %v, want ErrInvalidImport", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != 1 || rows[0].Name != "A" || rows[0].Phone != "1" || rows[0].BillNumber != "b" {
				t.Errorf("rows = %+v", rows)
			}
		})
	}
}

func TestParseCSVRowNumbers(t *testing.T) {
	input := "Name,Phone,Address,Bill Number,Amount Paid,Amount Due\n" +
		"A,9000000001,Addr 1,B1,0,100\n" +
		"B,9000000002,Addr 2,B2,abc,100\n" +
		",9000000003,Addr 3,B3,0,100\n"
	rows, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %+v", rows)
	}
	for i, r := range rows {
		if r.Row != i+2 {
			t.Errorf("row %d numbered %d", i, r.Row)
		}
	}
	if rows[1].Problem != "Amount Paid must be a number" {
		t.Errorf("problem = %q", rows[1].Problem)
	}
	if rows[2].Name != "" || rows[2].Problem != "" {
		t.Errorf("empty name row = %+v", rows[2])
	}
}

func TestParseRejectsNonFiniteAmounts(t *testing.T) {
	tests := []struct {
		name    string
		paid    string
		due     string
		problem string
	}{
		{"nan paid", "NaN", "100", "Amount Paid must be a number"},
		{"inf paid", "Inf", "100", "Amount Paid must be a number"},
		{"signed inf due", "0", "+Infinity", "Amount Due must be a number"},
		{"negative inf due", "0", "-inf", "Amount Due must be a number"},
		{"huge exponent", "1e400", "0", "Amount Paid must be a number"},
		{"finite with commas", "1,500.50", "0", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "Name,Phone,Address,Bill Number,Amount Paid,Amount Due\n" +
				"A,9000000001,Addr,B1," + `"` + tt.paid + `",` + tt.due + "\n"
			rows, err := ParseCSV(strings.NewReader(input))
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != 1 {
				t.Fatalf("rows = %+v", rows)
			}
			if rows[0].Problem != tt.problem {
				t.Errorf("problem = %q, want %q", rows[0].Problem, tt.problem)
			}
			if math.IsNaN(rows[0].AmountPaid) || math.IsInf(rows[0].AmountPaid, 0) ||
				math.IsNaN(rows[0].AmountDue) || math.IsInf(rows[0].AmountDue, 0) {
				t.Errorf("non-finite amount leaked: %+v", rows[0])
			}
		})
	}

	rows, err := ParseJSON(strings.NewReader(`[{"name":"A","phone":"9000000001","amountPaid":"NaN","amountDue":"Infinity"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].Problem != "amountPaid must be a number" {
		t.Errorf("json problem = %q", rows[0].Problem)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := sampleCustomers()

	var buf bytes.Buffer
	if err := ExportJSON(&buf, original); err != nil {
		t.Fatal(err)
	}
	rows, err := ParseJSON(&buf)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %+v", rows)
	}

	got := rows[0]
	if got.Row != 1 || got.Name != original[0].Name || got.Phone != original[0].Phone {
		t.Errorf("row = %+v", got)
	}
	if len(got.Transactions) != len(original[0].Transactions) {
		t.Fatalf("transactions = %+v", got.Transactions)
	}
	for i, tx := range got.Transactions {
		if tx != original[0].Transactions[i] {
			t.Errorf("tx %d = %+v, want %+v", i, tx, original[0].Transactions[i])
		}
	}
	if s := models.CalculateSummary(got.Transactions); s != original[0].Summary {
		t.Errorf("summary = %+v, want %+v", s, original[0].Summary)
	}
}

func TestParseJSON(t *testing.T) {
	input := `[
		{"name": "Numeric Phone", "phone": 9876543210, "amountDue": "1200", "amountPaid": 200},
		{"name": "Bad", "amountDue": "lots"},
		"not an object"
	]`
	rows, err := ParseJSON(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Phone != "9876543210" || rows[0].AmountDue != 1200 || rows[0].AmountPaid != 200 || rows[0].Problem != "" {
		t.Errorf("row 1 = %+v", rows[0])
	}
	if rows[1].Problem != "amountDue must be a number" {
		t.Errorf("row 2 = %+v", rows[1])
	}
	if rows[2].Row != 3 || rows[2].Problem == "" {
		t.Errorf("row 3 = %+v", rows[2])
	}

	if _, err := ParseJSON(strings.NewReader(`{"name":"x"}`)); !errors.Is(err, models.ErrInvalidImport) {
		t.Errorf("object document: %v", err)
	}
}

func TestExportXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportXLSX(&buf, sampleCustomers()); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	customers, err := f.GetRows(customersSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(customers) != 2 || customers[0][0] != "Name" || customers[1][0] != "Ravi, Kumar" || customers[1][8] != "12500.5" {
		t.Errorf("customers sheet = %v", customers)
	}

	txs, err := f.GetRows(transactionsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 4 || txs[2][3] != "CREDIT" || txs[2][7] != `said "thanks"` {
		t.Errorf("transactions sheet = %v", txs)
	}
}
