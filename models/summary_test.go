package models

import (
	"math"
	"testing"
	"time"
)

func TestCalculateSummary(t *testing.T) {
	tests := []struct {
		name string
		txs  []Transaction
		want Summary
	}{
		{
			name: "nil ledger",
			txs:  nil,
			want: Summary{},
		},
		{
			name: "empty ledger",
			txs:  []Transaction{},
			want: Summary{},
		},
		{
			name: "bill and payment",
			txs: []Transaction{
				{ID: "t1", Amount: 15000, Type: Debit},
				{ID: "t2", Amount: 5000, Type: Credit},
			},
			want: Summary{TotalDue: 15000, TotalPaid: 5000, Balance: 10000},
		},
		{
			name: "advance payment goes negative",
			txs: []Transaction{
				{ID: "t1", Amount: 750, Type: Debit},
				{ID: "t2", Amount: 1000, Type: Credit},
			},
			want: Summary{TotalDue: 750, TotalPaid: 1000, Balance: -250},
		},
		{
			name: "fractional amounts do not drift",
			txs: []Transaction{
				{ID: "t1", Amount: 0.1, Type: Debit},
				{ID: "t2", Amount: 0.2, Type: Debit},
				{ID: "t3", Amount: 0.3, Type: Credit},
			},
			want: Summary{TotalDue: 0.3, TotalPaid: 0.3, Balance: 0},
		},
		{
			name: "unknown type and bad amounts are ignored",
			txs: []Transaction{
				{ID: "t1", Amount: 500, Type: Debit},
				{ID: "t2", Amount: 200, Type: TransactionType("REFUND")},
				{ID: "t3", Amount: -50, Type: Credit},
				{ID: "t4", Amount: math.NaN(), Type: Credit},
				{ID: "t5", Amount: math.Inf(1), Type: Debit},
			},
			want: Summary{TotalDue: 500, TotalPaid: 0, Balance: 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSummary(tt.txs)
			if got != tt.want {
				t.Fatalf("CalculateSummary() = %+v, want %+v", got, tt.want)
			}
			if got.TotalDue-got.TotalPaid != got.Balance {
				t.Errorf("balance %v != totalDue - totalPaid (%v)", got.Balance, got.TotalDue-got.TotalPaid)
			}
			if got.TotalDue < 0 || got.TotalPaid < 0 {
				t.Errorf("negative sums: %+v", got)
			}
		})
	}
}

func TestLabourTotalPaid(t *testing.T) {
	payments := []LabourPayment{
		{ID: "p1", Amount: 1200},
		{ID: "p2", Amount: 800.5},
		{ID: "p3", Amount: 0},
	}
	if got := LabourTotalPaid(payments); got != 2000.5 {
		t.Fatalf("LabourTotalPaid() = %v, want 2000.5", got)
	}
	if got := LabourTotalPaid(nil); got != 0 {
		t.Fatalf("LabourTotalPaid(nil) = %v, want 0", got)
	}
}

func TestSynthesizeSeedTransactions(t *testing.T) {
	now := time.Date(2024, 7, 1, 10, 30, 0, 0, time.UTC)
	n := 0
	newID := func() string {
		n++
		return "seed-" + string(rune('0'+n))
	}

	tests := []struct {
		name       string
		due, paid  float64
		origin     SeedOrigin
		wantTypes  []TransactionType
		wantNotes  []string
		wantAmount []float64
	}{
		{
			name:       "both amounts from creation",
			due:        15000,
			paid:       5000,
			origin:     SeedFromCreation,
			wantTypes:  []TransactionType{Debit, Credit},
			wantNotes:  []string{"Initial bill from customer creation", "Initial payment from customer creation"},
			wantAmount: []float64{15000, 5000},
		},
		{
			name:       "only paid from import",
			paid:       8000,
			origin:     SeedFromImport,
			wantTypes:  []TransactionType{Credit},
			wantNotes:  []string{"Initial payment from import"},
			wantAmount: []float64{8000},
		},
		{
			name:   "nothing to seed",
			origin: SeedFromImport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SynthesizeSeedTransactions(tt.due, tt.paid, "BILL001", tt.origin, now, newID)
			if len(got) != len(tt.wantTypes) {
				t.Fatalf("got %d transactions, want %d", len(got), len(tt.wantTypes))
			}
			for i, tx := range got {
				if tx.Type != tt.wantTypes[i] || tx.Notes != tt.wantNotes[i] || tx.Amount != tt.wantAmount[i] {
					t.Errorf("tx[%d] = %+v", i, tx)
				}
				if tx.Date != "2024-07-01T10:30:00Z" {
					t.Errorf("tx[%d].Date = %q", i, tx.Date)
				}
				if tx.BillNumber != "BILL001" || tx.Version != 1 || tx.ID == "" {
					t.Errorf("tx[%d] missing metadata: %+v", i, tx)
				}
			}
		})
	}
}

func TestParseLedgerDate(t *testing.T) {
	for _, in := range []string{"2024-07-15", "2024-07-15T00:00:00Z", "2024-07-15T05:30:00+05:30", "2024-07-15T00:00:00.000Z"} {
		got, err := ParseLedgerDate(in)
		if err != nil {
			t.Fatalf("ParseLedgerDate(%q) error: %v", in, err)
		}
		if FormatLedgerDate(got) != "2024-07-15T00:00:00Z" {
			t.Errorf("ParseLedgerDate(%q) = %s", in, FormatLedgerDate(got))
		}
	}
	if _, err := ParseLedgerDate("15/07/2024"); err == nil {
		t.Error("expected error for dd/mm/yyyy")
	}
}
