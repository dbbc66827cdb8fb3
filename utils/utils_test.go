package utils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"abinterior/models"
)

func TestBuildStatementData(t *testing.T) {
	profile := &models.BusinessProfile{
		CompanyName: "AB INTERIOR",
		Mobile:      []models.MobileEntry{{Number: "9800000000", Label: "Office"}, {Number: "9811111111"}},
	}
	customer := &models.Customer{
		Name: "Ravi",
		Transactions: []models.Transaction{
			{Date: "2024-02-01T00:00:00Z", Amount: 2000, Type: models.Credit, Mode: models.ModeUPI},
			{Date: "2024-01-05", Amount: 5000, Type: models.Debit, Mode: models.ModeOther, BillNumber: "B-7"},
			{Date: "2024-02-10T00:00:00Z", Amount: 500.5, Type: models.Debit, Mode: models.ModeCash, Notes: "Extra fittings"},
		},
	}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	data := BuildStatementData(profile, customer, now)

	if data.Date != "01-Mar-2024" {
		t.Errorf("date = %q", data.Date)
	}
	if data.Contacts != "9800000000 (Office), 9811111111" {
		t.Errorf("contacts = %q", data.Contacts)
	}
	wantBalances := []float64{5000, 3000, 3500.5}
	if len(data.Lines) != len(wantBalances) {
		t.Fatalf("lines = %+v", data.Lines)
	}
	for i, want := range wantBalances {
		if data.Lines[i].RunningBalance != want {
			t.Errorf("line %d balance = %v, want %v", i, data.Lines[i].RunningBalance, want)
		}
	}
	if data.Lines[0].Description != "Bill B-7" || data.Lines[1].Description != "Payment received" {
		t.Errorf("descriptions = %q, %q", data.Lines[0].Description, data.Lines[1].Description)
	}
	if data.Summary.Balance != 3500.5 {
		t.Errorf("summary = %+v", data.Summary)
	}
	if data.BalanceWord != "Rupees Three Thousand Five Hundred and Fifty Paise Only" {
		t.Errorf("words = %q", data.BalanceWord)
	}
}

func TestRenderStatementHTML(t *testing.T) {
	profile := &models.BusinessProfile{CompanyName: "AB INTERIOR", GSTIN: "22AAAAA0000A1Z5"}
	customer := &models.Customer{
		Name: "Ravi <Kumar>",
		Transactions: []models.Transaction{
			{Date: "2024-01-05", Amount: 1234567.5, Type: models.Debit, Mode: models.ModeOther},
		},
	}
	r := NewStatementRenderer(nil, "")
	html, err := r.RenderHTML(BuildStatementData(profile, customer, time.Now()))
	if err != nil {
		t.Fatal(err)
	}

	out := string(html)
	for _, want := range []string{"AB INTERIOR", "GSTIN: 22AAAAA0000A1Z5", "Ravi &lt;Kumar&gt;", "₹12,34,567.50", "Only"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered statement missing %q", want)
		}
	}
}

func TestFormatINR(t *testing.T) {
	tests := map[float64]string{
		0:         "₹0.00",
		999:       "₹999.00",
		1000:      "₹1,000.00",
		100000:    "₹1,00,000.00",
		-25000.75: "-₹25,000.75",
	}
	for in, want := range tests {
		if got := formatINR(in); got != want {
			t.Errorf("formatINR(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestR2Upload(t *testing.T) {
	var (
		mu      sync.Mutex
		method  string
		reqPath string
		body    string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		method, reqPath, body = r.Method, r.URL.Path, string(b)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u, err := NewR2Uploader(context.Background(), R2Config{
		Bucket:          "statements",
		PublicURL:       "https://files.example.com/",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Endpoint:        srv.URL,
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := u.Upload(context.Background(), []byte("%PDF-1.4"), "reports/statement ravi.pdf", "application/pdf")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://files.example.com/statement%20ravi.pdf" {
		t.Errorf("url = %q", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if method != http.MethodPut || reqPath != "/statements/statement ravi.pdf" {
		t.Errorf("request = %s %s", method, reqPath)
	}
	if !strings.Contains(body, "%PDF-1.4") {
		t.Errorf("body = %q", body)
	}
}

func TestNewR2UploaderRequiresConfig(t *testing.T) {
	if _, err := NewR2Uploader(context.Background(), R2Config{Bucket: "b"}); err == nil {
		t.Fatal("expected an error")
	}
}
