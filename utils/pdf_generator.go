package utils

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"abinterior/models"
	"abinterior/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/shopspring/decimal"
)

//go:embed templates/statement.html
var templateFS embed.FS

const statementStyle = `
@page { size: A4; margin: 20px; }
body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; margin: 0; padding: 0; }
table { width: 100%; border-collapse: collapse; }
.header td { vertical-align: top; }
.right { text-align: right; }
.customer { margin: 16px 0; }
.ledger th, .ledger td { border: 1px solid #999; padding: 4px 6px; }
.ledger tr { page-break-inside: avoid; }
.num { text-align: right; }
.balance td { font-weight: bold; background: #eee; }
.empty { text-align: center; color: #666; }
.words { font-style: italic; }
.footnote { text-align: center; color: #666; font-size: 11px; }
`

// StatementRenderer turns a customer ledger into a printable statement.
// TemplatePath, when set, replaces the embedded template.
type StatementRenderer struct {
	Repo         *repository.StatementRepository
	TemplatePath string
	Now          func() time.Time
}

func NewStatementRenderer(repo *repository.StatementRepository, templatePath string) *StatementRenderer {
	return &StatementRenderer{Repo: repo, TemplatePath: templatePath, Now: time.Now}
}

// BuildStatementData orders the ledger by date and computes the running balance.
func BuildStatementData(profile *models.BusinessProfile, customer *models.Customer, now time.Time) models.StatementPDFData {
	lines := make([]models.StatementLine, 0, len(customer.Transactions))
	txs := append([]models.Transaction(nil), customer.Transactions...)
	sort.SliceStable(txs, func(i, j int) bool {
		return ledgerTime(txs[i].Date).Before(ledgerTime(txs[j].Date))
	})

	running := decimal.Zero
	for _, t := range txs {
		if !t.Type.Valid() || !(t.Amount > 0) {
			continue
		}
		line := models.StatementLine{
			Date:        formatStatementDate(t.Date),
			Description: describe(t),
			Mode:        string(t.Mode),
		}
		amount := decimal.NewFromFloat(t.Amount)
		if t.Type == models.Debit {
			line.Debit = t.Amount
			running = running.Add(amount)
		} else {
			line.Credit = t.Amount
			running = running.Sub(amount)
		}
		line.RunningBalance = running.InexactFloat64()
		lines = append(lines, line)
	}

	summary := models.CalculateSummary(customer.Transactions)
	words := AmountInWords(summary.Balance)
	if summary.Balance < 0 {
		words = "Advance: " + words
	}

	// Prepare contact numbers
	contacts := make([]string, 0, len(profile.Mobile))
	for _, m := range profile.Mobile {
		if m.Label != "" {
			contacts = append(contacts, m.Number+" ("+m.Label+")")
		} else {
			contacts = append(contacts, m.Number)
		}
	}

	return models.StatementPDFData{
		Company:     profile,
		Customer:    customer,
		Contacts:    strings.Join(contacts, ", "),
		Date:        now.Format("02-Jan-2006"),
		Lines:       lines,
		Summary:     summary,
		BalanceWord: words,
	}
}

func ledgerTime(s string) time.Time {
	t, _ := models.ParseLedgerDate(s)
	return t
}

func formatStatementDate(s string) string {
	t, err := models.ParseLedgerDate(s)
	if err != nil {
		return "-"
	}
	return t.Format("02-Jan-2006")
}

func describe(t models.Transaction) string {
	parts := []string{}
	if t.BillNumber != "" {
		parts = append(parts, "Bill "+t.BillNumber)
	}
	if t.Notes != "" {
		parts = append(parts, t.Notes)
	}
	if len(parts) == 0 {
		if t.Type == models.Debit {
			return "Bill"
		}
		return "Payment received"
	}
	return strings.Join(parts, " - ")
}

// formatINR groups digits the Indian way: 12,34,567.50
func formatINR(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(abs(v), 'f', 2, 64)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var grouped string
	if len(intPart) <= 3 {
		grouped = intPart
	} else {
		grouped = intPart[len(intPart)-3:]
		rest := intPart[:len(intPart)-3]
		for len(rest) > 2 {
			grouped = rest[len(rest)-2:] + "," + grouped
			rest = rest[:len(rest)-2]
		}
		grouped = rest + "," + grouped
	}

	if neg {
		return "-₹" + grouped + frac
	}
	return "₹" + grouped + frac
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

var statementFuncs = template.FuncMap{"money": formatINR}

func (r *StatementRenderer) loadTemplate() (*template.Template, error) {
	if r.TemplatePath != "" {
		return template.New(filepath.Base(r.TemplatePath)).Funcs(statementFuncs).ParseFiles(r.TemplatePath)
	}
	return template.New("statement.html").Funcs(statementFuncs).ParseFS(templateFS, "templates/statement.html")
}

// RenderHTML produces the complete statement document.
func (r *StatementRenderer) RenderHTML(data models.StatementPDFData) ([]byte, error) {
	tmpl, err := r.loadTemplate()
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html><html><head><meta charset=\"UTF-8\"><style>")
	doc.WriteString(statementStyle)
	doc.WriteString("</style></head><body>")
	doc.Write(body.Bytes())
	doc.WriteString("</body></html>")
	return doc.Bytes(), nil
}

// GenerateStatementPDF prints a customer's statement through headless Chrome.
func (r *StatementRenderer) GenerateStatementPDF(ctx context.Context, customerID string) ([]byte, error) {
	profile, err := r.Repo.GetProfileForStatement(ctx)
	if err != nil {
		return nil, err
	}
	customer, err := r.Repo.GetCustomerForStatement(ctx, customerID)
	if err != nil {
		return nil, err
	}

	html, err := r.RenderHTML(BuildStatementData(profile, customer, r.Now()))
	if err != nil {
		return nil, err
	}
	return printPDF(ctx, html)
}

func printPDF(ctx context.Context, html []byte) ([]byte, error) {
	// Create temp HTML file
	tmpHTML := filepath.Join(os.TempDir(), "statement_"+time.Now().Format("20060102150405.000000")+".html")
	if err := os.WriteFile(tmpHTML, html, 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	cctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(cctx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
