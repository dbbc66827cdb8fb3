package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"abinterior/models"
)

// Column order of the exported CSV. The last three are computed from the ledger.
var csvHeader = []string{"Name", "Phone", "Address", "Bill Number", "Amount Paid", "Amount Due", "Total Due", "Total Paid", "Balance"}

type csvField int

const (
	fieldName csvField = iota
	fieldPhone
	fieldAddress
	fieldBillNumber
	fieldAmountPaid
	fieldAmountDue
	fieldIgnored
)

// headerFields maps normalised header names to row fields.
var headerFields = map[string]csvField{
	"name":       fieldName,
	"phone":      fieldPhone,
	"address":    fieldAddress,
	"billnumber": fieldBillNumber,
	"amountpaid": fieldAmountPaid,
	"amountdue":  fieldAmountDue,
	"totaldue":   fieldIgnored,
	"totalpaid":  fieldIgnored,
	"balance":    fieldIgnored,
}

var requiredFields = map[csvField]string{
	fieldName:       "Name",
	fieldPhone:      "Phone",
	fieldAddress:    "Address",
	fieldBillNumber: "Bill Number",
	fieldAmountPaid: "Amount Paid",
	fieldAmountDue:  "Amount Due",
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// ParseCSV reads customers from a CSV file with a header row. The header is checked
// as a whole before any row is read; an unknown or missing column fails with
// models.ErrInvalidImport. Row numbers count the header as row 1.
func ParseCSV(r io.Reader) ([]models.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file is empty", models.ErrInvalidImport)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidImport, err)
	}

	columns := make([]csvField, len(header))
	present := map[csvField]bool{}
	for i, h := range header {
		f, ok := headerFields[normalizeHeader(h)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %q", models.ErrInvalidImport, strings.TrimSpace(h))
		}
		columns[i] = f
		present[f] = true
	}
	for f := fieldName; f < fieldIgnored; f++ {
		if !present[f] {
			return nil, fmt.Errorf("%w: missing column %q", models.ErrInvalidImport, requiredFields[f])
		}
	}

	var rows []models.ImportRow
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rows = append(rows, models.ImportRow{Row: line + 1, Problem: "malformed CSV line"})
				continue
			}
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidImport, err)
		}
		rows = append(rows, rowFromRecord(line+1, columns, record))
	}
	return rows, nil
}

func rowFromRecord(n int, columns []csvField, record []string) models.ImportRow {
	row := models.ImportRow{Row: n}
	for i, value := range record {
		if i >= len(columns) {
			break
		}
		value = strings.TrimSpace(value)
		switch columns[i] {
		case fieldName:
			row.Name = value
		case fieldPhone:
			row.Phone = value
		case fieldAddress:
			row.Address = value
		case fieldBillNumber:
			row.BillNumber = value
		case fieldAmountPaid:
			v, err := parseAmount(value)
			if err != nil && row.Problem == "" {
				row.Problem = "Amount Paid must be a number"
			}
			row.AmountPaid = v
		case fieldAmountDue:
			v, err := parseAmount(value)
			if err != nil && row.Problem == "" {
				row.Problem = "Amount Due must be a number"
			}
			row.AmountDue = v
		}
	}
	return row
}

var errNotFinite = errors.New("amount is not a finite number")

func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

// ExportCSV writes one line per customer. Text fields are always quoted and numbers
// never are, which encoding/csv cannot express, so lines are assembled here.
func ExportCSV(w io.Writer, customers []models.CustomerWithSummary) error {
	if _, err := io.WriteString(w, strings.Join(csvHeader, ",")+"\n"); err != nil {
		return err
	}
	for _, c := range customers {
		fields := []string{
			quote(c.Name),
			quote(c.Phone),
			quote(c.Address),
			quote(c.BillNumber),
			formatAmount(c.AmountPaid),
			formatAmount(c.AmountDue),
			formatAmount(c.TotalDue),
			formatAmount(c.TotalPaid),
			formatAmount(c.Balance),
		}
		if _, err := io.WriteString(w, strings.Join(fields, ",")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
