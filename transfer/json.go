package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"abinterior/models"
)

// ExportJSON writes the stored customer, its summary and its full ledger.
func ExportJSON(w io.Writer, customers []models.CustomerWithSummary) error {
	if customers == nil {
		customers = []models.CustomerWithSummary{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(customers)
}

// flexString accepts a JSON string or number, since spreadsheets often turn
// phone numbers into numbers.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

type importedCustomer struct {
	Name         flexString           `json:"name"`
	Phone        flexString           `json:"phone"`
	Address      flexString           `json:"address"`
	BillNumber   flexString           `json:"billNumber"`
	AmountPaid   flexString           `json:"amountPaid"`
	AmountDue    flexString           `json:"amountDue"`
	Transactions []models.Transaction `json:"transactions"`
}

// ParseJSON reads an array of customer objects. Objects that do not decode become
// rows with a Problem; a document that is not an array fails with models.ErrInvalidImport.
func ParseJSON(r io.Reader) ([]models.ImportRow, error) {
	var items []json.RawMessage
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of customers: %v", models.ErrInvalidImport, err)
	}

	rows := make([]models.ImportRow, 0, len(items))
	for i, raw := range items {
		row := models.ImportRow{Row: i + 1}

		var in importedCustomer
		if err := json.Unmarshal(raw, &in); err != nil {
			row.Problem = "not a valid customer object"
			rows = append(rows, row)
			continue
		}

		row.Name = strings.TrimSpace(string(in.Name))
		row.Phone = strings.TrimSpace(string(in.Phone))
		row.Address = strings.TrimSpace(string(in.Address))
		row.BillNumber = strings.TrimSpace(string(in.BillNumber))
		row.Transactions = in.Transactions

		var err error
		if row.AmountPaid, err = parseAmount(string(in.AmountPaid)); err != nil {
			row.Problem = "amountPaid must be a number"
		}
		if row.AmountDue, err = parseAmount(string(in.AmountDue)); err != nil && row.Problem == "" {
			row.Problem = "amountDue must be a number"
		}
		rows = append(rows, row)
	}
	return rows, nil
}
