package transfer

import (
	"io"

	"abinterior/models"

	"github.com/xuri/excelize/v2"
)

const (
	customersSheet    = "Customers"
	transactionsSheet = "Transactions"
)

var transactionsHeader = []interface{}{"Customer", "Phone", "Date", "Type", "Mode", "Amount", "Bill Number", "Notes"}

// ExportXLSX writes a workbook with one sheet of customers, laid out like the CSV
// export, and one sheet listing every transaction.
func ExportXLSX(w io.Writer, customers []models.CustomerWithSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", customersSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := setRow(f, customersSheet, 1, header); err != nil {
		return err
	}
	if err := setRow(f, transactionsSheet, 1, transactionsHeader); err != nil {
		return err
	}

	txRow := 2
	for i, c := range customers {
		err := setRow(f, customersSheet, i+2, []interface{}{
			c.Name, c.Phone, c.Address, c.BillNumber,
			c.AmountPaid, c.AmountDue, c.TotalDue, c.TotalPaid, c.Balance,
		})
		if err != nil {
			return err
		}

		for _, t := range c.Transactions {
			err := setRow(f, transactionsSheet, txRow, []interface{}{
				c.Name, c.Phone, t.Date, string(t.Type), string(t.Mode), t.Amount, t.BillNumber, t.Notes,
			})
			if err != nil {
				return err
			}
			txRow++
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
