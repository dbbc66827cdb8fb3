package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"abinterior/models"

	"github.com/rs/zerolog/log"
)

// ImportCustomers stores each parsed row independently. A failing row is reported
// as "Row N: ..." and never stops the rows after it. Rows whose phone already
// exists, in the store or earlier in the same batch, are counted as duplicates.
func (s *LedgerService) ImportCustomers(ctx context.Context, rows []models.ImportRow) models.ImportResult {
	result := models.ImportResult{Errors: []string{}}
	seen := map[string]bool{}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: import cancelled", row.Row))
			break
		}
		if row.Problem != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", row.Row, row.Problem))
			continue
		}

		customer, err := s.customerFromRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", row.Row, err.Error()))
			continue
		}

		if customer.Phone != "" {
			if seen[customer.Phone] {
				result.Duplicates++
				continue
			}
			_, err := s.Customers.FindCustomerByPhone(ctx, customer.Phone)
			switch {
			case err == nil:
				seen[customer.Phone] = true
				result.Duplicates++
				continue
			case !errors.Is(err, models.ErrNotFound):
				log.Error().Err(err).Int("row", row.Row).Msg("duplicate lookup failed during import")
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: could not check for duplicates", row.Row))
				continue
			}
		}

		if err := s.Customers.CreateCustomer(ctx, customer); err != nil {
			log.Error().Err(err).Int("row", row.Row).Msg("import row failed to save")
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: failed to save customer", row.Row))
			continue
		}
		if customer.Phone != "" {
			seen[customer.Phone] = true
		}
		result.Success++
	}

	log.Info().
		Int("success", result.Success).
		Int("duplicates", result.Duplicates).
		Int("errors", len(result.Errors)).
		Msg("import finished")
	return result
}

func (s *LedgerService) customerFromRow(row models.ImportRow) (*models.Customer, error) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return nil, errors.New("Name is required")
	}
	if !validOpeningAmount(row.AmountPaid) || !validOpeningAmount(row.AmountDue) {
		return nil, errors.New("Amount must be 0 or greater.")
	}

	now := s.Now()
	customer := &models.Customer{
		Name:       name,
		Phone:      NormalizePhone(row.Phone),
		Address:    strings.TrimSpace(row.Address),
		BillNumber: strings.TrimSpace(row.BillNumber),
		AmountPaid: row.AmountPaid,
		AmountDue:  row.AmountDue,
		CreatedAt:  now,
	}

	if len(row.Transactions) > 0 {
		txs, err := s.importedTransactions(row.Transactions)
		if err != nil {
			return nil, err
		}
		customer.Transactions = txs
		return customer, nil
	}

	customer.Transactions = models.SynthesizeSeedTransactions(
		row.AmountDue, row.AmountPaid, customer.BillNumber, models.SeedFromImport, now, s.NewID)
	return customer, nil
}

// importedTransactions keeps supplied ids and versions where they are usable.
func (s *LedgerService) importedTransactions(in []models.Transaction) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, len(in))
	ids := map[string]bool{}

	for i, t := range in {
		if t.Mode == "" {
			t.Mode = models.ModeOther
		}
		tx, err := buildTransaction(models.PaymentInput{
			Amount:     t.Amount,
			Type:       t.Type,
			Mode:       t.Mode,
			BillNumber: t.BillNumber,
			Notes:      t.Notes,
			Date:       t.Date,
		})
		if err != nil {
			var ve *models.ValidationError
			if errors.As(err, &ve) {
				return nil, fmt.Errorf("transaction %d: %s", i+1, firstMessage(ve))
			}
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}

		tx.ID = t.ID
		if tx.ID == "" || ids[tx.ID] {
			tx.ID = s.NewID()
		}
		ids[tx.ID] = true

		tx.Version = t.Version
		if tx.Version < 1 {
			tx.Version = 1
		}
		out = append(out, tx)
	}
	return out, nil
}

func firstMessage(ve *models.ValidationError) string {
	for _, field := range []string{"amount", "type", "mode", "date"} {
		if msgs := ve.Fields[field]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ve.Error()
}
