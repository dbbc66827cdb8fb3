package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"abinterior/models"

	"github.com/rs/zerolog/log"
)

type SummaryKind string

const (
	SummaryLatest  SummaryKind = "latest"
	SummaryAll     SummaryKind = "all"
	SummaryBalance SummaryKind = "balance"
)

func (k SummaryKind) Valid() bool {
	return k == SummaryLatest || k == SummaryAll || k == SummaryBalance
}

// SummaryFailureMessage is returned in place of a summary whenever the
// language model cannot produce one.
const SummaryFailureMessage = "Sorry, I couldn't generate a summary at this time."

// Summarizer turns a transaction narrative into prose.
type Summarizer interface {
	Summarize(ctx context.Context, history string, kind SummaryKind) (string, error)
}

// FormatTransactionsForAI renders one sentence per transaction, in ledger order.
func FormatTransactionsForAI(transactions []models.Transaction) string {
	lines := make([]string, 0, len(transactions))
	for _, t := range transactions {
		verb := "billed"
		if t.Type == models.Credit {
			verb = "paid"
		}
		notes := t.Notes
		if notes == "" {
			notes = "N/A"
		}
		lines = append(lines, fmt.Sprintf("On %s, an amount of %s was %s via %s. Notes: %s",
			t.Date, strconv.FormatFloat(t.Amount, 'f', -1, 64), verb, t.Mode, notes))
	}
	return strings.Join(lines, "\n")
}

// GenerateSummary asks the summarizer about one customer's ledger. Collaborator
// failures are logged and replaced by SummaryFailureMessage; only bad input and
// store errors are returned.
func (s *LedgerService) GenerateSummary(ctx context.Context, customerID string, kind SummaryKind) (string, error) {
	if !kind.Valid() {
		ve := models.NewValidationError()
		ve.Add("summaryType", "Summary type must be latest, all or balance.")
		return "", ve
	}

	customer, err := s.Customers.FindCustomerByID(ctx, customerID)
	if err != nil {
		return "", err
	}

	if s.Summarizer == nil {
		log.Warn().Msg("summary requested but no summarizer is configured")
		return SummaryFailureMessage, nil
	}

	text, err := s.Summarizer.Summarize(ctx, FormatTransactionsForAI(customer.Transactions), kind)
	if err != nil || strings.TrimSpace(text) == "" {
		if err == nil {
			err = errors.New("empty completion")
		}
		log.Error().Err(err).Str("customer_id", customerID).Str("kind", string(kind)).Msg("summary generation failed")
		return SummaryFailureMessage, nil
	}
	return text, nil
}
