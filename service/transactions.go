package service

import (
	"context"

	"abinterior/models"

	"github.com/rs/zerolog/log"
)

// AddPayment appends a bill or a payment to a customer's ledger.
func (s *LedgerService) AddPayment(ctx context.Context, in models.PaymentInput) (*models.Transaction, error) {
	tx, err := buildTransaction(in)
	if err != nil {
		return nil, err
	}
	if in.CustomerID == "" {
		return nil, models.ErrNotFound
	}

	tx.ID = s.NewID()
	tx.Version = 1
	if err := s.Customers.AddTransaction(ctx, in.CustomerID, tx); err != nil {
		return nil, err
	}

	log.Info().
		Str("customer_id", in.CustomerID).
		Str("transaction_id", tx.ID).
		Str("type", string(tx.Type)).
		Float64("amount", tx.Amount).
		Msg("transaction added")
	return &tx, nil
}

// UpdateTransaction replaces every mutable field of one transaction. A missing
// transaction is reported as models.ErrNotFound; a stale in.Version as models.ErrConflict.
func (s *LedgerService) UpdateTransaction(ctx context.Context, customerID, transactionID string, in models.PaymentInput) (*models.Transaction, error) {
	tx, err := buildTransaction(in)
	if err != nil {
		return nil, err
	}

	tx.ID = transactionID
	version, err := s.Customers.UpdateTransaction(ctx, customerID, tx, in.Version)
	if err != nil {
		return nil, err
	}
	tx.Version = version
	return &tx, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, customerID, transactionID string) error {
	if err := s.Customers.DeleteTransaction(ctx, customerID, transactionID); err != nil {
		return err
	}
	log.Info().Str("customer_id", customerID).Str("transaction_id", transactionID).Msg("transaction deleted")
	return nil
}
