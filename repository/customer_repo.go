package repository

import (
	"context"

	"abinterior/models"
)

// CustomerRepository is the persistence gateway for customers and their ledgers.
// Lookups return models.ErrNotFound both for malformed ids and for missing records,
// and wrap models.ErrUnavailable when the store cannot be reached.
type CustomerRepository interface {
	FindAllCustomers(ctx context.Context) ([]*models.Customer, error)
	FindCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	UpdateCustomer(ctx context.Context, id string, fields models.CustomerFields) error
	DeleteCustomer(ctx context.Context, id string) error

	AddTransaction(ctx context.Context, customerID string, tx models.Transaction) error
	// UpdateTransaction replaces the mutable fields of tx, bumps its version and
	// returns the stored version. A non-zero expectedVersion must match the stored
	// one or ErrConflict is returned.
	UpdateTransaction(ctx context.Context, customerID string, tx models.Transaction, expectedVersion int) (int, error)
	DeleteTransaction(ctx context.Context, customerID, transactionID string) error
}
