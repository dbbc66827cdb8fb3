package service

import (
	"context"

	"abinterior/models"

	"github.com/rs/zerolog/log"
)

func (s *LedgerService) AddCustomer(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	fields := trimFields(models.CustomerFields{
		Name:       in.Name,
		Phone:      in.Phone,
		Address:    in.Address,
		BillNumber: in.BillNumber,
	})

	ve := models.NewValidationError()
	validateCustomerFields(ve, fields)
	if !validOpeningAmount(in.AmountPaid) {
		ve.Add("amountPaid", "Amount must be 0 or greater.")
	}
	if !validOpeningAmount(in.AmountDue) {
		ve.Add("amountDue", "Amount must be 0 or greater.")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:       fields.Name,
		Phone:      NormalizePhone(fields.Phone),
		Address:    fields.Address,
		BillNumber: fields.BillNumber,
		AmountPaid: in.AmountPaid,
		AmountDue:  in.AmountDue,
		CreatedAt:  s.Now(),
	}
	customer.Transactions = models.SynthesizeSeedTransactions(
		in.AmountDue, in.AmountPaid, fields.BillNumber, models.SeedFromCreation, customer.CreatedAt, s.NewID)

	if err := s.Customers.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	log.Info().Str("customer_id", customer.ID).Int("seed_transactions", len(customer.Transactions)).Msg("customer created")
	return customer, nil
}

// UpdateCustomer rewrites the four editable fields; the ledger is never touched.
func (s *LedgerService) UpdateCustomer(ctx context.Context, id string, in models.CustomerFields) error {
	fields := trimFields(in)

	ve := models.NewValidationError()
	validateCustomerFields(ve, fields)
	if err := ve.OrNil(); err != nil {
		return err
	}

	fields.Phone = NormalizePhone(fields.Phone)
	return s.Customers.UpdateCustomer(ctx, id, fields)
}

func (s *LedgerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.Customers.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	log.Info().Str("customer_id", id).Msg("customer deleted")
	return nil
}

// GetCustomers returns every customer with its summary. A store that cannot be
// reached surfaces as models.ErrUnavailable, never as an empty list.
func (s *LedgerService) GetCustomers(ctx context.Context) ([]models.CustomerWithSummary, error) {
	customers, err := s.Customers.FindAllCustomers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.CustomerWithSummary, 0, len(customers))
	for _, c := range customers {
		out = append(out, withSummary(c))
	}
	return out, nil
}

func (s *LedgerService) GetCustomerByID(ctx context.Context, id string) (*models.CustomerWithSummary, error) {
	c, err := s.Customers.FindCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cs := withSummary(c)
	return &cs, nil
}

func withSummary(c *models.Customer) models.CustomerWithSummary {
	if c.Transactions == nil {
		c.Transactions = []models.Transaction{}
	}
	return models.CustomerWithSummary{
		Customer: *c,
		Summary:  models.CalculateSummary(c.Transactions),
	}
}
