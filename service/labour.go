package service

import (
	"context"
	"strings"

	"abinterior/models"
)

func (s *LedgerService) GetLabours(ctx context.Context) ([]models.LabourWithTotal, error) {
	labours, err := s.Labours.FindAllLabours(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.LabourWithTotal, 0, len(labours))
	for _, l := range labours {
		out = append(out, models.LabourWithTotal{Labour: *l, TotalPaid: models.LabourTotalPaid(l.Payments)})
	}
	return out, nil
}

func (s *LedgerService) GetLabourByID(ctx context.Context, id string) (*models.LabourWithTotal, error) {
	l, err := s.Labours.FindLabourByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.LabourWithTotal{Labour: *l, TotalPaid: models.LabourTotalPaid(l.Payments)}, nil
}

// AddLabour creates a labourer with no payments.
func (s *LedgerService) AddLabour(ctx context.Context, in models.LabourInput) (*models.Labour, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)

	ve := models.NewValidationError()
	validateContact(ve, name, phone)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	labour := &models.Labour{
		Name:      name,
		Phone:     phone,
		Payments:  []models.LabourPayment{},
		CreatedAt: s.Now(),
	}
	if err := s.Labours.CreateLabour(ctx, labour); err != nil {
		return nil, err
	}
	return labour, nil
}

func (s *LedgerService) DeleteLabour(ctx context.Context, id string) error {
	return s.Labours.DeleteLabour(ctx, id)
}

func (s *LedgerService) AddLabourPayment(ctx context.Context, labourID string, in models.LabourPaymentInput) (*models.LabourPayment, error) {
	ve := models.NewValidationError()
	validateAmount(ve, "amount", in.Amount)
	date, err := models.ParseLedgerDate(in.Date)
	if err != nil {
		ve.Add("date", "A valid date is required.")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	p := models.LabourPayment{
		ID:     s.NewID(),
		Date:   models.FormatLedgerDate(date),
		Amount: in.Amount,
	}
	if err := s.Labours.AddLabourPayment(ctx, labourID, p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *LedgerService) DeleteLabourPayment(ctx context.Context, labourID, paymentID string) error {
	return s.Labours.DeleteLabourPayment(ctx, labourID, paymentID)
}
