package repository

import (
	"context"

	"abinterior/models"
)

type LabourRepository interface {
	FindAllLabours(ctx context.Context) ([]*models.Labour, error)
	FindLabourByID(ctx context.Context, id string) (*models.Labour, error)
	CreateLabour(ctx context.Context, labour *models.Labour) error
	DeleteLabour(ctx context.Context, id string) error
	AddLabourPayment(ctx context.Context, labourID string, payment models.LabourPayment) error
	DeleteLabourPayment(ctx context.Context, labourID, paymentID string) error
}
