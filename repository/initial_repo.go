package repository

import (
	"context"

	"abinterior/models"
)

type ProfileRepository interface {
	SaveProfile(ctx context.Context, profile *models.BusinessProfile) error
	// GetProfile returns nil, nil when no profile has been saved yet.
	GetProfile(ctx context.Context) (*models.BusinessProfile, error)
}
