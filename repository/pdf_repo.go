package repository

import (
	"context"

	"abinterior/models"
)

// StatementRepository provides methods to fetch data for statement generation
type StatementRepository struct {
	CustomerRepo CustomerRepository
	ProfileRepo  ProfileRepository
}

// NewStatementRepository initializes a statement repository
func NewStatementRepository(customerRepo CustomerRepository, profileRepo ProfileRepository) *StatementRepository {
	return &StatementRepository{
		CustomerRepo: customerRepo,
		ProfileRepo:  profileRepo,
	}
}

// GetCustomerForStatement fetches a single customer with its full ledger
func (r *StatementRepository) GetCustomerForStatement(ctx context.Context, id string) (*models.Customer, error) {
	return r.CustomerRepo.FindCustomerByID(ctx, id)
}

// GetProfileForStatement fetches the latest business profile, falling back to a bare
// header so a statement can still be printed before the profile is set up.
func (r *StatementRepository) GetProfileForStatement(ctx context.Context) (*models.BusinessProfile, error) {
	profile, err := r.ProfileRepo.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.BusinessProfile{CompanyName: "AB INTERIOR"}
	}
	return profile, nil
}
