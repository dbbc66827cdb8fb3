package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"abinterior/db/postgres"
	"abinterior/models"
)

type PostgresProfileRepo struct {
	DB *postgres.PostgresDB
}

func NewPostgresProfileRepo(db *postgres.PostgresDB) *PostgresProfileRepo {
	return &PostgresProfileRepo{DB: db}
}

// SaveProfile appends a new profile row; the latest row wins on read
func (r *PostgresProfileRepo) SaveProfile(ctx context.Context, profile *models.BusinessProfile) error {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	// Convert mobile slice to JSON manually
	mobileJSON, err := json.Marshal(profile.Mobile)
	if err != nil {
		return err
	}

	var id int64
	err = conn.QueryRowContext(ctx, `
		INSERT INTO business_profile
		(company_name, gstin, address, city, state, pincode, mobile, footnote, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`, profile.CompanyName, profile.GSTIN, profile.Address, profile.City, profile.State,
		profile.Pincode, mobileJSON, profile.Footnote, profile.CreatedAt).Scan(&id)
	if err != nil {
		return sqlErr(err)
	}
	profile.ID = strconv.FormatInt(id, 10)
	return nil
}

// GetProfile fetches the latest business profile
func (r *PostgresProfileRepo) GetProfile(ctx context.Context) (*models.BusinessProfile, error) {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	profile := &models.BusinessProfile{}
	var id int64
	var mobileJSON []byte

	err = conn.QueryRowContext(ctx, `
		SELECT id, company_name, address, city, state, pincode, gstin, footnote, mobile, created_at
		FROM business_profile
		ORDER BY id DESC LIMIT 1
	`).Scan(&id, &profile.CompanyName, &profile.Address, &profile.City, &profile.State,
		&profile.Pincode, &profile.GSTIN, &profile.Footnote, &mobileJSON, &profile.CreatedAt)
	if err != nil {
		if err = sqlErr(err); err == models.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	profile.ID = strconv.FormatInt(id, 10)

	// Decode JSONB to Go slice
	if len(mobileJSON) > 0 {
		if err := json.Unmarshal(mobileJSON, &profile.Mobile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}
