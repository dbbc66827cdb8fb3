package repository

import (
	"context"
	"encoding/json"
	"time"

	"abinterior/db/postgres"
	"abinterior/models"

	"github.com/google/uuid"
)

type PostgresLabourRepo struct {
	DB *postgres.PostgresDB
}

func NewPostgresLabourRepo(db *postgres.PostgresDB) *PostgresLabourRepo {
	return &PostgresLabourRepo{DB: db}
}

func scanLabour(scanner interface{ Scan(...any) error }) (*models.Labour, error) {
	var (
		l        models.Labour
		id       uuid.UUID
		payments []byte
	)
	if err := scanner.Scan(&id, &l.Name, &l.Phone, &payments, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.ID = id.String()
	l.Payments = []models.LabourPayment{}
	if len(payments) > 0 {
		if err := json.Unmarshal(payments, &l.Payments); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

func (r *PostgresLabourRepo) FindAllLabours(ctx context.Context) ([]*models.Labour, error) {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, `SELECT id, name, phone, payments, created_at FROM labours ORDER BY name`)
	if err != nil {
		return nil, sqlErr(err)
	}
	defer rows.Close()

	out := []*models.Labour{}
	for rows.Next() {
		l, err := scanLabour(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, sqlErr(rows.Err())
}

func (r *PostgresLabourRepo) FindLabourByID(ctx context.Context, id string) (*models.Labour, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	l, err := scanLabour(conn.QueryRowContext(ctx, `SELECT id, name, phone, payments, created_at FROM labours WHERE id=$1`, uid))
	if err != nil {
		return nil, sqlErr(err)
	}
	return l, nil
}

func (r *PostgresLabourRepo) CreateLabour(ctx context.Context, labour *models.Labour) error {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	if labour.CreatedAt.IsZero() {
		labour.CreatedAt = time.Now().UTC()
	}
	if labour.Payments == nil {
		labour.Payments = []models.LabourPayment{}
	}
	payments, err := json.Marshal(labour.Payments)
	if err != nil {
		return err
	}

	id := uuid.New()
	_, err = conn.ExecContext(ctx, `
		INSERT INTO labours (id, name, phone, payments, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, id, labour.Name, labour.Phone, payments, labour.CreatedAt)
	if err != nil {
		return sqlErr(err)
	}
	labour.ID = id.String()
	return nil
}

func (r *PostgresLabourRepo) DeleteLabour(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return models.ErrNotFound
	}
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	res, err := conn.ExecContext(ctx, `DELETE FROM labours WHERE id=$1`, uid)
	return affectedOne(res, err)
}

func (r *PostgresLabourRepo) AddLabourPayment(ctx context.Context, labourID string, payment models.LabourPayment) error {
	uid, err := uuid.Parse(labourID)
	if err != nil {
		return models.ErrNotFound
	}
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	entry, err := json.Marshal([]models.LabourPayment{payment})
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `UPDATE labours SET payments = payments || $1::jsonb WHERE id=$2`, entry, uid)
	return affectedOne(res, err)
}

// DeleteLabourPayment filters the payment out inside postgres; zero rows means the
// labourer or the payment does not exist.
func (r *PostgresLabourRepo) DeleteLabourPayment(ctx context.Context, labourID, paymentID string) error {
	uid, err := uuid.Parse(labourID)
	if err != nil {
		return models.ErrNotFound
	}
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	res, err := conn.ExecContext(ctx, `
		UPDATE labours
		SET payments = COALESCE(
			(SELECT jsonb_agg(p) FROM jsonb_array_elements(payments) p WHERE p->>'id' <> $1),
			'[]'::jsonb)
		WHERE id=$2 AND payments @> jsonb_build_array(jsonb_build_object('id', $1::text))
	`, paymentID, uid)
	return affectedOne(res, err)
}
