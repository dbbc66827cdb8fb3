package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"abinterior/db/postgres"
	"abinterior/models"

	"github.com/google/uuid"
)

type PostgresCustomerRepo struct {
	DB *postgres.PostgresDB
}

func NewPostgresCustomerRepo(db *postgres.PostgresDB) *PostgresCustomerRepo {
	return &PostgresCustomerRepo{DB: db}
}

const customerColumns = `id, name, phone, address, bill_number, amount_paid, amount_due, transactions, created_at, updated_at`

// ------------------------ Helper Functions ------------------------

func scanCustomer(scanner interface{ Scan(...any) error }) (*models.Customer, error) {
	var (
		c       models.Customer
		id      uuid.UUID
		ledger  []byte
		updated sql.NullTime
	)
	err := scanner.Scan(&id, &c.Name, &c.Phone, &c.Address, &c.BillNumber,
		&c.AmountPaid, &c.AmountDue, &ledger, &c.CreatedAt, &updated)
	if err != nil {
		return nil, err
	}

	c.ID = id.String()
	if updated.Valid {
		c.UpdatedAt = &updated.Time
	}
	c.Transactions = []models.Transaction{}
	if len(ledger) > 0 {
		if err := json.Unmarshal(ledger, &c.Transactions); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// withLedger locks one customer row, lets fn rewrite its ledger and stores the result.
func (r *PostgresCustomerRepo) withLedger(ctx context.Context, id uuid.UUID, fn func([]models.Transaction) ([]models.Transaction, error)) error {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return sqlErr(err)
	}
	defer tx.Rollback()

	var raw []byte
	if err := tx.QueryRowContext(ctx, `SELECT transactions FROM customers WHERE id=$1 FOR UPDATE`, id).Scan(&raw); err != nil {
		return sqlErr(err)
	}

	ledger := []models.Transaction{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ledger); err != nil {
			return err
		}
	}

	ledger, err = fn(ledger)
	if err != nil {
		return err
	}

	out, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE customers SET transactions=$1, updated_at=$2 WHERE id=$3`, out, time.Now().UTC(), id); err != nil {
		return sqlErr(err)
	}
	return sqlErr(tx.Commit())
}

// ------------------------ Queries ------------------------

func (r *PostgresCustomerRepo) FindAllCustomers(ctx context.Context) ([]*models.Customer, error) {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		return nil, sqlErr(err)
	}
	defer rows.Close()

	out := []*models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, sqlErr(rows.Err())
}

func (r *PostgresCustomerRepo) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return r.findOne(ctx, `WHERE id=$1`, uid)
}

func (r *PostgresCustomerRepo) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return r.findOne(ctx, `WHERE phone=$1 LIMIT 1`, phone)
}

func (r *PostgresCustomerRepo) findOne(ctx context.Context, where string, arg any) (*models.Customer, error) {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}
	c, err := scanCustomer(conn.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers `+where, arg))
	if err != nil {
		return nil, sqlErr(err)
	}
	return c, nil
}

// ------------------------ Mutations ------------------------

func (r *PostgresCustomerRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}
	if customer.Transactions == nil {
		customer.Transactions = []models.Transaction{}
	}
	ledger, err := json.Marshal(customer.Transactions)
	if err != nil {
		return err
	}

	id := uuid.New()
	_, err = conn.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, address, bill_number, amount_paid, amount_due, transactions, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, id, customer.Name, customer.Phone, customer.Address, customer.BillNumber,
		customer.AmountPaid, customer.AmountDue, ledger, customer.CreatedAt)
	if err != nil {
		return sqlErr(err)
	}
	customer.ID = id.String()
	return nil
}

func (r *PostgresCustomerRepo) UpdateCustomer(ctx context.Context, id string, fields models.CustomerFields) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return models.ErrNotFound
	}
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	res, err := conn.ExecContext(ctx, `
		UPDATE customers SET name=$1, phone=$2, address=$3, bill_number=$4, updated_at=$5
		WHERE id=$6
	`, fields.Name, fields.Phone, fields.Address, fields.BillNumber, time.Now().UTC(), uid)
	return affectedOne(res, err)
}

func (r *PostgresCustomerRepo) DeleteCustomer(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return models.ErrNotFound
	}
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	res, err := conn.ExecContext(ctx, `DELETE FROM customers WHERE id=$1`, uid)
	return affectedOne(res, err)
}

// AddTransaction appends in a single statement, so concurrent appends never lose each other.
func (r *PostgresCustomerRepo) AddTransaction(ctx context.Context, customerID string, tx models.Transaction) error {
	uid, err := uuid.Parse(customerID)
	if err != nil {
		return models.ErrNotFound
	}
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	entry, err := json.Marshal([]models.Transaction{tx})
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `
		UPDATE customers SET transactions = transactions || $1::jsonb, updated_at=$2
		WHERE id=$3
	`, entry, time.Now().UTC(), uid)
	return affectedOne(res, err)
}

func (r *PostgresCustomerRepo) UpdateTransaction(ctx context.Context, customerID string, tx models.Transaction, expectedVersion int) (int, error) {
	uid, err := uuid.Parse(customerID)
	if err != nil {
		return 0, models.ErrNotFound
	}

	err = r.withLedger(ctx, uid, func(ledger []models.Transaction) ([]models.Transaction, error) {
		for i := range ledger {
			if ledger[i].ID != tx.ID {
				continue
			}
			if expectedVersion > 0 && ledger[i].Version != expectedVersion {
				return nil, models.ErrConflict
			}
			tx.Version = ledger[i].Version + 1
			ledger[i] = tx
			return ledger, nil
		}
		return nil, models.ErrNotFound
	})
	if err != nil {
		return 0, err
	}
	return tx.Version, nil
}

func (r *PostgresCustomerRepo) DeleteTransaction(ctx context.Context, customerID, transactionID string) error {
	uid, err := uuid.Parse(customerID)
	if err != nil {
		return models.ErrNotFound
	}

	return r.withLedger(ctx, uid, func(ledger []models.Transaction) ([]models.Transaction, error) {
		for i := range ledger {
			if ledger[i].ID == transactionID {
				return append(ledger[:i], ledger[i+1:]...), nil
			}
		}
		return nil, models.ErrNotFound
	})
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return sqlErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
