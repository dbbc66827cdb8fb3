package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"abinterior/models"
)

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*models.Customer
	order     []string
	nextID    int
	calls     int
	err       error // returned by every call when set
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*models.Customer{}}
}

func (f *fakeCustomerRepo) touch() error {
	f.calls++
	return f.err
}

func (f *fakeCustomerRepo) FindAllCustomers(ctx context.Context) ([]*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	out := []*models.Customer{}
	for _, id := range f.order {
		if c, ok := f.customers[id]; ok {
			cp := *c
			cp.Transactions = append([]models.Transaction(nil), c.Transactions...)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	c, ok := f.customers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	cp.Transactions = append([]models.Transaction(nil), c.Transactions...)
	return &cp, nil
}

func (f *fakeCustomerRepo) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	for _, id := range f.order {
		if c, ok := f.customers[id]; ok && c.Phone == phone {
			return c, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeCustomerRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return err
	}
	f.nextID++
	customer.ID = fmt.Sprintf("c%d", f.nextID)
	cp := *customer
	f.customers[customer.ID] = &cp
	f.order = append(f.order, customer.ID)
	return nil
}

func (f *fakeCustomerRepo) UpdateCustomer(ctx context.Context, id string, fields models.CustomerFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return err
	}
	c, ok := f.customers[id]
	if !ok {
		return models.ErrNotFound
	}
	c.Name, c.Phone, c.Address, c.BillNumber = fields.Name, fields.Phone, fields.Address, fields.BillNumber
	now := time.Now()
	c.UpdatedAt = &now
	return nil
}

func (f *fakeCustomerRepo) DeleteCustomer(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return err
	}
	if _, ok := f.customers[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) AddTransaction(ctx context.Context, customerID string, tx models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return err
	}
	c, ok := f.customers[customerID]
	if !ok {
		return models.ErrNotFound
	}
	c.Transactions = append(c.Transactions, tx)
	return nil
}

func (f *fakeCustomerRepo) UpdateTransaction(ctx context.Context, customerID string, tx models.Transaction, expectedVersion int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return 0, err
	}
	c, ok := f.customers[customerID]
	if !ok {
		return 0, models.ErrNotFound
	}
	for i, t := range c.Transactions {
		if t.ID != tx.ID {
			continue
		}
		if expectedVersion > 0 && t.Version != expectedVersion {
			return 0, models.ErrConflict
		}
		tx.Version = t.Version + 1
		c.Transactions[i] = tx
		return tx.Version, nil
	}
	return 0, models.ErrNotFound
}

func (f *fakeCustomerRepo) DeleteTransaction(ctx context.Context, customerID, transactionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return err
	}
	c, ok := f.customers[customerID]
	if !ok {
		return models.ErrNotFound
	}
	for i, t := range c.Transactions {
		if t.ID == transactionID {
			c.Transactions = append(c.Transactions[:i], c.Transactions[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

type fakeLabourRepo struct {
	labours map[string]*models.Labour
	order   []string
	nextID  int
	calls   int
}

func newFakeLabourRepo() *fakeLabourRepo {
	return &fakeLabourRepo{labours: map[string]*models.Labour{}}
}

func (f *fakeLabourRepo) FindAllLabours(ctx context.Context) ([]*models.Labour, error) {
	f.calls++
	out := []*models.Labour{}
	for _, id := range f.order {
		if l, ok := f.labours[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLabourRepo) FindLabourByID(ctx context.Context, id string) (*models.Labour, error) {
	f.calls++
	l, ok := f.labours[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return l, nil
}

func (f *fakeLabourRepo) CreateLabour(ctx context.Context, labour *models.Labour) error {
	f.calls++
	f.nextID++
	labour.ID = fmt.Sprintf("l%d", f.nextID)
	f.labours[labour.ID] = labour
	f.order = append(f.order, labour.ID)
	return nil
}

func (f *fakeLabourRepo) DeleteLabour(ctx context.Context, id string) error {
	f.calls++
	if _, ok := f.labours[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.labours, id)
	return nil
}

func (f *fakeLabourRepo) AddLabourPayment(ctx context.Context, labourID string, payment models.LabourPayment) error {
	f.calls++
	l, ok := f.labours[labourID]
	if !ok {
		return models.ErrNotFound
	}
	l.Payments = append(l.Payments, payment)
	return nil
}

func (f *fakeLabourRepo) DeleteLabourPayment(ctx context.Context, labourID, paymentID string) error {
	f.calls++
	l, ok := f.labours[labourID]
	if !ok {
		return models.ErrNotFound
	}
	for i, p := range l.Payments {
		if p.ID == paymentID {
			l.Payments = append(l.Payments[:i], l.Payments[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

type fakeSummarizer struct {
	text    string
	err     error
	history string
	kind    SummaryKind
}

func (f *fakeSummarizer) Summarize(ctx context.Context, history string, kind SummaryKind) (string, error) {
	f.history, f.kind = history, kind
	return f.text, f.err
}

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestService() (*LedgerService, *fakeCustomerRepo, *fakeLabourRepo) {
	customers := newFakeCustomerRepo()
	labours := newFakeLabourRepo()
	svc := NewLedgerService(customers, labours, nil)
	svc.Now = func() time.Time { return fixedNow }
	n := 0
	svc.NewID = func() string {
		n++
		return fmt.Sprintf("tx-%d", n)
	}
	return svc, customers, labours
}
