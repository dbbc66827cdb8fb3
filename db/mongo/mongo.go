package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"abinterior/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

const defaultConnectTimeout = 10 * time.Second

// MongoDB owns the one client shared by every repository. The client is created on
// first use; a failed dial leaves it nil so the next call dials again.
type MongoDB struct {
	URL            string
	Name           string
	ConnectTimeout time.Duration

	mu     sync.Mutex
	client *mongo.Client
	dials  singleflight.Group
}

func NewMongoDB(url, name string, timeout time.Duration) *MongoDB {
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	return &MongoDB{
		URL:            url,
		Name:           name,
		ConnectTimeout: timeout,
	}
}

// NewMongoDBFromClient wraps an already connected client.
func NewMongoDBFromClient(client *mongo.Client, name string) *MongoDB {
	return &MongoDB{Name: name, ConnectTimeout: defaultConnectTimeout, client: client}
}

func (m *MongoDB) Connect(ctx context.Context) error {
	_, err := m.Client(ctx)
	return err
}

// Client returns the shared client, dialing it when needed. Concurrent callers
// share one dial; each stops waiting when its own ctx ends.
func (m *MongoDB) Client(ctx context.Context) (*mongo.Client, error) {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client != nil {
		return client, nil
	}

	select {
	case res := <-m.dials.DoChan("connect", m.dial):
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Client), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, ctx.Err())
	}
}

func (m *MongoDB) dial() (any, error) {
	m.mu.Lock()
	if m.client != nil {
		defer m.mu.Unlock()
		return m.client, nil
	}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(m.URL).
		SetConnectTimeout(m.ConnectTimeout).
		SetServerSelectionTimeout(m.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}

	m.mu.Lock()
	m.client = client
	m.mu.Unlock()
	return client, nil
}

func (m *MongoDB) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := m.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(m.Name), nil
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}
