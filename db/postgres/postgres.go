package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"abinterior/models"

	_ "github.com/lib/pq"
	"golang.org/x/sync/singleflight"
)

const defaultConnectTimeout = 10 * time.Second

// PostgresDB mirrors the mongo client: one pool, opened on first use.
type PostgresDB struct {
	URL            string
	ConnectTimeout time.Duration

	// OnConnect runs once on a freshly pinged pool before it is handed out.
	// An error discards the pool, so the next call dials and runs it again.
	OnConnect func(ctx context.Context, conn *sql.DB) error

	mu    sync.Mutex
	conn  *sql.DB
	dials singleflight.Group
	open  func(url string) (*sql.DB, error)
}

func NewPostgresDB(url string, timeout time.Duration) *PostgresDB {
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	return &PostgresDB{
		URL:            url,
		ConnectTimeout: timeout,
	}
}

// NewPostgresDBFromConn wraps an already opened pool.
func NewPostgresDBFromConn(conn *sql.DB) *PostgresDB {
	return &PostgresDB{ConnectTimeout: defaultConnectTimeout, conn: conn}
}

func (p *PostgresDB) Connect(ctx context.Context) error {
	_, err := p.Conn(ctx)
	return err
}

// Conn returns the shared pool, opening it when needed. Concurrent callers share
// one dial; each stops waiting when its own ctx ends.
func (p *PostgresDB) Conn(ctx context.Context) (*sql.DB, error) {
	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()
	if conn != nil {
		return conn, nil
	}

	select {
	case res := <-p.dials.DoChan("connect", p.dial):
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*sql.DB), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, ctx.Err())
	}
}

func (p *PostgresDB) dial() (any, error) {
	p.mu.Lock()
	if p.conn != nil {
		defer p.mu.Unlock()
		return p.conn, nil
	}
	p.mu.Unlock()

	open := p.open
	if open == nil {
		open = func(url string) (*sql.DB, error) { return sql.Open("postgres", url) }
	}
	conn, err := open(p.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}

	// Recommended pool tuning for Neon
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), p.ConnectTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
	if p.OnConnect != nil {
		if err := p.OnConnect(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, err)
		}
	}

	p.mu.Lock()
	p.conn = conn
	p.mu.Unlock()
	return conn, nil
}

func (p *PostgresDB) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
