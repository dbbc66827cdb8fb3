package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"abinterior/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func mockOpener(t *testing.T, delay time.Duration, opens *atomic.Int32) func(string) (*sql.DB, error) {
	return func(string) (*sql.DB, error) {
		opens.Add(1)
		time.Sleep(delay)
		conn, _, err := sqlmock.New()
		if err != nil {
			t.Errorf("sqlmock: %v", err)
		}
		return conn, err
	}
}

func TestConnConcurrentCallersShareOneDial(t *testing.T) {
	const (
		callers = 8
		delay   = 200 * time.Millisecond
	)
	var opens atomic.Int32
	p := NewPostgresDB("postgres://example", time.Second)
	p.open = mockOpener(t, delay, &opens)

	conns := make([]*sql.DB, callers)
	errs := make([]error, callers)
	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conns[i], errs[i] = p.Conn(context.Background())
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	if n := opens.Load(); n != 1 {
		t.Errorf("pool opened %d times", n)
	}
	if elapsed > 3*delay {
		t.Errorf("callers waited %v, want about one dial (%v)", elapsed, delay)
	}
	for i := range conns {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if conns[i] != conns[0] {
			t.Errorf("caller %d got a different pool", i)
		}
	}
}

func TestConnCallerContextEndsWait(t *testing.T) {
	var opens atomic.Int32
	p := NewPostgresDB("postgres://example", time.Second)
	p.open = mockOpener(t, 500*time.Millisecond, &opens)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Conn(ctx)
	if !errors.Is(err, models.ErrUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Errorf("cancelled caller waited %v", elapsed)
	}
}

func TestConnUnreachableServerConcurrent(t *testing.T) {
	const timeout = 300 * time.Millisecond
	p := NewPostgresDB("postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1", timeout)

	var wg sync.WaitGroup
	errs := make([]error, 6)
	start := time.Now()
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.Conn(context.Background())
		}(i)
	}
	wg.Wait()

	if elapsed := time.Since(start); elapsed > 3*timeout {
		t.Errorf("slowest caller waited %v", elapsed)
	}
	for i, err := range errs {
		if !errors.Is(err, models.ErrUnavailable) {
			t.Errorf("caller %d: err = %v", i, err)
		}
	}
}

func TestOnConnectRetriedUntilItSucceeds(t *testing.T) {
	var opens atomic.Int32
	p := NewPostgresDB("postgres://example", time.Second)
	p.open = mockOpener(t, 0, &opens)

	runs := 0
	p.OnConnect = func(ctx context.Context, conn *sql.DB) error {
		runs++
		if runs == 1 {
			return errors.New("dirty database version 1")
		}
		return nil
	}

	if _, err := p.Conn(context.Background()); !errors.Is(err, models.ErrUnavailable) {
		t.Fatalf("first connect err = %v, want unavailable", err)
	}
	if _, err := p.Conn(context.Background()); err != nil {
		t.Fatalf("second connect: %v", err)
	}
	if _, err := p.Conn(context.Background()); err != nil {
		t.Fatalf("cached connect: %v", err)
	}
	if runs != 2 || opens.Load() != 2 {
		t.Errorf("hook ran %d times over %d opens, want 2 and 2", runs, opens.Load())
	}
}

func TestDisconnectAllowsRedial(t *testing.T) {
	var opens atomic.Int32
	p := NewPostgresDB("postgres://example", time.Second)
	p.open = mockOpener(t, 0, &opens)

	if err := p.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	_ = p.Disconnect(context.Background())
	if err := p.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if opens.Load() != 2 {
		t.Errorf("opens = %d", opens.Load())
	}
}
