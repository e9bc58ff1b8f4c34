// Package database owns transactional access to the slice-of-life database:
// a fixed-size pool of connections, the statement templates that run on them,
// and the helpers that hydrate result rows into domain records.
package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/slice-of-life/backend/internal/apierr"
	"github.com/slice-of-life/backend/internal/config"
)

// Conn is the part of a database connection the pool needs. *pgx.Conn
// satisfies it.
type Conn interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Close(ctx context.Context) error
}

type pooledConn struct {
	conn      Conn
	available bool
}

// Instance brokers exclusive, transactional access to a fixed set of live
// database connections. The pool size is the hard upper bound on in-flight
// transactions and the system's sole backpressure mechanism: when every
// connection is checked out, callers are rejected immediately rather than
// queued.
type Instance struct {
	mu   sync.Mutex
	pool []*pooledConn
}

// NewInstance dials cfg.DBConnections connections up front. Any dial failure
// closes whatever was already opened and fails construction.
func NewInstance(ctx context.Context, cfg *config.Config) (*Instance, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	in := &Instance{}
	for i := 0; i < cfg.DBConnections; i++ {
		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			in.Close(ctx)
			return nil, fmt.Errorf("opening connection %d of %d: %w", i+1, cfg.DBConnections, err)
		}
		in.pool = append(in.pool, &pooledConn{conn: conn, available: true})
	}
	return in, nil
}

func newInstanceWith(conns ...Conn) *Instance {
	in := &Instance{}
	for _, c := range conns {
		in.pool = append(in.pool, &pooledConn{conn: c, available: true})
	}
	return in
}

// acquire hands out the first available connection. It never blocks: an
// exhausted pool is reported to the caller, who owns any retry policy.
func (in *Instance) acquire() (*pooledConn, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	for _, pc := range in.pool {
		if pc.available {
			pc.available = false
			return pc, nil
		}
	}
	return nil, apierr.New(apierr.ServiceUnavailable, "no database connections available")
}

// release returns a connection to the pool. Must be called exactly once per
// successful acquire, after the transaction on it has been resolved.
func (in *Instance) release(pc *pooledConn) {
	in.mu.Lock()
	defer in.mu.Unlock()
	pc.available = true
}

// WithTransaction acquires a connection, begins a read-committed transaction
// on it, and runs fn. A nil return from fn commits; an error rolls back and
// propagates. The connection goes back to the pool strictly after the
// transaction is resolved, so no caller can ever acquire a connection with a
// dangling transaction on it.
func (in *Instance) WithTransaction(ctx context.Context, fn func(q Querier) error) error {
	pc, err := in.acquire()
	if err != nil {
		return err
	}
	defer in.release(pc)

	tx, err := pc.conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return apierr.Wrap(apierr.ServiceUnavailable, "could not begin transaction", err)
	}
	// The deferred rollback resolves the transaction before the connection is
	// released, even when fn panics. After a successful commit it is a no-op
	// returning pgx.ErrTxClosed.
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Printf("rollback failed: %v", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apierr.Wrap(apierr.ServiceUnavailable, "could not commit transaction", err)
	}
	return nil
}

// Close closes every pooled connection. Meant for process shutdown; it does
// not wait for checked-out connections.
func (in *Instance) Close(ctx context.Context) {
	in.mu.Lock()
	defer in.mu.Unlock()

	for _, pc := range in.pool {
		if err := pc.conn.Close(ctx); err != nil {
			log.Printf("closing pooled connection: %v", err)
		}
	}
	in.pool = nil
}
