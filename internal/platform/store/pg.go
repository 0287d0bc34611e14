package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"verihub/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGConfig configures postgres connectivity
type PGConfig struct {
	URL      string
	MaxConns int32

	// Boot knobs
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

const notifyChannel = "verihub_slot_changes"

const slotsSchema = `
create table if not exists slots (
	key        text primary key,
	value      bytea not null,
	updated_at timestamptz not null default now()
)`

// PGStore is a postgres backed KV using LISTEN/NOTIFY for watches
type PGStore struct {
	pool *pgxpool.Pool
	log  logger.Logger
}

var newPool = pgxpool.NewWithConfig // seam

// OpenPG opens the pool, waits for the database, and ensures the schema
func OpenPG(ctx context.Context, cfg PGConfig) (*PGStore, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	maxAttempts := cfg.ConnectRetries
	if maxAttempts <= 0 {
		maxAttempts = 20
	}
	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < maxAttempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = pool.Ping(toCtx)
		cancel()

		if lastErr == nil {
			if _, err := pool.Exec(ctx, slotsSchema); err != nil {
				pool.Close()
				return nil, fmt.Errorf("ensure slots schema: %w", err)
			}
			return &PGStore{pool: pool, log: *logger.Named("store.pg")}, nil
		}
		if ctx.Err() != nil {
			pool.Close()
			return nil, ctx.Err()
		}
		time.Sleep(backoff)
		if backoff < backoffCeiling {
			backoff *= 2
			if backoff > backoffCeiling {
				backoff = backoffCeiling
			}
		}
	}

	pool.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", maxAttempts, lastErr)
}

// Pool exposes the underlying pool for integration tests
func (s *PGStore) Pool() *pgxpool.Pool { return s.pool }

// Get implements KV
func (s *PGStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `select value from slots where key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get slot %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements KV. The upsert and the notify run in one transaction so
// watchers never observe a notification without the row
func (s *PGStore) Set(ctx context.Context, key string, value []byte) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("set slot %s: %w", key, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		insert into slots (key, value, updated_at)
		values ($1, $2, now())
		on conflict (key) do update set value = excluded.value, updated_at = now()`,
		key, value,
	); err != nil {
		return fmt.Errorf("set slot %s: %w", key, err)
	}
	if _, err := tx.Exec(ctx, `select pg_notify($1, $2)`, notifyChannel, key); err != nil {
		return fmt.Errorf("notify slot %s: %w", key, err)
	}
	return tx.Commit(ctx)
}

// Delete implements KV
func (s *PGStore) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `delete from slots where key = $1`, key); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// Watch implements KV. It holds a dedicated connection on LISTEN and
// fetches the current value on each notification for key
func (s *PGStore) Watch(ctx context.Context, key string) (<-chan Event, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", key, err)
	}
	if _, err := conn.Exec(ctx, `listen `+notifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("watch %s: %w", key, err)
	}

	ch := make(chan Event, 16)
	go func() {
		defer close(ch)
		defer conn.Release()
		for {
			n, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.log.Error().Err(err).Str("key", key).Msg("watch ended")
				}
				return
			}
			if n.Payload != key {
				continue
			}
			value, ok, err := s.Get(ctx, key)
			if err != nil || !ok {
				continue
			}
			select {
			case ch <- Event{Key: key, Value: value}:
			default:
			}
		}
	}()
	return ch, nil
}

// Close implements KV
func (s *PGStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}
