// Package session persists the client's session state between runs: small
// string values with an optional absolute expiry, and the backend's cookies.
//
// Reads never fail. A value that is missing, expired, malformed or cannot be
// read because of a storage error is reported as absent; the cause is logged.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/teamfinder/internal/client/repositories/storage"
	"github.com/dmitrijs2005/teamfinder/internal/dbx"
	"github.com/dmitrijs2005/teamfinder/internal/logging"
)

// Well-known keys.
const (
	// FlagKey holds "true" while the client believes the backend session is
	// valid.
	FlagKey = "authenticated"
	// CookiesKey holds the serialized backend cookies.
	CookiesKey = "cookies"
)

// DefaultTTL bounds how long a cached "authenticated" claim is trusted.
const DefaultTTL = 23*time.Hour + 30*time.Minute

// envelope is the stored representation. Expiry is unix nanoseconds, 0 when
// the value never expires.
type envelope struct {
	Value  string `json:"value"`
	Expiry int64  `json:"expiry,omitempty"`
}

// Store is a key/value store with optional per-key expiry.
type Store struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(db *sql.DB, logger logging.Logger, opts ...Option) *Store {
	s := &Store{db: db, logger: logger.With("component", "session-store"), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) repo(db dbx.DBTX) storage.Repository {
	return storage.NewSQLiteRepository(db)
}

// Set stores value under key. A positive ttl stamps the entry with the
// absolute expiry now+ttl; ttl <= 0 stores it without expiry.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	e, err := s.entry(key, value, ttl)
	if err != nil {
		return err
	}
	return s.repo(s.db).Set(ctx, e)
}

// Get returns the value for key if it is present and unexpired. An expired
// entry is deleted as a side effect.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	repo := s.repo(s.db)

	e, err := repo.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "session read failed", "key", key, "error", err)
		return "", false
	}
	if e == nil {
		return "", false
	}

	var env envelope
	if err := json.Unmarshal(e.Value, &env); err != nil {
		s.logger.Warn(ctx, "malformed session entry ignored", "key", key, "error", err)
		return "", false
	}

	if env.Expiry != 0 && !s.now().Before(time.Unix(0, env.Expiry)) {
		if err := repo.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "expired session entry not deleted", "key", key, "error", err)
		}
		return "", false
	}

	return env.Value, true
}

// Delete removes key. Failures are logged, not returned: a value that
// cannot be deleted will still be re-validated on the next read.
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.repo(s.db).Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "session delete failed", "key", key, "error", err)
	}
}

// PurgeExpired drops every expired entry. Called once at boot.
func (s *Store) PurgeExpired(ctx context.Context) {
	n, err := s.repo(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Warn(ctx, "purging expired session entries failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Debug(ctx, "expired session entries purged", "count", n)
	}
}

// Tx is a batch of writes applied atomically by Update.
type Tx struct {
	store *Store
	repo  storage.Repository
}

// Set behaves like Store.Set inside the transaction.
func (t *Tx) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	e, err := t.store.entry(key, value, ttl)
	if err != nil {
		return err
	}
	return t.repo.Set(ctx, e)
}

// Delete removes key inside the transaction.
func (t *Tx) Delete(ctx context.Context, key string) error {
	return t.repo.Delete(ctx, key)
}

// Update runs fn in a single transaction: either every write lands or none.
func (s *Store) Update(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, db dbx.DBTX) error {
		return fn(ctx, &Tx{store: s, repo: s.repo(db)})
	})
}

func (s *Store) entry(key, value string, ttl time.Duration) (storage.Entry, error) {
	env := envelope{Value: value}
	e := storage.Entry{Key: key}

	if ttl > 0 {
		exp := s.now().Add(ttl)
		env.Expiry = exp.UnixNano()
		e.ExpiresAt = &exp
	}

	b, err := json.Marshal(env)
	if err != nil {
		return storage.Entry{}, err
	}
	e.Value = b
	return e, nil
}
