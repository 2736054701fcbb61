package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/teamfinder/internal/dbx"
)

// SQLiteRepository implements Repository on the `storage` table. Expiry is
// stored as unix milliseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Entry, error) {
	var (
		value   []byte
		expires sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `SELECT value, expires_at FROM storage WHERE key = ?`, key).Scan(&value, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get storage[%s]: %w", key, err)
	}
	return &Entry{Key: key, Value: value, ExpiresAt: fromMillis(expires)}, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO storage (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, e.Key, e.Value, toMillis(e.ExpiresAt))
	if err != nil {
		return fmt.Errorf("failed to set storage[%s]: %w", e.Key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM storage WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete storage[%s]: %w", key, err)
	}
	return nil
}

// DeleteExpired removes entries that expired in a millisecond strictly
// before now's. Entries expiring within now's millisecond are left for the
// reader to judge, so rounding never drops a still-valid entry.
func (r *SQLiteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM storage WHERE expires_at IS NOT NULL AND expires_at < ?`, now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired storage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count expired storage: %w", err)
	}
	return n, nil
}

func toMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64).UTC()
	return &t
}
