package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteKV struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

var _ KV = (*SQLiteKV)(nil)

func NewSQLiteKV(ctx context.Context, db *sql.DB, opts Options) (*SQLiteKV, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := MigrateUp(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteKV{db: db, opts: opts, now: time.Now}, nil
}

// OpenSQLite opens (creating if needed) the database file at path with the
// named driver: DriverCGO (mattn/go-sqlite3) or DriverPureGo (modernc).
func OpenSQLite(ctx context.Context, path, driver string, opts Options) (*SQLiteKV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: db path is empty")
	}
	if driver == "" {
		driver = DriverCGO
	}
	if driver != DriverCGO && driver != DriverPureGo {
		return nil, fmt.Errorf("storage: unsupported driver %q", driver)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open(driver, sqliteDSN(path, driver))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	kv, err := NewSQLiteKV(ctx, db, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if s.opts.MaxValueBytes > 0 && len(value) > s.opts.MaxValueBytes {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrQuotaExceeded, key, len(value), s.opts.MaxValueBytes)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (s *SQLiteKV) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

// Entry returns the stored value with its last write time.
func (s *SQLiteKV) Entry(ctx context.Context, key string) (Entry, error) {
	var out Entry
	var updated string
	err := s.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM kv WHERE key = ?`, key).
		Scan(&out.Key, &out.Value, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	updatedAt, err := time.Parse(sqliteTimeLayout, updated)
	if err != nil {
		return Entry{}, err
	}
	out.UpdatedAt = updatedAt
	return out, nil
}

func sqliteDSN(path, driver string) string {
	if strings.HasPrefix(path, "file:") || path == ":memory:" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: path}
	q := u.Query()
	q.Set("mode", "rwc")
	if driver == DriverPureGo {
		q.Set("_pragma", "busy_timeout(5000)")
	} else {
		q.Set("_busy_timeout", "5000")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
