package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"xraynews/internal/model"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  expires_at TEXT
);
`

// SQLiteStore is the embedded fallback BriefStore, used when no Redis
// is configured. Expiry is enforced lazily on read plus a sweep at
// open time.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the KV database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 30000;",
		"PRAGMA synchronous = NORMAL;",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", stmt, err)
		}
	}

	if _, err := db.Exec(kvSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate kv schema: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.sweep(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) GetBrief(ctx context.Context, slug string) (model.Brief, error) {
	raw, err := s.get(ctx, BriefKey(slug))
	if err != nil {
		return model.Brief{}, err
	}
	var brief model.Brief
	if err := json.Unmarshal([]byte(raw), &brief); err != nil {
		return model.Brief{}, fmt.Errorf("decode brief %s: %w", slug, err)
	}
	return brief, nil
}

func (s *SQLiteStore) PutBrief(ctx context.Context, brief model.Brief, ttl time.Duration) error {
	raw, err := json.Marshal(brief)
	if err != nil {
		return fmt.Errorf("encode brief %s: %w", brief.Slug, err)
	}
	return s.put(ctx, BriefKey(brief.Slug), string(raw), ttl)
}

func (s *SQLiteStore) GetIndex(ctx context.Context) (model.FeedIndex, error) {
	raw, err := s.get(ctx, IndexKey())
	if errors.Is(err, ErrNotFound) {
		return model.FeedIndex{Items: []model.FeedIndexItem{}}, nil
	}
	if err != nil {
		return model.FeedIndex{}, err
	}
	var index model.FeedIndex
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		return model.FeedIndex{}, fmt.Errorf("decode feed index: %w", err)
	}
	if index.Items == nil {
		index.Items = []model.FeedIndexItem{}
	}
	return index, nil
}

func (s *SQLiteStore) PutIndex(ctx context.Context, index model.FeedIndex) error {
	raw, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode feed index: %w", err)
	}
	return s.put(ctx, IndexKey(), string(raw), 0)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value, expires_at FROM kv WHERE key = ?`, key)

	var value string
	var expiresAt sql.NullString
	if err := row.Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}

	if expiresAt.Valid {
		exp, err := time.Parse(time.RFC3339, expiresAt.String)
		if err != nil || !s.now().UTC().Before(exp) {
			_, _ = s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
			return "", ErrNotFound
		}
	}
	return value, nil
}

func (s *SQLiteStore) put(ctx context.Context, key, value string, ttl time.Duration) error {
	var expiresAt any
	if ttl > 0 {
		expiresAt = s.now().UTC().Add(ttl).Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) sweep(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE expires_at IS NOT NULL AND expires_at <= ?`,
		s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("sweep expired keys: %w", err)
	}
	return nil
}
