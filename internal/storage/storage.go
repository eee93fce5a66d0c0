package storage

import (
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultBucket is used when a bucket name is blank.
const DefaultBucket = "default"

type Store struct {
	db *sql.DB
}

// Bucket is a view of the store restricted to one namespace. Keys in
// different buckets never collide.
type Bucket struct {
	store *Store
	name  string
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
	bucket TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (bucket, key)
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *Store) Bucket(name string) *Bucket {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultBucket
	}
	return &Bucket{store: s, name: name}
}

func (b *Bucket) Name() string {
	return b.name
}

// Get returns the value under key and whether it exists.
func (b *Bucket) Get(key string) (string, bool, error) {
	var value string
	err := b.store.db.QueryRow(`SELECT value FROM kv WHERE bucket = ? AND key = ?;`, b.name, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (b *Bucket) Set(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := b.store.db.Exec(`
INSERT INTO kv (bucket, key, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(bucket, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		b.name, key, value, now)
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
