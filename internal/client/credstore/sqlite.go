package credstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/tablebook/tablebook/internal/client/credstore/migrations"
	"github.com/tablebook/tablebook/internal/cryptox"
	"github.com/tablebook/tablebook/internal/dbx"
)

// Row keys inside the credentials table. The sealed snapshot and its nonce
// always move together.
const (
	keySnapshot = "snapshot"
	keyNonce    = "nonce"
)

// OpenDatabase opens the local sqlite database at dsn and applies pending
// migrations.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open credential db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("run credential db migrations: %w", err)
	}
	return db, nil
}

// SQLiteStore keeps the snapshot in a local sqlite file, sealed with the
// device key so the token is never on disk in the clear.
type SQLiteStore struct {
	db  *sql.DB
	key []byte
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore wraps an opened database and a device key of
// cryptox.KeySize bytes.
func NewSQLiteStore(db *sql.DB, key []byte) (*SQLiteStore, error) {
	if len(key) != cryptox.KeySize {
		return nil, cryptox.ErrInvalidKey
	}
	return &SQLiteStore{db: db, key: key}, nil
}

func (s *SQLiteStore) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set credentials[%s]: %w", key, err)
	}
	return nil
}

// Load returns the stored snapshot, or (nil, nil) when none is stored.
// A snapshot that cannot be unsealed (device key rotated, file tampered)
// is reported as an error; callers treat it like a missing session.
func (s *SQLiteStore) Load(ctx context.Context) (*Credentials, error) {
	ciphertext, err := s.get(ctx, s.db, keySnapshot)
	if err != nil {
		return nil, err
	}
	nonce, err := s.get(ctx, s.db, keyNonce)
	if err != nil {
		return nil, err
	}
	if ciphertext == nil || nonce == nil {
		return nil, nil
	}

	var creds Credentials
	if err := cryptox.OpenRecord(ciphertext, nonce, s.key, &creds); err != nil {
		return nil, fmt.Errorf("unseal credentials: %w", err)
	}
	return &creds, nil
}

// Save seals and persists the snapshot. Ciphertext and nonce are written in
// one transaction so a crash cannot leave half a snapshot behind.
func (s *SQLiteStore) Save(ctx context.Context, creds *Credentials) error {
	if creds == nil || creds.Token == "" {
		return fmt.Errorf("refusing to save empty credentials")
	}

	ciphertext, nonce, err := cryptox.SealRecord(creds, s.key)
	if err != nil {
		return fmt.Errorf("seal credentials: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, keySnapshot, ciphertext); err != nil {
			return err
		}
		return s.set(ctx, tx, keyNonce, nonce)
	})
}

// Clear removes the snapshot. A no-op when nothing is stored.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
