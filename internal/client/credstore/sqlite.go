package credstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"

	"github.com/dvelez2005/civicwatch/internal/client/credstore/migrations"
	"github.com/dvelez2005/civicwatch/internal/client/models"
	"github.com/dvelez2005/civicwatch/internal/common"
	"github.com/dvelez2005/civicwatch/internal/cryptox"
	"github.com/dvelez2005/civicwatch/internal/dbx"
)

const (
	saltKey  = "salt"
	nonceKey = "credentials_nonce"
	blobKey  = "credentials"
)

// RunMigrations brings the local credential database up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if necessary) the sqlite database at dsn and
// applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SQLiteStore is the Store implementation over a local sqlite database.
// The credentials blob is AES-GCM encrypted; the encryption key is derived
// from the passphrase and a per-database random salt.
type SQLiteStore struct {
	db         *sql.DB
	passphrase []byte
}

func NewSQLiteStore(db *sql.DB, passphrase []byte) *SQLiteStore {
	return &SQLiteStore{db: db, passphrase: passphrase}
}

func (s *SQLiteStore) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM secrets WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO secrets (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// ensureSalt returns the database's key-derivation salt, creating it on
// first use.
func (s *SQLiteStore) ensureSalt(ctx context.Context, q dbx.DBTX) ([]byte, error) {
	salt, err := s.get(ctx, q, saltKey)
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	salt, err = cryptox.MakeSalt()
	if err != nil {
		return nil, err
	}
	if err := s.set(ctx, q, saltKey, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// Load decrypts and returns the stored credentials. A missing blob, or one
// that no longer decrypts under the current passphrase, is reported as
// common.ErrNoCredentials so callers fall back to an anonymous session.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Credentials, error) {
	salt, err := s.get(ctx, s.db, saltKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoCredentials
		}
		return nil, fmt.Errorf("load salt: %w", err)
	}

	blob, err := s.get(ctx, s.db, blobKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoCredentials
		}
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	nonce, err := s.get(ctx, s.db, nonceKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoCredentials
		}
		return nil, fmt.Errorf("load nonce: %w", err)
	}

	key := cryptox.DeriveKey(s.passphrase, salt)
	defer common.WipeByteArray(key)

	plaintext, err := cryptox.DecryptBlob(blob, nonce, key)
	if err != nil {
		return nil, common.ErrNoCredentials
	}

	var creds models.Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, common.ErrNoCredentials
	}
	return &creds, nil
}

// Save encrypts creds and writes the salt, nonce and blob in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, creds *models.Credentials) error {
	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		salt, err := s.ensureSalt(ctx, tx)
		if err != nil {
			return fmt.Errorf("ensure salt: %w", err)
		}

		key := cryptox.DeriveKey(s.passphrase, salt)
		defer common.WipeByteArray(key)

		ciphertext, nonce, err := cryptox.EncryptBlob(plaintext, key)
		if err != nil {
			return fmt.Errorf("encrypt credentials: %w", err)
		}

		if err := s.set(ctx, tx, blobKey, ciphertext); err != nil {
			return err
		}
		return s.set(ctx, tx, nonceKey, nonce)
	})
}

// Clear wipes every stored secret, salt included.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM secrets`)
	return err
}
