package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/inkyard/petstock-api/internal/models"
)

// KVStore persists the record collections as JSON documents in a
// single-table key-value schema on the local SQLite file.
type KVStore struct {
	db *sqlx.DB
}

// NewKVStore creates the schema if needed and returns the store.
func NewKVStore(db *sqlx.DB) (*KVStore, error) {
	const schema = `CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create kv schema: %w", err)
	}
	return &KVStore{db: db}, nil
}

// SeedAccounts writes the bootstrap administrator on first-ever load.
func (s *KVStore) SeedAccounts(ctx context.Context, admin models.Account) (bool, error) {
	const query = `SELECT value FROM kv WHERE key = ? LIMIT 1`
	var raw string
	err := s.db.GetContext(ctx, &raw, query, keyAccounts)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("probe accounts key: %w", err)
	}

	if err := s.SaveAccounts(ctx, []models.Account{admin}); err != nil {
		return false, err
	}
	return true, nil
}

// LoadAccounts returns the full accounts collection in insertion order.
func (s *KVStore) LoadAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.getJSON(ctx, keyAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SaveAccounts replaces the accounts collection.
func (s *KVStore) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	return s.setJSON(ctx, keyAccounts, accounts)
}

// LoadPets returns the full pets collection, newest intake first.
func (s *KVStore) LoadPets(ctx context.Context) ([]models.Pet, error) {
	var pets []models.Pet
	if err := s.getJSON(ctx, keyPets, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// SavePets replaces the pets collection.
func (s *KVStore) SavePets(ctx context.Context, pets []models.Pet) error {
	return s.setJSON(ctx, keyPets, pets)
}

// LoadActiveSession returns the persisted session pointer, "" when unset.
func (s *KVStore) LoadActiveSession(ctx context.Context) (string, error) {
	const query = `SELECT value FROM kv WHERE key = ? LIMIT 1`
	var raw string
	if err := s.db.GetContext(ctx, &raw, query, keySession); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("load session pointer: %w", err)
	}
	return raw, nil
}

// SaveActiveSession persists the session pointer.
func (s *KVStore) SaveActiveSession(ctx context.Context, accountID string) error {
	return s.set(ctx, keySession, accountID)
}

// ClearActiveSession removes the session pointer. Idempotent.
func (s *KVStore) ClearActiveSession(ctx context.Context) error {
	const query = `DELETE FROM kv WHERE key = ?`
	if _, err := s.db.ExecContext(ctx, query, keySession); err != nil {
		return fmt.Errorf("clear session pointer: %w", err)
	}
	return nil
}

func (s *KVStore) getJSON(ctx context.Context, key string, dest interface{}) error {
	const query = `SELECT value FROM kv WHERE key = ? LIMIT 1`
	var raw string
	if err := s.db.GetContext(ctx, &raw, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) setJSON(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.set(ctx, key, string(payload))
}

func (s *KVStore) set(ctx context.Context, key, value string) error {
	const query = `INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
