package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/inkyard/petstock-api/internal/models"
)

// MemoryStore is an in-memory Store used by tests and ephemeral runs.
// Values are held as serialized JSON so reads and writes round-trip
// exactly like the durable store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// SeedAccounts writes the bootstrap administrator on first-ever load.
func (s *MemoryStore) SeedAccounts(ctx context.Context, admin models.Account) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[keyAccounts]; ok {
		return false, nil
	}
	payload, err := json.Marshal([]models.Account{admin})
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", keyAccounts, err)
	}
	s.values[keyAccounts] = string(payload)
	return true, nil
}

// LoadAccounts returns the full accounts collection in insertion order.
func (s *MemoryStore) LoadAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.get(keyAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SaveAccounts replaces the accounts collection.
func (s *MemoryStore) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	return s.set(keyAccounts, accounts)
}

// LoadPets returns the full pets collection, newest intake first.
func (s *MemoryStore) LoadPets(ctx context.Context) ([]models.Pet, error) {
	var pets []models.Pet
	if err := s.get(keyPets, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// SavePets replaces the pets collection.
func (s *MemoryStore) SavePets(ctx context.Context, pets []models.Pet) error {
	return s.set(keyPets, pets)
}

// LoadActiveSession returns the session pointer, "" when unset.
func (s *MemoryStore) LoadActiveSession(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[keySession], nil
}

// SaveActiveSession persists the session pointer.
func (s *MemoryStore) SaveActiveSession(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[keySession] = accountID
	return nil
}

// ClearActiveSession removes the session pointer. Idempotent.
func (s *MemoryStore) ClearActiveSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, keySession)
	return nil
}

func (s *MemoryStore) get(key string, dest interface{}) error {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *MemoryStore) set(key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.values[key] = string(payload)
	s.mu.Unlock()
	return nil
}
