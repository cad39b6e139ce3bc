package repository

import (
	"context"

	"github.com/inkyard/petstock-api/internal/models"
)

// Persisted keys. The store holds exactly three values: the two record
// collections and the active-session pointer.
const (
	keyAccounts = "accounts"
	keyPets     = "pets"
	keySession  = "session"
)

// Store is the durable key-value persistence layer behind every manager.
// Collections are read and written whole: callers load the full
// sequence, transform it in memory and write it back. Every write is
// immediately durable.
type Store interface {
	// SeedAccounts persists the given administrator account if and only
	// if no accounts collection has ever been written. It reports
	// whether seeding happened.
	SeedAccounts(ctx context.Context, admin models.Account) (bool, error)

	LoadAccounts(ctx context.Context) ([]models.Account, error)
	SaveAccounts(ctx context.Context, accounts []models.Account) error

	LoadPets(ctx context.Context) ([]models.Pet, error)
	SavePets(ctx context.Context, pets []models.Pet) error

	// LoadActiveSession returns the persisted account id of the active
	// session, or "" when no session is established.
	LoadActiveSession(ctx context.Context) (string, error)
	SaveActiveSession(ctx context.Context, accountID string) error
	ClearActiveSession(ctx context.Context) error
}
