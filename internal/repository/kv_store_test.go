package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkyard/petstock-api/internal/models"
)

func newMock(t *testing.T) (*KVStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv")).WillReturnResult(sqlmock.NewResult(0, 0))
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	store, err := NewKVStore(sqlxdb)
	require.NoError(t, err)
	return store, mock, func() {
		db.Close()
	}
}

func TestSeedAccountsFirstLoad(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ? LIMIT 1")).
		WithArgs("accounts").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	seeded, err := store.SeedAccounts(context.Background(), models.Account{
		ID:       "admin-1",
		Username: "admin",
		Role:     models.RoleAdmin,
		Status:   models.AccountActive,
	})
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAccountsAlreadyPresent(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":"admin-1"}]`)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ? LIMIT 1")).
		WithArgs("accounts").
		WillReturnRows(rows)

	seeded, err := store.SeedAccounts(context.Background(), models.Account{ID: "admin-1"})
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadPetsRoundTrip(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	pets := []models.Pet{{
		ID:          "PET-1234",
		Barcode:     "BC-55667788",
		Species:     "Corn Snake",
		Gene:        "Albino",
		Weight:      0.3,
		FeedingDate: "2024-05-01",
		CabinetID:   "A1",
		Status:      models.PetInStock,
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}}
	payload, err := json.Marshal(pets)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ? LIMIT 1")).
		WithArgs("pets").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(string(payload)))

	loaded, err := store.LoadPets(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, pets[0], loaded[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadPetsEmptyStore(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ? LIMIT 1")).
		WithArgs("pets").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	loaded, err := store.LoadPets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveSessionPointer(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")).
		WithArgs("session", "acc-1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ? LIMIT 1")).
		WithArgs("session").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("acc-1"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv WHERE key = ?")).
		WithArgs("session").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, store.SaveActiveSession(ctx, "acc-1"))

	id, err := store.LoadActiveSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", id)

	require.NoError(t, store.ClearActiveSession(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadActiveSessionUnset(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ? LIMIT 1")).
		WithArgs("session").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	id, err := store.LoadActiveSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
