package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkyard/petstock-api/internal/models"
	"github.com/inkyard/petstock-api/internal/repository"
	appErrors "github.com/inkyard/petstock-api/pkg/errors"
)

func newAuthFixture(t *testing.T) (*AuthService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	svc := NewAuthService(store, validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret:   "secret",
		TokenExpiry:   time.Hour,
		Issuer:        "petstock-api",
		AdminUsername: "admin",
		AdminPassword: "123",
	})
	require.NoError(t, svc.Bootstrap(context.Background()))
	return svc, store
}

func TestBootstrapSeedsAdminOnce(t *testing.T) {
	svc, store := newAuthFixture(t)

	// A second bootstrap against a populated store must not duplicate
	// or overwrite the administrator.
	require.NoError(t, svc.Bootstrap(context.Background()))

	accounts, err := store.LoadAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "admin", accounts[0].Username)
	assert.Equal(t, models.RoleAdmin, accounts[0].Role)
	assert.Equal(t, models.AccountActive, accounts[0].Status)
	assert.NotEqual(t, "123", accounts[0].PasswordHash)
}

func TestLoginSuccessEstablishesSession(t *testing.T) {
	svc, store := newAuthFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "admin", res.Account.Username)

	pointer, err := store.LoadActiveSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res.Account.ID, pointer)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, store := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	pointer, err := store.LoadActiveSession(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pointer)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginBlockedAccount(t *testing.T) {
	svc, store := newAuthFixture(t)

	info, err := svc.Register(context.Background(), models.RegisterRequest{Username: "clerk", Password: "hunter2"})
	require.NoError(t, err)

	accounts, err := store.LoadAccounts(context.Background())
	require.NoError(t, err)
	for i := range accounts {
		if accounts[i].ID == info.ID {
			accounts[i].Status = models.AccountBlocked
		}
	}
	require.NoError(t, store.SaveAccounts(context.Background(), accounts))

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "clerk", Password: "hunter2"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAccountBlocked.Code, appErrors.FromError(err).Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "admin", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUsernameTaken.Code, appErrors.FromError(err).Code)
}

func TestRegisterDoesNotSignIn(t *testing.T) {
	svc, store := newAuthFixture(t)

	info, err := svc.Register(context.Background(), models.RegisterRequest{Username: "clerk", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStandard, info.Role)
	assert.Equal(t, models.AccountActive, info.Status)

	pointer, err := store.LoadActiveSession(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pointer)
}

func TestLogoutIdempotent(t *testing.T) {
	svc, store := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))
	require.NoError(t, svc.Logout(context.Background()))

	pointer, err := store.LoadActiveSession(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pointer)
}

func TestCurrentSessionWithoutLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.CurrentSession(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestCurrentSessionBlockedMidSession(t *testing.T) {
	svc, store := newAuthFixture(t)

	info, err := svc.Register(context.Background(), models.RegisterRequest{Username: "clerk", Password: "hunter2"})
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "clerk", Password: "hunter2"})
	require.NoError(t, err)

	// Block the account while its session is live. The next resolution
	// must reject it and drop the stale pointer.
	accounts, err := store.LoadAccounts(context.Background())
	require.NoError(t, err)
	for i := range accounts {
		if accounts[i].ID == info.ID {
			accounts[i].Status = models.AccountBlocked
		}
	}
	require.NoError(t, store.SaveAccounts(context.Background(), accounts))

	_, err = svc.CurrentSession(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAccountBlocked.Code, appErrors.FromError(err).Code)

	pointer, err := store.LoadActiveSession(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pointer)
}

func TestResolveAccountDanglingPointer(t *testing.T) {
	svc, store := newAuthFixture(t)

	require.NoError(t, store.SaveActiveSession(context.Background(), "ghost-id"))

	_, err := svc.CurrentSession(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	pointer, err := store.LoadActiveSession(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pointer)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.Account.ID, claims.AccountID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestValidateTokenTampered(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.AccessToken + "x")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
