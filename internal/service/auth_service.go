package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkyard/petstock-api/internal/models"
	appErrors "github.com/inkyard/petstock-api/pkg/errors"
)

type sessionStore interface {
	SeedAccounts(ctx context.Context, admin models.Account) (bool, error)
	LoadAccounts(ctx context.Context) ([]models.Account, error)
	SaveAccounts(ctx context.Context, accounts []models.Account) error
	LoadActiveSession(ctx context.Context) (string, error)
	SaveActiveSession(ctx context.Context, accountID string) error
	ClearActiveSession(ctx context.Context) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	TokenSecret   string
	TokenExpiry   time.Duration
	Issuer        string
	AdminUsername string
	AdminPassword string
}

// AuthService manages sessions: it authenticates credentials against
// the account collection and owns the persisted active-session pointer.
type AuthService struct {
	store     sessionStore
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(store sessionStore, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{store: store, validator: validate, logger: logger, config: config}
}

// Bootstrap seeds the well-known administrator account on an empty
// store. It must run before any other operation is served.
func (s *AuthService) Bootstrap(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash bootstrap password")
	}

	admin := models.Account{
		ID:           uuid.NewString(),
		Username:     s.config.AdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Status:       models.AccountActive,
		CreatedAt:    time.Now().UTC(),
	}

	seeded, err := s.store.SeedAccounts(ctx, admin)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed administrator account")
	}
	if seeded {
		s.logger.Info("seeded administrator account", zap.String("username", admin.Username))
	}
	return nil
}

// Login authenticates an account and establishes the active session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load accounts")
	}

	account, ok := findByUsername(accounts, req.Username)
	if !ok {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}
	if account.Status == models.AccountBlocked {
		return nil, appErrors.ErrAccountBlocked
	}

	if err := s.store.SaveActiveSession(ctx, account.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	token, expiresAt, err := s.generateAccessToken(account)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	issuedAt := time.Now().UTC()
	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		IssuedAt:    issuedAt,
		Account:     account.Info(),
	}, nil
}

// Register creates a new standard account. The caller is not signed in;
// a separate Login establishes the session.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AccountInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid register payload")
	}

	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load accounts")
	}

	// Username uniqueness is case-sensitive and spans the full lifetime
	// of the collection.
	if _, taken := findByUsername(accounts, req.Username); taken {
		return nil, appErrors.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         models.RoleStandard,
		Status:       models.AccountActive,
		CreatedAt:    time.Now().UTC(),
	}

	accounts = append(accounts, account)
	if err := s.store.SaveAccounts(ctx, accounts); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist account")
	}

	info := account.Info()
	return &info, nil
}

// Logout clears the active session pointer unconditionally. Idempotent.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.ClearActiveSession(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	return nil
}

// CurrentSession resolves the persisted session pointer against the
// current account collection. The referenced account's status is
// re-validated on every call: a block takes effect at the next
// authorization-sensitive action, and the stale session is cleared.
func (s *AuthService) CurrentSession(ctx context.Context) (*models.Account, error) {
	accountID, err := s.store.LoadActiveSession(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if accountID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	return s.ResolveAccount(ctx, accountID)
}

// ResolveAccount loads an account by id and enforces that it still
// exists and is not blocked. A dangling or blocked session pointer is
// cleared as a side effect.
func (s *AuthService) ResolveAccount(ctx context.Context, accountID string) (*models.Account, error) {
	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load accounts")
	}

	for i := range accounts {
		if accounts[i].ID != accountID {
			continue
		}
		if accounts[i].Status == models.AccountBlocked {
			s.dropSessionIfOwned(ctx, accountID)
			return nil, appErrors.ErrAccountBlocked
		}
		return &accounts[i], nil
	}

	s.dropSessionIfOwned(ctx, accountID)
	return nil, appErrors.ErrUnauthorized
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) dropSessionIfOwned(ctx context.Context, accountID string) {
	current, err := s.store.LoadActiveSession(ctx)
	if err != nil || current != accountID {
		return
	}
	if err := s.store.ClearActiveSession(ctx); err != nil {
		s.logger.Warn("failed to clear stale session", zap.Error(err))
	}
}

func (s *AuthService) generateAccessToken(account models.Account) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.TokenExpiry)
	claims := &models.JWTClaims{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   account.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func findByUsername(accounts []models.Account, username string) (models.Account, bool) {
	for _, a := range accounts {
		if a.Username == username {
			return a, true
		}
	}
	return models.Account{}, false
}
