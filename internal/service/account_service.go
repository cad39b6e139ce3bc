package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/inkyard/petstock-api/internal/models"
	appErrors "github.com/inkyard/petstock-api/pkg/errors"
)

type accountStore interface {
	LoadAccounts(ctx context.Context) ([]models.Account, error)
	SaveAccounts(ctx context.Context, accounts []models.Account) error
}

// AccountService exposes the administrator-only account management
// surface: listing accounts and blocking/unblocking standard staff.
type AccountService struct {
	store  accountStore
	logger *zap.Logger
}

// NewAccountService constructs an AccountService instance.
func NewAccountService(store accountStore, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{store: store, logger: logger}
}

// List returns every account in insertion order, hashes stripped.
func (s *AccountService) List(ctx context.Context) ([]models.AccountInfo, error) {
	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load accounts")
	}

	infos := make([]models.AccountInfo, 0, len(accounts))
	for _, a := range accounts {
		infos = append(infos, a.Info())
	}
	return infos, nil
}

// ToggleStatus flips the target account between active and blocked.
// Administrator accounts are never toggled, regardless of who asks:
// the call is a no-op that returns the unchanged account. An unknown
// id is also a no-op and returns nil.
func (s *AccountService) ToggleStatus(ctx context.Context, accountID string) (*models.AccountInfo, error) {
	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load accounts")
	}

	for i := range accounts {
		if accounts[i].ID != accountID {
			continue
		}

		if accounts[i].Role == models.RoleAdmin {
			info := accounts[i].Info()
			return &info, nil
		}

		if accounts[i].Status == models.AccountActive {
			accounts[i].Status = models.AccountBlocked
		} else {
			accounts[i].Status = models.AccountActive
		}

		if err := s.store.SaveAccounts(ctx, accounts); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist accounts")
		}

		s.logger.Info("account status toggled",
			zap.String("account_id", accountID),
			zap.String("status", string(accounts[i].Status)))
		info := accounts[i].Info()
		return &info, nil
	}

	return nil, nil
}
