package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/identity"
	"github.com/vietcart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AccountService handles account profile and administration operations
type AccountService struct {
	accountRepo identity.AccountRepository
	logger      *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo identity.AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// GetProfile returns the account projection for the given ID
func (s *AccountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*AccountInfo, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := toAccountInfo(account)
	return &info, nil
}

// UpdateProfile updates the account's display name and phone
func (s *AccountService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*AccountInfo, error) {
	account, err := s.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := account.UpdateProfile(input.Name, input.Phone); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to save profile update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	info := toAccountInfo(account)
	return &info, nil
}

// ChangePassword changes the account's password
func (s *AccountService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	account, err := s.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return shared.ErrNotFound
	}

	if err := account.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to save password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change password")
	}

	s.logger.Info("Password changed", zap.String("account_id", input.AccountID.String()))
	return nil
}

// ListAccounts lists accounts for the staff view
func (s *AccountService) ListAccounts(ctx context.Context, filter shared.Filter) (*shared.Paginated[AccountInfo], error) {
	filter.Normalize()

	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list accounts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list accounts")
	}

	total, err := s.accountRepo.Count(ctx, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count accounts")
	}

	infos := make([]AccountInfo, len(accounts))
	for i := range accounts {
		infos[i] = toAccountInfo(&accounts[i])
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ChangeRole changes an account's role (admin operation)
func (s *AccountService) ChangeRole(ctx context.Context, accountID uuid.UUID, role identity.Role) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return shared.ErrNotFound
	}

	if err := account.ChangeRole(role); err != nil {
		return err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change role")
	}

	s.logger.Info("Account role changed",
		zap.String("account_id", accountID.String()),
		zap.String("role", string(role)))
	return nil
}

// Deactivate disables an account (admin operation)
func (s *AccountService) Deactivate(ctx context.Context, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return shared.ErrNotFound
	}

	account.Deactivate()

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate account")
	}

	s.logger.Info("Account deactivated", zap.String("account_id", accountID.String()))
	return nil
}
