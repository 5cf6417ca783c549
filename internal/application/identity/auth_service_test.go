package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/domain/identity"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/infrastructure/auth"
	"github.com/vietcart/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if acc := args.Get(0); acc != nil {
		return acc.(*identity.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) FindByEmail(ctx context.Context, email string) (*identity.Account, error) {
	args := m.Called(ctx, email)
	if acc := args.Get(0); acc != nil {
		return acc.(*identity.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) FindByGoogleID(ctx context.Context, googleID string) (*identity.Account, error) {
	args := m.Called(ctx, googleID)
	if acc := args.Get(0); acc != nil {
		return acc.(*identity.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Account, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Account), args.Error(1)
}

func (m *mockAccountRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountRepo) Save(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

type mockGoogle struct {
	mock.Mock
}

func (m *mockGoogle) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *mockGoogle) FetchProfile(ctx context.Context, code string) (*auth.GoogleProfile, error) {
	args := m.Called(ctx, code)
	if p := args.Get(0); p != nil {
		return p.(*auth.GoogleProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "unit-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "vietcart-test",
		MaxRefreshCount:        5,
	})
}

func newAuthService(repo *mockAccountRepo, google *mockGoogle) *AuthService {
	return NewAuthService(repo, newTestJWTService(), google, zap.NewNop())
}

func TestRegister(t *testing.T) {
	repo := new(mockAccountRepo)
	svc := newAuthService(repo, new(mockGoogle))

	repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Account")).Return(nil)

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Nguyen Van A",
		Email:    "new@example.com",
		Password: "s3cret-pass",
		Phone:    "0901234567",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "new@example.com", result.Account.Email)
	assert.Equal(t, "user", result.Account.Role)
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(mockAccountRepo)
	svc := newAuthService(repo, new(mockGoogle))

	existing, err := identity.NewAccount("Someone", "taken@example.com", "password123", "")
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "taken@example.com").Return(existing, nil)

	_, err = svc.Register(context.Background(), RegisterInput{
		Name:     "B",
		Email:    "taken@example.com",
		Password: "password123",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	repo := new(mockAccountRepo)
	svc := newAuthService(repo, new(mockGoogle))

	account, err := identity.NewAccount("Nguyen Van A", "user@example.com", "correct-pass", "")
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(account, nil)
	repo.On("Save", mock.Anything, account).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "user@example.com",
		Password: "correct-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotNil(t, account.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mockAccountRepo)
	svc := newAuthService(repo, new(mockGoogle))

	account, err := identity.NewAccount("Nguyen Van A", "user@example.com", "correct-pass", "")
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(account, nil)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "user@example.com",
		Password: "wrong-pass",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(mockAccountRepo)
	svc := newAuthService(repo, new(mockGoogle))

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever123",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code, "unknown email indistinguishable from bad password")
}

func TestLoginDeactivatedAccount(t *testing.T) {
	repo := new(mockAccountRepo)
	svc := newAuthService(repo, new(mockGoogle))

	account, err := identity.NewAccount("Nguyen Van A", "user@example.com", "correct-pass", "")
	require.NoError(t, err)
	account.Deactivate()
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(account, nil)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "user@example.com",
		Password: "correct-pass",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestRefreshToken(t *testing.T) {
	repo := new(mockAccountRepo)
	svc := newAuthService(repo, new(mockGoogle))

	account, err := identity.NewAccount("Nguyen Van A", "user@example.com", "correct-pass", "")
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(account, nil)
	repo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	repo.On("Save", mock.Anything, account).Return(nil)

	login, err := svc.Login(context.Background(), LoginInput{
		Email:    "user@example.com",
		Password: "correct-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestRefreshTokenInvalid(t *testing.T) {
	svc := newAuthService(new(mockAccountRepo), new(mockGoogle))

	_, err := svc.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: "garbage",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestGoogleCallbackNewAccount(t *testing.T) {
	repo := new(mockAccountRepo)
	google := new(mockGoogle)
	svc := newAuthService(repo, google)

	google.On("FetchProfile", mock.Anything, "auth-code").Return(&auth.GoogleProfile{
		Subject:       "google-sub-1",
		Email:         "new@gmail.com",
		EmailVerified: true,
		Name:          "Tran Thi B",
		Picture:       "https://lh3.example/avatar.jpg",
	}, nil)
	repo.On("FindByGoogleID", mock.Anything, "google-sub-1").Return(nil, shared.ErrNotFound)
	repo.On("FindByEmail", mock.Anything, "new@gmail.com").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Account")).Return(nil)

	result, err := svc.GoogleCallback(context.Background(), GoogleCallbackInput{Code: "auth-code"})
	require.NoError(t, err)
	assert.Equal(t, "new@gmail.com", result.Account.Email)
	assert.NotEmpty(t, result.AccessToken)
}

func TestGoogleCallbackLinksExistingLocalAccount(t *testing.T) {
	repo := new(mockAccountRepo)
	google := new(mockGoogle)
	svc := newAuthService(repo, google)

	local, err := identity.NewAccount("Nguyen Van A", "user@example.com", "correct-pass", "")
	require.NoError(t, err)

	google.On("FetchProfile", mock.Anything, "auth-code").Return(&auth.GoogleProfile{
		Subject:       "google-sub-2",
		Email:         "user@example.com",
		EmailVerified: true,
		Name:          "Nguyen Van A",
	}, nil)
	repo.On("FindByGoogleID", mock.Anything, "google-sub-2").Return(nil, shared.ErrNotFound)
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(local, nil)
	repo.On("Save", mock.Anything, local).Return(nil)

	result, err := svc.GoogleCallback(context.Background(), GoogleCallbackInput{Code: "auth-code"})
	require.NoError(t, err)
	require.NotNil(t, local.GoogleID)
	assert.Equal(t, "google-sub-2", *local.GoogleID)
	assert.Equal(t, local.ID, result.Account.ID)
}

func TestGoogleCallbackFetchFailure(t *testing.T) {
	repo := new(mockAccountRepo)
	google := new(mockGoogle)
	svc := newAuthService(repo, google)

	google.On("FetchProfile", mock.Anything, "bad-code").Return(nil, errors.New("exchange failed"))

	_, err := svc.GoogleCallback(context.Background(), GoogleCallbackInput{Code: "bad-code"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "OAUTH_FAILED", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
