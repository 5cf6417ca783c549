package identity

import (
	"context"

	"github.com/vietcart/backend/internal/domain/identity"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// GoogleAuthenticator is the slice of the OAuth flow the auth service needs
type GoogleAuthenticator interface {
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (*auth.GoogleProfile, error)
}

// AuthService handles authentication operations
type AuthService struct {
	accountRepo identity.AccountRepository
	jwtService  *auth.JWTService
	google      GoogleAuthenticator
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	accountRepo identity.AccountRepository,
	jwtService *auth.JWTService,
	google GoogleAuthenticator,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		google:      google,
		logger:      logger,
	}
}

// Register creates a local account and logs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := s.accountRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		s.logger.Warn("Registration with taken email", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	account, err := identity.NewAccount(input.Name, input.Email, input.Password, input.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to save new account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("email", account.Email))

	return s.issueTokens(account)
}

// Login authenticates a local account and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Login for unknown email", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !account.CanLogin() {
		s.logger.Warn("Login for deactivated account", zap.String("account_id", account.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !account.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	account.RecordLogin()
	if err := s.accountRepo.Save(ctx, account); err != nil {
		// Login still succeeds when the timestamp write fails
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("Account logged in", zap.String("account_id", account.ID.String()))

	return s.issueTokens(account)
}

// RefreshToken exchanges a valid refresh token for a fresh pair
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	accountID, err := claims.GetAccountUUID()
	if err != nil {
		return nil, shared.NewDomainError(auth.CodeTokenInvalid, "Invalid account ID in token")
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Account not found")
	}
	if !account.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account is no longer active")
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, account.Email, string(account.Role))
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	return &RefreshTokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// GoogleLoginURL returns the Google consent-screen URL for the given state
func (s *AuthService) GoogleLoginURL(state string) string {
	return s.google.AuthCodeURL(state)
}

// GoogleCallback completes the OAuth flow. An existing Google-linked account
// logs in; a local account with the same email gets the Google identity
// linked; otherwise a fresh account is created from the profile.
func (s *AuthService) GoogleCallback(ctx context.Context, input GoogleCallbackInput) (*AuthResult, error) {
	profile, err := s.google.FetchProfile(ctx, input.Code)
	if err != nil {
		s.logger.Warn("Google profile fetch failed", zap.Error(err))
		return nil, shared.NewDomainError(auth.CodeOAuthFailed, "Google authentication failed")
	}

	account, err := s.accountRepo.FindByGoogleID(ctx, profile.Subject)
	if err != nil {
		account, err = s.accountRepo.FindByEmail(ctx, profile.Email)
		if err == nil {
			if err := account.LinkGoogle(profile.Subject, profile.Picture); err != nil {
				return nil, err
			}
			s.logger.Info("Linked Google identity to existing account",
				zap.String("account_id", account.ID.String()))
		} else {
			account, err = identity.NewGoogleAccount(profile.Name, profile.Email, profile.Subject, profile.Picture)
			if err != nil {
				return nil, err
			}
			s.logger.Info("Account created from Google profile",
				zap.String("account_id", account.ID.String()),
				zap.String("email", account.Email))
		}

		if err := s.accountRepo.Save(ctx, account); err != nil {
			s.logger.Error("Failed to save Google account", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save account")
		}
	}

	if !account.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	account.RecordLogin()
	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	return s.issueTokens(account)
}

func (s *AuthService) issueTokens(account *identity.Account) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      string(account.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		Account:               toAccountInfo(account),
	}, nil
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError(auth.CodeTokenExpired, "Refresh token has expired")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError(auth.CodeTokenMaxRefresh, "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError(auth.CodeTokenInvalid, "Invalid refresh token")
	}
}
