package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/policy"
	"github.com/MKhiriev/go-site-keeper/internal/store"
	"github.com/MKhiriev/go-site-keeper/internal/utils"
	"github.com/MKhiriev/go-site-keeper/models"
)

// authService is the concrete implementation of AuthService.
// Tokens are HS256 JWTs whose subject is the numeric user ID; the user row
// is loaded on every call so a revoked admin flag takes effect immediately.
type authService struct {
	// userRepository looks up the user a token was issued for.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Identify validates token and returns the identity of its user.
//
// Returns:
//   - ErrUnauthenticated if the token is malformed, expired, signed with a
//     different key or issued for a user that no longer exists.
//   - ErrDependencyFailure if the user lookup fails for any other reason.
func (a *authService) Identify(ctx context.Context, token string) (*models.Identity, error) {
	log := logger.FromContext(ctx)

	parsed, err := utils.ValidateAndParseJWTToken(token, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "*authService.Identify").Msg("token rejected")
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, parsed.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Int64("user_id", parsed.UserID).Str("func", "*authService.Identify").Msg("token issued for unknown user")
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if err != nil {
		log.Err(err).Int64("user_id", parsed.UserID).Str("func", "*authService.Identify").Msg("error loading user")
		return nil, fmt.Errorf("%w: %w", ErrDependencyFailure, err)
	}

	return models.IdentityFromUser(user), nil
}

// Profile returns the user record of an authenticated caller.
func (a *authService) Profile(ctx context.Context, id *models.Identity) (models.User, error) {
	if err := policy.RequireAuthenticated(id); err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, id.UserID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", id.UserID).Str("func", "*authService.Profile").Msg("error loading profile")
		return models.User{}, classify(err)
	}

	return user, nil
}

// CreateToken issues a signed JWT for an existing user.
//
// The server does not log users in; tokens come from the external login
// flow. This method exists for operators (the -issue-token flag) and tests.
func (a *authService) CreateToken(ctx context.Context, userID int64) (models.Token, error) {
	log := logger.FromContext(ctx)

	if _, err := a.userRepository.FindUserByID(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Str("func", "*authService.CreateToken").Msg("cannot issue token for user")
		return models.Token{}, classify(err)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("func", "*authService.CreateToken").Msg("error generating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrDependencyFailure, err)
	}

	return token, nil
}
