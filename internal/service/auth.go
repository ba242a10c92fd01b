package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clearlens/camwatch/internal/cache"
	"github.com/clearlens/camwatch/internal/domain"
	"github.com/clearlens/camwatch/internal/store"
	"github.com/clearlens/camwatch/pkg/api"
	"github.com/clearlens/camwatch/pkg/cryptox"
	"github.com/clearlens/camwatch/pkg/jwtx"
	"github.com/clearlens/camwatch/pkg/slogx"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// AuthService owns the token lifecycle: issuing pairs at login, validating
// presented tokens against the session cache, refreshing and revoking.
type AuthService struct {
	Codec      *jwtx.Codec
	Store      store.Store
	Cache      cache.Cache
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Login verifies a username/password pair and issues a fresh token pair.
// Unknown users, wrong passwords and unconfirmed accounts are all reported
// as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsEmailConfirmed {
		l.Info("login rejected for unconfirmed account", slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	if _, err := s.Store.Terminations().GetTerminationByUserID(ctx, user.ID); err == nil {
		l.Info("login rejected for terminated account", slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	loginData, err := s.Store.LoginData().GetLoginDataByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, loginData.PasswordHash); err != nil {
		l.Info("login password mismatch", slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	role, err := s.Store.Roles().GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	return s.IssuePair(ctx, api.Account{
		ID:       user.ID,
		Username: user.Username,
		Role:     role.Name,
		Salt:     user.Salt,
	})
}

// IssuePair signs a fresh access/refresh pair for the account. Both tokens
// carry the account's current salt.
func (s *AuthService) IssuePair(ctx context.Context, acct api.Account) (*domain.TokenPair, error) {
	access, err := s.Codec.Issue(acct.ID, acct.Username, acct.Role, jwtx.TokenTypeAccess, acct.Salt, s.accessTTL())
	if err != nil {
		return nil, err
	}

	refresh, err := s.Codec.Issue(acct.ID, acct.Username, acct.Role, jwtx.TokenTypeRefresh, acct.Salt, s.refreshTTL())
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Authenticate resolves a raw access token into an account. It is what the
// HTTP guard calls on every protected request. All authentication failures
// wrap api.ErrUnauthorized so the transport layer can collapse them into one
// opaque 401; any other error is an infrastructure fault.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*api.Account, error) {
	acct, err := s.validate(ctx, rawToken, jwtx.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// ValidateAccessToken reports whether an access token is currently valid,
// distinguishing rejection from backend failure.
func (s *AuthService) ValidateAccessToken(ctx context.Context, rawToken string) (bool, error) {
	_, err := s.validate(ctx, rawToken, jwtx.TokenTypeAccess)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Refresh validates a refresh token and issues a brand-new pair carrying the
// account's current salt. The old pair keeps working until it expires or the
// salt rotates; refresh does not revoke.
func (s *AuthService) Refresh(ctx context.Context, rawRefreshToken string) (*domain.TokenPair, error) {
	acct, err := s.validate(ctx, rawRefreshToken, jwtx.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return s.IssuePair(ctx, acct)
}

// Logout rotates the user's salt, which invalidates every outstanding token
// (access and refresh) in one move, then evicts the cached snapshot so the
// next validation sees the new salt immediately.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	l := slogx.FromContext(ctx)

	newSalt := uuid.NewString()
	if err := s.Store.Users().UpdateSalt(ctx, userID, newSalt); err != nil {
		return err
	}

	if err := s.Cache.DeleteAccount(ctx, userID); err != nil {
		// The DB salt already changed, so stale cache entries only delay the
		// revocation until the cache entry expires or is evicted.
		l.Error("failed to evict session cache entry after salt rotation",
			slog.String("user_id", userID), "err", err)
		return err
	}

	l.Info("rotated auth salt", slog.String("user_id", userID))
	return nil
}

// validate decodes a token, checks its type and compares its salt against
// the account snapshot loaded through the session cache.
func (s *AuthService) validate(ctx context.Context, rawToken, wantType string) (api.Account, error) {
	claims, err := s.Codec.Decode(rawToken)
	if err != nil {
		return api.Account{}, fmt.Errorf("decode: %s: %w", err, api.ErrUnauthorized)
	}

	if claims.TokenType != wantType {
		return api.Account{}, fmt.Errorf("token type %q where %q required: %w",
			claims.TokenType, wantType, api.ErrUnauthorized)
	}

	acct, err := s.lookupAccount(ctx, claims.Subject)
	if err != nil {
		return api.Account{}, err
	}

	if acct.Salt != claims.Salt {
		return api.Account{}, fmt.Errorf("salt mismatch: %w", api.ErrUnauthorized)
	}

	return acct, nil
}

// lookupAccount reads the account snapshot through the session cache: on a
// miss it loads from the database, populates the cache and then re-reads
// through it, so the cache stays the single source the hot path consults.
func (s *AuthService) lookupAccount(ctx context.Context, userID string) (api.Account, error) {
	acct, err := s.Cache.GetAccount(ctx, userID)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		return api.Account{}, err
	}

	snapshot, err := s.loadAccount(ctx, userID)
	if err != nil {
		return api.Account{}, err
	}

	if err := s.Cache.SetAccount(ctx, snapshot); err != nil {
		return api.Account{}, err
	}

	// Concurrent validations may have populated a different snapshot between
	// our set and this read; the cache's answer wins either way.
	acct, err = s.Cache.GetAccount(ctx, userID)
	if errors.Is(err, cache.ErrMiss) {
		// A nonzero TTL can expire the entry between the set and this read.
		// The snapshot we just built is still authoritative.
		return snapshot, nil
	}
	return acct, err
}

// loadAccount builds the denormalized snapshot from the database.
func (s *AuthService) loadAccount(ctx context.Context, userID string) (api.Account, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.Account{}, fmt.Errorf("unknown user %q: %w", userID, api.ErrUnauthorized)
		}
		return api.Account{}, err
	}

	role, err := s.Store.Roles().GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return api.Account{}, err
	}

	return api.Account{
		ID:       user.ID,
		Username: user.Username,
		Role:     role.Name,
		Salt:     user.Salt,
	}, nil
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *AuthService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}
