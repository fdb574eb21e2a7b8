package publishing

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// tokenByteLength is the entropy of a minted token: 32 bytes, 256 bits.
const tokenByteLength = 32

// issueMaxAttempts bounds the collision retry loop. The store's unique
// constraint is the arbiter; with 256-bit tokens a second collision in a row
// indicates a broken random source, not bad luck.
const issueMaxAttempts = 5

// TokenVault is the store backed TokenService. Tokens are opaque random
// strings; validity is exactly "the row exists", so resolution always hits
// the store and revocation takes effect immediately.
type TokenVault struct {
	tokens AccessTokens
	logger Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(tokens AccessTokens) *TokenVault {
	return &TokenVault{
		tokens: tokens,
		logger: defLogger{},
	}
}

func (v *TokenVault) WithLogger(logger Logger) *TokenVault {
	if logger != nil {
		v.logger = logger
	}
	return v
}

// Issue mints a fresh token for the user and persists the binding. Every
// login gets a new token; earlier tokens stay valid until logged out.
func (v *TokenVault) Issue(ctx context.Context, user *User) (*AccessToken, error) {
	if user == nil || user.ID.String() == "" {
		return nil, errors.New("cannot issue a token without a user", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	var lastErr error
	for attempt := 0; attempt < issueMaxAttempts; attempt++ {
		token, err := mintToken()
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to read from random source")
		}

		record := &AccessToken{
			Token:  token,
			UserID: user.ID,
		}

		created, err := v.tokens.Create(ctx, record)
		if err == nil {
			return created, nil
		}

		if !IsUniqueViolation(err) {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to persist access token")
		}

		v.logger.Error("access token collision, regenerating (attempt %d)", attempt)
		lastErr = err
	}

	return nil, errors.Wrap(lastErr, errors.CategoryInternal, "token generation kept colliding")
}

// Resolve returns the owner of the given token string, or fails with an
// invalid-token authorization error. Nothing is cached: a revoked token is
// rejected on the very next call.
func (v *TokenVault) Resolve(ctx context.Context, token string) (*User, error) {
	record, err := v.tokens.GetByToken(ctx, token)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidAccessToken
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve access token")
	}

	if record.User == nil {
		return nil, ErrInvalidAccessToken
	}

	return record.User, nil
}

// Revoke deletes the binding; used by logout
func (v *TokenVault) Revoke(ctx context.Context, token string) error {
	return v.tokens.DeleteByToken(ctx, token)
}

func mintToken() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
