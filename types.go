package publishing

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Credentials is the union of the two login shapes the platform accepts.
// Presence of Code selects the exchange path; Login/Password are only
// meaningful when Code is empty.
type Credentials struct {
	Code     string `json:"code,omitempty"`
	Login    string `json:"login,omitempty"`
	Password string `json:"password,omitempty"`
}

// IsCodeExchange reports whether the credentials select the OAuth path
func (c Credentials) IsCodeExchange() bool {
	return c.Code != ""
}

// Authenticator resolves credentials to a local user identity
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (*User, error)
}

// TokenService mints, resolves, and revokes opaque bearer tokens
type TokenService interface {
	Issue(ctx context.Context, user *User) (*AccessToken, error)
	Resolve(ctx context.Context, token string) (*User, error)
	Revoke(ctx context.Context, token string) error
}

// ProviderProfile is the normalized profile the external identity provider
// returns for an exchanged code
type ProviderProfile struct {
	Login      string
	Name       string
	AvatarURL  string
	ProfileURL string
}

// CodeExchanger is the external identity provider seen from the core: trade
// a one-time code for a provider access token, then fetch the profile
type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (string, error)
	UserInfo(ctx context.Context, accessToken string) (*ProviderProfile, error)
}

// DefaultLogger returns the stdout fallback logger used when callers do not
// provide their own
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] PUB "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] PUB "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] PUB "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
