package publishing

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
)

// Auther resolves credentials to a local user. It selects the concrete
// strategy from the shape of the credentials: an exchange code goes to the
// external provider, anything else is verified as a login/password pair.
// Authenticating has no side effects beyond the user upsert on the exchange
// path; issuing a bearer token is TokenService's job.
type Auther struct {
	users     Users
	exchanger CodeExchanger
	logger    Logger
}

// NewAuthenticator returns a new Auther
func NewAuthenticator(users Users, exchanger CodeExchanger) *Auther {
	return &Auther{
		users:     users,
		exchanger: exchanger,
		logger:    defLogger{},
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Authenticate implements Authenticator
func (a *Auther) Authenticate(ctx context.Context, creds Credentials) (*User, error) {
	if creds.IsCodeExchange() {
		return a.exchangeCode(ctx, creds.Code)
	}
	return a.verifyPassword(ctx, creds.Login, creds.Password)
}

func (a *Auther) verifyPassword(ctx context.Context, login, password string) (*User, error) {
	if login == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := a.users.GetByLogin(ctx, login, ProviderStandard)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		a.logger.Debug("password verification failed for %q", login)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (a *Auther) exchangeCode(ctx context.Context, code string) (*User, error) {
	token, err := a.exchanger.Exchange(ctx, code)
	if err != nil {
		a.logger.Info("code exchange rejected: %v", err)
		return nil, ErrInvalidAuthenticationCode
	}

	profile, err := a.exchanger.UserInfo(ctx, token)
	if err != nil {
		a.logger.Error("provider profile fetch failed: %v", err)
		return nil, ErrInvalidAuthenticationCode
	}

	record := &User{
		Login:      profile.Login,
		Provider:   ProviderGithub,
		Name:       profile.Name,
		AvatarURL:  profile.AvatarURL,
		ProfileURL: profile.ProfileURL,
	}

	// Deterministic id for provider accounts keeps repeated exchanges for
	// the same identity stable even across environments.
	if id, err := hashid.NewUUID(profile.Login); err == nil {
		record.ID = id
	}

	user, err := a.users.GetOrCreateByLogin(ctx, record)
	if err != nil {
		return nil, err
	}

	return user, nil
}
