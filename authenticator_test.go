package publishing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-publishing"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthenticatePassword(t *testing.T) {
	ctx := context.Background()

	hash, err := publishing.HashPassword("sekret")
	require.NoError(t, err)

	account := &publishing.User{
		Login:        "maciek",
		PasswordHash: hash,
		Provider:     publishing.ProviderStandard,
	}

	t.Run("valid login and password", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByLogin", mock.Anything, "maciek", publishing.ProviderStandard).
			Return(account, nil).Once()

		auther := publishing.NewAuthenticator(users, &MockExchanger{}).WithLogger(testLogger{})

		user, err := auther.Authenticate(ctx, publishing.Credentials{
			Login:    "maciek",
			Password: "sekret",
		})

		require.NoError(t, err)
		assert.Equal(t, "maciek", user.Login)
		users.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByLogin", mock.Anything, "maciek", publishing.ProviderStandard).
			Return(account, nil).Once()

		auther := publishing.NewAuthenticator(users, &MockExchanger{}).WithLogger(testLogger{})

		_, err := auther.Authenticate(ctx, publishing.Credentials{
			Login:    "maciek",
			Password: "not-it",
		})

		assert.Same(t, publishing.ErrInvalidCredentials, err)
	})

	t.Run("unknown login", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByLogin", mock.Anything, "ghost", publishing.ProviderStandard).
			Return(nil, repository.NewRecordNotFound()).Once()

		auther := publishing.NewAuthenticator(users, &MockExchanger{}).WithLogger(testLogger{})

		_, err := auther.Authenticate(ctx, publishing.Credentials{
			Login:    "ghost",
			Password: "whatever",
		})

		assert.Same(t, publishing.ErrInvalidCredentials, err)
	})

	t.Run("missing credentials", func(t *testing.T) {
		auther := publishing.NewAuthenticator(&MockUsers{}, &MockExchanger{}).WithLogger(testLogger{})

		_, err := auther.Authenticate(ctx, publishing.Credentials{Login: "maciek"})
		assert.Same(t, publishing.ErrMissingCredentials, err)

		_, err = auther.Authenticate(ctx, publishing.Credentials{Password: "sekret"})
		assert.Same(t, publishing.ErrMissingCredentials, err)
	})
}

func TestAuthenticateCodeExchange(t *testing.T) {
	ctx := context.Background()

	profile := &publishing.ProviderProfile{
		Login:      "octocat",
		Name:       "The Octocat",
		AvatarURL:  "https://avatars.example.com/octocat",
		ProfileURL: "https://github.com/octocat",
	}

	t.Run("provisions a provider account", func(t *testing.T) {
		expectedID, err := hashid.NewUUID("octocat")
		require.NoError(t, err)

		exchanger := &MockExchanger{}
		exchanger.On("Exchange", mock.Anything, "good-code").
			Return("provider-token", nil).Once()
		exchanger.On("UserInfo", mock.Anything, "provider-token").
			Return(profile, nil).Once()

		users := &MockUsers{}
		users.On("GetOrCreateByLogin", mock.Anything, mock.MatchedBy(func(u *publishing.User) bool {
			return u.Login == "octocat" &&
				u.Provider == publishing.ProviderGithub &&
				u.ID == expectedID
		})).Return(&publishing.User{
			ID:       expectedID,
			Login:    "octocat",
			Provider: publishing.ProviderGithub,
		}, nil).Once()

		auther := publishing.NewAuthenticator(users, exchanger).WithLogger(testLogger{})

		user, err := auther.Authenticate(ctx, publishing.Credentials{Code: "good-code"})
		require.NoError(t, err)
		assert.Equal(t, expectedID, user.ID)

		users.AssertExpectations(t)
		exchanger.AssertExpectations(t)
	})

	t.Run("same identity resolves to the same user", func(t *testing.T) {
		expectedID, err := hashid.NewUUID("octocat")
		require.NoError(t, err)

		existing := &publishing.User{
			ID:       expectedID,
			Login:    "octocat",
			Provider: publishing.ProviderGithub,
		}

		exchanger := &MockExchanger{}
		exchanger.On("Exchange", mock.Anything, "good-code").
			Return("provider-token", nil).Twice()
		exchanger.On("UserInfo", mock.Anything, "provider-token").
			Return(profile, nil).Twice()

		users := &MockUsers{}
		users.On("GetOrCreateByLogin", mock.Anything, mock.Anything).
			Return(existing, nil).Twice()

		auther := publishing.NewAuthenticator(users, exchanger).WithLogger(testLogger{})

		first, err := auther.Authenticate(ctx, publishing.Credentials{Code: "good-code"})
		require.NoError(t, err)

		second, err := auther.Authenticate(ctx, publishing.Credentials{Code: "good-code"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("provider rejects the code", func(t *testing.T) {
		exchanger := &MockExchanger{}
		exchanger.On("Exchange", mock.Anything, "bad-code").
			Return("", errors.New("bad_verification_code")).Once()

		auther := publishing.NewAuthenticator(&MockUsers{}, exchanger).WithLogger(testLogger{})

		_, err := auther.Authenticate(ctx, publishing.Credentials{Code: "bad-code"})
		assert.Same(t, publishing.ErrInvalidAuthenticationCode, err)
	})

	t.Run("profile fetch fails", func(t *testing.T) {
		exchanger := &MockExchanger{}
		exchanger.On("Exchange", mock.Anything, "good-code").
			Return("provider-token", nil).Once()
		exchanger.On("UserInfo", mock.Anything, "provider-token").
			Return(nil, errors.New("boom")).Once()

		auther := publishing.NewAuthenticator(&MockUsers{}, exchanger).WithLogger(testLogger{})

		_, err := auther.Authenticate(ctx, publishing.Credentials{Code: "good-code"})
		assert.Same(t, publishing.ErrInvalidAuthenticationCode, err)
	})
}
