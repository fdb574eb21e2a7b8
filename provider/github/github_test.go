package github

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientExchangeAndUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login/oauth/access_token":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))

			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			values, err := url.ParseQuery(string(body))
			assert.NoError(t, err)
			assert.Equal(t, "client-id", values.Get("client_id"))
			assert.Equal(t, "client-secret", values.Get("client_secret"))
			assert.Equal(t, "auth-code", values.Get("code"))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "token",
				"token_type":   "bearer",
			})
		case "/user":
			assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":         1234,
				"login":      "octo",
				"name":       "Octo Cat",
				"avatar_url": "https://example.com/avatar.png",
				"html_url":   "https://github.com/octo",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := New(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     server.URL + "/login/oauth/access_token",
		UserURL:      server.URL + "/user",
	})

	token, err := client.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "token", token)

	profile, err := client.UserInfo(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "octo", profile.Login)
	assert.Equal(t, "Octo Cat", profile.Name)
	assert.Equal(t, "https://example.com/avatar.png", profile.AvatarURL)
	assert.Equal(t, "https://github.com/octo", profile.ProfileURL)
}

func TestClientExchangeErrorNormalized(t *testing.T) {
	t.Run("error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error":             "bad_verification_code",
				"error_description": "bad code",
			})
		}))
		defer server.Close()

		client := New(Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			TokenURL:     server.URL,
		})

		_, err := client.Exchange(context.Background(), "bad-code")
		require.Error(t, err)

		var perr *ProviderError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "github", perr.Provider)
		assert.Equal(t, "exchange", perr.Operation)
		assert.Equal(t, http.StatusBadRequest, perr.Status)
		assert.Equal(t, "bad_verification_code", perr.Code)
	})

	t.Run("error body on 200, as github does", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": "bad_verification_code",
			})
		}))
		defer server.Close()

		client := New(Config{TokenURL: server.URL})

		_, err := client.Exchange(context.Background(), "bad-code")
		require.Error(t, err)

		var perr *ProviderError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "bad_verification_code", perr.Code)
	})

	t.Run("missing access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{})
		}))
		defer server.Close()

		client := New(Config{TokenURL: server.URL})

		_, err := client.Exchange(context.Background(), "code")
		require.Error(t, err)

		var perr *ProviderError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "missing_access_token", perr.Code)
	})
}

func TestClientUserInfoError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Bad credentials",
		})
	}))
	defer server.Close()

	client := New(Config{UserURL: server.URL})

	_, err := client.UserInfo(context.Background(), "stale-token")
	require.Error(t, err)

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "user_info", perr.Operation)
	assert.Equal(t, http.StatusUnauthorized, perr.Status)
	assert.Equal(t, "Bad credentials", perr.Description)
}
