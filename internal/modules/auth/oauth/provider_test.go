package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"leximind-server/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestServer(t *testing.T, info googleUserInfo) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "at-1", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(info)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(srv *httptest.Server) *GoogleProvider {
	return newGoogleProvider(
		config.GoogleOAuthConfig{ClientID: "cid", ClientSecret: "secret", RedirectURL: "http://localhost/cb"},
		oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token", AuthStyle: oauth2.AuthStyleInParams},
		srv.URL+"/userinfo",
	)
}

func TestNewGoogleProvider_Disabled(t *testing.T) {
	assert.Nil(t, NewGoogleProvider(config.OAuthConfig{}))
	assert.Nil(t, NewGoogleProvider(config.OAuthConfig{Google: config.GoogleOAuthConfig{Enabled: true}}))
	assert.NotNil(t, NewGoogleProvider(config.OAuthConfig{Google: config.GoogleOAuthConfig{Enabled: true, ClientID: "a", ClientSecret: "b"}}))
}

func TestAuthCodeURL_CarriesStateAndPrompt(t *testing.T) {
	p := newTestProvider(newTestServer(t, googleUserInfo{}))
	u, err := url.Parse(p.AuthCodeURL("state-123"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "select_account", q.Get("prompt"))
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Contains(t, q.Get("scope"), "email")
}

func TestExchange_ReturnsProfile(t *testing.T) {
	srv := newTestServer(t, googleUserInfo{Email: "alice@example.com", EmailVerified: true, Name: "Alice", Picture: "https://img/a.png"})
	profile, err := newTestProvider(srv).Exchange(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, &Profile{Email: "alice@example.com", Name: "Alice", Picture: "https://img/a.png"}, profile)
}

func TestExchange_UnverifiedEmailRejected(t *testing.T) {
	srv := newTestServer(t, googleUserInfo{Email: "alice@example.com", EmailVerified: false})
	_, err := newTestProvider(srv).Exchange(context.Background(), "code-1")
	assert.True(t, errors.Is(err, ErrNoProfile))
}

func TestExchange_EmptyCode(t *testing.T) {
	srv := newTestServer(t, googleUserInfo{})
	_, err := newTestProvider(srv).Exchange(context.Background(), "")
	assert.True(t, errors.Is(err, ErrNoProfile))
}
