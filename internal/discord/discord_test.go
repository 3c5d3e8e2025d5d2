package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeURL(t *testing.T) {
	client := NewClient("client-1", "secret", "https://app.example/callback")

	raw := client.AuthorizeURL("state-token")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "discord.com", parsed.Host)
	query := parsed.Query()
	assert.Equal(t, "client-1", query.Get("client_id"))
	assert.Equal(t, "https://app.example/callback", query.Get("redirect_uri"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "identify guilds.join", query.Get("scope"))
	assert.Equal(t, "state-token", query.Get("state"))
	assert.Equal(t, "consent", query.Get("prompt"))
}

func TestExchangeCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "auth-code-1", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok_1","token_type":"Bearer"}`))
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok_1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42","username":"taro","discriminator":"0001","avatar":"abcdef"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient("client-1", "secret", "https://app.example/callback",
		WithEndpoints(server.URL+"/oauth2/authorize", server.URL+"/oauth2/token"),
		WithAPIBase(server.URL),
	)

	user, err := client.ExchangeCode(context.Background(), "auth-code-1")
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "taro", user.Username)
	assert.Equal(t, "0001", user.Discriminator)
	assert.Equal(t, "abcdef", user.Avatar)
}

func TestExchangeCodeTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient("client-1", "secret", "https://app.example/callback",
		WithEndpoints(server.URL+"/oauth2/authorize", server.URL+"/oauth2/token"),
		WithAPIBase(server.URL),
	)

	_, err := client.ExchangeCode(context.Background(), "used-code")
	assert.Error(t, err)
}

func TestExchangeCodeProfileMissingID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok_1","token_type":"Bearer"}`))
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient("client-1", "secret", "https://app.example/callback",
		WithEndpoints(server.URL+"/oauth2/authorize", server.URL+"/oauth2/token"),
		WithAPIBase(server.URL),
	)

	_, err := client.ExchangeCode(context.Background(), "auth-code-1")
	assert.Error(t, err)
}

func TestAvatarURL(t *testing.T) {
	assert.Equal(t,
		"https://cdn.discordapp.com/avatars/42/abcdef.png",
		AvatarURL("42", "abcdef"),
	)
	assert.Equal(t, PlaceholderAvatarURL, AvatarURL("42", ""))
}
