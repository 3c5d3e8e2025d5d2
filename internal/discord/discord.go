// Package discord implements the identity-provider client: building the
// authorization URL, exchanging an authorization code for a profile, and
// deriving avatar URLs from the provider's CDN template.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Provider endpoints. Tests override these per client via options.
const (
	DefaultAuthorizeURL = "https://discord.com/oauth2/authorize"
	DefaultTokenURL     = "https://discord.com/api/oauth2/token"
	DefaultAPIBase      = "https://discord.com/api"

	cdnAvatarTemplate = "https://cdn.discordapp.com/avatars/%s/%s.png"

	// PlaceholderAvatarURL is shown when the profile carries no avatar hash.
	PlaceholderAvatarURL = "https://cdn.jsdelivr.net/gh/twitter/twemoji@14.0.2/assets/svg/1f464.svg"
)

// Scopes requested during authorization. guilds.join is needed so the
// downstream role-granting process can add the supporter to the server.
var Scopes = []string{"identify", "guilds.join"}

// User is the raw profile returned by the provider's /users/@me endpoint.
// Avatar is the bare avatar hash, not a URL; see AvatarURL.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar,omitempty"`
}

// Client performs the authorization-code exchange and profile fetch.
type Client struct {
	oauth   *oauth2.Config
	httpc   *http.Client
	apiBase string
	log     *zap.Logger
}

// Option customizes a Client, mainly for tests.
type Option func(*Client)

// WithEndpoints overrides the provider's authorize/token endpoints.
func WithEndpoints(authorizeURL, tokenURL string) Option {
	return func(c *Client) {
		c.oauth.Endpoint = oauth2.Endpoint{AuthURL: authorizeURL, TokenURL: tokenURL}
	}
}

// WithAPIBase overrides the provider's REST API base URL.
func WithAPIBase(base string) Option {
	return func(c *Client) { c.apiBase = base }
}

// WithHTTPClient overrides the HTTP client used for all provider calls.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger attaches a logger for diagnostic output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient builds a provider client for the given OAuth application.
func NewClient(clientID, clientSecret, redirectURI string, opts ...Option) *Client {
	c := &Client{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  DefaultAuthorizeURL,
				TokenURL: DefaultTokenURL,
			},
		},
		httpc:   http.DefaultClient,
		apiBase: DefaultAPIBase,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthorizeURL returns the provider authorization URL for the given state
// token. prompt=consent forces the consent screen even for returning users,
// so the requested scopes are always re-acknowledged.
func (c *Client) AuthorizeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "consent"))
}

// ExchangeCode redeems an authorization code for an access token and fetches
// the profile it belongs to. The code is single-use on the provider side; a
// second exchange of the same code fails there, which is why callers guard
// against duplicate invocation before reaching this point.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*User, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpc)

	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("profile fetch rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("decode profile: missing user id")
	}
	return &user, nil
}

// AvatarURL derives the CDN avatar URL for a user, or the placeholder when
// the profile has no avatar hash.
func AvatarURL(userID, avatarHash string) string {
	if avatarHash == "" {
		return PlaceholderAvatarURL
	}
	return fmt.Sprintf(cdnAvatarTemplate, userID, avatarHash)
}
