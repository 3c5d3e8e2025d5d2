package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"membership-backend-go/internal/models"
)

// ProviderProfile is the raw profile as relayed by the backend's exchange
// endpoint. Avatar is the provider's bare hash, not a URL.
type ProviderProfile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar,omitempty"`
}

// Client calls the backend's pipeline endpoints.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a backend client. A nil httpc falls back to
// http.DefaultClient.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// ExchangeCode posts the authorization code to the backend and returns the
// provider profile it was exchanged for.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*ProviderProfile, error) {
	var resp struct {
		User ProviderProfile `json:"user"`
	}
	if err := c.postJSON(ctx, "/discord-oauth", map[string]any{"code": code}, &resp); err != nil {
		return nil, err
	}
	if resp.User.ID == "" {
		return nil, fmt.Errorf("exchange response carried no user")
	}
	return &resp.User, nil
}

// CreateCheckoutSession asks the backend to create a payment session and
// returns the processor-hosted redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, plan, identityID string, consent models.ConsentRecord) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	body := map[string]any{
		"priceType":       plan,
		"discord_user_id": identityID,
		"consent_display": consent.Display,
		"consent_roles":   consent.RoleGrant,
	}
	if err := c.postJSON(ctx, "/create-checkout-session", body, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("checkout response carried no url")
	}
	return resp.URL, nil
}

// GetReceipt fetches the reconciled receipt for a payment-session reference.
func (c *Client) GetReceipt(ctx context.Context, sessionID string) (*models.Receipt, error) {
	endpoint := c.baseURL + "/get-checkout-session?session_id=" + url.QueryEscape(sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}
	var receipt models.Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	return &receipt, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
}
