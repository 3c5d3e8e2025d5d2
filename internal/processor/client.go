// Package processor implements the payment-processor client used by the
// Checkout Initiator and the Session Reconciler: checkout-session creation
// and retrieval of sessions, payment intents, and charges with selective
// sub-resource expansion.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultBaseURL is the production API base. Tests point the client at an
// httptest server instead.
const DefaultBaseURL = "https://api.stripe.com/v1"

// APIError is a non-2xx response from the processor. The body snippet is for
// diagnostics only and must never reach an end user.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("processor: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the processor's REST API with bearer authentication.
type Client struct {
	key     string
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger attaches a logger for diagnostic output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient builds a processor client authenticated with the given secret
// key.
func NewClient(key string, opts ...Option) *Client {
	c := &Client{
		key:     key,
		baseURL: DefaultBaseURL,
		httpc:   http.DefaultClient,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateSessionParams describes a checkout session to create. Metadata is
// carried verbatim onto the processor record and read back during
// reconciliation.
type CreateSessionParams struct {
	Mode              string
	PriceID           string
	Quantity          int64
	SuccessURL        string
	CancelURL         string
	ClientReferenceID string
	Metadata          map[string]string
}

// CreateCheckoutSession creates a hosted checkout session and returns the
// processor record, whose URL member is the redirect target.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", params.Mode)
	form.Set("line_items[0][price]", params.PriceID)
	quantity := params.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	form.Set("line_items[0][quantity]", strconv.FormatInt(quantity, 10))
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if params.ClientReferenceID != "" {
		form.Set("client_reference_id", params.ClientReferenceID)
	}
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var session CheckoutSession
	if err := c.postForm(ctx, "/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RetrieveCheckoutSession fetches a checkout session, expanding the named
// sub-resources inline.
func (c *Client) RetrieveCheckoutSession(ctx context.Context, id string, expand ...string) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.get(ctx, "/checkout/sessions/"+url.PathEscape(id), expand, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RetrievePaymentIntent fetches a payment intent, expanding the named
// sub-resources inline.
func (c *Client) RetrievePaymentIntent(ctx context.Context, id string, expand ...string) (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := c.get(ctx, "/payment_intents/"+url.PathEscape(id), expand, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// RetrieveCharge fetches a charge by identifier.
func (c *Client) RetrieveCharge(ctx context.Context, id string) (*Charge, error) {
	var charge Charge
	if err := c.get(ctx, "/charges/"+url.PathEscape(id), nil, &charge); err != nil {
		return nil, err
	}
	return &charge, nil
}

func (c *Client) get(ctx context.Context, path string, expand []string, out any) error {
	query := url.Values{}
	for _, e := range expand {
		query.Add("expand[]", e)
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("processor request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("processor rejected request",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
		)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode processor response: %w", err)
	}
	return nil
}
