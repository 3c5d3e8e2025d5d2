package flow

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"membership-backend-go/internal/discord"
	"membership-backend-go/internal/models"
	"membership-backend-go/internal/telemetry"
)

// Localized user-facing messages. Failures never expose backend internals.
const (
	msgAuthFailed = "認証に失敗しました。もう一度お試しください。"
)

// defaultLoginDelay is how long the binder waits before auto-redirecting an
// unauthenticated visitor to the identity provider.
const defaultLoginDelay = time.Second

// Binder performs identity binding: it consumes an authorization code from
// the navigation context exactly once, exchanges it for a profile through
// the backend, and persists the resulting Identity in the store.
//
// Two rules make the code single-use. First, the code is stripped from the
// visible address synchronously, before any exchange work begins, so a
// duplicate invocation observes no code. Second, a consumed flag is set
// under the lock before the exchange starts, covering the case where two
// invocations race ahead of the URL rewrite.
type Binder struct {
	api          *Client
	store        *IdentityStore
	nav          Navigator
	authorizeURL func(state string) string
	report       telemetry.Reporter
	loginDelay   time.Duration

	mu         sync.Mutex
	consumed   bool // a code has been accepted in this navigation context
	exchanging bool // an exchange is currently in flight
	identity   *models.Identity
	errMsg     string
	timer      *time.Timer
}

// BinderOption customizes a Binder.
type BinderOption func(*Binder)

// WithLoginDelay overrides the auto-login delay.
func WithLoginDelay(d time.Duration) BinderOption {
	return func(b *Binder) { b.loginDelay = d }
}

// NewBinder wires a binder to the backend client, the identity store, and
// the navigation context. The store is read once here, mirroring a read at
// component mount.
func NewBinder(api *Client, store *IdentityStore, nav Navigator, authorizeURL func(state string) string, report telemetry.Reporter, opts ...BinderOption) *Binder {
	if report == nil {
		report = telemetry.NewNop()
	}
	b := &Binder{
		api:          api,
		store:        store,
		nav:          nav,
		authorizeURL: authorizeURL,
		report:       report,
		loginDelay:   defaultLoginDelay,
		identity:     store.Load(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// HandleCallback processes the navigation context after a provider redirect.
// When no authorization code is present it does nothing. Otherwise it strips
// the code (and state) from the visible address, claims the one-shot guard,
// and performs the exchange. Invoking it again - even concurrently - never
// exchanges a second time.
func (b *Binder) HandleCallback(ctx context.Context, pageURL *url.URL) {
	query := pageURL.Query()
	code := query.Get("code")
	if code == "" {
		return
	}

	// Strip the one-time credential before anything else happens.
	query.Del("code")
	query.Del("state")
	clean := *pageURL
	clean.RawQuery = query.Encode()
	b.nav.ReplaceURL(clean.String())

	b.mu.Lock()
	if b.consumed {
		b.mu.Unlock()
		return
	}
	b.consumed = true
	b.exchanging = true
	b.stopTimerLocked()
	b.mu.Unlock()

	profile, err := b.api.ExchangeCode(ctx, code)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.exchanging = false

	if err != nil {
		b.errMsg = msgAuthFailed
		b.report.CaptureError(err, map[string]string{"stage": "oauth_callback"})
		return
	}

	identity := &models.Identity{
		ID:            profile.ID,
		Name:          profile.Username,
		Discriminator: profile.Discriminator,
		Avatar:        discord.AvatarURL(profile.ID, profile.Avatar),
	}
	if saveErr := b.store.Save(identity); saveErr != nil {
		// The bind still succeeds for this session; only persistence is lost.
		b.report.CaptureError(saveErr, map[string]string{"stage": "identity_store"})
	}
	b.identity = identity
	b.errMsg = ""
	b.report.Event("login_success", map[string]string{"provider": "discord"})
}

// ScheduleLogin arms the auto-login timer: after the configured delay an
// unauthenticated visitor is sent to the identity provider. The timer is not
// armed while a code is being processed (or was already consumed), and it is
// cancelled as soon as an identity resolves.
func (b *Binder) ScheduleLogin() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.identity != nil || b.exchanging || b.consumed || b.timer != nil {
		return
	}
	b.timer = time.AfterFunc(b.loginDelay, func() {
		b.report.Event("login_start", map[string]string{"provider": "discord"})
		b.nav.Navigate(b.authorizeURL(uuid.NewString()))
	})
}

// BeginLogin immediately navigates to the identity provider. This is the
// user-initiated retry path after a failed exchange.
func (b *Binder) BeginLogin() {
	b.report.Event("login_start", map[string]string{"provider": "discord"})
	b.nav.Navigate(b.authorizeURL(uuid.NewString()))
}

// Identity returns the currently bound identity, or nil.
func (b *Binder) Identity() *models.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.identity
}

// LastError returns the localized message of the last failed exchange, or
// "" when the last exchange succeeded (or none happened).
func (b *Binder) LastError() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMsg
}

// Logout clears the stored identity and forgets the in-memory one.
func (b *Binder) Logout() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.store.Clear()
	b.identity = nil
}

// Close cancels the auto-login timer. Safe to call at any time; late
// exchange results after Close only touch the binder's own state.
func (b *Binder) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopTimerLocked()
}

func (b *Binder) stopTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
