package core

import "errors"

// Sentinel errors surfaced by the onboarding services. Handlers map these to
// HTTP statuses; anything wrapped inside them is for logs only and never
// reaches a response body.
var (
	// ErrMissingSessionID is an input error: the caller supplied no session
	// reference to reconcile. Never retried.
	ErrMissingSessionID = errors.New("session id is required")

	// ErrUnknownPlan is an input error: the plan key is empty or not present
	// in the catalog, so the processor is never called.
	ErrUnknownPlan = errors.New("unknown plan")

	// ErrProcessorNotConfigured is a configuration error: the processor
	// secret key (or the plan's price ID) is absent from the service
	// configuration. Fatal for the request, not retried.
	ErrProcessorNotConfigured = errors.New("payment processor is not configured")

	// ErrExchangeFailed covers any failure of the authorization-code
	// exchange or the subsequent profile fetch.
	ErrExchangeFailed = errors.New("identity exchange failed")

	// ErrCheckoutFailed covers any processor failure while creating a
	// checkout session.
	ErrCheckoutFailed = errors.New("checkout session creation failed")

	// ErrLookupFailed covers any processor failure while retrieving a
	// session for reconciliation. The caller must present a generic message
	// and never the processor's own error text.
	ErrLookupFailed = errors.New("session lookup failed")
)
