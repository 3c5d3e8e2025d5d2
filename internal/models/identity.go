package models

// Identity represents a verified Discord identity bound to the current
// client session. It is created once per successful OAuth exchange and is
// immutable afterwards; logout clears it entirely rather than mutating it.
type Identity struct {
	ID            string `json:"id"`                  // Discord user ID (snowflake)
	Name          string `json:"name"`                // Discord username
	Discriminator string `json:"discriminator"`       // legacy #NNNN tag, may be "0"
	Avatar        string `json:"avatar,omitempty"`    // full CDN avatar URL, empty when the user has none
}

// ConsentRecord holds the two independent consent flags captured before
// checkout. Both default to true and are read exactly once at checkout time;
// there is no partial update path.
type ConsentRecord struct {
	Display   bool `json:"consent_display"` // show the supporter's name publicly
	RoleGrant bool `json:"consent_roles"`   // grant the supporter role after payment
}

// DefaultConsent returns the initial consent state (both flags on).
func DefaultConsent() ConsentRecord {
	return ConsentRecord{Display: true, RoleGrant: true}
}

// CheckoutIntent is the ephemeral request value handed to the Checkout
// Initiator. It is never persisted; it exists only for the duration of the
// session-creation call. Plan is kept as a raw string so unrecognized keys
// can still travel to the processor boundary for rejection there.
type CheckoutIntent struct {
	Plan       string
	IdentityID string
	Consent    ConsentRecord
}
