package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// ExchangeCodeRequest is the body of POST /discord-oauth.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExchangeCodeResponse wraps the raw provider profile. The client derives
// the avatar URL itself; the hash travels as-is.
type ExchangeCodeResponse struct {
	User ProviderUser `json:"user"`
}

// ProviderUser mirrors the provider's profile fields consumed by the client.
type ProviderUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar,omitempty"`
}

// CreateCheckoutSessionRequest is the body of POST /create-checkout-session.
// The consent flags are bound together with the rest of the intent so no
// half-consent state can reach the processor.
type CreateCheckoutSessionRequest struct {
	PriceType      string `json:"priceType" binding:"required"`
	DiscordUserID  string `json:"discord_user_id" binding:"required"`
	ConsentDisplay bool   `json:"consent_display"`
	ConsentRoles   bool   `json:"consent_roles"`
}

// CreateCheckoutSessionResponse returns the processor-hosted redirect URL.
type CreateCheckoutSessionResponse struct {
	URL string `json:"url"`
}
