package core

import (
	"context"

	"membership-backend-go/internal/discord"
	"membership-backend-go/internal/models"
	"membership-backend-go/internal/processor"
)

// IdentityService defines the interface for identity-binding operations.
type IdentityService interface {
	// ExchangeCode redeems a single-use authorization code for the raw
	// provider profile. The caller is responsible for never presenting the
	// same code twice.
	ExchangeCode(ctx context.Context, code string) (*discord.User, error)
}

// CheckoutService defines the interface for payment-session initiation.
type CheckoutService interface {
	// CreateSession asks the processor for a hosted checkout session and
	// returns the redirect URL the browser should be handed to.
	CreateSession(ctx context.Context, intent models.CheckoutIntent) (string, error)
}

// ReceiptService defines the interface for session reconciliation.
type ReceiptService interface {
	// Reconcile retrieves the processor's session record (with expansions)
	// and normalizes it into a flat Receipt for the confirmation view.
	Reconcile(ctx context.Context, sessionID string) (*models.Receipt, error)
}

// OAuthExchanger is the identity-provider collaborator consumed by the
// identity service. *discord.Client implements it.
type OAuthExchanger interface {
	ExchangeCode(ctx context.Context, code string) (*discord.User, error)
}

// ProcessorClient is the payment-processor collaborator consumed by the
// checkout and receipt services. *processor.Client implements it.
type ProcessorClient interface {
	CreateCheckoutSession(ctx context.Context, params processor.CreateSessionParams) (*processor.CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, id string, expand ...string) (*processor.CheckoutSession, error)
	RetrievePaymentIntent(ctx context.Context, id string, expand ...string) (*processor.PaymentIntent, error)
	RetrieveCharge(ctx context.Context, id string) (*processor.Charge, error)
}
