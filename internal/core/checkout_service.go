package core

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"membership-backend-go/internal/config"
	"membership-backend-go/internal/models"
	"membership-backend-go/internal/plans"
	"membership-backend-go/internal/processor"
	"membership-backend-go/internal/telemetry"
)

// checkoutService implements the CheckoutService interface against the
// payment processor.
type checkoutService struct {
	processor ProcessorClient // nil when no secret key is configured
	cfg       *config.Config
	report    telemetry.Reporter
	log       *zap.Logger
}

// NewCheckoutService creates a new CheckoutService instance. The processor
// client may be nil when the secret key is absent; the service then rejects
// every request with ErrProcessorNotConfigured instead of failing startup.
func NewCheckoutService(pc ProcessorClient, cfg *config.Config, report telemetry.Reporter, log *zap.Logger) CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	if report == nil {
		report = telemetry.NewNop()
	}
	return &checkoutService{processor: pc, cfg: cfg, report: report, log: log}
}

// CreateSession validates the plan against the catalog, asks the processor
// for a hosted checkout session carrying the identity and both consent flags
// in its metadata, and returns the redirect URL. Consent is transmitted
// atomically with the rest of the intent; there is no partial-update path.
func (s *checkoutService) CreateSession(ctx context.Context, intent models.CheckoutIntent) (string, error) {
	plan, ok := plans.Lookup(intent.Plan)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlan, intent.Plan)
	}
	if s.processor == nil {
		return "", ErrProcessorNotConfigured
	}
	priceID := s.cfg.PriceID(intent.Plan)
	if priceID == "" {
		return "", fmt.Errorf("%w: no price configured for plan %q", ErrProcessorNotConfigured, intent.Plan)
	}

	session, err := s.processor.CreateCheckoutSession(ctx, processor.CreateSessionParams{
		Mode:              plan.Mode,
		PriceID:           priceID,
		Quantity:          1,
		SuccessURL:        s.cfg.CheckoutSuccessURL,
		CancelURL:         s.cfg.CheckoutCancelURL,
		ClientReferenceID: intent.IdentityID,
		Metadata: map[string]string{
			"price_type":      intent.Plan,
			"discord_user_id": intent.IdentityID,
			"consent_display": strconv.FormatBool(intent.Consent.Display),
			"consent_roles":   strconv.FormatBool(intent.Consent.RoleGrant),
		},
	})
	if err != nil {
		s.report.CaptureError(err, map[string]string{
			"stage":      "create_checkout_session",
			"price_type": intent.Plan,
		})
		s.log.Warn("checkout session creation failed",
			zap.String("price_type", intent.Plan),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("%w: processor returned no redirect url", ErrCheckoutFailed)
	}

	s.log.Info("checkout session created",
		zap.String("session_id", session.ID),
		zap.String("price_type", intent.Plan),
		zap.String("mode", plan.Mode),
	)
	return session.URL, nil
}
