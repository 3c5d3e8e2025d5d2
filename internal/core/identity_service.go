package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"membership-backend-go/internal/discord"
	"membership-backend-go/internal/telemetry"
)

// identityService implements the IdentityService interface on top of the
// identity-provider client.
type identityService struct {
	provider OAuthExchanger
	report   telemetry.Reporter
	log      *zap.Logger
}

// NewIdentityService creates a new IdentityService instance.
func NewIdentityService(provider OAuthExchanger, report telemetry.Reporter, log *zap.Logger) IdentityService {
	if log == nil {
		log = zap.NewNop()
	}
	if report == nil {
		report = telemetry.NewNop()
	}
	return &identityService{provider: provider, report: report, log: log}
}

// ExchangeCode redeems the authorization code for the raw provider profile.
// The provider invalidates the code on first use, so failures here are not
// retried; the user has to re-trigger login from the start.
func (s *identityService) ExchangeCode(ctx context.Context, code string) (*discord.User, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", ErrExchangeFailed)
	}

	user, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		s.report.CaptureError(err, map[string]string{"stage": "discord_oauth"})
		s.log.Warn("authorization code exchange failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	s.log.Info("identity bound",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return user, nil
}
