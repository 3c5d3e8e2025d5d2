package flow

import (
	"context"
	"errors"

	"membership-backend-go/internal/models"
	"membership-backend-go/internal/telemetry"
)

// Localized user-facing messages for the checkout step.
const (
	msgPlanMissing    = "プランが選択されていません。トップページからやり直してください。"
	msgCheckoutFailed = "決済セッションの作成に失敗しました。"
)

// Initiator starts a payment session and hands the browser to the
// processor's hosted checkout. A failure is reported back as a localized
// error; the user retries by re-submitting, never automatically.
type Initiator struct {
	api    *Client
	nav    Navigator
	report telemetry.Reporter
}

// NewInitiator wires an initiator to the backend client and navigator.
func NewInitiator(api *Client, nav Navigator, report telemetry.Reporter) *Initiator {
	if report == nil {
		report = telemetry.NewNop()
	}
	return &Initiator{api: api, nav: nav, report: report}
}

// Initiate requests a checkout session for the plan and transfers the
// browser to the returned URL. Identity and plan must be present; this is
// re-checked here even though CanCheckout already gates the trigger.
func (i *Initiator) Initiate(ctx context.Context, plan string, identity *models.Identity, consent models.ConsentRecord) error {
	if identity == nil || plan == "" {
		return errors.New(msgPlanMissing)
	}

	i.report.Event("checkout_start", map[string]string{"price_type": plan})

	redirectURL, err := i.api.CreateCheckoutSession(ctx, plan, identity.ID, consent)
	if err != nil {
		i.report.CaptureError(err, map[string]string{
			"stage":      "checkout_start",
			"price_type": plan,
		})
		return errors.New(msgCheckoutFailed)
	}

	// Full navigation: control passes to the external processor from here.
	i.nav.Navigate(redirectURL)
	return nil
}
