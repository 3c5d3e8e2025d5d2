package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"membership-backend-go/internal/models"
	"membership-backend-go/internal/processor"
	"membership-backend-go/internal/telemetry"
)

// createdLayout renders the processor's epoch timestamp as an ISO-8601
// instant with millisecond precision, matching what the confirmation view
// has always consumed.
const createdLayout = "2006-01-02T15:04:05.000Z"

// receiptService implements the ReceiptService interface. Reconciliation is
// a pure read: the same upstream record always yields an identical Receipt.
type receiptService struct {
	processor ProcessorClient // nil when no secret key is configured
	report    telemetry.Reporter
	log       *zap.Logger
}

// NewReceiptService creates a new ReceiptService instance. As with the
// checkout service, a nil processor client turns every call into
// ErrProcessorNotConfigured.
func NewReceiptService(pc ProcessorClient, report telemetry.Reporter, log *zap.Logger) ReceiptService {
	if log == nil {
		log = zap.NewNop()
	}
	if report == nil {
		report = telemetry.NewNop()
	}
	return &receiptService{processor: pc, report: report, log: log}
}

// Reconcile retrieves the checkout session with its payment intent,
// subscription, and customer details expanded, then flattens the record into
// a Receipt. Card-detail resolution is best-effort: any failure along that
// sub-chain degrades payment_method to null instead of failing the whole
// reconciliation.
func (s *receiptService) Reconcile(ctx context.Context, sessionID string) (*models.Receipt, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}
	if s.processor == nil {
		return nil, ErrProcessorNotConfigured
	}

	session, err := s.processor.RetrieveCheckoutSession(ctx, sessionID,
		"payment_intent", "subscription", "customer_details")
	if err != nil {
		s.report.CaptureError(err, map[string]string{
			"stage":      "get_checkout_session",
			"session_id": sessionID,
		})
		s.log.Warn("session retrieval failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: session %s", ErrLookupFailed, sessionID)
	}

	receipt := &models.Receipt{
		ID:            session.ID,
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		Mode:          session.Mode,
		AmountTotal:   session.AmountTotal,
		Currency:      session.Currency,
		Created:       formatCreated(session.Created),
		PriceType:     metadataValue(session.Metadata, "price_type"),
		PaymentMethod: s.resolvePaymentMethod(ctx, session),
		TransactionID: transactionID(session),
		CustomerName:  customerName(session),
	}
	return receipt, nil
}

// resolvePaymentMethod walks the expansion chain down to the card details:
// session → payment intent → latest charge → payment method details. Each
// reference may arrive expanded or as a bare identifier; only the identifier
// case costs a follow-up retrieval, so the whole walk is at most two extra
// calls on top of the session fetch. Every step degrades to nil on failure.
func (s *receiptService) resolvePaymentMethod(ctx context.Context, session *processor.CheckoutSession) *string {
	ref := session.PaymentIntent
	if ref.RefID() == "" && !ref.Expanded() {
		return nil
	}

	var intent *processor.PaymentIntent
	if ref.Expanded() {
		intent = ref.Value
	} else {
		fetched, err := s.processor.RetrievePaymentIntent(ctx, ref.RefID(),
			"latest_charge.payment_method_details.card")
		if err != nil {
			s.captureDegradation(err, session.ID, "retrieve_payment_intent")
			return nil
		}
		intent = fetched
	}

	chargeRef := intent.LatestCharge
	var charge *processor.Charge
	switch {
	case chargeRef.Expanded():
		charge = chargeRef.Value
	case chargeRef.RefID() != "":
		fetched, err := s.processor.RetrieveCharge(ctx, chargeRef.RefID())
		if err != nil {
			s.captureDegradation(err, session.ID, "retrieve_charge")
			return nil
		}
		charge = fetched
	default:
		return nil
	}

	if charge.PaymentMethodDetails == nil || charge.PaymentMethodDetails.Card == nil {
		return nil
	}
	card := charge.PaymentMethodDetails.Card
	brand := card.Brand
	if brand == "" {
		brand = "card"
	}
	summary := strings.TrimSpace(brand + " **** " + card.Last4)
	return &summary
}

func (s *receiptService) captureDegradation(err error, sessionID, stage string) {
	s.report.CaptureError(err, map[string]string{
		"stage":      stage,
		"session_id": sessionID,
	})
	s.log.Warn("payment method resolution degraded",
		zap.String("session_id", sessionID),
		zap.String("stage", stage),
		zap.Error(err),
	)
}

// transactionID prefers the payment-intent identifier and falls back to the
// subscription identifier. The order is fixed; it must not depend on which
// of the two happened to be expanded.
func transactionID(session *processor.CheckoutSession) *string {
	if id := session.PaymentIntent.RefID(); id != "" {
		return &id
	}
	if id := session.Subscription.RefID(); id != "" {
		return &id
	}
	return nil
}

// customerName prefers the name the processor captured at payment time, then
// any name carried in session metadata.
func customerName(session *processor.CheckoutSession) *string {
	if session.CustomerDetails != nil && session.CustomerDetails.Name != "" {
		return &session.CustomerDetails.Name
	}
	return metadataValue(session.Metadata, "customer_name")
}

func metadataValue(metadata map[string]string, key string) *string {
	if v, ok := metadata[key]; ok && v != "" {
		return &v
	}
	return nil
}

func formatCreated(created int64) *string {
	if created == 0 {
		return nil
	}
	formatted := time.Unix(created, 0).UTC().Format(createdLayout)
	return &formatted
}
