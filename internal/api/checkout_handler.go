package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"membership-backend-go/internal/core"
	"membership-backend-go/internal/models"
)

// CheckoutHandler handles payment-session initiation and the receipt lookup
// behind the confirmation view.
type CheckoutHandler struct {
	checkoutService core.CheckoutService
	receiptService  core.ReceiptService
	log             *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(cs core.CheckoutService, rs core.ReceiptService, log *zap.Logger) *CheckoutHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutHandler{checkoutService: cs, receiptService: rs, log: log}
}

// CreateSession handles POST /create-checkout-session. On success the client
// receives the processor-hosted URL and performs a full navigation there;
// retries are user-initiated only.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	url, err := h.checkoutService.CreateSession(c.Request.Context(), models.CheckoutIntent{
		Plan:       req.PriceType,
		IdentityID: req.DiscordUserID,
		Consent: models.ConsentRecord{
			Display:   req.ConsentDisplay,
			RoleGrant: req.ConsentRoles,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUnknownPlan):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown priceType"})
		case errors.Is(err, core.ErrProcessorNotConfigured):
			c.String(http.StatusInternalServerError, "Missing Stripe env")
		default:
			c.String(http.StatusInternalServerError, "Checkout session creation failed")
		}
		return
	}

	c.JSON(http.StatusOK, CreateCheckoutSessionResponse{URL: url})
}

// GetSession handles GET /get-checkout-session?session_id=... and returns
// the reconciled Receipt as a flat object. Failure bodies are deliberately
// generic text; the underlying processor errors stay in the logs.
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.String(http.StatusBadRequest, "Missing session_id")
		return
	}

	receipt, err := h.receiptService.Reconcile(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrMissingSessionID):
			c.String(http.StatusBadRequest, "Missing session_id")
		case errors.Is(err, core.ErrProcessorNotConfigured):
			c.String(http.StatusInternalServerError, "Missing Stripe env")
		default:
			c.String(http.StatusInternalServerError, "Stripe session lookup failed")
		}
		return
	}

	c.JSON(http.StatusOK, receipt)
}
