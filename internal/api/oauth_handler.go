package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"membership-backend-go/internal/core"
)

// OAuthHandler handles the identity-binding endpoint.
type OAuthHandler struct {
	identityService core.IdentityService
	log             *zap.Logger
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(is core.IdentityService, log *zap.Logger) *OAuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &OAuthHandler{identityService: is, log: log}
}

// ExchangeCode handles POST /discord-oauth. The body carries the single-use
// authorization code; the response wraps the raw provider profile. The
// provider rejects a re-used code, so a duplicate submission surfaces as an
// upstream failure rather than a second identity.
func (h *OAuthHandler) ExchangeCode(c *gin.Context) {
	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	user, err := h.identityService.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		// The exchange failure details are already captured by the service;
		// the client only needs to know the login attempt did not stick.
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "OAuth exchange failed"})
		return
	}

	c.JSON(http.StatusOK, ExchangeCodeResponse{User: ProviderUser{
		ID:            user.ID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		Avatar:        user.Avatar,
	}})
}
