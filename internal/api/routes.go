package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"membership-backend-go/internal/core"
)

// SetupRoutes configures all the application routes with their handlers.
// Global middleware (Logging, Recovery, CORS) is expected to be applied to
// the `router` instance *before* this function is called, typically in
// `main.go`.
//
// The three pipeline endpoints are deliberately flat (no /api/v1 group):
// they are consumed by the membership frontend under the exact paths the
// client ships with.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	identityService core.IdentityService,
	checkoutService core.CheckoutService,
	receiptService core.ReceiptService,
) {
	// Wrong-method requests (e.g. POST to the receipt lookup) must get a
	// 405, not a 404.
	router.HandleMethodNotAllowed = true

	oauthHandler := NewOAuthHandler(identityService, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, receiptService, logger)

	router.POST("/discord-oauth", oauthHandler.ExchangeCode)
	router.POST("/create-checkout-session", checkoutHandler.CreateSession)
	router.GET("/get-checkout-session", checkoutHandler.GetSession)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured.")
}
