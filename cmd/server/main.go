package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"membership-backend-go/internal/api"
	"membership-backend-go/internal/config"
	"membership-backend-go/internal/core"
	"membership-backend-go/internal/discord"
	"membership-backend-go/internal/middleware"
	"membership-backend-go/internal/processor"
	"membership-backend-go/internal/telemetry"
)

func main() {
	// A local .env is a convenience for development; its absence is fine.
	_ = godotenv.Load()

	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize collaborators ---
	reporter := telemetry.New(zapLogger)

	discordClient := discord.NewClient(
		appConfig.DiscordClientID,
		appConfig.DiscordClientSecret,
		appConfig.DiscordRedirectURI,
		discord.WithLogger(zapLogger),
	)

	// The processor client stays nil without a secret key: the checkout and
	// receipt endpoints then answer with a configuration error while the
	// identity endpoint keeps working.
	var processorClient core.ProcessorClient
	if appConfig.StripeSecretKey != "" {
		opts := []processor.Option{processor.WithLogger(zapLogger)}
		if appConfig.StripeAPIBase != "" {
			opts = append(opts, processor.WithBaseURL(appConfig.StripeAPIBase))
		}
		processorClient = processor.NewClient(appConfig.StripeSecretKey, opts...)
	} else {
		zapLogger.Warn("STRIPE_SECRET_KEY is not set; checkout endpoints will report a configuration error.")
	}

	// --- 4. Initialize Services ---
	identityService := core.NewIdentityService(discordClient, reporter, zapLogger)
	checkoutService := core.NewCheckoutService(processorClient, appConfig, reporter, zapLogger)
	receiptService := core.NewReceiptService(processorClient, reporter, zapLogger)
	zapLogger.Info("Core services initialized successfully.")

	// --- 5. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 6. Apply Global Middleware (Order is important) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured.")
	}

	// --- 7. Setup API Routes ---
	api.SetupRoutes(router, zapLogger, identityService, checkoutService, receiptService)

	// --- 8. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 9. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
