package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port      string `mapstructure:"PORT"`
	GinMode   string `mapstructure:"GIN_MODE"`
	ClientURL string `mapstructure:"CLIENT_URL"` // frontend origin allowed by CORS

	// AppBaseURL is where the processor sends the browser back after
	// checkout. Success/cancel URLs derive from it unless set explicitly.
	AppBaseURL         string `mapstructure:"APP_BASE_URL"`
	CheckoutSuccessURL string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL  string `mapstructure:"CHECKOUT_CANCEL_URL"`

	// Identity provider (Discord OAuth application).
	DiscordClientID     string `mapstructure:"DISCORD_CLIENT_ID"`
	DiscordClientSecret string `mapstructure:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURI  string `mapstructure:"DISCORD_REDIRECT_URI"`

	// Payment processor. The secret key is deliberately not required at
	// startup: its absence is surfaced as a per-request configuration error
	// on the checkout endpoints instead of preventing the rest of the
	// service from running.
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeAPIBase   string `mapstructure:"STRIPE_API_BASE"`

	// Processor price IDs per catalog plan key.
	PriceOneMonth   string `mapstructure:"STRIPE_PRICE_ONE_MONTH"`
	PriceSubMonthly string `mapstructure:"STRIPE_PRICE_SUB_MONTHLY"`
	PriceSubYearly  string `mapstructure:"STRIPE_PRICE_SUB_YEARLY"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("APP_BASE_URL", "http://localhost:5173")

	// Bind environment variables
	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("APP_BASE_URL")
	viper.BindEnv("CHECKOUT_SUCCESS_URL")
	viper.BindEnv("CHECKOUT_CANCEL_URL")
	viper.BindEnv("DISCORD_CLIENT_ID")
	viper.BindEnv("DISCORD_CLIENT_SECRET")
	viper.BindEnv("DISCORD_REDIRECT_URI")
	viper.BindEnv("STRIPE_SECRET_KEY")
	viper.BindEnv("STRIPE_API_BASE")
	viper.BindEnv("STRIPE_PRICE_ONE_MONTH")
	viper.BindEnv("STRIPE_PRICE_SUB_MONTHLY")
	viper.BindEnv("STRIPE_PRICE_SUB_YEARLY")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	// Validate required fields
	if cfg.DiscordClientID == "" {
		return nil, errors.New("DISCORD_CLIENT_ID is required")
	}
	if cfg.DiscordClientSecret == "" {
		return nil, errors.New("DISCORD_CLIENT_SECRET is required")
	}
	if cfg.DiscordRedirectURI == "" {
		return nil, errors.New("DISCORD_REDIRECT_URI is required")
	}

	// Derive the checkout return URLs when not set explicitly. The
	// {CHECKOUT_SESSION_ID} placeholder is substituted by the processor.
	base := strings.TrimRight(cfg.AppBaseURL, "/")
	if cfg.CheckoutSuccessURL == "" {
		cfg.CheckoutSuccessURL = base + "/thanks?session_id={CHECKOUT_SESSION_ID}"
	}
	if cfg.CheckoutCancelURL == "" {
		cfg.CheckoutCancelURL = base + "/membership"
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It will panic if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}

// PriceID maps a catalog plan key to its configured processor price ID.
// Unknown or unconfigured keys return "".
func (c *Config) PriceID(planKey string) string {
	switch planKey {
	case "one_month":
		return c.PriceOneMonth
	case "sub_monthly":
		return c.PriceSubMonthly
	case "sub_yearly":
		return c.PriceSubYearly
	default:
		return ""
	}
}
