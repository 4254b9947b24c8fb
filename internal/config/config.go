package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/PatchLore/living-cards/internal/utils"
)

const AppName = "card-service"

type Config struct {
	AppName             string
	AppPort             string
	SiteURL             string
	DBUrl               string
	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceID       string
	SendgridAPIKey      string
	SendgridFromEmail   string
	SendgridSandboxMode bool
	ShareTokenSecret    []byte
	TreeAPIURL          string
	TreeAPIKey          string
}

// LoadConfig reads configuration from the environment. The process refuses
// to start without a port, site URL and database; payment and email
// credentials are reported per-request as not_configured so that a
// misconfigured deployment still serves the read paths.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found; relying on process environment")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}

	siteURL := strings.TrimRight(os.Getenv("SITE_URL"), "/")
	if siteURL == "" {
		utils.Logger.Fatal("SITE_URL env var is missing")
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	stripeSecretKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeSecretKey == "" {
		utils.Logger.Warn("STRIPE_SECRET_KEY is not set; checkout endpoints will report not_configured")
	}
	stripeWebhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if stripeWebhookSecret == "" {
		utils.Logger.Warn("STRIPE_WEBHOOK_SECRET is not set; webhook deliveries will be rejected")
	}
	stripePriceID := os.Getenv("STRIPE_PRICE_ID")
	if stripePriceID == "" {
		utils.Logger.Warn("STRIPE_PRICE_ID is not set; checkout endpoints will report not_configured")
	}

	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		utils.Logger.Warn("SENDGRID_API_KEY is not set; fulfillment emails will be skipped")
	}
	sendgridFromEmail := os.Getenv("EMAIL_FROM")
	if sendgridFromEmail == "" {
		sendgridFromEmail = "cards@livingcards.app" // Fallback
	}

	shareSecret := os.Getenv("SHARE_TOKEN_SECRET")
	if shareSecret == "" {
		utils.Logger.Fatal("SHARE_TOKEN_SECRET env var is missing")
	}

	return &Config{
		AppName:             AppName,
		AppPort:             appPort,
		SiteURL:             siteURL,
		DBUrl:               dbURL,
		StripeSecretKey:     stripeSecretKey,
		StripeWebhookSecret: stripeWebhookSecret,
		StripePriceID:       stripePriceID,
		SendgridAPIKey:      sendgridAPIKey,
		SendgridFromEmail:   sendgridFromEmail,
		SendgridSandboxMode: os.Getenv("SENDGRID_SANDBOX_MODE") == "true",
		ShareTokenSecret:    []byte(shareSecret),
		TreeAPIURL:          strings.TrimRight(os.Getenv("TREE_API_URL"), "/"),
		TreeAPIKey:          os.Getenv("TREE_API_KEY"),
	}
}

// CardURL is the public link for a persisted card.
func (c *Config) CardURL(shareID string) string {
	return c.SiteURL + "/card/" + shareID
}

// ShareTokenURL is the public link for an ephemeral signed-token card.
func (c *Config) ShareTokenURL(token string) string {
	return c.SiteURL + "/c/" + token
}
