package config

import (
	"fmt"
	"os"
)

type AppConfig struct {
	APIVersion           string
	Port                 string
	GinMode              string
	DBURL                string
	DataDir              string
	BaseURL              string
	StripeSecretKey      string
	StripeWebhookSecret  string
	ClerkSecretKey       string
	ClerkWebhookSecret   string
	MailgunAPIKey        string
	MailgunSendingDomain string
	SenderName           string
	SenderEmail          string
	TeamName             string
	TeamEmail            string
}

func getEnvironmentVariable(key string) (string, error) {
	value := os.Getenv(key)

	if value == "" {
		return "", fmt.Errorf("environment variable %s not set", key)
	}

	return value, nil
}

// LoadEnvironmentVariables assembles the full application configuration once
// at process start; every component receives what it needs from this struct
// instead of reading the environment itself.
func LoadEnvironmentVariables() (AppConfig, error) {
	appConfig := AppConfig{}

	var err error

	if appConfig.APIVersion, err = getEnvironmentVariable("API_VERSION"); err != nil {
		return appConfig, err
	}
	if appConfig.Port, err = getEnvironmentVariable("PORT"); err != nil {
		return appConfig, err
	}
	if appConfig.GinMode, err = getEnvironmentVariable("GIN_MODE"); err != nil {
		return appConfig, err
	}
	if appConfig.DBURL, err = getEnvironmentVariable("DB_URL"); err != nil {
		return appConfig, err
	}
	if appConfig.DataDir, err = getEnvironmentVariable("DATA_DIR"); err != nil {
		return appConfig, err
	}
	if appConfig.BaseURL, err = getEnvironmentVariable("BASE_URL"); err != nil {
		return appConfig, err
	}
	if appConfig.StripeSecretKey, err = getEnvironmentVariable("STRIPE_SECRET_KEY"); err != nil {
		return appConfig, err
	}
	if appConfig.StripeWebhookSecret, err = getEnvironmentVariable("STRIPE_WEBHOOK_SECRET"); err != nil {
		return appConfig, err
	}
	if appConfig.ClerkSecretKey, err = getEnvironmentVariable("CLERK_SECRET_KEY"); err != nil {
		return appConfig, err
	}
	if appConfig.ClerkWebhookSecret, err = getEnvironmentVariable("CLERK_WEBHOOK_SECRET"); err != nil {
		return appConfig, err
	}
	if appConfig.MailgunAPIKey, err = getEnvironmentVariable("MAILGUN_API_KEY"); err != nil {
		return appConfig, err
	}
	if appConfig.MailgunSendingDomain, err = getEnvironmentVariable("MAILGUN_SENDING_DOMAIN"); err != nil {
		return appConfig, err
	}
	if appConfig.SenderName, err = getEnvironmentVariable("SENDER_NAME"); err != nil {
		return appConfig, err
	}
	if appConfig.SenderEmail, err = getEnvironmentVariable("SENDER_EMAIL"); err != nil {
		return appConfig, err
	}
	if appConfig.TeamName, err = getEnvironmentVariable("TEAM_NAME"); err != nil {
		return appConfig, err
	}
	if appConfig.TeamEmail, err = getEnvironmentVariable("TEAM_EMAIL"); err != nil {
		return appConfig, err
	}

	return appConfig, nil
}
