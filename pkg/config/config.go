package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	LinkedInClientID     string
	LinkedInClientSecret string
	LinkedInAccessToken  string
	LinkedInRefreshToken string
	LinkedInAuthURL      string
	LinkedInAPIBaseURL   string

	DiscordBotToken string
	DiscordAPIBase  string

	XClientID     string
	XClientSecret string
	XRedirectURI  string
	XAuthURL      string
	XTokenURL     string
	XAPIHost      string
}

func getEnv(key, defaultValue string, printEnv bool) string {
	logger := log.Default()
	value := os.Getenv(key)
	if printEnv {
		logger.Info("Env", "key", key, "value", value)
	}
	if value == "" {
		return defaultValue
	}
	return value
}

func LoadConfig(printEnv bool) (*Config, error) {
	_ = godotenv.Load()

	conf := &Config{
		LinkedInClientID:     getEnv("LINKEDIN_CLIENT_ID", "", printEnv),
		LinkedInClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", "", printEnv),
		LinkedInAccessToken:  getEnv("LINKEDIN_ACCESS_TOKEN", "", printEnv),
		LinkedInRefreshToken: getEnv("LINKEDIN_REFRESH_TOKEN", "", printEnv),
		LinkedInAuthURL:      getEnv("LINKEDIN_AUTH_URL", "https://www.linkedin.com/oauth/v2", printEnv),
		LinkedInAPIBaseURL:   getEnv("LINKEDIN_API_BASE_URL", "https://api.linkedin.com", printEnv),

		DiscordBotToken: getEnv("DISCORD_BOT_TOKEN", "", printEnv),
		DiscordAPIBase:  getEnv("DISCORD_API_BASE", "https://discord.com/api/v10", printEnv),

		XClientID:     getEnv("X_CLIENT_ID", "", printEnv),
		XClientSecret: getEnv("X_CLIENT_SECRET", "", printEnv),
		XRedirectURI:  getEnv("REDIRECT_URI", "", printEnv),
		XAuthURL:      getEnv("X_AUTH_URL", "https://x.com/i/oauth2/authorize", printEnv),
		XTokenURL:     getEnv("X_TOKEN_URL", "https://api.twitter.com/2/oauth2/token", printEnv),
		XAPIHost:      getEnv("X_API_HOST", "https://api.twitter.com", printEnv),
	}

	return conf, nil
}
