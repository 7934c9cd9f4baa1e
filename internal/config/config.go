// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port      string
	LogLevel  string
	LogFormat string

	// Discord
	Token            string // bot token
	GoldChannelID    string // channel accepting "gold: <player> <amount>" reports
	DamageCategoryID string // category whose threads hold damage-log screenshots
	ReviewChannelID  string // channel the relay messages are posted into
	ApproverRoleIDs  []string
	ApprovalEmoji    string

	// Spreadsheet webhook
	SheetWebhookURL string
}

const (
	DefaultPort          = "8080"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultApprovalEmoji = "✅"
)

// Load reads configuration from environment variables
// It loads .env file if present (for local development)
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", DefaultPort),
		LogLevel:         getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:        getEnv("LOG_FORMAT", DefaultLogFormat),
		Token:            os.Getenv("DISCORD_TOKEN"),
		GoldChannelID:    os.Getenv("GOLD_CHANNEL_ID"),
		DamageCategoryID: os.Getenv("DAMAGE_CATEGORY_ID"),
		ReviewChannelID:  os.Getenv("REVIEW_CHANNEL_ID"),
		ApproverRoleIDs:  splitList(os.Getenv("APPROVER_ROLE_IDS")),
		ApprovalEmoji:    getEnv("APPROVAL_EMOJI", DefaultApprovalEmoji),
		SheetWebhookURL:  os.Getenv("SHEET_WEBHOOK_URL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.GoldChannelID == "" {
		return fmt.Errorf("GOLD_CHANNEL_ID is required")
	}
	if c.DamageCategoryID == "" {
		return fmt.Errorf("DAMAGE_CATEGORY_ID is required")
	}
	if c.ReviewChannelID == "" {
		return fmt.Errorf("REVIEW_CHANNEL_ID is required")
	}
	if len(c.ApproverRoleIDs) == 0 {
		return fmt.Errorf("APPROVER_ROLE_IDS is required (comma-separated role IDs)")
	}
	if c.SheetWebhookURL == "" {
		return fmt.Errorf("SHEET_WEBHOOK_URL is required")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
