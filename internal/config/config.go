// Package config loads application settings from an optional YAML file and
// environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileName is the default config file looked up in the working directory.
const ConfigFileName = "ingredient-finder.yaml"

// envPrefix namespaces the environment variables that override config keys,
// e.g. INGREDIENT_FINDER_SHEET_RANGE overrides sheet_range.
const envPrefix = "INGREDIENT_FINDER_"

// Config holds the configuration for the application.
type Config struct {
	// Spreadsheet access. SpreadsheetID may be set directly; when empty it
	// is read from SpreadsheetIDFile, a JSON file of the form {"id": "..."}.
	SpreadsheetID     string `koanf:"spreadsheet_id"`
	SpreadsheetIDFile string `koanf:"spreadsheet_id_file"`
	CredentialsFile   string `koanf:"credentials_file"`
	TokenFile         string `koanf:"token_file"`
	SheetRange        string `koanf:"sheet_range"`

	// Local fallback cache for the ingredient table.
	CachePath string `koanf:"cache_path"`

	// Telegram config (optional for the CLI, required for the bot).
	TelegramBotToken       string  `koanf:"telegram_bot_token"`
	TelegramWebhookURL     string  `koanf:"telegram_webhook_url"`
	TelegramAllowedUserIDs []int64 `koanf:"telegram_allowed_user_ids"`
	ListenAddr             string  `koanf:"listen_addr"`
}

// Load reads configuration from defaults, then cfgFile (or
// ingredient-finder.yaml in the working directory when cfgFile is empty),
// then INGREDIENT_FINDER_* environment variables, each layer overriding the
// previous one.
func Load(cfgFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"spreadsheet_id_file": "spreadsheet_id.json",
		"credentials_file":    "credentials.json",
		"token_file":          "token.json",
		"sheet_range":         "Ingredients!A1:F",
		"cache_path":          "ingredients.csv",
		"listen_addr":         ":8080",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			cfgFile = ConfigFileName
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// ResolveSpreadsheetID returns the configured spreadsheet ID, reading the
// pointer file when no direct ID is set.
func (c *Config) ResolveSpreadsheetID() (string, error) {
	if c.SpreadsheetID != "" {
		return c.SpreadsheetID, nil
	}

	data, err := os.ReadFile(c.SpreadsheetIDFile)
	if err != nil {
		return "", fmt.Errorf("failed to read spreadsheet ID file: %w", err)
	}

	var pointer struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &pointer); err != nil {
		return "", fmt.Errorf("failed to parse spreadsheet ID file %s: %w", c.SpreadsheetIDFile, err)
	}
	if pointer.ID == "" {
		return "", fmt.Errorf("spreadsheet ID file %s has no \"id\" field", c.SpreadsheetIDFile)
	}
	return pointer.ID, nil
}
