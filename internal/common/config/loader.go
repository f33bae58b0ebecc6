// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional yaml file, .env files, and the
// process environment, applies defaults, and validates the result.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Enable ENV override like LINKEDIN_ACCESS_TOKEN
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory, its parents, or the
// project root so the service behaves the same from tests and from cmd/.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// overrideEmptyConfig fills config values from well-known environment
// variables when the yaml layer left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Gemini.APIKey == "" {
		if val := os.Getenv("GEMINI_API_KEY"); val != "" {
			cfg.Gemini.APIKey = val
		}
	}
	if cfg.LinkedIn.AccessToken == "" {
		if val := os.Getenv("LINKEDIN_ACCESS_TOKEN"); val != "" {
			cfg.LinkedIn.AccessToken = val
		}
	}
	if cfg.LinkedIn.PersonURN == "" {
		if val := os.Getenv("LINKEDIN_PERSON_URN"); val != "" {
			cfg.LinkedIn.PersonURN = val
		}
	}
	if cfg.Server.CronSecret == "" {
		if val := os.Getenv("CRON_SECRET"); val != "" {
			cfg.Server.CronSecret = val
		}
	}
	if cfg.Schedule.Cron == "" {
		if val := os.Getenv("CRON_SCHEDULE"); val != "" {
			cfg.Schedule.Cron = val
		}
	}
	if cfg.Server.Port == 0 {
		if val := os.Getenv("PORT"); val != "" {
			var port int
			if _, err := fmt.Sscanf(val, "%d", &port); err == nil {
				cfg.Server.Port = port
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "linkedin-autoposter"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-1.5-flash"
	}
	if cfg.Gemini.Timeout == 0 {
		cfg.Gemini.Timeout = 60000
	}

	if cfg.LinkedIn.BaseURL == "" {
		cfg.LinkedIn.BaseURL = "https://api.linkedin.com/v2"
	}
	if cfg.LinkedIn.Timeout == 0 {
		cfg.LinkedIn.Timeout = 30000
	}

	if cfg.Image.BaseURL == "" {
		cfg.Image.BaseURL = "https://placehold.co"
	}
	if cfg.Image.Width == 0 {
		cfg.Image.Width = 1200
	}
	if cfg.Image.Height == 0 {
		cfg.Image.Height = 630
	}
	if cfg.Image.Background == "" {
		cfg.Image.Background = "4A90E2"
	}
	if cfg.Image.Foreground == "" {
		cfg.Image.Foreground = "FFFFFF"
	}
	if cfg.Image.Format == "" {
		cfg.Image.Format = "png"
	}
	if cfg.Image.MaxPromptLength == 0 {
		cfg.Image.MaxPromptLength = 50
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates the settings the process cannot start without.
// Workflow credentials are deliberately not checked here; see MissingRequired.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Gemini.BaseURL == "" {
		return fmt.Errorf("gemini.base_url is required")
	}
	if cfg.LinkedIn.BaseURL == "" {
		return fmt.Errorf("linkedin.base_url is required")
	}
	return nil
}
