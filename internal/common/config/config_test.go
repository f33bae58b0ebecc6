// internal/common/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMissingRequired(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected []string
	}{
		{
			name: "all present",
			cfg: Config{
				Gemini:   GeminiConfig{APIKey: "k"},
				LinkedIn: LinkedInConfig{AccessToken: "t", PersonURN: "urn:li:person:abc"},
			},
			expected: nil,
		},
		{
			name:     "all missing",
			cfg:      Config{},
			expected: []string{"GEMINI_API_KEY", "LINKEDIN_ACCESS_TOKEN", "LINKEDIN_PERSON_URN"},
		},
		{
			name: "one missing",
			cfg: Config{
				Gemini:   GeminiConfig{APIKey: "k"},
				LinkedIn: LinkedInConfig{AccessToken: "t"},
			},
			expected: []string{"LINKEDIN_PERSON_URN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.MissingRequired())
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Gemini.BaseURL)
	assert.Equal(t, 60000, cfg.Gemini.Timeout)
	assert.Equal(t, "https://api.linkedin.com/v2", cfg.LinkedIn.BaseURL)
	assert.Equal(t, 30000, cfg.LinkedIn.Timeout)
	assert.Equal(t, "https://placehold.co", cfg.Image.BaseURL)
	assert.Equal(t, 1200, cfg.Image.Width)
	assert.Equal(t, 630, cfg.Image.Height)
	assert.Equal(t, "4A90E2", cfg.Image.Background)
	assert.Equal(t, "FFFFFF", cfg.Image.Foreground)
	assert.Equal(t, "png", cfg.Image.Format)
	assert.Equal(t, 50, cfg.Image.MaxPromptLength)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Server: ServerConfig{Port: 9999},
		Gemini: GeminiConfig{Model: "gemini-2.0-pro"},
	}
	applyDefaults(&cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "gemini-2.0-pro", cfg.Gemini.Model)
}

func TestOverrideEmptyConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("LINKEDIN_ACCESS_TOKEN", "env-token")
	t.Setenv("LINKEDIN_PERSON_URN", "urn:li:person:env")
	t.Setenv("CRON_SECRET", "env-secret")
	t.Setenv("CRON_SCHEDULE", "0 9 * * *")
	t.Setenv("PORT", "3000")

	var cfg Config
	overrideEmptyConfig(&cfg)

	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, "env-token", cfg.LinkedIn.AccessToken)
	assert.Equal(t, "urn:li:person:env", cfg.LinkedIn.PersonURN)
	assert.Equal(t, "env-secret", cfg.Server.CronSecret)
	assert.Equal(t, "0 9 * * *", cfg.Schedule.Cron)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestOverrideEmptyConfig_DoesNotClobber(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := Config{Gemini: GeminiConfig{APIKey: "file-key"}}
	overrideEmptyConfig(&cfg)

	assert.Equal(t, "file-key", cfg.Gemini.APIKey)
}

func TestValidateConfig(t *testing.T) {
	valid := Config{
		Server:   ServerConfig{Port: 8080},
		Gemini:   GeminiConfig{BaseURL: "https://example.com"},
		LinkedIn: LinkedInConfig{BaseURL: "https://example.com"},
	}
	assert.NoError(t, validateConfig(&valid))

	badPort := valid
	badPort.Server.Port = 70000
	assert.Error(t, validateConfig(&badPort))
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, GetDuration(30000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
