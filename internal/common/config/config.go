// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	LinkedIn LinkedInConfig `mapstructure:"linkedin"`
	Image    ImageConfig    `mapstructure:"image"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP trigger surface settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
	// CronSecret gates GET /api/cron. Empty disables the check.
	CronSecret string `mapstructure:"cron_secret"`
}

// ScheduleConfig holds the optional in-process scheduler settings. An empty
// cron expression disables the scheduler entirely.
type ScheduleConfig struct {
	Cron string `mapstructure:"cron"`
}

// GeminiConfig holds settings for the generative-text API.
type GeminiConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// LinkedInConfig holds settings for the LinkedIn REST API.
type LinkedInConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	AccessToken string `mapstructure:"access_token"`
	PersonURN   string `mapstructure:"person_urn"`
	Timeout     int    `mapstructure:"timeout"` // milliseconds
}

// ImageConfig holds the placeholder image template settings.
type ImageConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	Width           int    `mapstructure:"width"`
	Height          int    `mapstructure:"height"`
	Background      string `mapstructure:"background"`
	Foreground      string `mapstructure:"foreground"`
	Format          string `mapstructure:"format"`
	MaxPromptLength int    `mapstructure:"max_prompt_length"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RequiredEnvVars lists the environment variables the workflow cannot run
// without. The trigger surface echoes this list when any of them is unset.
var RequiredEnvVars = []string{
	"GEMINI_API_KEY",
	"LINKEDIN_ACCESS_TOKEN",
	"LINKEDIN_PERSON_URN",
}

// MissingRequired returns the names of required credentials that are absent.
// Missing credentials are not a startup failure: the trigger endpoints refuse
// to run the workflow instead, without making any outbound call.
func (c *Config) MissingRequired() []string {
	var missing []string
	if c.Gemini.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.LinkedIn.AccessToken == "" {
		missing = append(missing, "LINKEDIN_ACCESS_TOKEN")
	}
	if c.LinkedIn.PersonURN == "" {
		missing = append(missing, "LINKEDIN_PERSON_URN")
	}
	return missing
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
