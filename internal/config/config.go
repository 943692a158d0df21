// Package config provides configuration loading and validation for the dashboard.
//
// Values are resolved in three layers: built-in defaults, an optional JSON or
// YAML file, then environment variables. The resulting Config is passed
// explicitly to the components that need it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Row source kinds
const (
	SourceSheets   = "sheets"
	SourceWorkbook = "workbook"
)

// Defaults
const (
	DefaultPort            = 3000
	DefaultActivityRange   = "'Content Engine'!A:G"
	DefaultStatusRange     = "'Backend Monitoring'!A1:B1"
	DefaultCredentialsFile = "service_account.json"
	DefaultPollInterval    = 60 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultDashboardURL    = "http://localhost:3000/api/data"
)

// Config is the resolved dashboard configuration
type Config struct {
	// Server
	Host            string        `validate:"omitempty,hostname|ip"`
	Port            int           `validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `validate:"gte=0"`

	// Row source
	Source          string `validate:"oneof=sheets workbook"`
	SpreadsheetID   string `validate:"required_if=Source sheets"`
	ActivityRange   string `validate:"required"`
	StatusRange     string
	CredentialsJSON string
	CredentialsFile string
	WorkbookPath    string        `validate:"required_if=Source workbook"`
	RequestTimeout  time.Duration `validate:"gte=0"`

	// Polling client
	DashboardURL string        `validate:"required,url"`
	PollInterval time.Duration `validate:"gte=1s"`

	// Logging
	LogLevel  string `validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `validate:"omitempty,oneof=text json"`

	RateLimit RateLimitConfig
}

// RateLimitConfig holds the API rate limiting settings
type RateLimitConfig struct {
	Enabled   bool
	Limit     int           `validate:"gte=0"`
	Window    time.Duration `validate:"gte=0"`
	Burst     int           `validate:"gte=0"`
	Whitelist []string
}

// File is the on-disk representation of Config. Durations are Go duration
// strings ("60s", "2m"). All fields are optional.
type File struct {
	Host            string `json:"host,omitempty" yaml:"host,omitempty"`
	Port            int    `json:"port,omitempty" yaml:"port,omitempty"`
	ShutdownTimeout string `json:"shutdown_timeout,omitempty" yaml:"shutdown_timeout,omitempty"`

	Source          string `json:"source,omitempty" yaml:"source,omitempty"`
	SpreadsheetID   string `json:"spreadsheet_id,omitempty" yaml:"spreadsheet_id,omitempty"`
	ActivityRange   string `json:"activity_range,omitempty" yaml:"activity_range,omitempty"`
	StatusRange     string `json:"status_range,omitempty" yaml:"status_range,omitempty"`
	CredentialsFile string `json:"credentials_file,omitempty" yaml:"credentials_file,omitempty"`
	WorkbookPath    string `json:"workbook_path,omitempty" yaml:"workbook_path,omitempty"`
	RequestTimeout  string `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty"`

	DashboardURL string `json:"dashboard_url,omitempty" yaml:"dashboard_url,omitempty"`
	PollInterval string `json:"poll_interval,omitempty" yaml:"poll_interval,omitempty"`

	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:            DefaultPort,
		ShutdownTimeout: DefaultShutdownTimeout,
		Source:          SourceSheets,
		ActivityRange:   DefaultActivityRange,
		StatusRange:     DefaultStatusRange,
		CredentialsFile: DefaultCredentialsFile,
		RequestTimeout:  DefaultRequestTimeout,
		DashboardURL:    DefaultDashboardURL,
		PollInterval:    DefaultPollInterval,
		LogLevel:        "info",
		LogFormat:       "text",
		RateLimit: RateLimitConfig{
			Enabled: true,
			Limit:   120,
			Window:  time.Minute,
			Burst:   20,
		},
	}
}

// Load resolves the configuration from defaults, the optional file at path and
// the process environment, then validates it.
func Load(path string) (*Config, error) {
	cfg, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve is Load without validation. Callers that only need part of the
// configuration validate it themselves, see ValidateClient.
func Resolve(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.ApplyFile(f); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a JSON or YAML config file. The format is chosen by extension.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	return &f, nil
}

// ApplyFile overlays the non-empty values of f onto c
func (c *Config) ApplyFile(f *File) error {
	setString(&c.Host, f.Host)
	setString(&c.Source, f.Source)
	setString(&c.SpreadsheetID, f.SpreadsheetID)
	setString(&c.ActivityRange, f.ActivityRange)
	setString(&c.StatusRange, f.StatusRange)
	setString(&c.CredentialsFile, f.CredentialsFile)
	setString(&c.WorkbookPath, f.WorkbookPath)
	setString(&c.DashboardURL, f.DashboardURL)
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.LogFormat, f.LogFormat)
	if f.Port != 0 {
		c.Port = f.Port
	}

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"shutdown_timeout", f.ShutdownTimeout, &c.ShutdownTimeout},
		{"request_timeout", f.RequestTimeout, &c.RequestTimeout},
		{"poll_interval", f.PollInterval, &c.PollInterval},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return &FieldError{Field: d.name, Message: fmt.Sprintf("invalid duration %q", d.value)}
		}
		*d.dst = parsed
	}
	return nil
}

// ApplyEnv overlays environment variables onto c. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	env := envReader{lookup: lookup}

	env.str(&c.Host, "DASHBOARD_HOST")
	env.str(&c.SpreadsheetID, "GOOGLE_SHEET_ID")
	env.str(&c.CredentialsJSON, "GOOGLE_SERVICE_ACCOUNT_JSON")
	env.str(&c.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	env.str(&c.Source, "DASHBOARD_SOURCE")
	env.str(&c.WorkbookPath, "DASHBOARD_WORKBOOK")
	env.str(&c.ActivityRange, "ACTIVITY_RANGE")
	env.str(&c.StatusRange, "STATUS_RANGE")
	env.str(&c.DashboardURL, "DASHBOARD_URL")
	env.str(&c.LogLevel, "LOG_LEVEL")
	env.str(&c.LogFormat, "LOG_FORMAT")
	env.integer(&c.Port, "PORT")
	env.duration(&c.ShutdownTimeout, "SHUTDOWN_TIMEOUT")
	env.duration(&c.RequestTimeout, "REQUEST_TIMEOUT")
	env.duration(&c.PollInterval, "POLL_INTERVAL")

	env.boolean(&c.RateLimit.Enabled, "RATE_LIMIT_ENABLED")
	env.integer(&c.RateLimit.Limit, "RATE_LIMIT_LIMIT")
	env.duration(&c.RateLimit.Window, "RATE_LIMIT_WINDOW")
	env.integer(&c.RateLimit.Burst, "RATE_LIMIT_BURST")
	env.list(&c.RateLimit.Whitelist, "RATE_LIMIT_WHITELIST")

	return env.err
}

// Validate checks the resolved configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return newValidationError(err)
	}
	return nil
}

// ValidateClient checks only the settings used by the polling client
func (c *Config) ValidateClient() error {
	if err := validator.New().StructPartial(c, "DashboardURL", "PollInterval", "RequestTimeout", "LogLevel", "LogFormat"); err != nil {
		return newValidationError(err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
