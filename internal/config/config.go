package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

// Environment variables with defaults
type ServerEnvironment struct {

	// http server settings
	Environment           string        `env:"ENVIRONMENT,default=dev"`
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=8080"`
	LogLevel              string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=60s"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
	RequestTimeout        time.Duration `env:"REQUEST_TIMEOUT,default=45s"`
	MaxRequestSize        int64         `env:"MAX_REQUEST_SIZE,default=65536"`
	RateLimitRPS          int32         `env:"RATE_LIMIT_RPS,default=0"`
	RateLimitBurst        int32         `env:"RATE_LIMIT_BURST,default=20"`
	MetricsNamespace      string        `env:"METRICS_NAMESPACE,default=ratecard"`

	// ExposeErrorTrace controls whether 500 responses include the stack trace of the failure.
	ExposeErrorTrace bool `env:"EXPOSE_ERROR_TRACE,default=true"`

	// signing material - paths default to the layout below CertificatesDir
	CertificatesDir string        `env:"CERTIFICATES_DIR,default=./certificates"`
	TemplateDir     string        `env:"TEMPLATE_DIR"`
	SigningKeyPath  string        `env:"SIGNING_KEY_PATH"`
	WWDRCertPath    string        `env:"WWDR_CERT_PATH"`
	SigningTimeout  time.Duration `env:"SIGNING_TIMEOUT,default=30s"`

	// signing key password - either supplied directly or fetched from Google Cloud Secret Manager
	PasswordSource           string `env:"PASSWORD_SOURCE,default=env"`
	SigningKeyPassword       string `env:"SIGNING_KEY_PASSWORD"`
	SigningKeyPasswordSecret string `env:"SIGNING_KEY_PASSWORD_SECRET"`

	// issuer constants written into every pass
	PassDescription    string `env:"PASS_DESCRIPTION,default=Professional Rate Card"`
	OrganizationName   string `env:"ORGANIZATION_NAME,default=RateCard"`
	PassTypeIdentifier string `env:"PASS_TYPE_IDENTIFIER,default=pass.com.adspaceng.ratecardapp"`
	TeamIdentifier     string `env:"TEAM_IDENTIFIER,default=Q3YGQ4925G"`
	BackgroundColor    string `env:"BACKGROUND_COLOR"`
	ForegroundColor    string `env:"FOREGROUND_COLOR"`
	WebServiceURL      string `env:"WEB_SERVICE_URL,default=https://ratecard.app"`
	ProfileURLBase     string `env:"PROFILE_URL_BASE,default=https://ratecard.app/u/"`
}

// default file names inside CertificatesDir
const (
	DefaultSigningKeyFile  = "signerCert.p12"
	DefaultWWDRCertFile    = "wwdr.pem"
	DefaultTemplateDirName = "pass-template"
)

// colour defaults live here rather than in the struct tags: go-env splits tag options on commas
const (
	DefaultBackgroundColor = "rgb(24, 76, 116)"
	DefaultForegroundColor = "rgb(255, 255, 255)"
)

// password sources
const (
	PasswordSourceEnv       = "env"
	PasswordSourceGCPSecret = "gcp-secret-manager"
)

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

var rgbColorPattern = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)

// NewServerConfig loads environment variables and returns a ServerEnvironment struct that contains the values
func NewServerConfig() (*ServerEnvironment, error) {
	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	cfg.applyDerivedDefaults()

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDerivedDefaults fills in the values that were not set explicitly and cannot be expressed as tag defaults
func (cfg *ServerEnvironment) applyDerivedDefaults() {
	if cfg.BackgroundColor == "" {
		cfg.BackgroundColor = DefaultBackgroundColor
	}
	if cfg.ForegroundColor == "" {
		cfg.ForegroundColor = DefaultForegroundColor
	}
	if cfg.SigningKeyPath == "" {
		cfg.SigningKeyPath = filepath.Join(cfg.CertificatesDir, DefaultSigningKeyFile)
	}
	if cfg.WWDRCertPath == "" {
		cfg.WWDRCertPath = filepath.Join(cfg.CertificatesDir, DefaultWWDRCertFile)
	}
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = filepath.Join(cfg.CertificatesDir, DefaultTemplateDirName)
	}
}

// IsDevelopment reports whether the service runs in a non-production environment
func (cfg *ServerEnvironment) IsDevelopment() bool {
	return cfg.Environment == "dev" || cfg.Environment == "test"
}

// validateConfig checks for required env variables
func validateConfig(cfg *ServerEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}

	if cfg.MaxRequestSize < 1 {
		return fmt.Errorf("MAX_REQUEST_SIZE must be at least 1")
	}
	if cfg.SigningTimeout <= 0 {
		return fmt.Errorf("SIGNING_TIMEOUT must be greater than 0")
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be greater than 0")
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}

	switch cfg.PasswordSource {
	case PasswordSourceEnv:
	case PasswordSourceGCPSecret:
		if cfg.SigningKeyPasswordSecret == "" {
			return fmt.Errorf("SIGNING_KEY_PASSWORD_SECRET is required when PASSWORD_SOURCE=%s", PasswordSourceGCPSecret)
		}
	default:
		return fmt.Errorf("invalid PASSWORD_SOURCE: %s (must be %q or %q)", cfg.PasswordSource, PasswordSourceEnv, PasswordSourceGCPSecret)
	}

	required := map[string]string{
		"PASS_DESCRIPTION":     cfg.PassDescription,
		"ORGANIZATION_NAME":    cfg.OrganizationName,
		"PASS_TYPE_IDENTIFIER": cfg.PassTypeIdentifier,
		"TEAM_IDENTIFIER":      cfg.TeamIdentifier,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	if err := validateRGBColor("BACKGROUND_COLOR", cfg.BackgroundColor); err != nil {
		return err
	}
	if err := validateRGBColor("FOREGROUND_COLOR", cfg.ForegroundColor); err != nil {
		return err
	}

	if _, err := url.ParseRequestURI(cfg.WebServiceURL); err != nil {
		return fmt.Errorf("WEB_SERVICE_URL is not a valid URL: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.ProfileURLBase); err != nil {
		return fmt.Errorf("PROFILE_URL_BASE is not a valid URL: %w", err)
	}

	return nil
}

// validateRGBColor checks a colour is in the rgb(r, g, b) form accepted by Wallet
func validateRGBColor(name, value string) error {
	m := rgbColorPattern.FindStringSubmatch(value)
	if m == nil {
		return fmt.Errorf("%s must have the form rgb(r, g, b), got %q", name, value)
	}
	for _, component := range m[1:] {
		var n int
		if _, err := fmt.Sscanf(component, "%d", &n); err != nil || n > 255 {
			return fmt.Errorf("%s has an out of range component %q", name, component)
		}
	}
	return nil
}
