package basebase

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/basebase-ai/basebase-go/pkg/auth"
	"github.com/basebase-ai/basebase-go/pkg/docid"
	"github.com/basebase-ai/basebase-go/pkg/transport"
)

// Environment variables that override configuration file values.
const (
	EnvBaseURL   = "BASEBASE_BASE_URL"
	EnvProjectID = "BASEBASE_PROJECT_ID"
	EnvAPIKey    = "BASEBASE_API_KEY"
)

// Config contains configuration for a Basebase client.
//
// Example configuration (HCL):
//
//	base_url   = "https://api.basebase.example.com/v1/projects"
//	project_id = "my-project"
//	api_key    = "bb_my-project_s3cr3t"
//	timeout    = "30s"
//	tls_verify = true
//
// The same keys are accepted in YAML files.
type Config struct {
	// BaseURL is the root URL documents are addressed under.
	BaseURL string `hcl:"base_url,optional" yaml:"base_url" json:"base_url"`

	// ProjectID is the default project. When empty it is derived from
	// APIKey.
	ProjectID string `hcl:"project_id,optional" yaml:"project_id" json:"project_id"`

	// APIKey is sent as a bearer token. Prefer the BASEBASE_API_KEY
	// environment variable over storing it in a file.
	APIKey string `hcl:"api_key,optional" yaml:"api_key" json:"-"`

	// Timeout bounds each request, as a Go duration string.
	// Default: "30s"
	Timeout string `hcl:"timeout,optional" yaml:"timeout" json:"timeout"`

	// TLSVerify controls TLS certificate verification.
	// Default: true
	TLSVerify *bool `hcl:"tls_verify,optional" yaml:"tls_verify" json:"tls_verify"`

	// MaxRetries for connection errors and 5xx responses.
	// Default: 0
	MaxRetries int `hcl:"max_retries,optional" yaml:"max_retries" json:"max_retries"`

	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin string `hcl:"retry_wait_min,optional" yaml:"retry_wait_min" json:"retry_wait_min"`
	RetryWaitMax string `hcl:"retry_wait_max,optional" yaml:"retry_wait_max" json:"retry_wait_max"`

	// IDGenerator selects how client-side document IDs are minted:
	// "random" (default) or "uuid".
	IDGenerator string `hcl:"id_generator,optional" yaml:"id_generator" json:"id_generator"`

	// LogLevel is used by the CLI: trace, debug, info, warn, error or off.
	// Default: "info"
	LogLevel string `hcl:"log_level,optional" yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		Timeout:     "30s",
		TLSVerify:   &tlsVerify,
		IDGenerator: string(docid.GeneratorTypeRandom),
		LogLevel:    "info",
	}
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Timeout == "" {
		c.Timeout = defaults.Timeout
	}
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.IDGenerator == "" {
		c.IDGenerator = defaults.IDGenerator
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(validateBaseURL)),
		validation.Field(&c.ProjectID,
			validation.Required.When(c.APIKey == "").Error("is required when api_key is not set"),
			validation.By(validateProjectID),
		),
		validation.Field(&c.Timeout, validation.By(validateDuration)),
		validation.Field(&c.MaxRetries, validation.Min(0)),
		validation.Field(&c.RetryWaitMin, validation.By(validateDuration)),
		validation.Field(&c.RetryWaitMax, validation.By(validateDuration)),
		validation.Field(&c.IDGenerator, validation.By(validateGeneratorType)),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error", "off")),
	)
}

func validateBaseURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

func validateProjectID(value interface{}) error {
	s, _ := value.(string)
	if strings.Contains(s, "/") {
		return errors.New("cannot contain slashes")
	}
	return nil
}

func validateDuration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("must be non-negative, got: %v", d)
	}
	return nil
}

func validateGeneratorType(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !docid.GeneratorType(s).IsValid() {
		return fmt.Errorf("must be one of %v", docid.ValidGeneratorTypes())
	}
	return nil
}

// ResolvedProjectID returns ProjectID, or the project derived from APIKey
// when ProjectID is empty.
func (c *Config) ResolvedProjectID() (string, error) {
	if c.ProjectID != "" {
		return c.ProjectID, nil
	}
	return auth.ProjectIDFromAPIKey(c.APIKey)
}

// TransportConfig converts the file configuration into transport settings.
// Validate must have succeeded first.
func (c *Config) TransportConfig() transport.Config {
	cfg := transport.Config{
		Timeout:            mustDuration(c.Timeout),
		InsecureSkipVerify: c.TLSVerify != nil && !*c.TLSVerify,
		MaxRetries:         c.MaxRetries,
		RetryWaitMin:       mustDuration(c.RetryWaitMin),
		RetryWaitMax:       mustDuration(c.RetryWaitMax),
	}
	return cfg
}

func mustDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, _ := time.ParseDuration(s)
	return d
}

// ApplyEnv overrides fields from BASEBASE_* environment variables read
// through lookup, typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvProjectID); ok && v != "" {
		c.ProjectID = v
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.APIKey = v
	}
}

// LoadConfig reads a configuration file from fs with ReadConfig and
// validates the result.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	cfg, err := ReadConfig(fs, path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ReadConfig reads a configuration file from fs without validating it.
// Files ending in .yaml or .yml are parsed as YAML; anything else goes
// through the HCL decoder, which also understands .json. Environment
// overrides and defaults are applied.
func ReadConfig(fs afero.Fs, path string) (*Config, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(src, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := hclsimple.Decode(path, src, nil, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		// hclsimple picks the syntax from the extension.
		if err := hclsimple.Decode(strings.TrimSuffix(path, filepath.Ext(path))+".hcl", src, nil, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse HCL config: %w", err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	cfg.applyDefaults()
	return &cfg, nil
}

// ConfigFromEnv builds a Config from defaults and BASEBASE_* variables
// alone, for use without a configuration file.
func ConfigFromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := DefaultConfig()
	cfg.ApplyEnv(lookup)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
