package basebase

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "30s", cfg.Timeout)
	require.NotNil(t, cfg.TLSVerify)
	assert.True(t, *cfg.TLSVerify)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, "random", cfg.IDGenerator)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name: "valid with project",
			modify: func(c *Config) {
				c.BaseURL = "https://api.example.test/v1"
				c.ProjectID = "proj"
			},
		},
		{
			name: "valid with api key only",
			modify: func(c *Config) {
				c.BaseURL = "http://localhost:8080"
				c.APIKey = "bb_proj_secret"
			},
		},
		{
			name:    "missing base url",
			modify:  func(c *Config) { c.ProjectID = "proj" },
			wantErr: "base_url: cannot be blank",
		},
		{
			name: "bad scheme",
			modify: func(c *Config) {
				c.BaseURL = "ftp://api.example.test"
				c.ProjectID = "proj"
			},
			wantErr: "must use http or https scheme",
		},
		{
			name:    "missing project and key",
			modify:  func(c *Config) { c.BaseURL = "https://api.example.test" },
			wantErr: "project_id: is required when api_key is not set",
		},
		{
			name: "slash in project",
			modify: func(c *Config) {
				c.BaseURL = "https://api.example.test"
				c.ProjectID = "a/b"
			},
			wantErr: "cannot contain slashes",
		},
		{
			name: "bad timeout",
			modify: func(c *Config) {
				c.BaseURL = "https://api.example.test"
				c.ProjectID = "proj"
				c.Timeout = "soon"
			},
			wantErr: "timeout: invalid duration",
		},
		{
			name: "negative retries",
			modify: func(c *Config) {
				c.BaseURL = "https://api.example.test"
				c.ProjectID = "proj"
				c.MaxRetries = -1
			},
			wantErr: "max_retries",
		},
		{
			name: "unknown id generator",
			modify: func(c *Config) {
				c.BaseURL = "https://api.example.test"
				c.ProjectID = "proj"
				c.IDGenerator = "snowflake"
			},
			wantErr: "id_generator",
		},
		{
			name: "unknown log level",
			modify: func(c *Config) {
				c.BaseURL = "https://api.example.test"
				c.ProjectID = "proj"
				c.LogLevel = "loud"
			},
			wantErr: "log_level",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_TransportConfig(t *testing.T) {
	tlsVerify := false
	cfg := &Config{
		Timeout:      "5s",
		TLSVerify:    &tlsVerify,
		MaxRetries:   2,
		RetryWaitMin: "100ms",
		RetryWaitMax: "2s",
	}

	tc := cfg.TransportConfig()
	assert.Equal(t, 5*time.Second, tc.Timeout)
	assert.True(t, tc.InsecureSkipVerify)
	assert.Equal(t, 2, tc.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, tc.RetryWaitMin)
	assert.Equal(t, 2*time.Second, tc.RetryWaitMax)
}

func TestConfig_ResolvedProjectID(t *testing.T) {
	cfg := &Config{ProjectID: "explicit", APIKey: "bb_other_secret"}
	id, err := cfg.ResolvedProjectID()
	require.NoError(t, err)
	assert.Equal(t, "explicit", id)

	cfg.ProjectID = ""
	id, err = cfg.ResolvedProjectID()
	require.NoError(t, err)
	assert.Equal(t, "other", id)

	cfg.APIKey = ""
	_, err = cfg.ResolvedProjectID()
	assert.Error(t, err)
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvBaseURL: "https://env.example.test",
		EnvAPIKey:  "bb_envproj_secret",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := &Config{BaseURL: "https://file.example.test", ProjectID: "fileproj"}
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "https://env.example.test", cfg.BaseURL)
	assert.Equal(t, "fileproj", cfg.ProjectID)
	assert.Equal(t, "bb_envproj_secret", cfg.APIKey)
}

func TestLoadConfig(t *testing.T) {
	// Keep the process environment from leaking into the results.
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvProjectID, "")
	t.Setenv(EnvAPIKey, "")

	tests := []struct {
		name     string
		filename string
		content  string
		check    func(t *testing.T, cfg *Config)
		wantErr  string
	}{
		{
			name:     "hcl",
			filename: "basebase.hcl",
			content: `
base_url    = "https://api.example.test/v1"
project_id  = "proj"
timeout     = "10s"
tls_verify  = false
max_retries = 3
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://api.example.test/v1", cfg.BaseURL)
				assert.Equal(t, "proj", cfg.ProjectID)
				assert.Equal(t, "10s", cfg.Timeout)
				require.NotNil(t, cfg.TLSVerify)
				assert.False(t, *cfg.TLSVerify)
				assert.Equal(t, 3, cfg.MaxRetries)
				assert.Equal(t, "random", cfg.IDGenerator)
				assert.Equal(t, "info", cfg.LogLevel)
			},
		},
		{
			name:     "yaml",
			filename: "basebase.yaml",
			content: `
base_url: https://api.example.test/v1
api_key: bb_yamlproj_secret
id_generator: uuid
log_level: debug
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "bb_yamlproj_secret", cfg.APIKey)
				assert.Equal(t, "uuid", cfg.IDGenerator)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "30s", cfg.Timeout)
				require.NotNil(t, cfg.TLSVerify)
				assert.True(t, *cfg.TLSVerify)
			},
		},
		{
			name:     "json",
			filename: "basebase.json",
			content:  `{"base_url": "https://api.example.test", "project_id": "jsonproj"}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "jsonproj", cfg.ProjectID)
			},
		},
		{
			name:     "other extension parsed as hcl",
			filename: "basebase.conf",
			content:  `base_url = "https://api.example.test"` + "\n" + `project_id = "confproj"` + "\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "confproj", cfg.ProjectID)
			},
		},
		{
			name:     "unknown attribute",
			filename: "basebase.hcl",
			content:  `colour = "blue"`,
			wantErr:  "failed to parse HCL config",
		},
		{
			name:     "invalid yaml",
			filename: "basebase.yml",
			content:  "base_url: [unterminated",
			wantErr:  "failed to parse YAML config",
		},
		{
			name:     "fails validation",
			filename: "basebase.hcl",
			content:  `project_id = "proj"`,
			wantErr:  "invalid config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, fs.MkdirAll("/etc/basebase", 0o755))
			require.NoError(t, afero.WriteFile(fs, "/etc/basebase/"+tt.filename, []byte(tt.content), 0o644))

			cfg, err := LoadConfig(fs, "/etc/basebase/"+tt.filename)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvProjectID, "envproj")
	t.Setenv(EnvAPIKey, "")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "basebase.hcl", []byte(`base_url = "https://api.example.test"`), 0o644))

	cfg, err := LoadConfig(fs, "basebase.hcl")
	require.NoError(t, err)
	assert.Equal(t, "envproj", cfg.ProjectID)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(afero.NewMemMapFs(), "nope.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
