// Package document implements the CLI commands that read and write
// documents.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/basebase-ai/basebase-go/internal/cmd/base"
	"github.com/basebase-ai/basebase-go/pkg/basebase"
)

const defaultTimeout = 30 * time.Second

// connection holds the flags every document command accepts.
type connection struct {
	flagConfig  string
	flagBaseURL string
	flagProject string
	flagAPIKey  string
	flagFormat  string
	flagTimeout time.Duration

	// Used by tests.
	fs    afero.Fs
	stdin io.Reader
}

func (c *connection) register(f *base.FlagSet) {
	f.StringVar(&c.flagConfig, "config", "",
		"Path to a configuration file (.hcl, .json, .yaml).")
	f.StringVar(&c.flagBaseURL, "base-url", "",
		"Store root URL. Overrides the config file and "+basebase.EnvBaseURL+".")
	f.StringVar(&c.flagProject, "project", "",
		"Project ID. Overrides the config file and "+basebase.EnvProjectID+".")
	f.StringVar(&c.flagAPIKey, "api-key", "",
		"API key. Prefer "+basebase.EnvAPIKey+" to keep it out of shell history.")
	f.StringVar(&c.flagFormat, "format", "json",
		"Output format: json or yaml.")
	f.DurationVar(&c.flagTimeout, "timeout", defaultTimeout,
		"Time allowed for the whole command.")
}

// config assembles the client configuration from the config file,
// environment and flags, in increasing order of precedence.
func (c *connection) config() (*basebase.Config, error) {
	var cfg *basebase.Config
	if c.flagConfig != "" {
		fs := c.fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		var err error
		if cfg, err = basebase.ReadConfig(fs, c.flagConfig); err != nil {
			return nil, err
		}
	} else {
		cfg = basebase.DefaultConfig()
		cfg.ApplyEnv(os.LookupEnv)
	}

	if c.flagBaseURL != "" {
		cfg.BaseURL = c.flagBaseURL
	}
	if c.flagProject != "" {
		cfg.ProjectID = c.flagProject
	}
	if c.flagAPIKey != "" {
		cfg.APIKey = c.flagAPIKey
	}
	return cfg, nil
}

func (c *connection) client(log hclog.Logger) (*basebase.Client, error) {
	if c.flagFormat != "json" && c.flagFormat != "yaml" {
		return nil, fmt.Errorf("unsupported format %q: must be json or yaml", c.flagFormat)
	}

	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	if lvl := hclog.LevelFromString(cfg.LogLevel); lvl != hclog.NoLevel {
		log.SetLevel(lvl)
	}
	return basebase.NewFromConfig(cfg, basebase.WithLogger(log))
}

// readData parses a JSON object from arg, or from stdin when arg is "-".
// Numbers are kept as json.Number so integers survive unchanged.
func (c *connection) readData(arg string) (map[string]any, error) {
	var src io.Reader = strings.NewReader(arg)
	if arg == "-" {
		src = c.stdin
		if src == nil {
			src = os.Stdin
		}
	}

	dec := json.NewDecoder(src)
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("error parsing document data: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("document data must be a JSON object")
	}
	return data, nil
}

// render formats v in the selected output format.
func (c *connection) render(v any) (string, error) {
	switch c.flagFormat {
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return "", err
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	}
}

// output renders v to the UI, reporting failures as errors. It returns the
// exit code.
func (c *connection) output(ui cli.Ui, v any) int {
	out, err := c.render(v)
	if err != nil {
		ui.Error(fmt.Sprintf("error rendering output: %v", err))
		return 1
	}
	ui.Output(out)
	return 0
}

// documentView is how a document is printed.
type documentView struct {
	ID         string         `json:"id" yaml:"id"`
	Path       string         `json:"path" yaml:"path"`
	Exists     bool           `json:"exists" yaml:"exists"`
	Data       map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
	CreateTime string         `json:"createTime,omitempty" yaml:"createTime,omitempty"`
	UpdateTime string         `json:"updateTime,omitempty" yaml:"updateTime,omitempty"`
}

func viewOf(snap *basebase.DocumentSnapshot) documentView {
	return documentView{
		ID:         snap.ID(),
		Path:       snap.Ref().Path(),
		Exists:     snap.Exists(),
		Data:       snap.Data(),
		CreateTime: snap.CreateTime(),
		UpdateTime: snap.UpdateTime(),
	}
}
