package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/couchcryptid/site-heatmap/internal/domain"
	"github.com/rs/zerolog"
)

// Config holds all tool settings, populated from environment variables and
// overridden by command-line flags.
type Config struct {
	InputPath     string `env:"HEATMAP_INPUT"`
	Sheet         string `env:"HEATMAP_SHEET"`
	OutputPath    string `env:"HEATMAP_OUTPUT" envDefault:"heatmap.html"`
	OverridesPath string `env:"HEATMAP_OVERRIDES"`
	MetricsFile   string `env:"HEATMAP_METRICS_FILE"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"json"`

	// Map rendering.
	TileURL         string `env:"HEATMAP_TILE_URL" envDefault:"https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"`
	TileAttribution string `env:"HEATMAP_TILE_ATTRIBUTION" envDefault:"&copy; OpenStreetMap contributors"`
	LeafletJSPath   string `env:"HEATMAP_LEAFLET_JS"`
	LeafletCSSPath  string `env:"HEATMAP_LEAFLET_CSS"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, then merges any non-empty flags from args on top.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	flagCfg, err := parseFlags(args)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(cfg, flagCfg, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("heatmap", flag.ContinueOnError)
	c := &Config{}
	fs.StringVar(&c.InputPath, "input", "", "dataset path (.csv or .xlsx)")
	fs.StringVar(&c.Sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	fs.StringVar(&c.OutputPath, "output", "", "output HTML path (default heatmap.html)")
	fs.StringVar(&c.OverridesPath, "overrides", "", "JSON overrides file")
	fs.StringVar(&c.MetricsFile, "metrics-file", "", "write Prometheus textfile metrics here")
	fs.StringVar(&c.LogLevel, "log-level", "", "log level")
	fs.StringVar(&c.LogFormat, "log-format", "", "log format: json or text")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	if c.InputPath == "" && fs.NArg() > 0 {
		c.InputPath = fs.Arg(0)
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.InputPath == "" {
		return errors.New("HEATMAP_INPUT (or -input) is required")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid LOG_FORMAT %q: want json or text", c.LogFormat)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if (c.LeafletJSPath == "") != (c.LeafletCSSPath == "") {
		return errors.New("HEATMAP_LEAFLET_JS and HEATMAP_LEAFLET_CSS must be set together")
	}
	return nil
}

// LoadOverrides reads the override document at path. An empty path yields
// no overrides.
func LoadOverrides(path string) (*domain.Overrides, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open overrides: %w", err)
	}
	defer f.Close()

	return domain.ParseOverrides(f)
}
