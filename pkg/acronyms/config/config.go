package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/acronyms/pkg/acronyms/internalerr"
)

// Input formats understood by the source package.
const (
	FormatLines = "lines"
	FormatJSONL = "jsonl"
	FormatHTML  = "html"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config describes one extraction run
type Config struct {
	Inputs  []Input      `yaml:"inputs"`
	Store   StoreConfig  `yaml:"store"`
	Report  ReportConfig `yaml:"report"`
	Workers int          `yaml:"workers"`
}

// Input is a single sentence source
type Input struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	Field  string `yaml:"field"` // JSONL only
}

// StoreConfig selects where runs are persisted
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// ReportConfig controls output
type ReportConfig struct {
	Top  int  `yaml:"top"`
	JSON bool `yaml:"json"`
}

// Default returns a config with every default applied and no inputs.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads a YAML config file and applies defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	for i := range c.Inputs {
		if c.Inputs[i].Format == "" {
			c.Inputs[i].Format = FormatLines
		}
		if c.Inputs[i].Format == FormatJSONL && c.Inputs[i].Field == "" {
			c.Inputs[i].Field = "text"
		}
	}
	if c.Store.Driver == "" {
		if c.Store.Path != "" {
			c.Store.Driver = DriverSQLite
		} else {
			c.Store.Driver = DriverMemory
		}
	}
	if c.Report.Top == 0 {
		c.Report.Top = 20
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
}

// Validate checks the config for values no run could use
func (c *Config) Validate() error {
	for i, in := range c.Inputs {
		if in.Path == "" {
			return fmt.Errorf("%w: input %d has no path", internalerr.ErrInvalidConfig, i)
		}
		switch in.Format {
		case FormatLines, FormatJSONL, FormatHTML:
		default:
			return fmt.Errorf("%w: input %s: format %q", internalerr.ErrInvalidConfig, in.Path, in.Format)
		}
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("%w: sqlite store needs a path", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: store driver %q", internalerr.ErrInvalidConfig, c.Store.Driver)
	}

	if c.Report.Top < 0 {
		return fmt.Errorf("%w: report.top must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", internalerr.ErrInvalidConfig)
	}
	return nil
}
