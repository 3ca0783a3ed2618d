package analogx

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file form of Options.
type Config struct {
	MinimalClusterSize  int     `yaml:"min-size"`
	MaximalClusterSize  int     `yaml:"max-size"`
	GridClusterSize     int     `yaml:"grid-cluster-size"`
	SaturationThreshold float64 `yaml:"saturation"`
	Focus               string  `yaml:"focus,omitempty"`
	Workers             int     `yaml:"workers"`
	DiskCache           bool    `yaml:"disk-cache"`
}

// DefaultConfig mirrors DefaultOptions.
var DefaultConfig = Config{
	MinimalClusterSize: DefaultOptions.MinimalClusterSize,
	GridClusterSize:    DefaultOptions.GridClusterSize,
	Workers:            DefaultOptions.Workers,
}

// NewConfig reads config from file
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err = yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GenerateSample writes DefaultConfig to filePath.
func GenerateSample(filePath string) error {
	bin, err := yaml.Marshal(DefaultConfig)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}

// Apply sets the fields of opts left at their zero value from the config.
func (c *Config) Apply(opts *Options) {
	if opts.MinimalClusterSize == 0 {
		opts.MinimalClusterSize = c.MinimalClusterSize
	}
	if opts.MaximalClusterSize == 0 {
		opts.MaximalClusterSize = c.MaximalClusterSize
	}
	if opts.GridClusterSize == 0 {
		opts.GridClusterSize = c.GridClusterSize
	}
	if opts.SaturationThreshold == 0 {
		opts.SaturationThreshold = c.SaturationThreshold
	}
	if opts.FocusWord == "" {
		opts.FocusWord = c.Focus
	}
	if opts.Workers == 0 {
		opts.Workers = c.Workers
	}
	opts.UseDiskCache = opts.UseDiskCache || c.DiskCache
}
