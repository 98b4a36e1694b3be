package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/scale"
)

const (
	DefaultAlgorithm = catalog.Bubble
	DefaultPaceMs    = 70
	DefaultTheme     = "default"
	DefaultLogLevel  = "info"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Algorithm  string `yaml:"algorithm"`
	PaceMs     int    `yaml:"pace_ms"`
	MaxSize    int    `yaml:"max_size"`
	RandomSize int    `yaml:"random_size"`
	RandomMax  int    `yaml:"random_max"`
	Seed       int64  `yaml:"seed"`
	Theme      string `yaml:"theme"`
	LogLevel   string `yaml:"log_level"`
	// Input is a comma or whitespace separated list. Empty means random.
	Input string `yaml:"input,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:  string(DefaultAlgorithm),
		PaceMs:     DefaultPaceMs,
		MaxSize:    scale.DefaultMaxSize,
		RandomSize: scale.DefaultRandomSize,
		RandomMax:  scale.DefaultRandomMax,
		Theme:      DefaultTheme,
		LogLevel:   DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver decodes path on top of a copy of base. Keys missing from the file
// keep the value from base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := catalog.Parse(c.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.PaceMs <= 0 {
		return fmt.Errorf("%w: pace_ms must be positive, got %d", ErrInvalidConfig, c.PaceMs)
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("%w: max_size must be positive, got %d", ErrInvalidConfig, c.MaxSize)
	}
	if c.RandomSize <= 0 || c.RandomSize > c.MaxSize {
		return fmt.Errorf("%w: random_size must be in [1, %d], got %d", ErrInvalidConfig, c.MaxSize, c.RandomSize)
	}
	if c.RandomMax <= 0 {
		return fmt.Errorf("%w: random_max must be positive, got %d", ErrInvalidConfig, c.RandomMax)
	}
	return nil
}

// AlgorithmID resolves Algorithm, falling back to the default on bad names.
func (c *Config) AlgorithmID() catalog.ID {
	id, err := catalog.Parse(c.Algorithm)
	if err != nil {
		return DefaultAlgorithm
	}
	return id
}

// Values parses Input. A nil slice with a nil error means no input was set.
func (c *Config) Values() ([]float64, error) {
	if c.Input == "" {
		return nil, nil
	}
	return scale.Parse(c.Input, c.MaxSize)
}
