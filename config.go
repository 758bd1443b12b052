package ttlmemo

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the file form of a memoizer's settings.
type Config struct {
	TTL      int    `yaml:"ttl"`
	LogLevel string `yaml:"log_level"`
}

type rawConfig struct {
	TTL      yaml.Node `yaml:"ttl"`
	LogLevel string     `yaml:"log_level"`
}

// LoadConfig reads a YAML document. The ttl value must be a plain YAML
// integer: ttl: 5 loads, ttl: 5.0 and ttl: "5" do not.
func LoadConfig(r io.Reader) (Config, error) {
	var raw rawConfig
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if raw.TTL.Kind == 0 || raw.TTL.ShortTag() == "!!null" {
		return Config{}, fmt.Errorf("%w: ttl is not set", ErrInvalidTTL)
	}
	if raw.TTL.Kind != yaml.ScalarNode || raw.TTL.ShortTag() != "!!int" {
		return Config{}, fmt.Errorf("%w: ttl %q is tagged %s", ErrInvalidTTL, raw.TTL.Value, raw.TTL.ShortTag())
	}

	var ttl int
	if err := raw.TTL.Decode(&ttl); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidTTL, err)
	}

	return Config{TTL: ttl, LogLevel: raw.LogLevel}, nil
}

// NewFromConfig builds a memoizer from cfg. A log level in opts wins over
// the one in cfg.
func NewFromConfig(cfg Config, opts Options) (*Memoizer, error) {
	if opts.LogLevel == "" {
		opts.LogLevel = cfg.LogLevel
	}
	return New(cfg.TTL, opts)
}
