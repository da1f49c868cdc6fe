package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	serde "github.com/opikgo/serde"
)

// Driver names accepted by --driver and the config file.
const (
	DriverGoJSON   = "gojson"
	DriverFastJSON = "fastjson"
)

// Input formats accepted by --format and the config file.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the optional YAML configuration file. Flags given on the command
// line take precedence over values loaded from it.
type Config struct {
	Driver        string `yaml:"driver"`
	Format        string `yaml:"format"`
	CollectAll    bool   `yaml:"collect_all"`
	MaxDepth      int    `yaml:"max_depth"`
	MaxBytes      int64  `yaml:"max_bytes"`
	DuplicateKeys string `yaml:"duplicate_keys"`
	Language      string `yaml:"language"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Driver:        DriverGoJSON,
		Format:        FormatJSON,
		DuplicateKeys: "ignore",
		Language:      "en",
	}
}

// LoadConfig reads path on top of DefaultConfig. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return cfg, err
	}
	defer f.Close() //nolint:errcheck

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	var errs []error
	switch c.Driver {
	case DriverGoJSON, DriverFastJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown driver %q", c.Driver))
	}
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}
	if _, err := severity(c.DuplicateKeys); err != nil {
		errs = append(errs, err)
	}
	if c.MaxDepth < 0 || c.MaxBytes < 0 {
		errs = append(errs, errors.New("max_depth and max_bytes must not be negative"))
	}
	return errors.Join(errs...)
}

// ParseOpt converts the configuration into parse options. onWarning receives
// duplicate-key warnings.
func (c Config) ParseOpt(onWarning func(serde.Issue)) (serde.ParseOpt, error) {
	sev, err := severity(c.DuplicateKeys)
	if err != nil {
		return serde.ParseOpt{}, err
	}
	return serde.ParseOpt{
		Strictness: serde.Strictness{OnDuplicateKey: sev},
		MaxDepth:   c.MaxDepth,
		MaxBytes:   c.MaxBytes,
		CollectAll: c.CollectAll,
		OnWarning:  onWarning,
	}, nil
}

func severity(s string) (serde.Severity, error) {
	switch s {
	case "", "ignore":
		return serde.Ignore, nil
	case "warn":
		return serde.Warn, nil
	case "error":
		return serde.Error, nil
	}
	return serde.Ignore, fmt.Errorf("unknown duplicate_keys policy %q", s)
}
