package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledgerline.yaml configuration.
type Config struct {
	Ledger  LedgerConfig  `yaml:"ledger"`
	Import  ImportConfig  `yaml:"import"`
	Display DisplayConfig `yaml:"display"`
}

// LedgerConfig locates the ledger data directory.
type LedgerConfig struct {
	// Root is the directory holding transactions.csv, categories.yaml
	// and payee-map.json. Relative paths resolve against the working
	// directory. Environment variable: LEDGERLINE_ROOT
	Root string `yaml:"root" koanf:"LEDGERLINE_ROOT"`
}

// ImportConfig sets statement-import defaults.
type ImportConfig struct {
	// DefaultBank is used when `import` is run without --bank.
	// Environment variable: LEDGERLINE_DEFAULT_BANK
	DefaultBank string `yaml:"default_bank" koanf:"LEDGERLINE_DEFAULT_BANK"`
}

// DisplayConfig controls report output.
type DisplayConfig struct {
	// Currency is the label shown next to amounts in reports.
	// Environment variable: LEDGERLINE_CURRENCY
	Currency string `yaml:"currency" koanf:"LEDGERLINE_CURRENCY"`
}

// Load reads a ledgerline.yaml file from disk, then overlays any
// LEDGERLINE_* environment variables on top of it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default(root) when
// the file does not exist. Environment overrides apply either way.
func LoadOrDefault(path, root string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	cfg = Default(root)
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider("LEDGERLINE_", ".", nil), nil); err != nil {
		return fmt.Errorf("loading config from environment: %w", err)
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return fmt.Errorf("unmarshaling environment config: %w", err)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(root string) *Config {
	return &Config{
		Ledger: LedgerConfig{
			Root: root,
		},
		Display: DisplayConfig{
			Currency: "INR",
		},
	}
}
