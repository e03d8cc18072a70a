// Package config loads the cmosctl runtime configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the yaml file. Zero values fall back to built-in defaults.
type Config struct {
	Device  string  `yaml:"device"` // port I/O device node, default /dev/port
	Century Century `yaml:"century"`
	Spins   int     `yaml:"spins"`    // update-guard poll budget
	Retries int     `yaml:"retries"`  // torn-read retry budget
	KeepNMI bool    `yaml:"keep_nmi"` // leave NMI enabled during register selects
}

// Century picks exactly one of the two resolution strategies. Leaving both
// unset defaults to assuming the current host year.
type Century struct {
	Register *uint8 `yaml:"register"` // CMOS address of the century byte
	Assume   *int   `yaml:"assume"`   // reference year to borrow the century from
}

// Load reads and parses a yaml config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations the driver would misbehave on.
func Validate(cfg *Config) error {
	if cfg.Century.Register != nil && cfg.Century.Assume != nil {
		return errors.New("config: century.register and century.assume are mutually exclusive")
	}
	if cfg.Century.Register != nil && *cfg.Century.Register > 0x7F {
		return fmt.Errorf("config: century register 0x%02x outside the CMOS address space", *cfg.Century.Register)
	}
	if cfg.Century.Assume != nil && *cfg.Century.Assume < 1900 {
		return fmt.Errorf("config: century.assume year %d is implausible", *cfg.Century.Assume)
	}
	if cfg.Spins < 0 || cfg.Retries < 0 {
		return errors.New("config: spins and retries must not be negative")
	}
	return nil
}
