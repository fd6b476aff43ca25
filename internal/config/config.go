package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/ipsetctl/internal/ipset"
	"github.com/danmuck/ipsetctl/internal/netlink"
)

// Config is the resolved runtime configuration for the ipsetctl binary.
type Config struct {
	DefaultSet     string
	Sets           map[string]string // alias -> kernel set name
	BufferCapacity int
	RetryLimit     int
	RetryInterval  time.Duration
	LogLevel       string
}

type fileConfig struct {
	DefaultSet     string            `toml:"default_set"`
	Sets           map[string]string `toml:"sets"`
	BufferCapacity int               `toml:"buffer_capacity"`
	RetryLimit     int               `toml:"retry_limit"`
	RetryInterval  string            `toml:"retry_interval"`
	LogLevel       string            `toml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Sets:           map[string]string{},
		BufferCapacity: netlink.DefaultCapacity,
		RetryLimit:     ipset.DefaultRetryLimit,
		RetryInterval:  ipset.DefaultRetryInterval,
	}
}

// Load reads and validates a TOML config file, filling unset fields with
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	if raw.DefaultSet != "" {
		cfg.DefaultSet = strings.TrimSpace(raw.DefaultSet)
	}
	if len(raw.Sets) > 0 {
		for alias, name := range raw.Sets {
			cfg.Sets[strings.TrimSpace(alias)] = strings.TrimSpace(name)
		}
	}
	if raw.BufferCapacity > 0 {
		cfg.BufferCapacity = raw.BufferCapacity
	}
	if raw.RetryLimit > 0 {
		cfg.RetryLimit = raw.RetryLimit
	}
	if raw.RetryInterval != "" {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RetryInterval))
		if err != nil {
			return Config{}, fmt.Errorf("parse retry_interval: %w", err)
		}
		cfg.RetryInterval = d
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that could not possibly work: set names
// the kernel would refuse and buffers too small for any command.
func Validate(cfg Config) error {
	if cfg.BufferCapacity < netlink.MsgHdrLen+netlink.GenHdrLen {
		return fmt.Errorf("buffer_capacity %d below minimum message size", cfg.BufferCapacity)
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("retry_interval must be positive")
	}
	names := make([]string, 0, len(cfg.Sets)+1)
	if cfg.DefaultSet != "" {
		names = append(names, cfg.DefaultSet)
	}
	for alias, name := range cfg.Sets {
		if alias == "" {
			return fmt.Errorf("set alias must not be empty")
		}
		names = append(names, name)
	}
	for _, name := range names {
		if name == "" || len(name)+1 > ipset.MaxNameLen {
			return fmt.Errorf("set name %q missing or too long", name)
		}
	}
	return nil
}

// ResolveSet maps an alias through the set table, passing unknown names
// straight through as kernel set names.
func (c Config) ResolveSet(nameOrAlias string) string {
	if name, ok := c.Sets[nameOrAlias]; ok {
		return name
	}
	return nameOrAlias
}
