// Package config loads the handreplay HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete configuration. Every block is optional.
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Parser *ParserSettings `hcl:"parser,block"`
	Replay *ReplaySettings `hcl:"replay,block"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Address   string `hcl:"address,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	LogFormat string `hcl:"log_format,optional"`
}

// ParserSettings bounds batch parsing.
type ParserSettings struct {
	Workers  int `hcl:"workers,optional"`
	MaxHands int `hcl:"max_hands,optional"`
}

// ReplaySettings configures the hand cache and replay sessions. Durations
// use time.ParseDuration syntax.
type ReplaySettings struct {
	CacheSize     int    `hcl:"cache_size,optional"`
	SessionTTL    string `hcl:"session_ttl,optional"`
	SweepInterval string `hcl:"sweep_interval,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:   "localhost:8080",
			LogLevel:  "info",
			LogFormat: "console",
		},
		Parser: &ParserSettings{
			Workers:  0,
			MaxHands: 10000,
		},
		Replay: &ReplaySettings{
			CacheSize:     1024,
			SessionTTL:    "30m",
			SweepInterval: "1m",
		},
	}
}

// Load reads filename, falling back to defaults when it does not exist.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Server == nil {
		c.Server = def.Server
	}
	if c.Parser == nil {
		c.Parser = def.Parser
	}
	if c.Replay == nil {
		c.Replay = def.Replay
	}

	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}
	if c.Server.LogFormat == "" {
		c.Server.LogFormat = def.Server.LogFormat
	}
	if c.Parser.MaxHands == 0 {
		c.Parser.MaxHands = def.Parser.MaxHands
	}
	if c.Replay.CacheSize == 0 {
		c.Replay.CacheSize = def.Replay.CacheSize
	}
	if c.Replay.SessionTTL == "" {
		c.Replay.SessionTTL = def.Replay.SessionTTL
	}
	if c.Replay.SweepInterval == "" {
		c.Replay.SweepInterval = def.Replay.SweepInterval
	}
}

// Validate checks ranges and formats.
func (c *Config) Validate() error {
	switch c.Server.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q: want console or json", c.Server.LogFormat)
	}
	switch c.Server.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.Server.LogLevel)
	}
	if c.Parser.Workers < 0 {
		return fmt.Errorf("invalid parser workers: %d", c.Parser.Workers)
	}
	if c.Parser.MaxHands < 0 {
		return fmt.Errorf("invalid parser max_hands: %d", c.Parser.MaxHands)
	}
	if c.Replay.CacheSize < 1 {
		return fmt.Errorf("invalid replay cache_size: %d", c.Replay.CacheSize)
	}
	ttl, err := time.ParseDuration(c.Replay.SessionTTL)
	if err != nil || ttl <= 0 {
		return fmt.Errorf("invalid replay session_ttl %q", c.Replay.SessionTTL)
	}
	sweep, err := time.ParseDuration(c.Replay.SweepInterval)
	if err != nil || sweep <= 0 {
		return fmt.Errorf("invalid replay sweep_interval %q", c.Replay.SweepInterval)
	}
	return nil
}

// TTL is the idle time after which a replay session expires.
func (r *ReplaySettings) TTL() time.Duration {
	d, _ := time.ParseDuration(r.SessionTTL)
	return d
}

// Sweep is the interval between expiry sweeps.
func (r *ReplaySettings) Sweep() time.Duration {
	d, _ := time.ParseDuration(r.SweepInterval)
	return d
}
