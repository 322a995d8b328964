// Package config provides configuration loading and defaults for the font
// tools (fontgen, fontsync, welcomebot).
//
// Configuration is read from an optional TOML file, fontkit.toml at the
// repository root by default. Every field has a default, so the tools run
// with no file and no arguments.
package config

//go:generate go run ../../cmd/genconfig

import (
	"bytes"
	"fmt"
	"go/token"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"tools.welcomer/dev/fontkit/internal/atomicfile"
	"tools.welcomer/dev/fontkit/internal/paths"
)

// BotTokenEnv overrides [BotConfig.Token] when set.
const BotTokenEnv = "WELCOMEBOT_TOKEN"

// DefaultUserAgent is sent to Google Fonts. A modern browser UA makes the
// CSS2 API answer with WOFF2 URLs.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level configuration.
type Config struct {
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
	// Metadata holds the Google Fonts metadata source settings.
	Metadata MetadataConfig `toml:"metadata"`
	// Output holds generated artifact destinations.
	Output OutputConfig `toml:"output"`
	// Sync holds webfont download settings.
	Sync SyncConfig `toml:"sync"`
	// Bot holds welcome bot settings.
	Bot BotConfig `toml:"bot"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// File enables an additional rotating log file when non-empty.
	File string `toml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// MetadataConfig holds the metadata fetch settings.
type MetadataConfig struct {
	// URL is the Google Fonts metadata endpoint.
	URL string `toml:"url"`
	// TimeoutSeconds bounds the whole fetch.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// RetryMax is the number of retries after the first attempt.
	RetryMax int `toml:"retry_max"`
}

// OutputConfig holds generated artifact destinations.
type OutputConfig struct {
	// DataPaths receive byte-identical copies of the JSON font data.
	DataPaths []string `toml:"data_paths"`
	// SourcePath receives the generated Go font table.
	SourcePath string `toml:"source_path"`
	// SourcePackage is the package clause of the generated Go file.
	SourcePackage string `toml:"source_package"`
	// SourceVar is the name of the generated map variable.
	SourceVar string `toml:"source_var"`
	// SourceType is the element type of the generated map.
	SourceType string `toml:"source_type"`
	// BuiltinsFile replaces the embedded web-safe font table when set.
	BuiltinsFile string `toml:"builtins_file,omitempty"`
}

// SyncConfig holds webfont download settings.
type SyncConfig struct {
	// Manifest is the font data file to download fonts for.
	Manifest string `toml:"manifest"`
	// Dir is the directory webfont files are stored in.
	Dir string `toml:"dir"`
	// CSSURL is the Google Fonts CSS2 endpoint.
	CSSURL string `toml:"css_url"`
	// UserAgent is sent with every request.
	UserAgent string `toml:"user_agent"`
	// ConvertSFNT stores WOFF2 downloads as TTF.
	ConvertSFNT bool `toml:"convert_sfnt"`
	// Keep lists glob patterns of files that are never pruned.
	Keep []string `toml:"keep"`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// RetryMax is the number of retries after the first attempt.
	RetryMax int `toml:"retry_max"`
	// PollIntervalSeconds is the watch-mode fallback polling interval.
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
}

// BotConfig holds welcome bot settings.
type BotConfig struct {
	// Token is the Discord bot token. Prefer the WELCOMEBOT_TOKEN env var.
	Token string `toml:"token,omitempty"`
	// Message is sent as a direct message to every member that joins.
	Message string `toml:"message"`
	// SkipBots suppresses the message for bot accounts.
	SkipBots bool `toml:"skip_bots"`
}

// MetadataTimeout returns the metadata fetch timeout.
func (c *Config) MetadataTimeout() time.Duration {
	return time.Duration(c.Metadata.TimeoutSeconds) * time.Second
}

// SyncTimeout returns the per-request sync timeout.
func (c *Config) SyncTimeout() time.Duration {
	return time.Duration(c.Sync.TimeoutSeconds) * time.Second
}

// PollInterval returns the watch-mode polling interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Sync.PollIntervalSeconds) * time.Second
}

// ///////////////////////////////////////////////
// Default Configuration
// ///////////////////////////////////////////////

// DefaultConfig returns a Config populated with defaults. Paths are relative
// to the working directory, which is expected to be the repository root.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
		Metadata: MetadataConfig{
			URL:            paths.MetadataURL,
			TimeoutSeconds: 30,
			RetryMax:       0,
		},
		Output: OutputConfig{
			DataPaths:     []string{paths.DataFile, paths.WebsiteDataFile},
			SourcePath:    paths.SourceFile,
			SourcePackage: "service",
			SourceVar:     "Fonts",
			SourceType:    "Font",
		},
		Sync: SyncConfig{
			Manifest:            paths.DataFile,
			Dir:                 paths.FontsDir,
			CSSURL:              paths.CSS2URL,
			UserAgent:           DefaultUserAgent,
			ConvertSFNT:         true,
			Keep:                []string{".gitkeep", "README*"},
			TimeoutSeconds:      15,
			RetryMax:            0,
			PollIntervalSeconds: 5,
		},
		Bot: BotConfig{
			Message:  "welcome!",
			SkipBots: true,
		},
	}
}

// ExampleConfig returns a Config suitable for generating fontkit.default.toml.
func ExampleConfig() *Config {
	return DefaultConfig()
}

// ///////////////////////////////////////////////
// Loading and Saving
// ///////////////////////////////////////////////

// Load reads and parses the configuration file at path. If the file doesn't
// exist, DefaultConfig is used. The WELCOMEBOT_TOKEN environment variable
// overrides bot.token in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if tok := os.Getenv(BotTokenEnv); tok != "" {
		cfg.Bot.Token = tok
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk as TOML using atomic file write.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return atomicfile.Write(path, buf.Bytes(), 0o644)
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// validLogLevels is the set of accepted log level strings.
var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}
	if c.Log.File != "" && c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB)
	}

	if c.Metadata.URL == "" {
		return fmt.Errorf("metadata.url must not be empty")
	}
	if c.Metadata.TimeoutSeconds <= 0 {
		return fmt.Errorf("metadata.timeout_seconds must be > 0, got %d", c.Metadata.TimeoutSeconds)
	}
	if c.Metadata.RetryMax < 0 {
		return fmt.Errorf("metadata.retry_max must be >= 0, got %d", c.Metadata.RetryMax)
	}

	if len(c.Output.DataPaths) == 0 {
		return fmt.Errorf("output.data_paths must list at least one path")
	}
	for _, p := range c.Output.DataPaths {
		if p == "" {
			return fmt.Errorf("output.data_paths must not contain empty paths")
		}
	}
	if c.Output.SourcePath == "" {
		return fmt.Errorf("output.source_path must not be empty")
	}
	for key, ident := range map[string]string{
		"output.source_package": c.Output.SourcePackage,
		"output.source_var":     c.Output.SourceVar,
		"output.source_type":    c.Output.SourceType,
	} {
		if !token.IsIdentifier(ident) {
			return fmt.Errorf("invalid %s %q: must be a Go identifier", key, ident)
		}
	}

	if c.Sync.Manifest == "" || c.Sync.Dir == "" || c.Sync.CSSURL == "" {
		return fmt.Errorf("sync.manifest, sync.dir and sync.css_url must not be empty")
	}
	if c.Sync.TimeoutSeconds <= 0 {
		return fmt.Errorf("sync.timeout_seconds must be > 0, got %d", c.Sync.TimeoutSeconds)
	}
	if c.Sync.RetryMax < 0 {
		return fmt.Errorf("sync.retry_max must be >= 0, got %d", c.Sync.RetryMax)
	}
	if c.Sync.PollIntervalSeconds <= 0 {
		return fmt.Errorf("sync.poll_interval_seconds must be > 0, got %d", c.Sync.PollIntervalSeconds)
	}
	for _, pattern := range c.Sync.Keep {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid sync.keep pattern %q", pattern)
		}
	}

	if strings.TrimSpace(c.Bot.Message) == "" {
		return fmt.Errorf("bot.message must not be empty")
	}
	return nil
}
