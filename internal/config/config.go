package config

import (
	"fmt"
	"net/url"
	"time"
)

// Diff modes for change detection.
const (
	DiffLength  = "length"
	DiffContent = "content"
)

// Presentation strategies for message previews.
const (
	PresentationRich  = "rich"
	PresentationBasic = "basic"
)

// Config holds client configuration values.
type Config struct {
	Endpoint         string        `mapstructure:"endpoint" yaml:"endpoint"`
	User             string        `mapstructure:"user" yaml:"user"`
	PollInterval     time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	Diff             string        `mapstructure:"diff" yaml:"diff"`
	Presentation     string        `mapstructure:"presentation" yaml:"presentation"`
	MaxMessageLength int           `mapstructure:"max_message_length" yaml:"max_message_length"`
	ClearOnSend      bool          `mapstructure:"clear_on_send" yaml:"clear_on_send"`
	BottomTolerance  int           `mapstructure:"bottom_tolerance" yaml:"bottom_tolerance"`
	LogLevel         string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile          string        `mapstructure:"log_file" yaml:"log_file"`
	StatePath        string        `mapstructure:"state_path" yaml:"state_path"`
	Server           ServerConfig  `mapstructure:"server" yaml:"server"`
}

// ServerConfig holds settings of the reference feed endpoint.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	PostsPerMinute    int           `mapstructure:"posts_per_minute" yaml:"posts_per_minute"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Endpoint:         "http://localhost:8080/messages",
		User:             "anonymous",
		PollInterval:     5 * time.Second,
		RequestTimeout:   10 * time.Second,
		Diff:             DiffLength,
		Presentation:     PresentationRich,
		MaxMessageLength: 140,
		ClearOnSend:      true,
		BottomTolerance:  1,
		LogLevel:         "info",
		LogFile:          "wirechat.log",
		StatePath:        "wirechat-state.yaml",
		Server: ServerConfig{
			Addr:              ":8080",
			DatabasePath:      "wirechat.db",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			PostsPerMinute:    60,
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
// Booleans cannot be told apart from their zero value and are left alone.
func (c *Config) UpdateFrom(other Config) {
	if other.Endpoint != "" {
		c.Endpoint = other.Endpoint
	}
	if other.User != "" {
		c.User = other.User
	}
	if other.PollInterval != 0 {
		c.PollInterval = other.PollInterval
	}
	if other.RequestTimeout != 0 {
		c.RequestTimeout = other.RequestTimeout
	}
	if other.Diff != "" {
		c.Diff = other.Diff
	}
	if other.Presentation != "" {
		c.Presentation = other.Presentation
	}
	if other.MaxMessageLength != 0 {
		c.MaxMessageLength = other.MaxMessageLength
	}
	if other.BottomTolerance != 0 {
		c.BottomTolerance = other.BottomTolerance
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.StatePath != "" {
		c.StatePath = other.StatePath
	}
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.DatabasePath != "" {
		c.Server.DatabasePath = other.Server.DatabasePath
	}
	if other.Server.ReadHeaderTimeout != 0 {
		c.Server.ReadHeaderTimeout = other.Server.ReadHeaderTimeout
	}
	if other.Server.ShutdownTimeout != 0 {
		c.Server.ShutdownTimeout = other.Server.ShutdownTimeout
	}
	if other.Server.PostsPerMinute != 0 {
		c.Server.PostsPerMinute = other.Server.PostsPerMinute
	}
}

// Validate checks the client settings.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint: missing host")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("max_message_length must be positive")
	}
	if c.BottomTolerance < 0 {
		return fmt.Errorf("bottom_tolerance must not be negative")
	}
	switch c.Diff {
	case DiffLength, DiffContent:
	default:
		return fmt.Errorf("diff: unknown mode %q", c.Diff)
	}
	switch c.Presentation {
	case PresentationRich, PresentationBasic:
	default:
		return fmt.Errorf("presentation: unknown strategy %q", c.Presentation)
	}
	return nil
}
