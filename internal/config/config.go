package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/wellsgz/perfreport/internal/discovery"
)

// EnvPrefix prefixes environment overrides, e.g. PERFREPORT_LOGS_DIR
const EnvPrefix = "PERFREPORT"

// Config represents the root configuration
type Config struct {
	Logs    LogsConfig    `mapstructure:"logs"`
	Report  ReportConfig  `mapstructure:"report"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	NetTest NetTestConfig `mapstructure:"nettest"`
}

// LogsConfig locates the test artifacts
type LogsConfig struct {
	Dir            string `mapstructure:"dir"`
	StabilityDir   string `mapstructure:"stability_dir"`
	NetworkDir     string `mapstructure:"network_dir"`
	MetricsPattern string `mapstructure:"metrics_pattern"`
	NetworkPattern string `mapstructure:"network_pattern"`
}

// ReportConfig holds report output settings
type ReportConfig struct {
	Output string `mapstructure:"output"` // Empty prints to stdout only
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NetTestConfig holds network test runner settings
type NetTestConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Pings   int           `mapstructure:"pings"`
	Targets []Target      `mapstructure:"targets"`
}

// Target is a host probed by the network test runner
type Target struct {
	Name  string `mapstructure:"name" json:"name"`
	Host  string `mapstructure:"host" json:"host"`
	Port  int    `mapstructure:"port" json:"port,omitempty"`
	Probe string `mapstructure:"probe" json:"probe_type"`
	Kind  string `mapstructure:"kind" json:"kind"` // connectivity (default) or streaming
}

// Target kinds
const (
	KindConnectivity = "connectivity"
	KindStreaming    = "streaming"
)

// TestKind returns the target kind, connectivity when unset
func (t Target) TestKind() string {
	if t.Kind == "" {
		return KindConnectivity
	}
	return t.Kind
}

// Load reads configuration from the specified file, or from defaults and
// environment only when configPath is empty
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("logs.dir", "./logs")
	v.SetDefault("logs.stability_dir", discovery.DefaultStabilityDir)
	v.SetDefault("logs.network_dir", discovery.DefaultNetworkDir)
	v.SetDefault("logs.metrics_pattern", discovery.DefaultMetricsPattern)
	v.SetDefault("logs.network_pattern", discovery.DefaultNetworkPattern)
	v.SetDefault("report.output", "")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("nettest.timeout", "5s")
	v.SetDefault("nettest.pings", 5)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Layout returns the artifact layout described by the logs section
func (c *Config) Layout() *discovery.Layout {
	return &discovery.Layout{
		LogsDir:        c.Logs.Dir,
		StabilityDir:   c.Logs.StabilityDir,
		NetworkDir:     c.Logs.NetworkDir,
		MetricsPattern: c.Logs.MetricsPattern,
		NetworkPattern: c.Logs.NetworkPattern,
	}
}

// Validate checks configuration for required fields and valid values
func (c *Config) Validate() error {
	if c.Logs.Dir == "" {
		return fmt.Errorf("logs.dir is required")
	}
	if err := validatePattern(c.Logs.MetricsPattern); err != nil {
		return fmt.Errorf("logs.metrics_pattern: %w", err)
	}
	if err := validatePattern(c.Logs.NetworkPattern); err != nil {
		return fmt.Errorf("logs.network_pattern: %w", err)
	}

	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", c.Logging.Format)
	}

	if c.NetTest.Timeout <= 0 {
		return fmt.Errorf("nettest.timeout must be positive")
	}
	if c.NetTest.Pings < 1 || c.NetTest.Pings > 100 {
		return fmt.Errorf("nettest.pings must be between 1 and 100")
	}

	for i, target := range c.NetTest.Targets {
		if target.Name == "" {
			return fmt.Errorf("target[%d]: name is required", i)
		}
		if target.Host == "" {
			return fmt.Errorf("target[%d] %q: host is required", i, target.Name)
		}
		if target.Probe != "icmp" && target.Probe != "tcp" {
			return fmt.Errorf("target[%d] %q: probe must be 'icmp' or 'tcp', got %q", i, target.Name, target.Probe)
		}
		if target.Probe == "tcp" && target.Port == 0 {
			return fmt.Errorf("target[%d] %q: port is required for TCP probe", i, target.Name)
		}
		if target.Port < 0 || target.Port > 65535 {
			return fmt.Errorf("target[%d] %q: port must be between 0 and 65535", i, target.Name)
		}
		if kind := target.TestKind(); kind != KindConnectivity && kind != KindStreaming {
			return fmt.Errorf("target[%d] %q: kind must be 'connectivity' or 'streaming', got %q", i, target.Name, target.Kind)
		}
	}

	return nil
}

// validatePattern checks a file glob with a single "*" placeholder
func validatePattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if !strings.Contains(pattern, "*") {
		return fmt.Errorf("pattern %q must contain a '*' placeholder", pattern)
	}
	if strings.ContainsRune(pattern, filepath.Separator) {
		return fmt.Errorf("pattern %q must be a file name, not a path", pattern)
	}
	return nil
}
