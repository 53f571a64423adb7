package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/HMasataka/tinyhttpd/internal/listener"
	"github.com/HMasataka/tinyhttpd/internal/resolver"
	"github.com/HMasataka/tinyhttpd/internal/wire"
	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
)

const (
	StrategySerial = "serial"
	StrategyPooled = "pooled"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrInvalidPort   = errors.New("no port was specified or invalid port")
)

type Config struct {
	Server ServerConfig `toml:"server"`
	Serve  ServeConfig  `toml:"serve"`
	Log    LogConfig    `toml:"log"`
}

type ServerConfig struct {
	Port         int      `toml:"port"`
	Backlog      int      `toml:"backlog"`
	ReadSize     int      `toml:"read_size"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	Strategy     string   `toml:"strategy"`
	Workers      int      `toml:"workers"`
}

type ServeConfig struct {
	// Root defaults to the working directory.
	Root       string `toml:"root"`
	IndexFile  string `toml:"index_file"`
	Encoding   string `toml:"encoding"`
	ServerName string `toml:"server_name"`
	Confine    bool   `toml:"confine"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is written as "1s", "250ms".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:     listener.DefaultPort,
			Backlog:  listener.MinimumBacklog,
			ReadSize: 1024,
			Strategy: StrategySerial,
			Workers:  4,
		},
		Serve: ServeConfig{
			Root:       ".",
			IndexFile:  resolver.DefaultIndexFile,
			Encoding:   wire.DefaultEncoding,
			ServerName: "MyServer v0.1",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load overlays the TOML file at path on Default. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	return Parse(b, cfg)
}

func Parse(b []byte, base Config) (Config, error) {
	cfg := base
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return base, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Server.Strategy {
	case StrategySerial, StrategyPooled:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Server.Strategy)
	}

	if c.Server.ReadSize <= 0 {
		return fmt.Errorf("%w: read_size must be positive", ErrInvalidConfig)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidConfig)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// Workers is the pool size for the pooled strategy, at least 1.
func (c Config) Workers() int {
	return lo.Max([]int{c.Server.Workers, 1})
}

// ParsePort reads the first positional argument. A missing or non-numeric
// value yields fallback and ErrInvalidPort.
func ParsePort(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, ErrInvalidPort
	}

	port, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return fallback, fmt.Errorf("%w: %q", ErrInvalidPort, args[0])
	}

	return port, nil
}
