package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wricardo/swap-puzzle/game/engine"
	"github.com/wricardo/swap-puzzle/game/render"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PUZZLE_"

// Config is the process-wide configuration
type Config struct {
	Dimension int          `yaml:"dimension"`
	AssetsDir string       `yaml:"assets_dir"`
	Theme     render.Theme `yaml:"theme"`
	Messages  Messages     `yaml:"messages"`
	Session   Session      `yaml:"session"`
	Server    Server       `yaml:"server"`
}

// Messages are the overlay texts
type Messages struct {
	Start string `yaml:"start"`
	Won   string `yaml:"won"`
}

// Session controls idle expiry
type Session struct {
	MaxIdle         time.Duration `yaml:"max_idle"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// Server holds HTTP settings
type Server struct {
	Addr string `yaml:"addr"`
}

// Default returns a complete, valid configuration
func Default() *Config {
	theme := render.DefaultTheme()
	return &Config{
		Dimension: engine.DefaultDimension,
		AssetsDir: "assets",
		Theme:     theme,
		Messages: Messages{
			Start: theme.StartMessage,
			Won:   theme.WonMessage,
		},
		Session: Session{
			MaxIdle:         30 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Server: Server{
			Addr: "localhost:8080",
		},
	}
}

// Validate checks every field and wraps failures in ErrInvalidConfig
func (c *Config) Validate() error {
	if c.Dimension < engine.MinDimension || c.Dimension > engine.MaxDimension {
		return fmt.Errorf("%w: dimension must be between %d and %d, got %d",
			ErrInvalidConfig, engine.MinDimension, engine.MaxDimension, c.Dimension)
	}
	if strings.TrimSpace(c.AssetsDir) == "" {
		return fmt.Errorf("%w: assets_dir is required", ErrInvalidConfig)
	}
	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Messages.Start == "" || c.Messages.Won == "" {
		return fmt.Errorf("%w: messages.start and messages.won are required", ErrInvalidConfig)
	}
	if c.Session.MaxIdle <= 0 {
		return fmt.Errorf("%w: session.max_idle must be positive, got %s", ErrInvalidConfig, c.Session.MaxIdle)
	}
	if c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("%w: session.cleanup_interval must be positive, got %s", ErrInvalidConfig, c.Session.CleanupInterval)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}
	return nil
}

// RenderTheme returns the theme with the configured messages applied
func (c *Config) RenderTheme() render.Theme {
	theme := c.Theme
	theme.StartMessage = c.Messages.Start
	theme.WonMessage = c.Messages.Won
	return theme
}

// ApplyEnv overrides fields from PUZZLE_* variables. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "DIMENSION"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sDIMENSION: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		c.Dimension = n
	}
	if v, ok := lookup(EnvPrefix + "ASSETS_DIR"); ok {
		c.AssetsDir = v
	}
	if v, ok := lookup(EnvPrefix + "ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvPrefix + "MAX_IDLE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sMAX_IDLE: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		c.Session.MaxIdle = d
	}
	if v, ok := lookup(EnvPrefix + "START_MESSAGE"); ok {
		c.Messages.Start = v
	}
	if v, ok := lookup(EnvPrefix + "WON_MESSAGE"); ok {
		c.Messages.Won = v
	}
	return nil
}
