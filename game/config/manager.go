package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Manager loads the configuration file and keeps the current value
type Manager struct {
	path   string
	lookup func(string) (string, bool)

	mu     sync.RWMutex
	config *Config
}

// NewManager loads path. A missing file yields the defaults; environment
// overrides are applied on top either way.
func NewManager(path string) (*Manager, error) {
	m := &Manager{
		path:   path,
		lookup: os.LookupEnv,
	}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadDotEnv loads .env files into the process environment. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads and validates one configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the configuration file path
func (m *Manager) Path() string {
	return m.path
}

// Reload re-reads the file and the environment
func (m *Manager) Reload() error {
	cfg := Default()
	if m.path != "" {
		loaded, err := Load(m.path)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, ErrConfigNotFound):
			// defaults
		default:
			return err
		}
	}

	if err := cfg.ApplyEnv(m.lookup); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return nil
}

// Update applies fn to a copy of the current configuration and keeps it if it validates
func (m *Manager) Update(fn func(*Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := *m.config
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	m.config = &next
	return nil
}

// Save writes the current configuration to path as YAML
func (m *Manager) Save(path string) error {
	data, err := Marshal(m.Get())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal encodes cfg as YAML
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
