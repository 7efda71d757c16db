package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/abalone/game/engine"
	"github.com/wricardo/abalone/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
)

// DefaultConfigName is the layout GetDefault prefers.
const DefaultConfigName = "standard"

// extensions are tried in order when resolving a config name to a file.
var extensions = []string{".yaml", ".yml", ".json"}

// Manager handles layout configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// configID strips a known extension from name.
func configID(name string) string {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// LoadConfig loads a configuration by name
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	id := configID(name)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	var data []byte
	var err error
	for _, ext := range extensions {
		data, err = os.ReadFile(filepath.Join(m.configDir, id+ext))
		if err == nil || !os.IsNotExist(err) {
			break
		}
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, id)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// yaml.v3 also accepts JSON documents
	var config engine.GameConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[id] = &config
	return &config, nil
}

// ListConfigs returns information about all available configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id := configID(entry.Name())
		if id == entry.Name() || seen[id] {
			continue
		}

		config, err := m.LoadConfig(id)
		if err != nil {
			// Skip invalid configs
			continue
		}
		seen[id] = true

		board, _ := engine.ParseLayout(config.Layout)
		starting := config.StartingPlayer
		if starting == engine.NoPlayer {
			starting = engine.Black
		}
		configs = append(configs, &service.ConfigInfo{
			Filename:       entry.Name(),
			ConfigID:       id,
			Name:           config.Name,
			Description:    config.Description,
			StartingPlayer: starting,
			BlackMarbles:   board.Count(engine.Black),
			WhiteMarbles:   board.Count(engine.White),
		})
	}

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops cached configurations and reloads the default from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig picks standard, then the first valid layout on disk,
// then the built-in standard layout.
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			config = engine.StandardConfig()
		} else if config, err = m.LoadConfig(configs[0].ConfigID); err != nil {
			config = engine.StandardConfig()
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
	return nil
}

// SaveConfig validates a configuration and writes it as YAML
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	id := configID(name)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, id+".yaml")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = config
	m.mu.Unlock()

	return nil
}

// IsNotFound reports whether err means the configuration does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrConfigNotFound)
}
