package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "goarxml.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/goarxml"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger  *slog.Logger
	workDir string
	homeDir string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/goarxml/config.yaml)
// 3. Project config (goarxml.yaml in current or parent directories)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfigPath != "" {
		if userConfig, err := readFile(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		projectConfig, err := readFile(projectConfigPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
		config.Merge(projectConfig)
	} else {
		l.logger.Debug("No project config found")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFile loads an explicit config file over the defaults, skipping
// the user and project layers.
func (l *Loader) LoadFile(path string) (*Config, error) {
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Loaded config", slog.String("path", path))
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home := l.homeDir
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for goarxml.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	dir := l.workDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = cwd
	}

	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
