package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"codemanager-ui/internal/model"
)

const (
	DefaultAPIBaseURL   = "http://localhost:5000"
	DefaultGraphBaseURL = "http://localhost:5050"
	DefaultSidebarWidth = 40
)

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	return applyDefaults(cfg)
}

func applyDefaults(cfg model.Config) (model.Config, error) {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.GraphBaseURL == "" {
		cfg.GraphBaseURL = DefaultGraphBaseURL
	}
	if cfg.SidebarWidth == 0 {
		cfg.SidebarWidth = DefaultSidebarWidth
	}

	if cfg.HistoryPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return model.Config{}, fmt.Errorf("getting home directory: %w", err)
		}
		cfg.HistoryPath = filepath.Join(home, ".config", "codemanager-ui", "chat_history.json")
	} else if strings.HasPrefix(cfg.HistoryPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return model.Config{}, fmt.Errorf("expanding home directory: %w", err)
		}
		cfg.HistoryPath = filepath.Join(home, cfg.HistoryPath[2:])
	}

	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
	cfg.GraphBaseURL = strings.TrimSuffix(cfg.GraphBaseURL, "/")

	return applyEnv(cfg), nil
}

// applyEnv lets environment variables override file values. The vars are
// typically supplied through a .env file loaded at startup.
func applyEnv(cfg model.Config) model.Config {
	if v := os.Getenv("CODEMANAGER_API_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv("CODEMANAGER_GRAPH_URL"); v != "" {
		cfg.GraphBaseURL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv("CODEMANAGER_TOKEN"); v != "" {
		cfg.DefaultToken = v
	}
	return cfg
}

// ResolveConfigPath determines the config file path from flag or default location.
func ResolveConfigPath(flagPath string) (string, error) {
	if flagPath != "" {
		if _, err := os.Stat(flagPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", flagPath)
		}
		return flagPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".config", "codemanager-ui", "config.yaml"), nil
}

// Load resolves the config path and loads the config. A missing default
// config file is not an error: every field has a usable default.
func Load(flagPath string) (model.Config, error) {
	path, err := ResolveConfigPath(flagPath)
	if err != nil {
		return model.Config{}, err
	}

	if _, statErr := os.Stat(path); statErr != nil {
		if flagPath != "" {
			return model.Config{}, fmt.Errorf("config file not found: %s", flagPath)
		}
		return applyDefaults(model.Config{})
	}

	return LoadFromFile(path)
}
