package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/liamgriffiths/visits/internal/db"
	"github.com/liamgriffiths/visits/internal/visit"
)

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	DBPath      string `yaml:"db_path,omitempty"`
	DatabaseURL string `yaml:"database_url,omitempty"`
	Username    string `yaml:"username,omitempty"`
	Period      int    `yaml:"period,omitempty"`
	MaxDays     int    `yaml:"max_days,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "visits", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// getDatabaseURL returns the PostgreSQL URL from flag, env var, or config.
// Empty means the SQLite backend.
func getDatabaseURL(cfg CLIConfig) string {
	if flagDatabaseURL != "" {
		return flagDatabaseURL
	}
	if v := os.Getenv("VISITS_DATABASE_URL"); v != "" {
		return v
	}
	return cfg.DatabaseURL
}

// getDBPath returns the SQLite path from flag, env var, config, or default.
func getDBPath(cfg CLIConfig) (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	if v := os.Getenv("VISITS_DB"); v != "" {
		return v, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return db.DefaultPath()
}

// getUsername returns the username from flag, env var, or config.
func getUsername(flag string, cfg CLIConfig) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv("VISITS_USERNAME"); v != "" {
		return v
	}
	return cfg.Username
}

// windowRules fills in period and max days the user did not pass on the
// command line from config, then from the built-in defaults.
func windowRules(periodSet bool, period int, maxDaysSet bool, maxDays int, cfg CLIConfig) visit.Rules {
	rules := visit.DefaultRules()
	switch {
	case periodSet:
		rules.Period = period
	case cfg.Period != 0:
		rules.Period = cfg.Period
	}
	switch {
	case maxDaysSet:
		rules.MaxDays = maxDays
	case cfg.MaxDays != 0:
		rules.MaxDays = cfg.MaxDays
	}
	return rules
}
