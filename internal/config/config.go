package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Simulation holds all configuration for the combat simulation harness.
// Core balance constants (wave thresholds, detection radii) are compile-time
// and not configurable here; this covers logging, the engagement journal and
// the harness scenario.
type Simulation struct {
	LogLevel string `yaml:"log_level"`

	// Wave materialization strategy: "direct" or "ride_cycle".
	Strategy string `yaml:"strategy"`

	// Journal persistence (optional).
	JournalEnabled bool           `yaml:"journal_enabled"`
	Database       DatabaseConfig `yaml:"database"`

	// Scenario shape for the harness run.
	Scenario ScenarioConfig `yaml:"scenario"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// ScenarioConfig describes the world the harness sets up.
type ScenarioConfig struct {
	Strongpoints int `yaml:"strongpoints"` // strongpoints per side
	SpawnPoints  int `yaml:"spawn_points"` // spawn points per strongpoint
	Players      int `yaml:"players"`      // simulated attacking players
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:       "info",
		Strategy:       "direct",
		JournalEnabled: false,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "combatsim",
			Password: "combatsim",
			DBName:   "combatsim",
			SSLMode:  "disable",
		},
		Scenario: ScenarioConfig{
			Strongpoints: 2,
			SpawnPoints:  3,
			Players:      4,
		},
	}
}

// LoadSimulation loads harness config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// validate rejects impossible values early.
func (c Simulation) validate() error {
	switch c.Strategy {
	case "direct", "ride_cycle":
	default:
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.Scenario.Strongpoints < 1 {
		return fmt.Errorf("scenario needs at least 1 strongpoint, got %d", c.Scenario.Strongpoints)
	}
	if c.Scenario.SpawnPoints < 1 {
		return fmt.Errorf("scenario needs at least 1 spawn point per strongpoint, got %d", c.Scenario.SpawnPoints)
	}
	return nil
}
