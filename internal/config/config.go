package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/foundry/internal/power"
)

// Config holds all engine configuration
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Crafting   CraftingConfig   `yaml:"crafting"`
	Power      PowerConfig      `yaml:"power"`
	Fuel       FuelConfig       `yaml:"fuel"`
	Data       DataConfig       `yaml:"data"`
}

// SimulationConfig holds tick-loop settings for external drivers
type SimulationConfig struct {
	TickRate int `yaml:"tick_rate"` // Hz
}

// TickSeconds returns the fixed dt one tick covers.
func (s SimulationConfig) TickSeconds() float64 {
	return 1.0 / float64(s.TickRate)
}

// CraftingConfig holds crafting queue and resolver settings
type CraftingConfig struct {
	MaxQueueSize int `yaml:"max_queue_size"`
	// ManualEfficiency scales hand-crafting speed (1.0 = recipe time).
	ManualEfficiency float64 `yaml:"manual_efficiency"`
	MaxChainDepth    int     `yaml:"max_chain_depth"`
}

// PowerConfig holds grid classification thresholds as generation/demand ratios
type PowerConfig struct {
	SurplusThreshold  float64 `yaml:"surplus_threshold"`
	BalancedThreshold float64 `yaml:"balanced_threshold"`
}

// Thresholds converts the config values into the power package's type.
func (p PowerConfig) Thresholds() power.Thresholds {
	return power.Thresholds{Surplus: p.SurplusThreshold, Balanced: p.BalancedThreshold}
}

// FuelConfig holds fuel allocation settings
type FuelConfig struct {
	MaxRefuelPasses int `yaml:"max_refuel_passes"`
}

// DataConfig holds paths to the YAML data catalogs
type DataConfig struct {
	Items      string `yaml:"items"`
	Recipes    string `yaml:"recipes"`
	Facilities string `yaml:"facilities"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied, used by tests
// and by callers that run without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills zero values after unmarshal
func (cfg *Config) applyDefaults() {
	if cfg.Simulation.TickRate == 0 {
		cfg.Simulation.TickRate = 20
	}
	if cfg.Crafting.MaxQueueSize == 0 {
		cfg.Crafting.MaxQueueSize = 50
	}
	if cfg.Crafting.ManualEfficiency == 0 {
		cfg.Crafting.ManualEfficiency = 1.0
	}
	if cfg.Crafting.MaxChainDepth == 0 {
		cfg.Crafting.MaxChainDepth = 16
	}
	if cfg.Power.SurplusThreshold == 0 {
		cfg.Power.SurplusThreshold = 1.10
	}
	if cfg.Power.BalancedThreshold == 0 {
		cfg.Power.BalancedThreshold = 0.95
	}
	if cfg.Fuel.MaxRefuelPasses == 0 {
		cfg.Fuel.MaxRefuelPasses = 10
	}
	if cfg.Data.Items == "" {
		cfg.Data.Items = "./data/items.yaml"
	}
	if cfg.Data.Recipes == "" {
		cfg.Data.Recipes = "./data/recipes.yaml"
	}
	if cfg.Data.Facilities == "" {
		cfg.Data.Facilities = "./data/facilities.yaml"
	}
}
