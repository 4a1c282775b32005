// internal/config/config.go
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"podium/internal/persona"
)

type Config struct {
	Politicians []persona.Info `yaml:"politicians"`

	Defaults struct {
		Format             string  `yaml:"format"`
		MaxTurns           int     `yaml:"max_turns"`
		TopicInterval      int     `yaml:"topic_interval"`
		TimePerTurn        int     `yaml:"time_per_turn"` // seconds
		InterruptionChance float64 `yaml:"interruption_chance"`
		ModeratorControl   string  `yaml:"moderator_control"`
	} `yaml:"defaults"`

	Paths struct {
		KnowledgeDir string `yaml:"knowledge_dir"`
		DataDir      string `yaml:"data_dir"`
	} `yaml:"paths"`
}

func Load() (*Config, error) {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		// Return defaults if no config file
		return defaultConfig(), nil
	}
	return parse(data)
}

// LoadFrom reads config from an explicit path, for the --config flag.
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	// Expand environment variables in config
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if len(cfg.Politicians) == 0 {
		cfg.Politicians = []persona.Info{
			{ID: "biden", Name: "Joe Biden", Color: "#3C6EB4"},
			{ID: "trump", Name: "Donald Trump", Color: "#E0162B"},
			{ID: "sanders", Name: "Bernie Sanders", Color: "#147FAB"},
		}
	}
	if cfg.Defaults.Format == "" {
		cfg.Defaults.Format = "head_to_head"
	}
	if cfg.Defaults.MaxTurns == 0 {
		cfg.Defaults.MaxTurns = 8
	}
	if cfg.Defaults.TopicInterval == 0 {
		cfg.Defaults.TopicInterval = 4
	}
	if cfg.Defaults.TimePerTurn == 0 {
		cfg.Defaults.TimePerTurn = 60
	}
	if cfg.Defaults.InterruptionChance == 0 {
		cfg.Defaults.InterruptionChance = 0.25
	}
	if cfg.Defaults.ModeratorControl == "" {
		cfg.Defaults.ModeratorControl = "moderate"
	}
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = defaultDataDir()
	}
}

// Registry returns the configured politician roster as a lookup registry.
func (c *Config) Registry() *persona.Registry {
	return persona.NewRegistry(c.Politicians)
}

func ConfigPath() string {
	configDir, _ := os.UserConfigDir()
	if configDir == "" {
		configDir = os.ExpandEnv("$HOME/.config")
	}
	return filepath.Join(configDir, "podium", "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".podium")
}
