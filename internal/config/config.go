package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeHuman    = "human"
	ModeSelfPlay = "self-play"
)

type Config struct {
	LogLevel      string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode          string `yaml:"mode" env:"MODE" env-default:"human"`
	HumanMark     string `yaml:"human-mark" env:"HUMAN_MARK" env-default:"X"`
	StartPosition string `yaml:"start-position" env:"START_POSITION" env-default:""`
	NoColor       bool   `yaml:"no-color" env:"NO_COLOR" env-default:"false"`
	Search        Search `yaml:"search"`
}

type Search struct {
	Parallel       bool `yaml:"parallel" env:"SEARCH_PARALLEL" env-default:"false"`
	DisablePruning bool `yaml:"disable-pruning" env:"SEARCH_DISABLE_PRUNING" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads the config file and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// LoadEnv builds the config from environment variables and defaults only.
func LoadEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to load config from env: %w", err)
	}

	return config, nil
}

// LoadOrEnv reads the config file when it exists and falls back to LoadEnv otherwise.
func LoadOrEnv(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return LoadEnv()
	}

	return Load(path)
}
