package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	API struct {
		BaseURL        string  `yaml:"base_url" json:"base_url"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		RatePerSec     float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
		RateBurst      int     `yaml:"rate_burst" json:"rate_burst"`
	} `yaml:"api" json:"api"`
}

// Default is what a fresh data dir gets before the user touches anything.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38472
	cfg.API.BaseURL = "http://localhost:5000"
	cfg.API.TimeoutSeconds = 10
	cfg.API.RatePerSec = 5
	cfg.API.RateBurst = 10
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
