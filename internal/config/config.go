package config

import "github.com/kelseyhightower/envconfig"

// Config holds the environment-driven settings of the service.
type Config struct {
	Port           string `envconfig:"PORT" default:"8081"`
	SeedSampleData bool   `envconfig:"SEED_SAMPLE_DATA" default:"false"`
	SeedOwnerID    string `envconfig:"SEED_OWNER_ID" default:"demo-owner"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
