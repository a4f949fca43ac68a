package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServiceEnvironment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	ServiceAPIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	DatasetPath        string `envconfig:"DATASET_PATH" required:"true"`
	TopCategoriesLimit int    `envconfig:"TOP_CATEGORIES_LIMIT" default:"10"`
	TopCustomersLimit  int    `envconfig:"TOP_CUSTOMERS_LIMIT" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
