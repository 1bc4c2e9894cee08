package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverMongo, StoreDriverSQLite:
	default:
		return nil, fmt.Errorf("unknown store driver: %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// ReadClientEnv reads the terminal client configuration.
func ReadClientEnv() (*ClientConfig, error) {
	cfg := new(ClientConfig)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("invalid TASKS_PAGE_SIZE: %d", cfg.PageSize)
	}
	return cfg, nil
}
