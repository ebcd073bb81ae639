package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// LoadEnv reads the given .env files into the process environment. Existing
// variables are never overridden, so the real environment always wins.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnv, err)
	}
	return nil
}

// Load parses the environment into a fresh T based on its `env` field tags.
// The default .env file, when present, is read once per process before the
// first parse.
func Load[T any]() (T, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file is a local development convenience; its absence is
		// the normal production case.
		_ = godotenv.Load()
	})

	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is Load for required startup configuration. It panics with the
// parse error so a misconfigured process fails before serving traffic.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}
