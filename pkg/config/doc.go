// Package config loads application configuration from environment variables
// into tagged structs, with optional .env file support for local development.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//	type HTTPConfig struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg := config.MustLoad[HTTPConfig]()
//
// The default .env file is read at most once per process; missing files are
// ignored so production deployments configure through the environment alone.
package config
