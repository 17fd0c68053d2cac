package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// HUB_ADDR points the suite at a live hub websocket endpoint,
	// e.g. ws://localhost:8080/ws. The suite skips when unset.
	HubAddr string `envconfig:"HUB_ADDR"`
	// E2E_LOG_LEVEL controls client logging verbosity during runs
	LogLevel string `envconfig:"E2E_LOG_LEVEL" default:"warn"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
