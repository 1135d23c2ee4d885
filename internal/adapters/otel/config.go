package otel

import "github.com/emiliopalmerini/codebuddy/internal/infrastructure/config"

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// FromConfig extracts exporter settings from the application config.
func FromConfig(cfg config.Otel) Config {
	return Config{
		Endpoint: cfg.Endpoint,
		Enabled:  cfg.Enabled,
		Insecure: cfg.Insecure,
	}
}
