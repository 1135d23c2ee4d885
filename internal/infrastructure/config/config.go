package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/codebuddy/internal/util"
)

const envPrefix = "CODEBUDDY"

// Database holds datastore configuration.
type Database struct {
	Driver string `envconfig:"DB_DRIVER" default:"libsql"`
	Path   string `envconfig:"DB_PATH"`
	Host   string `envconfig:"DB_HOST" default:"localhost"`
	// Port 0 means the driver's default: 3306 for MySQL, 5432 for PostgreSQL.
	Port     int    `envconfig:"DB_PORT" default:"0"`
	User     string `envconfig:"DB_USER" default:"root"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"codebuddy_db"`
}

// Log holds logger configuration.
type Log struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Otel holds OTEL exporter configuration.
type Otel struct {
	Enabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	Endpoint string `envconfig:"OTEL_ENDPOINT"`
	Insecure bool   `envconfig:"OTEL_INSECURE" default:"false"`
}

// Web holds dashboard server configuration.
type Web struct {
	Port int `envconfig:"WEB_PORT" default:"8080"`
}

// Config is the full application configuration.
type Config struct {
	Database Database
	Log      Log
	Otel     Otel
	Web      Web
}

// Load reads an optional .env file and then the CODEBUDDY_* environment.
// Values already set in the environment win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	for _, section := range []any{&cfg.Database, &cfg.Log, &cfg.Otel, &cfg.Web} {
		if err := envconfig.Process(envPrefix, section); err != nil {
			return nil, err
		}
	}

	if cfg.Database.Path == "" {
		path, err := util.DefaultDatabasePath()
		if err != nil {
			return nil, err
		}
		cfg.Database.Path = path
	}

	return &cfg, nil
}
