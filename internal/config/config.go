package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr            string
		ShutdownTimeout time.Duration
	}
	Database struct {
		Driver string
		Path   string
		DSN    string
	}
	Auth struct {
		BcryptCost int
		Realm      string
	}
	Log struct {
		Level  string
		Format string
	}
	CORS struct {
		AllowOrigin string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	// variables already present in the environment win over .env
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("NOTEKEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.shutdowntimeout", "10s")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/notekeeper.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.bcryptcost", bcrypt.DefaultCost)
	v.SetDefault("auth.realm", "notekeeper")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.alloworigin", "*")
}

// Validate reports configuration values the server cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("database path is required for the sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}
