package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/notekeeper.db", cfg.Database.Path)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, "notekeeper", cfg.Auth.Realm)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("NOTEKEEPER_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("NOTEKEEPER_DATABASE_DRIVER", "postgres")
	t.Setenv("NOTEKEEPER_DATABASE_DSN", "postgres://u:p@localhost/notes")
	t.Setenv("NOTEKEEPER_AUTH_BCRYPTCOST", "12")
	t.Setenv("NOTEKEEPER_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@localhost/notes", cfg.Database.DSN)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.Database.Driver = DriverSQLite
		cfg.Database.Path = "data/notes.db"
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
		cfg.Log.Format = "text"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.Database.Path = "" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Database.Driver = DriverPostgres }},
		{name: "bcrypt cost too low", mutate: func(c *Config) { c.Auth.BcryptCost = bcrypt.MinCost - 1 }},
		{name: "bcrypt cost too high", mutate: func(c *Config) { c.Auth.BcryptCost = bcrypt.MaxCost + 1 }},
		{name: "log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
