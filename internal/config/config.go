package config

import (
	"github.com/spf13/viper"
)

type BackendKind string

const (
	BackendCSV    BackendKind = "csv"    // flat-file store, one CSV per table
	BackendSQLite BackendKind = "sqlite" // relational store, single database file
)

type (
	Config struct {
		Storage
	}

	Storage struct {
		Backend      BackendKind
		DataDir      string // root for the flat-file backend
		DatabasePath string // database file for the relational backend
	}
)

// NewConfig reads configuration from SHELVES_* environment variables, with
// an optional YAML file (SHELVES_CONFIG_FILE) layered underneath. The result
// is passed explicitly into the facade; nothing reads it as ambient state.
func NewConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("SHELVES")
	v.AutomaticEnv()
	v.SetDefault("backend", string(BackendCSV))
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("database_path", DefaultDatabasePath)

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		// A missing or unreadable file keeps the env/default values.
		_ = v.ReadInConfig()
	}

	return &Config{
		Storage: Storage{
			Backend:      BackendKind(v.GetString("BACKEND")),
			DataDir:      v.GetString("DATA_DIR"),
			DatabasePath: v.GetString("DATABASE_PATH"),
		},
	}
}
