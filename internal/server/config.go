package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"taskmaster/internal/store"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreMySQL  = "mysql"
)

// Config holds the companion server settings.
type Config struct {
	AppPort string
	Store   string // "memory", "sqlite" or "mysql"
	MySQL   store.MySQLConfig

	// SQLitePath is the database file used when Store is "sqlite".
	SQLitePath string
}

// NewViper returns a viper instance with the server defaults, bound to the
// environment: APP_PORT, TASKMASTER_STORE, SQLITE_PATH and MYSQL_*.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("app_port", "8080")
	v.SetDefault("store", StoreMemory)
	v.SetDefault("sqlite_path", "taskmaster.db")
	v.SetDefault("mysql_host", "127.0.0.1")
	v.SetDefault("mysql_port", "3306")
	v.SetDefault("mysql_user", "taskmaster")
	v.SetDefault("mysql_password", "taskmaster")
	v.SetDefault("mysql_database", "taskmaster")
	v.SetDefault("mysql_params", store.DefaultMySQLParams)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("store", "TASKMASTER_STORE")
	return v
}

// LoadConfig reads .env (if present), the optional config file and the
// environment. Flags bound to v take precedence over all of them.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	_ = godotenv.Load(".env")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		AppPort: v.GetString("app_port"),
		Store:   strings.ToLower(v.GetString("store")),
		MySQL: store.MySQLConfig{
			Host:     v.GetString("mysql_host"),
			Port:     v.GetString("mysql_port"),
			User:     v.GetString("mysql_user"),
			Password: v.GetString("mysql_password"),
			Database: v.GetString("mysql_database"),
			Params:   v.GetString("mysql_params"),
		},
		SQLitePath: v.GetString("sqlite_path"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the store kind and port.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreMySQL:
	default:
		return fmt.Errorf("unknown store %q (use memory, sqlite or mysql)", c.Store)
	}
	if c.AppPort == "" {
		return errors.New("app_port must not be empty")
	}
	if c.Store == StoreSQLite && c.SQLitePath == "" {
		return errors.New("sqlite_path must not be empty")
	}
	return nil
}
