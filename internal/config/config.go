package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"   // Single-file database (default)
	DriverPostgres Driver = "postgres" // DSN must be a postgres:// URL
	DriverMySQL    Driver = "mysql"    // go-sql-driver DSN; needs parseTime=true&multiStatements=true
)

type (
	Config struct {
		HTTP
		Global
		Database
		CORS
		Password
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver      Driver
		DSN         string
		AutoMigrate bool   // Apply embedded migrations on startup
		LogLevel    string // silent, error, warn, info
	}
	CORS struct {
		AllowedOrigins []string
	}
	Password struct {
		BcryptCost int
	}
)

// ConnectionString returns the DSN handed to the driver. SQLite connections
// always get foreign key enforcement, which the cascade rules depend on.
func (d Database) ConnectionString() string {
	if d.Driver != DriverSQLite && d.Driver != "" {
		return d.DSN
	}
	if strings.Contains(d.DSN, "_foreign_keys") || strings.Contains(d.DSN, "_fk=") {
		return d.DSN
	}
	sep := "?"
	if strings.Contains(d.DSN, "?") {
		sep = "&"
	}
	return d.DSN + sep + "_foreign_keys=on"
}

// splitList turns a comma-separated env value into a trimmed list.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func NewConfig() *Config {
	// A missing .env is fine: production reads the real environment.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	// Database defaults
	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_dsn", DefaultDatabasePath)
	v.SetDefault("database_auto_migrate", true)
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("password_bcrypt_cost", bcrypt.DefaultCost)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:      Driver(strings.ToLower(v.GetString("DATABASE_DRIVER"))),
			DSN:         v.GetString("DATABASE_DSN"),
			AutoMigrate: v.GetBool("DATABASE_AUTO_MIGRATE"),
			LogLevel:    v.GetString("DATABASE_LOG_LEVEL"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Password: Password{
			BcryptCost: v.GetInt("PASSWORD_BCRYPT_COST"),
		},
	}
}
