package config

import "fmt"

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig selects the persistence backend and carries its credentials.
// An unknown driver is a fatal startup condition.
type StoreConfig struct {
	Driver   string `mapstructure:"driver"   validate:"required,oneof=postgres mongo"`
	Host     string `mapstructure:"host"     validate:"required"`
	Port     int    `mapstructure:"port"     validate:"gte=0,lt=65536"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database" validate:"required"`
}

// Store driver names accepted by StoreConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// credentials renders the user:password@ URL fragment, empty when no user
// is configured.
func (c StoreConfig) credentials() string {
	if c.User == "" {
		return ""
	}
	return c.User + ":" + c.Password + "@"
}

// port returns the configured port, or the driver's default when unset.
func (c StoreConfig) port(fallback int) int {
	if c.Port != 0 {
		return c.Port
	}
	return fallback
}

// PostgresDSN assembles the connection string for the relational backend.
func (c StoreConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s%s:%d/%s?sslmode=disable",
		c.credentials(), c.Host, c.port(5432), c.Database)
}

// MongoURI assembles the connection string for the document backend.
func (c StoreConfig) MongoURI() string {
	return fmt.Sprintf("mongodb://%s%s:%d", c.credentials(), c.Host, c.port(27017))
}
