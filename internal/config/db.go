package config

import "time"

// Supported database engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string `mapstructure:"engine"   json:"engine"`
	Extras   string `mapstructure:"extras"   json:"extras"`
	Host     string `mapstructure:"host"     json:"host"`
	Port     int    `mapstructure:"port"     json:"port"`
	User     string `mapstructure:"user"     json:"user"`
	Password string `mapstructure:"password" json:"password"`
	Name     string `mapstructure:"name"     json:"name"` // database name, or the file path for sqlite

	MaxOpenConns    int           `mapstructure:"maxOpenConns"    json:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"    json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime" json:"connMaxLifetime"`
}
