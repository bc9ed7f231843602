package config

import (
	"time"

	"github.com/peopledesk/peopledesk/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration `mapstructure:"expiryTime" json:"expiryTime"`
	// Table is the table used by database backed session storage.
	Table string `mapstructure:"table" json:"table"`
}

// Config overall data structure.
type Config struct {
	DevMode   bool       `mapstructure:"devMode"   json:"devMode"` // enable dev mode for development
	Title     string     `mapstructure:"title"     json:"title"`
	DB        DB         `mapstructure:"db"        json:"db"`
	Log       logger.Log `mapstructure:"log"       json:"log"`
	Webserver Webserver  `mapstructure:"webserver" json:"webserver"`
	Admin     Admin      `mapstructure:"admin"     json:"admin"`
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    `mapstructure:"disableRecover" json:"disableRecover"` // disable recover middleware
	Port           int     `mapstructure:"port"           json:"port"`           // listening port for the webserver
	ShutDownTime   int     `mapstructure:"shutDownTime"   json:"shutDownTime"`   // wait time for shutdown
	URL            string  `mapstructure:"url"            json:"url"`            // base url for the webserver
	Session        Session `mapstructure:"session"        json:"session"`        // session settings
}

// Admin is the account created on first start when no user exists.
type Admin struct {
	Username string `mapstructure:"username" json:"username"`
	Email    string `mapstructure:"email"    json:"email"`
	Password string `mapstructure:"password" json:"password"`
}
