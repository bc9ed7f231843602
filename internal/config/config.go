// Package config handles input from etc/main.toml and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. PEOPLEDESK_WEBSERVER_PORT.
	EnvPrefix = "PEOPLEDESK"

	// JSONConfigEnv holds a JSON document merged over the file config.
	JSONConfigEnv = EnvPrefix + "_CONFIG_JSON"

	redacted = "***"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var c Config

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, "main.toml"))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	if configJSON := os.Getenv(JSONConfigEnv); configJSON != "" {
		var err error

		c, err = decodeAndMergeConfig(c, configJSON)
		if err != nil {
			return c, err
		}
	}

	return validate(c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "PeopleDesk")
	v.SetDefault("db.engine", EngineSQLite)
	v.SetDefault("db.name", "peopledesk.db")
	v.SetDefault("webserver.shutDownTime", 5) //nolint:mnd
	v.SetDefault("webserver.session.expiryTime", "24h")
	v.SetDefault("webserver.session.table", "sessions")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.email", "admin@localhost")
	v.SetDefault("log.logLevel", "info")
	v.SetDefault("log.appName", "peopledesk")
	v.SetDefault("log.serviceName", "api")
	v.SetDefault("log.console.enabled", true)
	v.SetDefault("log.slowQueryThreshold", 200) //nolint:mnd
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+JSONConfigEnv)
	}

	return c, nil
}

// Redacted returns a copy of c with secrets masked.
func Redacted(c Config) Config {
	if c.DB.Password != "" {
		c.DB.Password = redacted
	}

	if c.Admin.Password != "" {
		c.Admin.Password = redacted
	}

	return c
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var (
		buffer   bytes.Buffer
		settings map[string]any
	)

	raw, err := json.Marshal(c)
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if err = dec.Decode(&settings); err != nil {
		return "", err //nolint: wrapcheck
	}

	normalizeNumbers(settings)

	v := viper.New()
	v.SetConfigType("toml")

	if err = v.MergeConfigMap(settings); err != nil {
		return "", err //nolint: wrapcheck
	}

	if err = v.WriteConfigTo(&buffer); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// normalizeNumbers turns json.Number values into int64 or float64 so TOML
// keeps integers and durations as integers.
func normalizeNumbers(m map[string]any) {
	for k, val := range m {
		switch typed := val.(type) {
		case map[string]any:
			normalizeNumbers(typed)
		case json.Number:
			if i, err := typed.Int64(); err == nil {
				m[k] = i
			} else if f, err := typed.Float64(); err == nil {
				m[k] = f
			}
		}
	}
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings needed to start and fills in defaults.
func validate(c Config) (Config, error) {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return c, errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return c, errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	switch c.DB.Engine {
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return c, errors.Wrapf(ErrUnsupportedEngine, "%s: %q", invalidErrMessage, c.DB.Engine)
	}

	if c.DB.Name == "" {
		return c, errors.Wrap(ErrEmptyDBName, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.Session.ExpiryTime <= 0 {
		c.Webserver.Session.ExpiryTime = 24 * time.Hour //nolint:mnd
	}

	return c, nil
}
