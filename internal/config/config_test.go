package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "PeopleDesk", cfg.Title)
	assert.Equal(t, 8080, cfg.Webserver.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Webserver.URL)
	assert.Equal(t, 8*time.Hour, cfg.Webserver.Session.ExpiryTime)
	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "access.log", cfg.Log.File.Access.Name)
	assert.True(t, cfg.Log.Console.Enabled)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read main config file")
}

func TestReadConfigEnvOverride(t *testing.T) {
	t.Setenv("PEOPLEDESK_WEBSERVER_PORT", "9090")
	t.Setenv("PEOPLEDESK_DB_ENGINE", EnginePostgres)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	assert.Equal(t, EnginePostgres, cfg.DB.Engine)
}

func TestReadConfigJSONOverride(t *testing.T) {
	t.Setenv(JSONConfigEnv, `{"title":"HR","db":{"engine":"mysql","host":"db.internal","port":3306}}`)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)
	assert.Equal(t, "HR", cfg.Title)
	assert.Equal(t, EngineMySQL, cfg.DB.Engine)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 3306, cfg.DB.Port)
	// untouched values survive the merge
	assert.Equal(t, 8080, cfg.Webserver.Port)

	t.Setenv(JSONConfigEnv, `{"title":`)
	_, err = ReadConfig(projectConfigPath(t))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		DB:        DB{Engine: EngineSQLite, Name: "x.db"},
		Webserver: Webserver{Port: 1, URL: "http://localhost"},
	}

	testCases := []struct {
		name          string
		mutate        func(c *Config)
		expectedError error
	}{
		{name: "valid"},
		{name: "zero port", mutate: func(c *Config) { c.Webserver.Port = 0 }, expectedError: ErrWebServerPortCanNotBeZero},
		{name: "empty url", mutate: func(c *Config) { c.Webserver.URL = "" }, expectedError: ErrEmptyURL},
		{name: "bad engine", mutate: func(c *Config) { c.DB.Engine = "oracle" }, expectedError: ErrUnsupportedEngine},
		{name: "empty db name", mutate: func(c *Config) { c.DB.Name = "" }, expectedError: ErrEmptyDBName},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			if tc.mutate != nil {
				tc.mutate(&c)
			}

			got, err := validate(c)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 5, got.Webserver.ShutDownTime)
			assert.Equal(t, 24*time.Hour, got.Webserver.Session.ExpiryTime)
		})
	}
}

func TestDump(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	safe := Redacted(cfg)
	assert.Equal(t, "***", safe.Admin.Password)
	assert.Equal(t, "change-me-now", cfg.Admin.Password)

	out, err := DumpConfigJSON(safe)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, safe, decoded)

	out, err = DumpConfig(safe)
	require.NoError(t, err)
	assert.Contains(t, out, "[webserver]")
	assert.NotContains(t, out, "change-me-now")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(out), 0o600))

	again, err := ReadConfig(dir + string(filepath.Separator))
	require.NoError(t, err)
	assert.Equal(t, safe.Webserver, again.Webserver)
	assert.Equal(t, safe.DB, again.DB)
}
