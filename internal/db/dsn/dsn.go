// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/peopledesk/peopledesk/internal/config"
)

// sqliteForeignKeys is added to every SQLite DSN unless Extras set the pragma.
const sqliteForeignKeys = "_pragma=foreign_keys(1)"

// Create builds the Data Source Name for the configured engine.
func Create(dbCfg *config.Config) string {
	db := dbCfg.DB

	switch db.Engine {
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
		)

		if db.Extras != "" {
			out += " " + db.Extras
		}

		return out
	case config.EngineSQLite:
		extras := db.Extras
		if !strings.Contains(extras, "foreign_keys") {
			extras = strings.TrimPrefix(extras+"&"+sqliteForeignKeys, "&")
		}

		sep := "?"
		if strings.Contains(db.Name, "?") {
			sep = "&"
		}

		return db.Name + sep + extras
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	}
}
