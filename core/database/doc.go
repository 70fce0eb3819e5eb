// Package database handles database connections and schema inspection.
//
// It wraps GORM to open the structural model store described by the
// application configuration. MySQL is the production driver; sqlite is used
// for local files and in-memory test databases.
//
// # Connect
//
// Connect opens the configured dialect, tunes the connection pool and pings
// the server within the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns and TableExists back the schema integrity check, which
// compares the live tables with the column store models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "columns")
package database
