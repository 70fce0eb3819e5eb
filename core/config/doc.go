// Package config provides configuration management for column-sync.
//
// It uses Viper to read environment variables, optionally overridden by a
// .env file loaded with godotenv. Defaults come from the 'default' struct
// tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API key and upload limit
//   - Database: column store connection (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket
//   - Log: logging level and format
//   - Sync: deletion policy, transaction name, default CSV path, archival
//
// Environment keys are SECTION_KEY, e.g. DATABASE_DRIVER=sqlite or
// SYNC_DELETE_MISSING=true.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.CSVPath)
package config
