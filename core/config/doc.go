// Package config provides configuration management for the content exporter.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Channel: execution channel mode and transport settings (local, remote SSH, database)
//   - Export: base domain, output location, statuses, override meta key
//   - Database: direct CMS MySQL connection details
//   - Storage: S3/MinIO credentials for export publishing
//   - Server: summary HTTP server settings
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Channel.Mode)
package config
