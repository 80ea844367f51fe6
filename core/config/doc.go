// Package config provides configuration management for nwbridge.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: catalog API settings (port, API key)
//   - Database: MySQL run catalog connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
