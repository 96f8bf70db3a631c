// Package config loads the Estate Manager configuration.
//
// Values come from a .env file (when present) and environment variables through
// Viper. Defaults live in the `default` struct tags of each section and the
// `validate` tags are checked once everything is loaded.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, environment, request body limit
//   - Storage: S3/MinIO credentials, bucket, folder and public URL
//   - Log: level and format
//   - Database: listing store driver (mongo, mysql, sqlite) and connection
//   - Upload: temp directory, per-request limits and sweep schedule
//
// Nested keys map to upper snake case env vars, e.g. UPLOAD_MAX_FILES -> upload.max_files.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
