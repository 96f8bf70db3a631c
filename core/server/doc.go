// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings,
// such as the runtime environment.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, body size limit and the
// environment (development, staging, production). In production, error responses
// omit internal error details.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by feature handlers to decide how much error detail to expose.
package server
