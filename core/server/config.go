package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Environment selects runtime behaviour (development, staging, production).
	Environment string `mapstructure:"environment" default:"development"`
	// BodyLimitMB caps the size of a request body, multipart uploads included.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"256"`
}

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// IsValidEnvironment checks if the configured environment is known.
func (c Config) IsValidEnvironment() bool {
	switch c.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return true
	default:
		return false
	}
}

// IsProduction reports whether internal error details must be hidden from clients.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// BodyLimit returns the body limit in bytes, falling back to 256MB.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 256 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
