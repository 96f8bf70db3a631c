package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"estate-manager/core/database"
	"estate-manager/core/logger"
	"estate-manager/core/server"
	"estate-manager/core/storage"
	"estate-manager/core/tempfile"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the estate-manager configuration, one section per subsystem.
// Every leaf field is settable through an environment variable named after
// its path, e.g. upload.max_files is UPLOAD_MAX_FILES.
type Config struct {
	// Server configures the HTTP API.
	Server server.Config `mapstructure:"server"`
	// Storage configures the bucket listing media lives in.
	Storage storage.Config `mapstructure:"storage"`
	// Log configures the zap logger.
	Log logger.Config `mapstructure:"log"`
	// Database selects and configures the listing store.
	Database database.Config `mapstructure:"database"`
	// Upload bounds multipart uploads and their scratch files.
	Upload tempfile.Config `mapstructure:"upload"`
}

// LoadConfig reads dir/.env when present, applies environment overrides on top
// of the struct tag defaults and validates the result.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(Config{}), "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// registerDefaults walks t and registers the default tag of every
// mapstructure-tagged leaf under its dotted key. Registering empty defaults
// too is what makes AutomaticEnv see the key during Unmarshal.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}

		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			registerDefaults(v, field.Type, key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
