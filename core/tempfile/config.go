package tempfile

import "time"

// DefaultMaxAge is the scratch file age used when none is configured.
const DefaultMaxAge = time.Hour

// Config holds configuration for multipart uploads and their scratch files.
type Config struct {
	// Dir is where multipart files are written before they are uploaded. Empty means os.TempDir()/estate-uploads.
	Dir string `mapstructure:"dir" default:""`
	// MaxFiles caps the number of media files in a single request.
	MaxFiles int `mapstructure:"max_files" default:"12" validate:"gt=0"`
	// MaxFileSizeMB caps the size of each uploaded file.
	MaxFileSizeMB int `mapstructure:"max_file_size_mb" default:"100" validate:"gt=0"`
	// MaxAgeMinutes is how old a scratch file must be before the sweeper removes it.
	MaxAgeMinutes int `mapstructure:"max_age_minutes" default:"60" validate:"gt=0"`
	// SweepSchedule is the cron expression for the sweeper. Empty disables it.
	SweepSchedule string `mapstructure:"sweep_schedule" default:"@every 15m"`
}

// MaxFileSize returns the per-file limit in bytes.
func (c Config) MaxFileSize() int64 {
	if c.MaxFileSizeMB <= 0 {
		return 100 * 1024 * 1024
	}
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// MaxAge returns how old a scratch file must be before it is swept.
func (c Config) MaxAge() time.Duration {
	if c.MaxAgeMinutes <= 0 {
		return DefaultMaxAge
	}
	return time.Duration(c.MaxAgeMinutes) * time.Minute
}
