package conf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envBinding maps an environment variable onto a viper key
type envBinding struct {
	ConfigKey string
	EnvVar    string
	Validate  func(string) error
}

// getEnvBindings keeps the variable names the service has always used
func getEnvBindings() []envBinding {
	return []envBinding{
		{"main.name", "PROJECT_NAME", nil},
		{"main.environment", "ENVIRONMENT", nil},
		{"main.testing", "TESTING", validateEnvBool},

		{"api.prefix", "API_V1_STR", validateEnvPrefix},
		{"api.version", "API_VERSION", nil},
		{"api.listen", "API_LISTEN", nil},

		{"auth.header_key", "AUTH_HEADER_KEY", nil},
		{"auth.secret_key", "AUTH_SECRET_KEY", nil},

		{"cors.origins", "CORS_ORIGINS", nil},
		{"cors.allow_credentials", "CORS_ALLOW_CREDENTIALS", validateEnvBool},
		{"cors.methods", "CORS_ALLOW_METHODS", nil},
		{"cors.headers", "CORS_ALLOW_HEADERS", nil},

		{"storage.backend", "STORAGE_BACKEND", validateEnvStorageBackend},
		{"storage.root", "STORAGE_ROOT", nil},

		{"s3.profile", "S3_PROFILE", nil},
		{"s3.region", "S3_REGION", nil},
		{"s3.endpoint", "S3_ENDPOINT", nil},
		{"s3.use_path_style", "S3_USE_PATH_STYLE", validateEnvBool},
		{"s3.bucket", "S3_BUCKET", nil},
		{"s3.base_path", "S3_BASE_PATH", nil},
		{"s3.gallery_path", "S3_GALLERY_PATH", nil},
		{"s3.video_path", "S3_VIDEO_PATH", nil},

		{"database.type", "DATABASE_TYPE", validateEnvDatabaseType},
		{"database.sqlite.path", "DATABASE_SQLITE_PATH", nil},
		{"database.mysql.host", "DATABASE_HOST", nil},
		{"database.mysql.port", "DATABASE_PORT", validateEnvPort},
		{"database.mysql.username", "DATABASE_USER", nil},
		{"database.mysql.password", "DATABASE_PASSWORD", nil},
		{"database.mysql.database", "DATABASE_NAME", nil},

		{"video.ffprobe_path", "FFPROBE_PATH", nil},
		{"video.ffmpeg_path", "FFMPEG_PATH", nil},
		{"video.probe_timeout", "VIDEO_PROBE_TIMEOUT", validateEnvDuration},

		{"logging.default_level", "LOG_LEVEL", validateEnvLogLevel},
		{"metrics.enabled", "METRICS_ENABLED", validateEnvBool},
		{"telemetry.enabled", "SENTRY_ENABLED", validateEnvBool},
		{"telemetry.dsn", "SENTRY_DSN", nil},
	}
}

// bindEnvVars binds every variable and validates the ones that are set
func bindEnvVars(v *viper.Viper) error {
	var warnings []string

	for _, binding := range getEnvBindings() {
		if err := v.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to bind %s: %v", binding.EnvVar, err))
			continue
		}

		if binding.Validate == nil {
			continue
		}
		if envValue := os.Getenv(binding.EnvVar); envValue != "" {
			if err := binding.Validate(envValue); err != nil {
				warnings = append(warnings, fmt.Sprintf("Invalid %s value '%s': %v", binding.EnvVar, envValue, err))
			}
		}
	}

	if len(warnings) > 0 {
		return fmt.Errorf("environment variable issues:\n  - %s", strings.Join(warnings, "\n  - "))
	}

	return nil
}

func validateEnvBool(value string) error {
	if _, err := strconv.ParseBool(value); err != nil {
		return fmt.Errorf("must be true or false")
	}
	return nil
}

func validateEnvPrefix(value string) error {
	if !strings.HasPrefix(value, "/") {
		return fmt.Errorf("must start with '/'")
	}
	return nil
}

func validateEnvStorageBackend(value string) error {
	switch value {
	case StorageS3, StorageFilesystem, StorageMemory:
		return nil
	}
	return fmt.Errorf("must be one of %s, %s, %s", StorageS3, StorageFilesystem, StorageMemory)
}

func validateEnvDatabaseType(value string) error {
	switch value {
	case DatabaseSQLite, DatabaseMySQL:
		return nil
	}
	return fmt.Errorf("must be %s or %s", DatabaseSQLite, DatabaseMySQL)
}

func validateEnvPort(value string) error {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("must be a port number between 1 and 65535")
	}
	return nil
}

func validateEnvDuration(value string) error {
	if _, err := time.ParseDuration(value); err != nil {
		return fmt.Errorf("must be a duration such as 90s")
	}
	return nil
}

func validateEnvLogLevel(value string) error {
	switch value {
	case "trace", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("must be one of trace, debug, info, warn, error")
}
