package conf

import (
	"fmt"
	"strings"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	validators := []func(*Settings) []string{
		validateAPISettings,
		validateAuthSettings,
		validateStorageSettings,
		validateDatabaseSettings,
		validateTelemetrySettings,
	}
	for _, validate := range validators {
		ve.Errors = append(ve.Errors, validate(settings)...)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateAPISettings(s *Settings) []string {
	var errs []string
	if !strings.HasPrefix(s.API.Prefix, "/") {
		errs = append(errs, "api.prefix must start with '/'")
	}
	if strings.HasSuffix(s.API.Prefix, "/") {
		errs = append(errs, "api.prefix must not end with '/'")
	}
	if s.API.Listen == "" {
		errs = append(errs, "api.listen must not be empty")
	}
	return errs
}

// validateAuthSettings rejects an empty header name or secret so the gate can
// never admit requests that omit the header.
func validateAuthSettings(s *Settings) []string {
	var errs []string
	if strings.TrimSpace(s.Auth.HeaderKey) == "" {
		errs = append(errs, "auth.header_key must be set")
	}
	if s.Auth.SecretKey == "" {
		errs = append(errs, "auth.secret_key must be set")
	}
	return errs
}

func validateStorageSettings(s *Settings) []string {
	var errs []string
	switch s.Storage.Backend {
	case StorageS3:
		if s.S3.Bucket == "" {
			errs = append(errs, "s3.bucket is required for the s3 storage backend")
		}
	case StorageFilesystem:
		if s.Storage.Root == "" {
			errs = append(errs, "storage.root is required for the filesystem storage backend")
		}
		if s.S3.Bucket == "" {
			errs = append(errs, "s3.bucket is required to lay out object keys")
		}
	case StorageMemory:
		if s.S3.Bucket == "" {
			errs = append(errs, "s3.bucket is required to lay out object keys")
		}
	default:
		errs = append(errs, fmt.Sprintf("storage.backend %q is not supported", s.Storage.Backend))
	}
	return errs
}

func validateDatabaseSettings(s *Settings) []string {
	var errs []string
	switch s.Database.Type {
	case DatabaseSQLite:
		if s.Database.SQLite.Path == "" {
			errs = append(errs, "database.sqlite.path must be set")
		}
	case DatabaseMySQL:
		if s.Database.MySQL.Host == "" || s.Database.MySQL.Database == "" {
			errs = append(errs, "database.mysql.host and database.mysql.database must be set")
		}
	default:
		errs = append(errs, fmt.Sprintf("database.type %q is not supported", s.Database.Type))
	}
	return errs
}

func validateTelemetrySettings(s *Settings) []string {
	if s.Telemetry.Enabled && s.Telemetry.DSN == "" {
		return []string{"telemetry.dsn is required when telemetry is enabled"}
	}
	return nil
}
