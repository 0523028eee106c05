// Package conf loads service settings from config.yaml, environment variables
// and command-line flags through viper.
package conf

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
)

//go:embed config.yaml
var configFiles embed.FS

// Storage backends
const (
	StorageS3         = "s3"
	StorageFilesystem = "filesystem"
	StorageMemory     = "memory"
)

// Database backends
const (
	DatabaseSQLite = "sqlite"
	DatabaseMySQL  = "mysql"
)

// Settings holds the complete service configuration
type Settings struct {
	Main      MainSettings         `mapstructure:"main" yaml:"main"`
	API       APISettings          `mapstructure:"api" yaml:"api"`
	Auth      AuthSettings         `mapstructure:"auth" yaml:"auth"`
	CORS      CORSSettings         `mapstructure:"cors" yaml:"cors"`
	Storage   StorageSettings      `mapstructure:"storage" yaml:"storage"`
	S3        S3Settings           `mapstructure:"s3" yaml:"s3"`
	Database  DatabaseSettings     `mapstructure:"database" yaml:"database"`
	Video     VideoSettings        `mapstructure:"video" yaml:"video"`
	Logging   logger.LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics   MetricsSettings      `mapstructure:"metrics" yaml:"metrics"`
	Telemetry TelemetrySettings    `mapstructure:"telemetry" yaml:"telemetry"`
}

// MainSettings identifies the running service
type MainSettings struct {
	Name        string `mapstructure:"name" yaml:"name"`               // service name, also written to audit columns
	Environment string `mapstructure:"environment" yaml:"environment"` // deployment environment label
	Testing     bool   `mapstructure:"testing" yaml:"testing"`
}

// APISettings configures the HTTP surface
type APISettings struct {
	Prefix          string        `mapstructure:"prefix" yaml:"prefix"`
	Version         string        `mapstructure:"version" yaml:"version"`
	Listen          string        `mapstructure:"listen" yaml:"listen"`
	BodyLimit       string        `mapstructure:"bodylimit" yaml:"bodylimit"` // echo body limit, e.g. "512M"
	ReadTimeout     time.Duration `mapstructure:"readtimeout" yaml:"readtimeout"`
	WriteTimeout    time.Duration `mapstructure:"writetimeout" yaml:"writetimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdowntimeout" yaml:"shutdowntimeout"`
}

// AuthSettings configures the shared-secret header gate
type AuthSettings struct {
	HeaderKey string `mapstructure:"header_key" yaml:"header_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
}

// CORSSettings mirrors the CORS middleware options
type CORSSettings struct {
	Origins          []string `mapstructure:"origins" yaml:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	Methods          []string `mapstructure:"methods" yaml:"methods"`
	Headers          []string `mapstructure:"headers" yaml:"headers"`
}

// StorageSettings selects the object store backend
type StorageSettings struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // s3, filesystem or memory
	Root    string `mapstructure:"root" yaml:"root"`       // root directory for the filesystem backend
}

// S3Settings configures the S3 client and the object key layout
type S3Settings struct {
	Profile      string `mapstructure:"profile" yaml:"profile"`
	Region       string `mapstructure:"region" yaml:"region"`
	Endpoint     string `mapstructure:"endpoint" yaml:"endpoint"`
	UsePathStyle bool   `mapstructure:"use_path_style" yaml:"use_path_style"`
	Bucket       string `mapstructure:"bucket" yaml:"bucket"`
	BasePath     string `mapstructure:"base_path" yaml:"base_path"`
	GalleryPath  string `mapstructure:"gallery_path" yaml:"gallery_path"`
	VideoPath    string `mapstructure:"video_path" yaml:"video_path"`
}

// DatabaseSettings selects and configures the relational store
type DatabaseSettings struct {
	Type      string         `mapstructure:"type" yaml:"type"`
	SlowQuery time.Duration  `mapstructure:"slowquery" yaml:"slowquery"`
	SQLite    SQLiteSettings `mapstructure:"sqlite" yaml:"sqlite"`
	MySQL     MySQLSettings  `mapstructure:"mysql" yaml:"mysql"`
}

// SQLiteSettings configures the SQLite database file
type SQLiteSettings struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// MySQLSettings configures the MySQL connection
type MySQLSettings struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`
}

// VideoSettings configures the external probing tools
type VideoSettings struct {
	FFprobePath  string        `mapstructure:"ffprobe_path" yaml:"ffprobe_path"`
	FFmpegPath   string        `mapstructure:"ffmpeg_path" yaml:"ffmpeg_path"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout"`
	ScratchDir   string        `mapstructure:"scratch_dir" yaml:"scratch_dir"` // temp dir for uploads, empty for os.TempDir
}

// MetricsSettings toggles the Prometheus endpoint
type MetricsSettings struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// TelemetrySettings configures Sentry error reporting
type TelemetrySettings struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	DSN     string `mapstructure:"dsn" yaml:"dsn"`
}

// Load reads configuration into a fresh Settings. configFile may be empty, in
// which case the default search paths are used. A missing file is not an
// error; defaults and environment variables still apply.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if v == nil {
		v = viper.New()
	}

	if err := initViper(v, configFile); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.New(err).
			Component("configuration").
			Category(errors.CategoryConfiguration).
			Context("operation", "unmarshal_config").
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// initViper installs defaults and env bindings and reads the config file
func initViper(v *viper.Viper, configFile string) error {
	setDefaultConfig(v)

	if err := bindEnvVars(v); err != nil {
		return err
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return fmt.Errorf("config file %s: %w", configFile, err)
		}
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range GetDefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the directories searched for config.yaml
func GetDefaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "video-enrichment-api"))
	}
	return append(paths, "/etc/video-enrichment-api")
}

// DefaultConfig returns the annotated default config.yaml
func DefaultConfig() ([]byte, error) {
	return configFiles.ReadFile("config.yaml")
}

// WriteDefaultConfig writes the default config.yaml to path. An existing file
// is left untouched unless overwrite is set.
func WriteDefaultConfig(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := DefaultConfig()
	if err != nil {
		return fmt.Errorf("error reading embedded config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// joinKey joins object key segments, skipping empty ones and stray slashes
func joinKey(parts ...string) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			segs = append(segs, p)
		}
	}
	return strings.Join(segs, "/")
}

// BaseObjectPath is "{bucket}/{base_path}"
func (s *S3Settings) BaseObjectPath() string {
	return joinKey(s.Bucket, s.BasePath)
}

// GalleryObjectPath is "{bucket}/{base_path}/{gallery_path}"
func (s *S3Settings) GalleryObjectPath() string {
	return joinKey(s.BaseObjectPath(), s.GalleryPath)
}

// VideoObjectPath is "{bucket}/{base_path}/{video_path}"
func (s *S3Settings) VideoObjectPath() string {
	return joinKey(s.BaseObjectPath(), s.VideoPath)
}
