package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
auth:
  header_key: X-API-Key
  secret_key: s3cret
storage:
  backend: memory
s3:
  bucket: media
  base_path: enrichment
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	settings, err := Load(viper.New(), writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "video-enrichment-api", settings.Main.Name)
	assert.Equal(t, "/video-enrichment-api/v1", settings.API.Prefix)
	assert.Equal(t, "0.1.0", settings.API.Version)
	assert.Equal(t, []string{"*"}, settings.CORS.Origins)
	assert.True(t, settings.CORS.AllowCredentials)
	assert.Equal(t, "gallery", settings.S3.GalleryPath)
	assert.Equal(t, "videos", settings.S3.VideoPath)
	assert.Equal(t, DatabaseSQLite, settings.Database.Type)
	assert.Equal(t, 200*time.Millisecond, settings.Database.SlowQuery)
	assert.Equal(t, 2*time.Minute, settings.Video.ProbeTimeout)
	assert.Equal(t, "info", settings.Logging.DefaultLevel)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("AUTH_SECRET_KEY", "from-env")
	t.Setenv("S3_BUCKET", "env-bucket")
	t.Setenv("S3_GALLERY_PATH", "images")

	settings, err := Load(viper.New(), writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", settings.Auth.SecretKey)
	assert.Equal(t, "env-bucket", settings.S3.Bucket)
	assert.Equal(t, "env-bucket/enrichment/images", settings.S3.GalleryObjectPath())
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "postgres")

	_, err := Load(viper.New(), writeConfig(t, minimalConfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_TYPE")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateSettings(t *testing.T) {
	valid := func() *Settings {
		return &Settings{
			API:      APISettings{Prefix: "/video-enrichment-api/v1", Listen: ":8000"},
			Auth:     AuthSettings{HeaderKey: "X-API-Key", SecretKey: "s"},
			Storage:  StorageSettings{Backend: StorageS3},
			S3:       S3Settings{Bucket: "b"},
			Database: DatabaseSettings{Type: DatabaseSQLite, SQLite: SQLiteSettings{Path: "x.db"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{"valid", func(*Settings) {}, ""},
		{"empty header key", func(s *Settings) { s.Auth.HeaderKey = " " }, "auth.header_key must be set"},
		{"empty secret", func(s *Settings) { s.Auth.SecretKey = "" }, "auth.secret_key must be set"},
		{"prefix without slash", func(s *Settings) { s.API.Prefix = "v1" }, "api.prefix must start with '/'"},
		{"trailing slash", func(s *Settings) { s.API.Prefix = "/v1/" }, "api.prefix must not end with '/'"},
		{"s3 without bucket", func(s *Settings) { s.S3.Bucket = "" }, "s3.bucket is required"},
		{"unknown backend", func(s *Settings) { s.Storage.Backend = "gcs" }, `storage.backend "gcs"`},
		{"filesystem without root", func(s *Settings) { s.Storage.Backend = StorageFilesystem }, "storage.root is required"},
		{"mysql without host", func(s *Settings) { s.Database.Type = DatabaseMySQL }, "database.mysql.host"},
		{"sentry without dsn", func(s *Settings) { s.Telemetry.Enabled = true }, "telemetry.dsn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := ValidateSettings(s)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Error(), tt.want)
		})
	}
}

func TestObjectPaths(t *testing.T) {
	tests := []struct {
		name                  string
		s3                    S3Settings
		base, gallery, videos string
	}{
		{
			name:    "with base path",
			s3:      S3Settings{Bucket: "media", BasePath: "enrichment", GalleryPath: "gallery", VideoPath: "videos"},
			base:    "media/enrichment",
			gallery: "media/enrichment/gallery",
			videos:  "media/enrichment/videos",
		},
		{
			name:    "empty base path",
			s3:      S3Settings{Bucket: "media", GalleryPath: "gallery", VideoPath: "videos"},
			base:    "media",
			gallery: "media/gallery",
			videos:  "media/videos",
		},
		{
			name:    "stray slashes",
			s3:      S3Settings{Bucket: "media/", BasePath: "/a/b/", GalleryPath: "/g", VideoPath: "v/"},
			base:    "media/a/b",
			gallery: "media/a/b/g",
			videos:  "media/a/b/v",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.base, tt.s3.BaseObjectPath())
			assert.Equal(t, tt.gallery, tt.s3.GalleryObjectPath())
			assert.Equal(t, tt.videos, tt.s3.VideoObjectPath())
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path, false))
	require.Error(t, WriteDefaultConfig(path, false))
	require.NoError(t, WriteDefaultConfig(path, true))

	t.Setenv("AUTH_SECRET_KEY", "x")
	t.Setenv("S3_BUCKET", "bucket")
	settings, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "X-API-Key", settings.Auth.HeaderKey)
	assert.Equal(t, StorageS3, settings.Storage.Backend)
}
