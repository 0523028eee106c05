package conf

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaultConfig registers default values for every setting
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("main.name", "video-enrichment-api")
	v.SetDefault("main.environment", "development")
	v.SetDefault("main.testing", false)

	v.SetDefault("api.prefix", "/video-enrichment-api/v1")
	v.SetDefault("api.version", "0.1.0")
	v.SetDefault("api.listen", ":8000")
	v.SetDefault("api.bodylimit", "512M")
	v.SetDefault("api.readtimeout", 60*time.Second)
	v.SetDefault("api.writetimeout", 5*time.Minute)
	v.SetDefault("api.shutdowntimeout", 15*time.Second)

	v.SetDefault("auth.header_key", "")
	v.SetDefault("auth.secret_key", "")

	v.SetDefault("cors.origins", []string{"*"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.methods", []string{"*"})
	v.SetDefault("cors.headers", []string{"*"})

	v.SetDefault("storage.backend", StorageS3)
	v.SetDefault("storage.root", "data/objects")

	v.SetDefault("s3.profile", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.use_path_style", false)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.base_path", "")
	v.SetDefault("s3.gallery_path", "gallery")
	v.SetDefault("s3.video_path", "videos")

	v.SetDefault("database.type", DatabaseSQLite)
	v.SetDefault("database.slowquery", 200*time.Millisecond)
	v.SetDefault("database.sqlite.path", "data/video-enrichment.db")
	v.SetDefault("database.mysql.host", "localhost")
	v.SetDefault("database.mysql.port", "3306")
	v.SetDefault("database.mysql.username", "")
	v.SetDefault("database.mysql.password", "")
	v.SetDefault("database.mysql.database", "video_enrichment")

	v.SetDefault("video.ffprobe_path", "ffprobe")
	v.SetDefault("video.ffmpeg_path", "ffmpeg")
	v.SetDefault("video.probe_timeout", 2*time.Minute)
	v.SetDefault("video.scratch_dir", "")

	v.SetDefault("logging.default_level", "info")
	v.SetDefault("logging.timezone", "Local")
	v.SetDefault("logging.console.enabled", true)
	v.SetDefault("logging.console.level", "info")
	v.SetDefault("logging.file_output.enabled", false)
	v.SetDefault("logging.file_output.path", "logs/video-enrichment-api.log")
	v.SetDefault("logging.file_output.level", "info")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.dsn", "")
}
