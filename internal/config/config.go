package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port             string
	CORSAllowOrigins string
	LogLevel         string
	LogFormat        string

	GoogleAPIKey string
	AIModel      string
	AILanguage   string

	DatabaseURL string
	RedisURL    string

	ExportStore string
	ExportDir   string
	S3Bucket    string
	S3Prefix    string
	AWSRegion   string

	ChromePath        string
	RenderConcurrency int64
	RenderTimeout     time.Duration

	DownloadTTL     time.Duration
	CleanupInterval time.Duration
	OrphanTTL       time.Duration
}

// Load reads configuration from the environment with defaults. Values from
// .env files fill in variables that are not already set.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			slog.Warn("config: could not load env file", "file", f, "error", err)
		}
	}

	return Config{
		Port:             getEnv("PORT", "3001"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),

		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		AIModel:      getEnv("AI_MODEL", "gemini-1.5-flash"),
		AILanguage:   getEnv("AI_LANGUAGE", "zh"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		ExportStore: normalizeStoreType(getEnv("EXPORT_STORE", "local")),
		ExportDir:   getEnv("EXPORT_DIR", "temp/pdfs"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Prefix:    os.Getenv("S3_PREFIX"),
		AWSRegion:   os.Getenv("AWS_REGION"),

		ChromePath:        os.Getenv("CHROME_PATH"),
		RenderConcurrency: int64(getInt("RENDER_CONCURRENCY", 4)),
		RenderTimeout:     getDuration("RENDER_TIMEOUT", 60*time.Second),

		DownloadTTL:     getDuration("DOWNLOAD_TTL", 60*time.Second),
		CleanupInterval: getDuration("CLEANUP_INTERVAL", 10*time.Second),
		OrphanTTL:       getDuration("ORPHAN_TTL", 24*time.Hour),
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		slog.Warn("config: invalid integer, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return n
}

// getDuration accepts Go durations ("90s") or a bare number of seconds.
func getDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		slog.Warn("config: invalid duration, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return d
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
