package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Cache     CacheConfig
	Exports   ExportsConfig
	Jobs      JobsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig tunes the constraint-based timetable generator.
// Seed zero means a fresh random seed per run; MaxSteps zero uses the
// engine default budget.
type SchedulerConfig struct {
	Seed            int64
	MaxSteps        int
	GenerateTimeout time.Duration
	BlackoutDay     string
	BlackoutStart   string
	BlackoutEnd     string
}

// CacheConfig governs Redis TTLs for read-heavy endpoints.
type CacheConfig struct {
	GridTTL  time.Duration
	StatsTTL time.Duration
}

// ExportsConfig controls PDF and CSV timetable exports.
type ExportsConfig struct {
	Enabled bool
	Title   string
}

// JobsConfig tunes the async generation queue.
type JobsConfig struct {
	QueueSize     int
	ResultTTL     time.Duration
	WorkerRetries int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		Seed:            v.GetInt64("SCHEDULER_SEED"),
		MaxSteps:        v.GetInt("SCHEDULER_MAX_STEPS"),
		GenerateTimeout: parseDuration(v.GetString("SCHEDULER_GENERATE_TIMEOUT"), 2*time.Minute),
		BlackoutDay:     v.GetString("SCHEDULER_BLACKOUT_DAY"),
		BlackoutStart:   v.GetString("SCHEDULER_BLACKOUT_START"),
		BlackoutEnd:     v.GetString("SCHEDULER_BLACKOUT_END"),
	}

	cfg.Cache = CacheConfig{
		GridTTL:  parseDuration(v.GetString("CACHE_GRID_TTL"), 10*time.Minute),
		StatsTTL: parseDuration(v.GetString("CACHE_STATS_TTL"), 5*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
		Title:   v.GetString("EXPORTS_TITLE"),
	}

	cfg.Jobs = JobsConfig{
		QueueSize:     v.GetInt("JOBS_QUEUE_SIZE"),
		ResultTTL:     parseDuration(v.GetString("JOBS_RESULT_TTL"), time.Hour),
		WorkerRetries: v.GetInt("JOBS_WORKER_RETRIES"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "timetable")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_SEED", 0)
	v.SetDefault("SCHEDULER_MAX_STEPS", 0)
	v.SetDefault("SCHEDULER_GENERATE_TIMEOUT", "2m")
	v.SetDefault("SCHEDULER_BLACKOUT_DAY", "FRIDAY")
	v.SetDefault("SCHEDULER_BLACKOUT_START", "13:00")
	v.SetDefault("SCHEDULER_BLACKOUT_END", "15:00")

	v.SetDefault("CACHE_GRID_TTL", "10m")
	v.SetDefault("CACHE_STATS_TTL", "5m")

	v.SetDefault("ENABLE_EXPORTS", true)
	v.SetDefault("EXPORTS_TITLE", "Course Timetable")

	v.SetDefault("JOBS_QUEUE_SIZE", 16)
	v.SetDefault("JOBS_RESULT_TTL", "1h")
	v.SetDefault("JOBS_WORKER_RETRIES", 0)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
