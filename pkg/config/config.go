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

	Store  StoreConfig
	JWT    JWTConfig
	CORS   CORSConfig
	Log    LogConfig
	Redis  RedisConfig
	Advice AdviceConfig
}

// StoreConfig locates the local record store and its bootstrap account.
type StoreConfig struct {
	Path          string
	AdminUsername string
	AdminPassword string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// RedisConfig configures the optional advice cache. The service runs
// without Redis; an empty host disables caching entirely.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AdviceConfig configures the external feeding-advice generator.
type AdviceConfig struct {
	Enabled  bool
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
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

	cfg.Store = StoreConfig{
		Path:          v.GetString("STORE_PATH"),
		AdminUsername: v.GetString("STORE_ADMIN_USERNAME"),
		AdminPassword: v.GetString("STORE_ADMIN_PASSWORD"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Advice = AdviceConfig{
		Enabled:  v.GetBool("ADVICE_ENABLED"),
		BaseURL:  v.GetString("ADVICE_BASE_URL"),
		APIKey:   v.GetString("ADVICE_API_KEY"),
		Model:    v.GetString("ADVICE_MODEL"),
		Timeout:  parseDuration(v.GetString("ADVICE_TIMEOUT"), 10*time.Second),
		CacheTTL: parseDuration(v.GetString("ADVICE_CACHE_TTL"), 30*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORE_PATH", "./petstock.db")
	v.SetDefault("STORE_ADMIN_USERNAME", "admin")
	v.SetDefault("STORE_ADMIN_PASSWORD", "123")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "petstock-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ADVICE_ENABLED", false)
	v.SetDefault("ADVICE_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("ADVICE_API_KEY", "")
	v.SetDefault("ADVICE_MODEL", "gemini-2.0-flash")
	v.SetDefault("ADVICE_TIMEOUT", "10s")
	v.SetDefault("ADVICE_CACHE_TTL", "30m")
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
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
