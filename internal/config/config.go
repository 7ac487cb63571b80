package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type AppEnv string

const (
	ProductionEnv AppEnv = "production"
	DevelopEnv    AppEnv = "develop"
	LocalEnv      AppEnv = "local"
	TestEnv       AppEnv = "test"
)

type (
	Config struct {
		AppEnv            AppEnv
		LogLevel          logrus.Level
		HTTP              HTTP
		Database          Database
		AutoMigrate       bool
		AuditSchedule     string
		DirectoryCacheTTL time.Duration
	}

	HTTP struct {
		Port         int
		AllowOrigins []string
	}

	Database struct {
		Postgres Postgres
		Redis    Redis
	}

	Postgres struct {
		URL            string
		Host           string
		Port           int
		Username       string
		Password       string
		Database       string
		SSLMode        string
		MaxConns       int
		AcquireTimeout time.Duration
	}

	Redis struct {
		Addr     string
		Password string
		Database int
	}
)

func defaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", string(LocalEnv))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "itq")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 4)
	v.SetDefault("DB_ACQUIRE_TIMEOUT", "5s")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("AUDIT_SCHEDULE", "0 */10 * * * *")
	v.SetDefault("DIRECTORY_CACHE_TTL", "1m")
}

// Load читает .env (если ENV_CHEK не задан) и переменные окружения.
func Load() (*Config, error) {
	if os.Getenv("ENV_CHEK") == "" {
		// .env необязателен: в контейнере переменные приходят из окружения
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "config: failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	level, err := logrus.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, errors.Wrap(err, "config: LOG_LEVEL")
	}

	cfg := &Config{
		AppEnv:   AppEnv(v.GetString("APP_ENV")),
		LogLevel: level,
		HTTP: HTTP{
			Port:         v.GetInt("HTTP_PORT"),
			AllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		Database: Database{
			Postgres: Postgres{
				URL:            v.GetString("DATABASE_URL"),
				Host:           v.GetString("DB_HOST"),
				Port:           v.GetInt("DB_PORT"),
				Username:       v.GetString("DB_USER"),
				Password:       v.GetString("DB_PASSWORD"),
				Database:       v.GetString("DB_NAME"),
				SSLMode:        v.GetString("DB_SSLMODE"),
				MaxConns:       v.GetInt("DB_MAX_CONNS"),
				AcquireTimeout: v.GetDuration("DB_ACQUIRE_TIMEOUT"),
			},
			Redis: Redis{
				Addr:     v.GetString("REDIS_ADDR"),
				Password: v.GetString("REDIS_PASSWORD"),
				Database: v.GetInt("REDIS_DB"),
			},
		},
		AutoMigrate:       v.GetBool("AUTO_MIGRATE"),
		AuditSchedule:     v.GetString("AUDIT_SCHEDULE"),
		DirectoryCacheTTL: v.GetDuration("DIRECTORY_CACHE_TTL"),
	}

	if cfg.Database.Postgres.MaxConns < 1 {
		return nil, errors.Errorf("config: DB_MAX_CONNS must be positive, got %d", cfg.Database.Postgres.MaxConns)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
