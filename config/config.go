package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	LoginMaxAttempts int
	LoginCooldown    time.Duration

	CORSOrigins []string

	AMQPURL            string
	NotificationsQueue string
}

// Load reads the given .env files (".env" when none are named) into the
// process environment without overriding variables that are already set,
// then builds the configuration from the environment. Missing files are
// ignored.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:               getenv("PORT", "8080"),
		Env:                getenv("APP_ENV", "development"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		DatabaseURL:        getenv("DATABASE_URL", os.Getenv("POSTGRES_URL")),
		RedisURL:           os.Getenv("REDIS_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTIssuer:          getenv("JWT_ISSUER", "fintrack"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		NotificationsQueue: getenv("NOTIFICATIONS_QUEUE", "notifications_queue"),
		CORSOrigins:        splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	var err error
	if cfg.JWTTTL, err = durationEnv("JWT_EXPIRES_IN", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.LoginCooldown, err = durationEnv("LOGIN_COOLDOWN", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.LoginMaxAttempts, err = intEnv("LOGIN_MAX_ATTEMPTS", 5); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Production() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 bytes in production")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.LoginMaxAttempts <= 0 {
		return errors.New("LOGIN_MAX_ATTEMPTS must be positive")
	}
	if c.LoginCooldown <= 0 {
		return errors.New("LOGIN_COOLDOWN must be positive")
	}
	return nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return d, nil
}

func intEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
