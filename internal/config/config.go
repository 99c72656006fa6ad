package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr       string
	ServiceName    string
	DB             DBConfig
	RedisAddr      string
	KafkaBrokers   []string
	JWTSecret      string
	TokenTTL       time.Duration
	ReportCacheTTL time.Duration
	RequestTimeout time.Duration
	WorkerGroup    string
	Workers        int
}

type DBConfig struct {
	URL               string // full DSN, wins over the discrete fields
	Host              string
	Port              string
	Name              string
	User              string
	Password          string
	SSLMode           string
	TrustedConnection bool
}

// DSN renders a postgres connection URL. With a trusted connection the
// credentials are left out and the server's trust/peer auth applies.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.Name,
	}
	if !c.TrustedConnection && c.User != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		ServiceName: getenv("SERVICE_NAME", "shopfront-api"),
		DB: DBConfig{
			URL:               os.Getenv("DATABASE_URL"),
			Host:              getenv("DB_HOST", "localhost"),
			Port:              getenv("DB_PORT", "5432"),
			Name:              getenv("DB_NAME", "shopfront"),
			User:              os.Getenv("DB_USER"),
			Password:          os.Getenv("DB_PASSWORD"),
			SSLMode:           getenv("DB_SSLMODE", "disable"),
			TrustedConnection: getbool("DB_TRUSTED_CONNECTION", false),
		},
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:   splitCSV(os.Getenv("KAFKA_BROKERS")),
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:       getduration("TOKEN_TTL", time.Hour),
		ReportCacheTTL: getduration("REPORT_CACHE_TTL", time.Minute),
		RequestTimeout: getduration("REQUEST_TIMEOUT", 5*time.Second),
		WorkerGroup:    getenv("WORKER_GROUP", "reports-worker"),
		Workers:        getint("WORKERS", 4),
	}
}

// minSecretLen is the HS256 key size.
const minSecretLen = 32

// Validate catches settings that would only fail later at request time.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < minSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLen)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.DB.URL == "" && c.DB.Name == "" {
		return fmt.Errorf("DB_NAME or DATABASE_URL is required")
	}
	return nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(k)))
	switch v {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return def
}

func getint(k string, def int) int {
	i, err := strconv.Atoi(getenv(k, ""))
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func getduration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(k, ""))
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
