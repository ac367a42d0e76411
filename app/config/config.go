package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultHTTPAddr   = ":8080"
	DefaultDriver     = "postgres"
	DefaultSQLitePath = "inventory.db"
)

type Config struct {
	HTTPAddr string
	LogLevel slog.Level
	Database Database
}

type Database struct {
	Driver     string
	User       string
	Password   string
	Name       string
	Host       string
	Port       string
	SQLitePath string
}

// PostgresDSN builds a lib/pq connection URL from the individual settings.
func (d Database) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Load reads envFile when present and then the process environment.
// A missing env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	level, err := parseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPAddr: getenv("HTTP_ADDR", DefaultHTTPAddr),
		LogLevel: level,
		Database: Database{
			Driver:     strings.ToLower(getenv("DB_DRIVER", DefaultDriver)),
			User:       os.Getenv("POSTGRES_USER"),
			Password:   os.Getenv("POSTGRES_PASSWORD"),
			Name:       os.Getenv("POSTGRES_DB"),
			Host:       getenv("POSTGRES_HOST", "localhost"),
			Port:       getenv("POSTGRES_PORT", "5432"),
			SQLitePath: getenv("SQLITE_PATH", DefaultSQLitePath),
		},
	}, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
