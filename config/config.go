package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string
	AccountsPath string
	StaticDir    string
	LogLevel     slog.Level
	SendBuffer   int
}

// InitConfig loads environment variables from the given .env files (".env"
// when none are named). A missing file is not an error.
func InitConfig(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("no env file", "file", f)
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
		slog.Info("Successfully loaded environment variables", "file", f)
	}
	return nil
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}

	return b, nil

}

// Load reads the process environment, falling back to defaults for unset
// variables.
func Load() (Config, error) {
	cfg := Config{
		Addr:         getOr("TREATHUNT_ADDR", ":3008"),
		AccountsPath: getOr("TREATHUNT_ACCOUNTS", "data/accounts.json"),
		StaticDir:    getOr("TREATHUNT_STATIC_DIR", ""),
		SendBuffer:   64,
	}

	level, err := ParseLevel(getOr("TREATHUNT_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if v, err := GetEnvVariable("TREATHUNT_SEND_BUFFER"); err == nil {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("TREATHUNT_SEND_BUFFER must be a positive integer, got %q", v)
		}
		cfg.SendBuffer = n
	}
	return cfg, nil
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

func getOr(key, def string) string {
	if v, err := GetEnvVariable(key); err == nil {
		return v
	}
	return def
}
