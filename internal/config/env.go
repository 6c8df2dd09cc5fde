package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Settings are process-level knobs for cmd/brawlsrv, read from the
// environment after an optional .env file.
type Settings struct {
	Addr      string
	TuningDir string
	LogFile   string
	LogLevel  string
}

func LoadSettings(files ...string) (Settings, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, err
	}
	return Settings{
		Addr:      getEnv("ADDR", ":8080"),
		TuningDir: getEnv("TUNING_DIR", "assets"),
		LogFile:   os.Getenv("LOG_FILE"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
