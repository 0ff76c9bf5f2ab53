// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DBFileName is the score card database file name used when DB_PATH is unset.
const DBFileName = "scorecard.db"

// Config holds all application configuration.
type Config struct {
	// SQLite database file. Defaults to scorecard.db next to the executable.
	DBPath string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Ranking chart size in pixels. A zero height is derived from the number of bars.
	ChartWidth  int
	ChartHeight int
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() (*Config, error) {
	v := newViper()

	// Defaults
	v.SetDefault("DB_PATH", defaultDBPath())
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", false)
	v.SetDefault("CHART_WIDTH", 800)
	v.SetDefault("CHART_HEIGHT", 0)

	cfg := &Config{
		DBPath:      v.GetString("DB_PATH"),
		Debug:       v.GetBool("DEBUG"),
		Port:        v.GetString("PORT"),
		TLSDomains:  splitTrimmed(v.GetString("TLS_DOMAINS")),
		ChartWidth:  v.GetInt("CHART_WIDTH"),
		ChartHeight: v.GetInt("CHART_HEIGHT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: DB_PATH must not be empty")
	}
	if c.ChartWidth <= 0 {
		return errors.New("config: CHART_WIDTH must be positive")
	}
	if c.ChartHeight < 0 {
		return errors.New("config: CHART_HEIGHT must not be negative")
	}
	return nil
}

// defaultDBPath places the database file alongside the running binary.
func defaultDBPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DBFileName
	}
	return filepath.Join(filepath.Dir(exe), DBFileName)
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
