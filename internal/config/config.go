// Package config loads courtwatch settings from the config file and the
// environment. Environment variables win over file values so the tool can
// run from cron with nothing but an env block, the way the original
// deployment did.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything courtwatch needs to poll and notify.
type Config struct {
	FeedURL      string
	StatePath    string
	PollSeconds  int
	EmailFrom    string
	EmailTo      string
	AccessToken  string
	RefreshToken string
	ClientID     string
	ClientSecret string
	LogLevel     string
}

const (
	defaultConfigPath  = "~/.config/courtwatch/config.toml"
	defaultStatePath   = "cache/state.json"
	defaultPollSeconds = 300
	defaultLogLevel    = "info"
)

// Load locates and parses the config file, then applies environment
// overrides. A missing config file is not an error; the environment alone
// can carry a full configuration.
func Load(path string) (Config, error) {
	// A .env file beside the binary is honored when present.
	_ = godotenv.Load()

	cfg := Config{
		StatePath:   defaultStatePath,
		PollSeconds: defaultPollSeconds,
		LogLevel:    defaultLogLevel,
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		FeedURL      string `toml:"feed_url"`
		StatePath    string `toml:"state_path"`
		PollSeconds  int    `toml:"poll_seconds"`
		EmailFrom    string `toml:"email_from"`
		EmailTo      string `toml:"email_to"`
		AccessToken  string `toml:"access_token"`
		RefreshToken string `toml:"refresh_token"`
		ClientID     string `toml:"client_id"`
		ClientSecret string `toml:"client_secret"`
		LogLevel     string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.FeedURL, raw.FeedURL)
	setString(&cfg.StatePath, raw.StatePath)
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	setString(&cfg.EmailFrom, raw.EmailFrom)
	setString(&cfg.EmailTo, raw.EmailTo)
	setString(&cfg.AccessToken, raw.AccessToken)
	setString(&cfg.RefreshToken, raw.RefreshToken)
	setString(&cfg.ClientID, raw.ClientID)
	setString(&cfg.ClientSecret, raw.ClientSecret)
	setString(&cfg.LogLevel, raw.LogLevel)

	return applyEnv(cfg), nil
}

// EmailConfigured reports whether delivery via Gmail is possible.
func (c Config) EmailConfigured() bool {
	return strings.TrimSpace(c.EmailFrom) != "" && strings.TrimSpace(c.EmailTo) != ""
}

func applyEnv(cfg Config) Config {
	setEnvString(&cfg.FeedURL, "DATA_URL")
	setEnvString(&cfg.StatePath, "CACHE_STATE_PATH")
	setEnvString(&cfg.EmailFrom, "EMAIL_FROM")
	setEnvString(&cfg.EmailTo, "EMAIL_TO")
	setEnvString(&cfg.AccessToken, "ACCESS_TOKEN")
	setEnvString(&cfg.RefreshToken, "REFRESH_TOKEN")
	setEnvString(&cfg.ClientID, "CLIENT_ID")
	setEnvString(&cfg.ClientSecret, "CLIENT_SECRET")
	setEnvString(&cfg.LogLevel, "LOG_LEVEL")
	if v := strings.TrimSpace(os.Getenv("POLL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollSeconds = n
		}
	}
	cfg.StatePath = mustExpand(cfg.StatePath)
	return cfg
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func setEnvString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
