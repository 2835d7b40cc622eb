// Package config handles configuration for chatwidget.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file
const (
	EnvEndpoint = "CHATWIDGET_ENDPOINT"
	EnvTheme    = "CHATWIDGET_THEME"
	EnvLogFile  = "CHATWIDGET_LOG_FILE"
)

// Config represents the user configuration
type Config struct {
	// Endpoint is the base URL of the Response Service; /chat is appended.
	Endpoint string `json:"endpoint"`
	// Theme names the terminal color theme.
	Theme string `json:"theme,omitempty"`
	// TimeoutSeconds bounds a single request. Zero waits indefinitely.
	TimeoutSeconds int `json:"timeout_seconds"`
	// BlockWhilePending refuses new submissions while a reply is outstanding.
	BlockWhilePending bool `json:"block_while_pending"`
	// CopyToClipboard copies each one-shot reply to the clipboard.
	CopyToClipboard bool `json:"copy_to_clipboard"`
	// Verbose lowers the diagnostic log level to debug.
	Verbose bool `json:"verbose"`
	// LogFile is where diagnostics are written.
	LogFile string `json:"log_file,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	logFile := ""
	if dir, err := GetConfigDir(); err == nil {
		logFile = filepath.Join(dir, "chatwidget.log")
	}
	return Config{
		Endpoint:          "http://127.0.0.1:8000",
		Theme:             "tokyonight",
		TimeoutSeconds:    0,
		BlockWhilePending: true,
		CopyToClipboard:   false,
		Verbose:           false,
		LogFile:           logFile,
	}
}

const (
	dirName  = ".chatwidget"
	fileName = "config.json"
)

// GetConfigDir returns ~/.chatwidget
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// GetConfigPath returns the location of config.json, whether or not it exists
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// LoadConfig reads config.json over the defaults. A missing file is not an
// error; keys absent from the file keep their default values.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to config.json through a temporary file so a failed
// write never leaves a truncated config behind
func SaveConfig(cfg Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), fileName+".*")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files (default ".env" in the
// working directory). Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values with environment variables
func ApplyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

// Keys returns the names accepted by Set, in display order
func Keys() []string {
	return []string{
		"endpoint",
		"theme",
		"timeout_seconds",
		"block_while_pending",
		"copy_to_clipboard",
		"verbose",
		"log_file",
	}
}

// Set updates a single config value by its JSON key
func Set(cfg *Config, key, value string) error {
	switch key {
	case "endpoint":
		if value == "" {
			return fmt.Errorf("endpoint cannot be empty")
		}
		cfg.Endpoint = value
	case "theme":
		cfg.Theme = value
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("timeout_seconds must be a non-negative integer: %q", value)
		}
		cfg.TimeoutSeconds = n
	case "block_while_pending":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("block_while_pending must be true or false: %q", value)
		}
		cfg.BlockWhilePending = b
	case "copy_to_clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("copy_to_clipboard must be true or false: %q", value)
		}
		cfg.CopyToClipboard = b
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose must be true or false: %q", value)
		}
		cfg.Verbose = b
	case "log_file":
		cfg.LogFile = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}
