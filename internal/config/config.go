package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/AstronomyAPI/Widgets/internal/logger"
	"github.com/AstronomyAPI/Widgets/internal/studio"
	"github.com/AstronomyAPI/Widgets/internal/widget"
)

// Config captures everything astrowidget reads from config.toml.
type Config struct {
	BaseURL    string
	BasicToken string
	Timeout    time.Duration
	LogFile    string
	LogLevel   string

	// Presets are partial widget inputs applied on every render.
	MoonPhase *widget.MoonPhaseInput
	StarChart *widget.StarChartInput
}

const (
	defaultConfigPath = "~/.config/astrowidget/config.toml"
	defaultLogFile    = "~/.local/share/astrowidget/astrowidget.log"
	defaultLogLevel   = "info"

	// TokenEnv overrides basic_token when set.
	TokenEnv = "ASTRO_BASIC_TOKEN"
)

// Load locates and parses config.toml, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:  studio.DefaultBaseURL,
		Timeout:  studio.DefaultTimeout,
		LogFile:  mustExpand(defaultLogFile),
		LogLevel: defaultLogLevel,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.BasicToken = strings.TrimSpace(os.Getenv(TokenEnv))
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL        string                 `toml:"base_url"`
		BasicToken     string                 `toml:"basic_token"`
		TimeoutSeconds int                    `toml:"timeout_seconds"`
		LogFile        string                 `toml:"log_file"`
		LogLevel       string                 `toml:"log_level"`
		MoonPhase      *widget.MoonPhaseInput `toml:"moon_phase"`
		StarChart      *widget.StarChartInput `toml:"star_chart"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	cfg.BasicToken = strings.TrimSpace(raw.BasicToken)
	if env := strings.TrimSpace(os.Getenv(TokenEnv)); env != "" {
		cfg.BasicToken = env
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	cfg.MoonPhase = raw.MoonPhase
	cfg.StarChart = raw.StarChart

	return cfg, nil
}

// Logging returns the logger settings.
func (c Config) Logging() logger.Config {
	return logger.Config{Level: c.LogLevel, File: c.LogFile}
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
