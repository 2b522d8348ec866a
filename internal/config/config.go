// Application configuration loaded from a TOML file
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"image-resolution-scaler/internal/resample"
)

// Config carries the tunables of the application. Zero MaxOutputPixels means
// the engine default ceiling.
type Config struct {
	WindowWidth      int    `toml:"window_width"`
	WindowHeight     int    `toml:"window_height"`
	DefaultMethod    string `toml:"default_method"`
	MaxOutputPixels  int    `toml:"max_output_pixels"`
	RenderDebounceMS int    `toml:"render_debounce_ms"`
	LogLevel         string `toml:"log_level"`
}

// Default returns the built-in configuration used when no file is given.
func Default() Config {
	return Config{
		WindowWidth:      900,
		WindowHeight:     700,
		DefaultMethod:    "Bicubic",
		RenderDebounceMS: 150,
		LogLevel:         "info",
	}
}

// Load reads the TOML file at path, layered over the defaults. An empty path
// returns the defaults; a named but unreadable or invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d",
			c.WindowWidth, c.WindowHeight)
	}
	if c.MaxOutputPixels < 0 {
		return fmt.Errorf("max_output_pixels must not be negative")
	}
	if c.RenderDebounceMS < 0 {
		return fmt.Errorf("render_debounce_ms must not be negative")
	}
	if _, err := resample.ParseMethod(c.DefaultMethod); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Method resolves the configured default interpolation method.
func (c Config) Method() resample.Method {
	method, err := resample.ParseMethod(c.DefaultMethod)
	if err != nil {
		return resample.Bicubic
	}
	return method
}

// RenderDebounce returns the debounce delay for asynchronous renders.
func (c Config) RenderDebounce() time.Duration {
	return time.Duration(c.RenderDebounceMS) * time.Millisecond
}

// LogrusLevel resolves the configured log level.
func (c Config) LogrusLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
