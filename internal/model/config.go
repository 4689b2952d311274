package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// APIConfig holds the settings for the Munchie REST backend.
type APIConfig struct {
	// BaseURL is the root URL of the backend (e.g., http://localhost:8080).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds every HTTP request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// MaxRetries is how many times a rate-limited (429) request is retried.
	// Notification calls never retry regardless of this value.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`

	// RatePerSec caps outgoing requests per second; 0 disables the limit.
	RatePerSec float64 `mapstructure:"rate_per_sec" yaml:"rate_per_sec"`
}

// NotificationConfig holds the award toast timing.
type NotificationConfig struct {
	BaseDelayMs     int `mapstructure:"base_delay_ms" yaml:"base_delay_ms"`
	StepDelayMs     int `mapstructure:"step_delay_ms" yaml:"step_delay_ms"`
	ToastDurationMs int `mapstructure:"toast_duration_ms" yaml:"toast_duration_ms"`
}

// BaseDelay is the delay before the first acknowledgement of a batch.
func (c NotificationConfig) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelayMs) * time.Millisecond
}

// StepDelay is the spacing between consecutive acknowledgements.
func (c NotificationConfig) StepDelay() time.Duration {
	return time.Duration(c.StepDelayMs) * time.Millisecond
}

// ToastDuration is how long a toast stays on screen once shown.
func (c NotificationConfig) ToastDuration() time.Duration {
	return time.Duration(c.ToastDurationMs) * time.Millisecond
}

// SoundConfig controls the award sound cue.
type SoundConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	ClipMs  int  `mapstructure:"clip_ms" yaml:"clip_ms"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// StoreConfig locates the local acknowledgement journal.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API           APIConfig          `mapstructure:"api" yaml:"api"`
	Notifications NotificationConfig `mapstructure:"notifications" yaml:"notifications"`
	Sound         SoundConfig        `mapstructure:"sound" yaml:"sound"`
	Display       DisplayConfig      `mapstructure:"display" yaml:"display"`
	Log           LogConfig          `mapstructure:"log" yaml:"log"`
	Store         StoreConfig        `mapstructure:"store" yaml:"store"`
}

// ConfigDir returns ~/.config/munchie, falling back to the working
// directory when the home directory cannot be resolved.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "munchie")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/munchie/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    "http://localhost:8080",
			TimeoutSec: 30,
			MaxRetries: 3,
			RatePerSec: 10,
		},
		Notifications: NotificationConfig{
			BaseDelayMs:     1000,
			StepDelayMs:     4000,
			ToastDurationMs: 4000,
		},
		Sound: SoundConfig{
			Enabled: true,
			ClipMs:  1500,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(ConfigDir(), "munchie.log"),
		},
		Store: StoreConfig{
			Path: filepath.Join(ConfigDir(), "munchie.db"),
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	defaults := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("munchie")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.base_url", defaults.API.BaseURL)
	v.SetDefault("api.timeout_sec", defaults.API.TimeoutSec)
	v.SetDefault("api.max_retries", defaults.API.MaxRetries)
	v.SetDefault("api.rate_per_sec", defaults.API.RatePerSec)
	v.SetDefault("notifications.base_delay_ms", defaults.Notifications.BaseDelayMs)
	v.SetDefault("notifications.step_delay_ms", defaults.Notifications.StepDelayMs)
	v.SetDefault("notifications.toast_duration_ms", defaults.Notifications.ToastDurationMs)
	v.SetDefault("sound.enabled", defaults.Sound.Enabled)
	v.SetDefault("sound.clip_ms", defaults.Sound.ClipMs)
	v.SetDefault("display.theme", defaults.Display.Theme)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("store.path", defaults.Store.Path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Notifications.BaseDelayMs < 0 || cfg.Notifications.StepDelayMs < 0 {
		return nil, fmt.Errorf("parsing config %s: notification delays must not be negative", path)
	}
	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = defaults.API.TimeoutSec
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("notifications", cfg.Notifications)
	v.Set("sound", cfg.Sound)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)
	v.Set("store", cfg.Store)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
