package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/errors"
)

// envPrefix is prepended to every environment override, so
// timeline.max_zoom is read from CUTLINE_TIMELINE_MAX_ZOOM.
const envPrefix = "CUTLINE"

// newViperInstance creates a Viper instance with the env prefix, key
// replacer and defaults applied.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (CUTLINE_* prefix)
//  2. Project config (.cutline/config.yaml)
//  3. Global config (~/.cutline/config.yaml)
//  4. Built-in defaults
//
// For CLI flag overrides, use LoadWithOverrides instead.
//
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Int("playback.fps", cfg.Playback.FPS).
		Dur("playback.tick_interval", cfg.Playback.TickInterval).
		Float64("timeline.default_zoom", cfg.Timeline.DefaultZoom).
		Msg("configuration loaded")

	return cfg, nil
}

// loadGlobalConfig attempts to load ~/.cutline/config.yaml.
// Returns nil if the file doesn't exist or the home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, ok := getGlobalConfigPathIfExists()
	if !ok {
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

func getGlobalConfigPathIfExists() (string, bool) {
	globalDir, err := GlobalConfigDir()
	if err != nil {
		return "", false
	}

	globalConfigPath := filepath.Join(globalDir, constants.ConfigFileName)
	if _, err := os.Stat(globalConfigPath); err != nil {
		return "", false
	}

	return globalConfigPath, true
}

// loadProjectConfig attempts to load .cutline/config.yaml from the working directory.
func loadProjectConfig(v *viper.Viper) error {
	projectConfigPath := ProjectConfigPath()
	if !fileExists(projectConfigPath) {
		return nil
	}

	v.SetConfigFile(projectConfigPath)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths.
// projectConfigPath has higher priority than globalConfigPath; either may
// be empty to skip that level.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the mapstructure tags exactly; a key without a default is
// invisible to AutomaticEnv during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("timeline.default_zoom", d.Timeline.DefaultZoom)
	v.SetDefault("timeline.min_zoom", d.Timeline.MinZoom)
	v.SetDefault("timeline.max_zoom", d.Timeline.MaxZoom)
	v.SetDefault("timeline.padding_px", d.Timeline.PaddingPx)
	v.SetDefault("timeline.ruler_buffer_px", d.Timeline.RulerBufferPx)
	v.SetDefault("timeline.max_ticks", d.Timeline.MaxTicks)
	v.SetDefault("timeline.viewport_width", d.Timeline.ViewportWidth)

	v.SetDefault("playback.fps", d.Playback.FPS)
	v.SetDefault("playback.tick_interval", "0s")

	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge.String())
}

// applyOverrides merges non-zero override values into the config.
func applyOverrides(cfg, overrides *Config) {
	applyTimelineOverrides(&cfg.Timeline, &overrides.Timeline)

	if overrides.Playback.FPS != 0 {
		cfg.Playback.FPS = overrides.Playback.FPS
	}
	if overrides.Playback.TickInterval != 0 {
		cfg.Playback.TickInterval = overrides.Playback.TickInterval
	}

	if overrides.Log.File != "" {
		cfg.Log.File = overrides.Log.File
	}
}

func applyTimelineOverrides(cfg, overrides *TimelineConfig) {
	if overrides.DefaultZoom != 0 {
		cfg.DefaultZoom = overrides.DefaultZoom
	}
	if overrides.MinZoom != 0 {
		cfg.MinZoom = overrides.MinZoom
	}
	if overrides.MaxZoom != 0 {
		cfg.MaxZoom = overrides.MaxZoom
	}
	if overrides.PaddingPx != 0 {
		cfg.PaddingPx = overrides.PaddingPx
	}
	if overrides.RulerBufferPx != 0 {
		cfg.RulerBufferPx = overrides.RulerBufferPx
	}
	if overrides.MaxTicks != 0 {
		cfg.MaxTicks = overrides.MaxTicks
	}
	if overrides.ViewportWidth != 0 {
		cfg.ViewportWidth = overrides.ViewportWidth
	}
}

// viperDecoderOption configures mapstructure to decode durations from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
