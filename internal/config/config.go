// Package config loads the mdport YAML configuration.
//
// Loading follows a fixed order: optional .env files, environment expansion of
// the raw YAML, strict decoding, normalization of enumerations, defaults and
// finally validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
)

// CurrentVersion is the configuration format version written by Init.
const CurrentVersion = "1"

// DefaultPath is looked up in the working directory when no path is given.
const DefaultPath = "mdport.yaml"

// Config is the complete application configuration.
type Config struct {
	Version string        `yaml:"version"`
	Embed   EmbedConfig   `yaml:"embed"`
	Render  RenderConfig  `yaml:"render"`
	Export  ExportConfig  `yaml:"export"`
	Drafts  DraftsConfig  `yaml:"drafts"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// EmbedConfig selects the directive recognized as a video embed and the
// provider URLs. URL templates contain {id}.
type EmbedConfig struct {
	Directive    string `yaml:"directive"`
	PlayerURL    string `yaml:"player_url"`
	ThumbnailURL string `yaml:"thumbnail_url"`
}

// RenderConfig holds presentation defaults.
type RenderConfig struct {
	// SuppressListMarkers is a pointer so an omitted key can default to true.
	SuppressListMarkers *bool  `yaml:"suppress_list_markers,omitempty"`
	DefaultTarget       Target `yaml:"default_target"`
	CodeStyle           string `yaml:"code_style"`
	Memo                bool   `yaml:"memo"`
	DisableEmoji        bool   `yaml:"disable_emoji"`
}

// ExportConfig holds code view settings for the export command.
type ExportConfig struct {
	HighlightStyle string `yaml:"highlight_style"`
}

// DraftsConfig locates the draft database. An empty path keeps drafts in memory.
type DraftsConfig struct {
	Path string `yaml:"path"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
	OutDir   string `yaml:"out_dir"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables writing Prometheus metrics to a textfile on exit.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// SuppressMarkers reports the effective list marker setting.
func (r RenderConfig) SuppressMarkers() bool {
	return r.SuppressListMarkers == nil || *r.SuppressListMarkers
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	if err := applyDefaults(cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		slog.Warn("Could not load .env file", "error", err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, foundationerrors.ConfigError("configuration file not found").
			WithContext("path", path).Build()
	}
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).Build()
	}
	return Parse(data)
}

// LoadOrDefault loads path, or DefaultPath when path is empty. A missing
// default file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); errors.Is(err, os.ErrNotExist) {
		if err := loadEnvFiles(); err != nil {
			slog.Warn("Could not load .env file", "error", err)
		}
		return Default(), nil
	}
	return Load(DefaultPath)
}

// Parse decodes, normalizes, defaults and validates raw YAML.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to decode config").
			Fatal().UserAction().Build()
	}

	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Version != CurrentVersion {
		return nil, foundationerrors.ConfigError("unsupported configuration version").
			WithContext("version", cfg.Version).
			WithContext("expected", CurrentVersion).Build()
	}

	res := Normalize(&cfg)
	for _, w := range res.Warnings {
		slog.Warn("Config normalization", "warning", w)
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to apply defaults").Build()
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return foundationerrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}

	suppress := true
	example := Config{
		Version: CurrentVersion,
		Embed: EmbedConfig{
			Directive:    DefaultDirective,
			PlayerURL:    DefaultPlayerURL,
			ThumbnailURL: DefaultThumbnailURL,
		},
		Render: RenderConfig{
			SuppressListMarkers: &suppress,
			DefaultTarget:       TargetPreview,
			CodeStyle:           DefaultCodeStyle,
			Memo:                true,
		},
		Export:  ExportConfig{HighlightStyle: DefaultHighlightStyle},
		Drafts:  DraftsConfig{Path: "${HOME}/.local/share/mdport/drafts.db"},
		Watch:   WatchConfig{Debounce: DefaultDebounce},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	var buf bytes.Buffer
	buf.WriteString("# mdport configuration\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&example); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to encode example config").Build()
	}
	if err := enc.Close(); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to encode example config").Build()
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).Build()
	}
	return nil
}
