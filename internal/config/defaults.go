package config

// Default values.
const (
	DefaultDirective      = "youtube"
	DefaultPlayerURL      = "https://www.youtube-nocookie.com/embed/{id}"
	DefaultThumbnailURL   = "https://i.ytimg.com/vi/{id}/hqdefault.jpg"
	DefaultCodeStyle      = "github"
	DefaultHighlightStyle = "monokai"
	DefaultDebounce       = "150ms"
)

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

type embedDefaults struct{}

func (embedDefaults) Domain() string { return "embed" }

func (embedDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Embed.Directive == "" {
		cfg.Embed.Directive = DefaultDirective
	}
	if cfg.Embed.PlayerURL == "" {
		cfg.Embed.PlayerURL = DefaultPlayerURL
	}
	if cfg.Embed.ThumbnailURL == "" {
		cfg.Embed.ThumbnailURL = DefaultThumbnailURL
	}
	return nil
}

type renderDefaults struct{}

func (renderDefaults) Domain() string { return "render" }

func (renderDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Render.SuppressListMarkers == nil {
		suppress := true
		cfg.Render.SuppressListMarkers = &suppress
	}
	if cfg.Render.DefaultTarget == "" {
		cfg.Render.DefaultTarget = TargetPreview
	}
	if cfg.Render.CodeStyle == "" {
		cfg.Render.CodeStyle = DefaultCodeStyle
	}
	if cfg.Export.HighlightStyle == "" {
		cfg.Export.HighlightStyle = DefaultHighlightStyle
	}
	return nil
}

type watchDefaults struct{}

func (watchDefaults) Domain() string { return "watch" }

func (watchDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultDebounce
	}
	return nil
}

type loggingDefaults struct{}

func (loggingDefaults) Domain() string { return "logging" }

func (loggingDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	return nil
}

var defaultAppliers = []DefaultApplier{embedDefaults{}, renderDefaults{}, watchDefaults{}, loggingDefaults{}}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
