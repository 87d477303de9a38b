package config

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"

	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
)

var directiveNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Validate checks a normalized, defaulted configuration.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	for _, check := range []func() error{
		v.validateEmbed,
		v.validateRender,
		v.validateWatch,
		v.validateLogging,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

type configurationValidator struct {
	config *Config
}

func invalid(field, message string, value any) error {
	return foundationerrors.ValidationError("invalid configuration: "+message).
		WithContext("field", field).
		WithContext("value", value).
		UserAction().Build()
}

func (v *configurationValidator) validateEmbed() error {
	e := v.config.Embed
	if !directiveNamePattern.MatchString(e.Directive) {
		return invalid("embed.directive", "directive name must start with a letter and contain only letters, digits, '-' or '_'", e.Directive)
	}
	for field, tmpl := range map[string]string{
		"embed.player_url":    e.PlayerURL,
		"embed.thumbnail_url": e.ThumbnailURL,
	} {
		if !strings.Contains(tmpl, "{id}") {
			return invalid(field, "URL template must contain {id}", tmpl)
		}
		u, err := url.Parse(strings.ReplaceAll(tmpl, "{id}", "x"))
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return invalid(field, "URL template must be an absolute https URL", tmpl)
		}
	}
	return nil
}

func (v *configurationValidator) validateRender() error {
	r := v.config.Render
	if _, err := targetNormalizer.Parse(string(r.DefaultTarget)); err != nil {
		return invalid("render.default_target", err.Error(), r.DefaultTarget)
	}
	names := styles.Names()
	if !slices.Contains(names, r.CodeStyle) {
		return invalid("render.code_style", "unknown chroma style", r.CodeStyle)
	}
	if !slices.Contains(names, v.config.Export.HighlightStyle) {
		return invalid("export.highlight_style", "unknown chroma style", v.config.Export.HighlightStyle)
	}
	return nil
}

func (v *configurationValidator) validateWatch() error {
	d, err := time.ParseDuration(v.config.Watch.Debounce)
	if err != nil || d < 0 {
		return invalid("watch.debounce", "debounce must be a non-negative duration", v.config.Watch.Debounce)
	}
	return nil
}

func (v *configurationValidator) validateLogging() error {
	l := v.config.Logging
	if _, err := logLevelNormalizer.Parse(string(l.Level)); err != nil {
		return invalid("logging.level", err.Error(), l.Level)
	}
	if _, err := logFormatNormalizer.Parse(string(l.Format)); err != nil {
		return invalid("logging.format", err.Error(), l.Format)
	}
	return nil
}

// DebounceDuration returns the parsed watch debounce.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0
	}
	return d
}
