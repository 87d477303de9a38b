package config

import "strings"

// NormalizationResult lists the adjustments made to a configuration.
type NormalizationResult struct {
	Warnings []string
}

func (r *NormalizationResult) warnf(field, from, to string) {
	r.Warnings = append(r.Warnings, "normalized "+field+" from '"+from+"' to '"+to+"'")
}

// Normalize canonicalizes enumerations and trims string fields in place.
// Unknown enum values are left for validation to report.
func Normalize(cfg *Config) *NormalizationResult {
	res := &NormalizationResult{}

	if raw := string(cfg.Logging.Level); raw != "" {
		if v, err := logLevelNormalizer.Parse(raw); err == nil {
			if string(v) != raw {
				res.warnf("logging.level", raw, string(v))
			}
			cfg.Logging.Level = v
		}
	}
	if raw := string(cfg.Logging.Format); raw != "" {
		if v, err := logFormatNormalizer.Parse(raw); err == nil {
			if string(v) != raw {
				res.warnf("logging.format", raw, string(v))
			}
			cfg.Logging.Format = v
		}
	}
	if raw := string(cfg.Render.DefaultTarget); raw != "" {
		if v, err := targetNormalizer.Parse(raw); err == nil {
			if string(v) != raw {
				res.warnf("render.default_target", raw, string(v))
			}
			cfg.Render.DefaultTarget = v
		}
	}

	cfg.Embed.Directive = strings.TrimSpace(cfg.Embed.Directive)
	cfg.Embed.PlayerURL = strings.TrimSpace(cfg.Embed.PlayerURL)
	cfg.Embed.ThumbnailURL = strings.TrimSpace(cfg.Embed.ThumbnailURL)
	cfg.Render.CodeStyle = strings.ToLower(strings.TrimSpace(cfg.Render.CodeStyle))
	cfg.Export.HighlightStyle = strings.ToLower(strings.TrimSpace(cfg.Export.HighlightStyle))
	cfg.Watch.Debounce = strings.TrimSpace(cfg.Watch.Debounce)
	return res
}
