package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage       = "stage"
	KeyTarget      = "target"
	KeyDurationMS  = "duration_ms"
	KeyInputBytes  = "input_bytes"
	KeyOutputBytes = "output_bytes"
	KeyBlocks      = "blocks"
	KeyCacheHit    = "cache_hit"
	KeyPath        = "path"
	KeyDraft       = "draft"
	KeyEmbedID     = "embed_id"
	KeyDirective   = "directive"
	KeyCategory    = "category"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func InputBytes(n int) slog.Attr      { return slog.Int(KeyInputBytes, n) }
func OutputBytes(n int) slog.Attr     { return slog.Int(KeyOutputBytes, n) }
func Blocks(n int) slog.Attr          { return slog.Int(KeyBlocks, n) }
func CacheHit(hit bool) slog.Attr     { return slog.Bool(KeyCacheHit, hit) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Draft(name string) slog.Attr     { return slog.String(KeyDraft, name) }
func EmbedID(id string) slog.Attr     { return slog.String(KeyEmbedID, id) }
func Directive(name string) slog.Attr { return slog.String(KeyDirective, name) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
