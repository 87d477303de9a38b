// Package export produces the sanitized portable HTML string: the Portable
// render of a document, serialized, then sanitized.
package export

import (
	"log/slog"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mdport/internal/document"
	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
	"git.home.luguber.info/inful/mdport/internal/logfields"
	"git.home.luguber.info/inful/mdport/internal/render"
	"git.home.luguber.info/inful/mdport/internal/sanitize"
)

// ErrSerializationFailure is logged when the portable tree cannot be
// serialized. Export then returns "" instead of partial output.
var ErrSerializationFailure = foundationerrors.SerializationError("portable tree could not be serialized").Build()

// Exporter ties a renderer to a sanitizer policy.
type Exporter struct {
	renderer *render.Renderer
	policy   *sanitize.Policy
	logger   *slog.Logger
}

// New returns an Exporter. Nil arguments select the defaults.
func New(renderer *render.Renderer, policy *sanitize.Policy, logger *slog.Logger) *Exporter {
	if renderer == nil {
		renderer = render.New(render.Options{})
	}
	if policy == nil {
		policy = sanitize.DefaultPolicy()
	}
	return &Exporter{renderer: renderer, policy: policy, logger: logger}
}

var defaultExporter = New(nil, nil, nil)

// Export renders doc with the default exporter.
func Export(doc *document.Document, policy document.RenderPolicy) string {
	return defaultExporter.Export(doc, policy)
}

// Export returns the sanitized portable HTML for doc, or "" for an empty
// document or a serialization failure.
func (e *Exporter) Export(doc *document.Document, policy document.RenderPolicy) string {
	return e.ExportTree(e.renderer.Render(doc, policy, render.Portable))
}

// ExportTree serializes and sanitizes an already rendered portable tree.
func (e *Exporter) ExportTree(root *html.Node) string {
	raw, err := render.Serialize(root)
	if err != nil {
		werr := ErrSerializationFailure.Wrap(err)
		e.log().Error("Export failed",
			logfields.Target(render.Portable.String()),
			logfields.Category(string(werr.Category())),
			logfields.Error(werr))
		return ""
	}
	return sanitize.Sanitize(raw, e.policy)
}

func (e *Exporter) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}
