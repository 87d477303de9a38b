package render

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/mdport/internal/document"
)

// IDPlaceholder is replaced by the escaped embed id in provider URL templates.
const IDPlaceholder = "{id}"

// EmbedProvider holds the URL templates for the video provider embeds point at.
type EmbedProvider struct {
	PlayerURL    string
	ThumbnailURL string
}

// DefaultEmbedProvider returns the privacy-enhanced YouTube endpoints.
func DefaultEmbedProvider() EmbedProvider {
	return EmbedProvider{
		PlayerURL:    "https://www.youtube-nocookie.com/embed/" + IDPlaceholder,
		ThumbnailURL: "https://i.ytimg.com/vi/" + IDPlaceholder + "/hqdefault.jpg",
	}
}

// Player returns the player URL for id.
func (p EmbedProvider) Player(id string) string {
	return strings.ReplaceAll(p.PlayerURL, IDPlaceholder, url.PathEscape(id))
}

// Thumbnail returns the thumbnail URL for id.
func (p EmbedProvider) Thumbnail(id string) string {
	return strings.ReplaceAll(p.ThumbnailURL, IDPlaceholder, url.PathEscape(id))
}

// Autoplay returns the player URL that starts playback on load.
func (p EmbedProvider) Autoplay(id string) string {
	u := p.Player(id)
	if strings.Contains(u, "?") {
		return u + "&autoplay=1"
	}
	return u + "?autoplay=1"
}

const (
	embedBoxStyle   = "position: relative; padding-bottom: 56.25%; height: 0; overflow: hidden"
	embedFrameStyle = "position: absolute; top: 0; left: 0; width: 100%; height: 100%"
	embedAllow      = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"
	playGlyph       = "▶"

	// srcdocCSS styles the click-to-load document shown inside the frame. It
	// must not contain angle brackets.
	srcdocCSS = "*{padding:0;margin:0;overflow:hidden}" +
		"html,body{height:100%}" +
		"img,span{position:absolute;width:100%;top:0;bottom:0;margin:auto}" +
		"span{height:1.5em;text-align:center;font:48px/1.5 sans-serif;color:white;text-shadow:0 0 0.5em black}"
)

func embedTitle(e *document.EmbedDirective) string {
	if e.Label != "" {
		return e.Label
	}
	return "Embedded video"
}

// portableFrame builds the responsive 16:9 box holding an iframe. The frame's
// srcdoc shows only the thumbnail and a play link, so nothing is loaded from
// the player until the reader clicks.
func (p EmbedProvider) portableFrame(e *document.EmbedDirective) *html.Node {
	box := element(atom.Div, attr("style", embedBoxStyle))
	frame := element(atom.Iframe,
		attr("src", p.Player(e.ID)),
		attr("title", embedTitle(e)),
		attr("srcdoc", p.Srcdoc(e)),
		attr("frameborder", "0"),
		attr("scrolling", "no"),
		attr("allow", embedAllow),
		attr("allowfullscreen", ""),
		attr("style", embedFrameStyle),
	)
	box.AppendChild(frame)
	return box
}

// Srcdoc returns the inert click-to-play document for e.
func (p EmbedProvider) Srcdoc(e *document.EmbedDirective) string {
	style := element(atom.Style)
	style.AppendChild(textNode(srcdocCSS))

	link := element(atom.A, attr("href", p.Autoplay(e.ID)))
	link.AppendChild(element(atom.Img, attr("src", p.Thumbnail(e.ID)), attr("alt", e.Label)))
	icon := element(atom.Span)
	icon.AppendChild(textNode(playGlyph))
	link.AppendChild(icon)

	var b strings.Builder
	for _, n := range []*html.Node{style, link} {
		// Both nodes are well formed; Render only fails on writer errors,
		// which strings.Builder never returns.
		_ = html.Render(&b, n)
	}
	return b.String()
}

// previewPlaceholder builds the Preview widget: a thumbnail button carrying the
// player URL for the host application to swap in on click.
func (p EmbedProvider) previewPlaceholder(e *document.EmbedDirective) *html.Node {
	title := embedTitle(e)
	fig := element(atom.Figure, class("md-embed"), attr("data-embed-id", e.ID))

	button := element(atom.Button,
		attr("type", "button"),
		class("md-embed-play"),
		attr("title", "Play: "+title),
		attr("aria-label", "Play: "+title),
		attr("data-player", p.Autoplay(e.ID)),
	)
	button.AppendChild(element(atom.Img,
		class("md-embed-thumbnail"),
		attr("src", p.Thumbnail(e.ID)),
		attr("alt", e.Label),
		attr("loading", "lazy"),
	))
	icon := element(atom.Span, class("md-embed-icon"), attr("aria-hidden", "true"))
	icon.AppendChild(textNode(playGlyph))
	button.AppendChild(icon)
	fig.AppendChild(button)

	if e.Label != "" {
		caption := element(atom.Figcaption, class("md-embed-caption"))
		caption.AppendChild(textNode(e.Label))
		fig.AppendChild(caption)
	}
	return fig
}
