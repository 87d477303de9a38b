package sanitize

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html/atom"
)

// Element groups of the allowlist.
var (
	textElements = []string{
		"p", "br", "hr", "h1", "h2", "h3", "h4", "h5", "h6",
		"blockquote", "pre", "code", "kbd", "samp",
		"em", "strong", "b", "i", "s", "del", "ins", "u", "sub", "sup", "mark", "small", "q", "abbr",
		"span", "div", "figure", "figcaption",
	}
	listElements  = []string{"ul", "ol", "li", "dl", "dt", "dd"}
	tableElements = []string{"table", "caption", "thead", "tbody", "tfoot", "tr", "th", "td"}
	mediaElements = []string{"a", "img", "input", "iframe"}
)

// rawTextElements hold unparsed text in the HTML tokenizer. Escaping their
// content on output is not stable across passes.
var rawTextElements = []atom.Atom{
	atom.Iframe, atom.Noembed, atom.Noframes, atom.Noscript, atom.Plaintext,
	atom.Script, atom.Style, atom.Textarea, atom.Title, atom.Xmp,
}

var (
	reTarget    = regexp.MustCompile(`^_blank$`)
	reRel       = regexp.MustCompile(`^[a-z]+( [a-z]+)*$`)
	reNumber    = regexp.MustCompile(`^[0-9]+$`)
	reAlign     = regexp.MustCompile(`^(left|center|right)$`)
	reLangClass = regexp.MustCompile(`^language-[A-Za-z0-9_+#.-]+$`)
	reCheckbox  = regexp.MustCompile(`^checkbox$`)
	reAllow     = regexp.MustCompile(`^[a-z-]+(; ?[a-z-]+)*$`)
	reID        = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	reTrue      = regexp.MustCompile(`^true$`)
	reZero      = regexp.MustCompile(`^0$`)
	reNo        = regexp.MustCompile(`^no$`)

	// reEmbedSrcdoc accepts exactly the click-to-play document the renderer
	// writes into embed frames: a style block with no markup, then one https
	// link wrapping a thumbnail image and a play icon. Anything else in a
	// srcdoc attribute could run script inside the frame.
	reEmbedSrcdoc = regexp.MustCompile(
		`^<style>[^<>]*</style>` +
			`<a href="https://[^"<>\s]+">` +
			`<img src="https://[^"<>\s]+" alt="[^"<>]*"/>` +
			`<span>[^<>]*</span>` +
			`</a>$`)
)

// Policy is an immutable sanitizer allowlist. The zero value is not usable;
// use DefaultPolicy or NewPolicy.
type Policy struct {
	bm       *bluemonday.Policy
	elements map[string]struct{}
	// emptied lists the allowed raw-text elements whose content is dropped.
	emptied map[atom.Atom]struct{}
}

// NewPolicy builds the allowlist: the common safe HTML subset plus the
// attributes the portable renderer needs for links, task lists and embeds.
func NewPolicy() *Policy {
	p := bluemonday.NewPolicy()

	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")

	p.AllowElements(textElements...)
	p.AllowElements(listElements...)
	p.AllowElements(tableElements...)

	p.AllowAttrs("title").Globally()
	p.AllowAttrs("id").Matching(reID).Globally()
	p.AllowAttrs("aria-hidden").Matching(reTrue).Globally()

	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(reTarget).OnElements("a")
	p.AllowAttrs("rel").Matching(reRel).OnElements("a")

	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("width", "height").Matching(reNumber).OnElements("img")

	p.AllowAttrs("start").Matching(reNumber).OnElements("ol")
	p.AllowAttrs("align").Matching(reAlign).OnElements("th", "td")
	p.AllowAttrs("colspan", "rowspan").Matching(reNumber).OnElements("th", "td")
	p.AllowAttrs("class").Matching(reLangClass).OnElements("code")

	p.AllowAttrs("type").Matching(reCheckbox).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	p.AllowAttrs("src").OnElements("iframe")
	p.AllowAttrs("srcdoc").Matching(reEmbedSrcdoc).OnElements("iframe")
	p.AllowAttrs("frameborder").Matching(reZero).OnElements("iframe")
	p.AllowAttrs("scrolling").Matching(reNo).OnElements("iframe")
	p.AllowAttrs("allow").Matching(reAllow).OnElements("iframe")
	p.AllowAttrs("allowfullscreen").OnElements("iframe")

	// Inline styles are limited to the exact declarations the renderer emits
	// for marker-less lists and the responsive embed box.
	p.AllowStyles("list-style").MatchingEnum("none").OnElements("ul", "ol")
	p.AllowStyles("margin-left").MatchingEnum("0").OnElements("ul", "ol")
	p.AllowStyles("position").MatchingEnum("relative").OnElements("div")
	p.AllowStyles("padding-bottom").MatchingEnum("56.25%").OnElements("div")
	p.AllowStyles("height").MatchingEnum("0").OnElements("div")
	p.AllowStyles("overflow").MatchingEnum("hidden").OnElements("div")
	p.AllowStyles("position").MatchingEnum("absolute").OnElements("iframe")
	p.AllowStyles("top", "left").MatchingEnum("0").OnElements("iframe")
	p.AllowStyles("width", "height").MatchingEnum("100%").OnElements("iframe")

	elements := make(map[string]struct{})
	for _, group := range [][]string{textElements, listElements, tableElements, mediaElements} {
		for _, e := range group {
			elements[e] = struct{}{}
		}
	}
	pol := &Policy{bm: p, elements: elements, emptied: make(map[atom.Atom]struct{})}
	for _, a := range rawTextElements {
		if pol.Allows(a.String()) {
			pol.emptied[a] = struct{}{}
		}
	}
	return pol
}

var (
	defaultOnce   sync.Once
	defaultPolicy *Policy
)

// DefaultPolicy returns the shared policy. bluemonday policies are safe for
// concurrent use once built.
func DefaultPolicy() *Policy {
	defaultOnce.Do(func() { defaultPolicy = NewPolicy() })
	return defaultPolicy
}

// Allows reports whether element survives sanitization.
func (p *Policy) Allows(element string) bool {
	_, ok := p.elements[element]
	return ok
}
