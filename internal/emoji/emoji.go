// Package emoji expands `:shortcode:` tokens and a fixed set of emoticons
// into emoji glyphs.
//
// Shortcodes resolve against the GitHub emoji table shipped with
// goldmark-emoji. Only document.Text inlines are rewritten; inline code and
// code blocks are different node types and are never touched.
package emoji

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark-emoji/definition"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/mdport/internal/document"
)

var shortcodes = definition.Github()

// emoticon is a fixed text face and the glyph it expands to.
type emoticon struct {
	text  string
	glyph string
	name  string
}

var emoticons = []emoticon{
	{":-)", "\U0001F642", "slightly smiling face"},
	{":)", "\U0001F642", "slightly smiling face"},
	{":-(", "\U0001F641", "slightly frowning face"},
	{":(", "\U0001F641", "slightly frowning face"},
	{";-)", "\U0001F609", "winking face"},
	{";)", "\U0001F609", "winking face"},
	{":-D", "\U0001F603", "grinning face with big eyes"},
	{":D", "\U0001F603", "grinning face with big eyes"},
	{":-P", "\U0001F61B", "face with tongue"},
	{":P", "\U0001F61B", "face with tongue"},
	{":p", "\U0001F61B", "face with tongue"},
	{":O", "\U0001F62E", "face with open mouth"},
	{":o", "\U0001F62E", "face with open mouth"},
	{":'(", "\U0001F622", "crying face"},
	{":|", "\U0001F610", "neutral face"},
	{"<3", "❤️", "red heart"},
}

func init() {
	// Longest match first so ":-)" wins over ":)"-style prefixes.
	sort.SliceStable(emoticons, func(i, j int) bool {
		return len(emoticons[i].text) > len(emoticons[j].text)
	})
}

// Lookup resolves a shortcode without colons, e.g. "wink".
func Lookup(shortcode string) (glyph, name string, ok bool) {
	e, found := shortcodes.Get(shortcode)
	if !found || e == nil {
		return "", "", false
	}
	return string(e.Unicode), e.Name, true
}

// Expand rewrites every Text inline of doc in place.
func Expand(doc *document.Document) {
	x := &expander{caser: cases.Title(language.English)}
	document.WalkInlines(doc, x.expandInlines)
}

type expander struct {
	caser cases.Caser
}

func (x *expander) expandInlines(inlines []document.Inline) []document.Inline {
	changed := false
	out := make([]document.Inline, 0, len(inlines))
	for _, in := range inlines {
		t, ok := in.(*document.Text)
		if !ok {
			out = append(out, in)
			continue
		}
		parts := x.expandText(t.Value)
		if len(parts) == 1 {
			if same, ok := parts[0].(*document.Text); ok && same.Value == t.Value {
				out = append(out, in)
				continue
			}
		}
		changed = true
		out = append(out, parts...)
	}
	if !changed {
		return inlines
	}
	return out
}

// expandText splits value into text runs and glyphs.
func (x *expander) expandText(value string) []document.Inline {
	var out []document.Inline
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			out = append(out, &document.Text{Value: run.String()})
			run.Reset()
		}
	}

	for i := 0; i < len(value); {
		c := value[i]
		if c == ':' && (i == 0 || !isWordByte(value[i-1])) {
			if end := shortcodeEnd(value, i); end > 0 && (end+1 == len(value) || !isWordByte(value[end+1])) {
				code := value[i+1 : end]
				if glyph, name, ok := Lookup(code); ok {
					flush()
					out = append(out, &document.EmojiGlyph{Token: value[i : end+1], Glyph: glyph, Name: x.caser.String(name)})
					i = end + 1
					continue
				}
			}
		}
		if c == ':' || c == ';' || c == '<' {
			if e, ok := matchEmoticon(value, i); ok {
				flush()
				out = append(out, &document.EmojiGlyph{Token: e.text, Glyph: e.glyph, Name: x.caser.String(e.name)})
				i += len(e.text)
				continue
			}
		}
		run.WriteByte(c)
		i++
	}
	flush()
	return out
}

// shortcodeEnd returns the index of the closing colon of a `:name:` token
// starting at start, or -1.
func shortcodeEnd(s string, start int) int {
	for j := start + 1; j < len(s); j++ {
		c := s[j]
		switch {
		case c == ':':
			if j == start+1 {
				return -1
			}
			return j
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '+', c == '-':
		default:
			return -1
		}
	}
	return -1
}

func matchEmoticon(s string, i int) (emoticon, bool) {
	if i > 0 && !isSpace(s[i-1]) {
		return emoticon{}, false
	}
	for _, e := range emoticons {
		if !strings.HasPrefix(s[i:], e.text) {
			continue
		}
		end := i + len(e.text)
		if end == len(s) || isSpace(s[end]) || strings.IndexByte(".,!?", s[end]) >= 0 {
			return e, true
		}
	}
	return emoticon{}, false
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
