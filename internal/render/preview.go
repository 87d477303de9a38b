package render

import (
	"strconv"

	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/mdport/internal/document"
)

// HeadingTier returns the Preview size tier for a heading level. Levels below
// 1 are treated as 1; everything from 3 down shares the "md" tier.
func HeadingTier(level int) string {
	switch {
	case level <= 1:
		return "xl"
	case level == 2:
		return "lg"
	default:
		return "md"
	}
}

// previewStrategy emits app-styled markup. Classes are stable: the stylesheet
// written by Standalone targets them.
type previewStrategy struct {
	embed EmbedProvider
}

func class(v string) html.Attribute { return attr("class", v) }

func (s *previewStrategy) Heading(h *document.Heading) *html.Node {
	return element(headingAtom(h.Level), class("md-heading md-heading-"+HeadingTier(h.Level)))
}

func (s *previewStrategy) Paragraph() *html.Node { return element(atom.P, class("md-text")) }

func (s *previewStrategy) List(l *document.List, policy document.RenderPolicy) *html.Node {
	a, cls := atom.Ul, "md-list"
	var attrs []html.Attribute
	if l.Ordered {
		a, cls = atom.Ol, "md-list md-list-ordered"
		if l.Start != 1 {
			attrs = append(attrs, attr("start", strconv.Itoa(l.Start)))
		}
	}
	if policy.SuppressListMarkers {
		cls += " md-list-plain"
		attrs = append(attrs, attr("style", SuppressedListStyle))
	}
	return element(a, append([]html.Attribute{class(cls)}, attrs...)...)
}

func (s *previewStrategy) ListItem(item *document.ListItem) *html.Node {
	if item.Task == nil {
		return element(atom.Li, class("md-list-item"))
	}
	li := element(atom.Li, class("md-list-item md-task"))
	li.AppendChild(checkbox(*item.Task, class("md-checkbox")))
	appendText(li, " ")
	return li
}

func (s *previewStrategy) Blockquote() *html.Node {
	return element(atom.Blockquote, class("md-quote"))
}

func (s *previewStrategy) Table(*document.Table) *html.Node {
	return element(atom.Table, class("md-table"))
}

func (s *previewStrategy) TableSection(header bool) *html.Node {
	if header {
		return element(atom.Thead, class("md-table-head"))
	}
	return element(atom.Tbody, class("md-table-body"))
}

func (s *previewStrategy) TableRow() *html.Node { return element(atom.Tr, class("md-table-row")) }

func (s *previewStrategy) TableCell(header bool, align document.Alignment) *html.Node {
	a, cls := atom.Td, "md-table-cell"
	if header {
		a, cls = atom.Th, "md-table-cell md-table-header"
	}
	if align != document.AlignNone {
		cls += " md-align-" + align.String()
	}
	return element(a, class(cls))
}

func (s *previewStrategy) CodeBlock(c *document.CodeBlock) *html.Node {
	pre := element(atom.Pre, class("md-code-block chroma"))
	if c.Language != "" {
		pre.Attr = append(pre.Attr, attr("data-language", c.Language))
	}
	code := element(atom.Code, class("md-code"))
	highlightInto(code, c.Language, c.Text)
	pre.AppendChild(code)
	return pre
}

func (s *previewStrategy) HorizontalRule() *html.Node { return element(atom.Hr, class("md-divider")) }

func (s *previewStrategy) Embed(e *document.EmbedDirective) *html.Node {
	return s.embed.previewPlaceholder(e)
}

func (s *previewStrategy) Emphasis() *html.Node      { return element(atom.Em, class("md-em")) }
func (s *previewStrategy) Strong() *html.Node        { return element(atom.Strong, class("md-strong")) }
func (s *previewStrategy) Strikethrough() *html.Node { return element(atom.Del, class("md-strike")) }

// Link drops links whose destination is a script or data URL; their text is
// still shown.
func (s *previewStrategy) Link(l *document.Link, policy document.RenderPolicy) *html.Node {
	if gmhtml.IsDangerousURL([]byte(l.Href)) {
		return nil
	}
	return element(atom.A, linkAttrs(l, policy, class("md-link"))...)
}

func (s *previewStrategy) Image(i *document.Image) *html.Node {
	if gmhtml.IsDangerousURL([]byte(i.Src)) {
		return nil
	}
	attrs := []html.Attribute{class("md-image"), attr("src", i.Src), attr("alt", i.Alt)}
	if i.Title != "" {
		attrs = append(attrs, attr("title", i.Title))
	}
	attrs = append(attrs, attr("loading", "lazy"))
	return element(atom.Img, attrs...)
}

func (s *previewStrategy) InlineCode(value string) *html.Node {
	code := element(atom.Code, class("md-code md-code-inline"))
	appendText(code, value)
	return code
}

func (s *previewStrategy) Emoji(g *document.EmojiGlyph) *html.Node {
	span := element(atom.Span,
		class("md-emoji"),
		attr("role", "img"),
		attr("aria-label", g.Name),
		attr("title", g.Token),
	)
	appendText(span, g.Glyph)
	return span
}

func (s *previewStrategy) LineBreak() *html.Node { return element(atom.Br) }
