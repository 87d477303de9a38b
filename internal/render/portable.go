package render

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/mdport/internal/document"
)

// portableStrategy emits plain semantic HTML with no classes, so the result
// looks reasonable wherever it is pasted.
type portableStrategy struct {
	embed EmbedProvider
}

func (s *portableStrategy) Heading(h *document.Heading) *html.Node {
	return element(headingAtom(h.Level))
}

func (s *portableStrategy) Paragraph() *html.Node { return element(atom.P) }

func (s *portableStrategy) List(l *document.List, policy document.RenderPolicy) *html.Node {
	var attrs []html.Attribute
	a := atom.Ul
	if l.Ordered {
		a = atom.Ol
		if l.Start != 1 {
			attrs = append(attrs, attr("start", strconv.Itoa(l.Start)))
		}
	}
	if policy.SuppressListMarkers {
		attrs = append(attrs, attr("style", SuppressedListStyle))
	}
	return element(a, attrs...)
}

func (s *portableStrategy) ListItem(item *document.ListItem) *html.Node {
	li := element(atom.Li)
	if item.Task != nil {
		li.AppendChild(checkbox(*item.Task))
		appendText(li, " ")
	}
	return li
}

func (s *portableStrategy) Blockquote() *html.Node { return element(atom.Blockquote) }

func (s *portableStrategy) Table(*document.Table) *html.Node { return element(atom.Table) }

func (s *portableStrategy) TableSection(header bool) *html.Node {
	if header {
		return element(atom.Thead)
	}
	return element(atom.Tbody)
}

func (s *portableStrategy) TableRow() *html.Node { return element(atom.Tr) }

func (s *portableStrategy) TableCell(header bool, align document.Alignment) *html.Node {
	a := atom.Td
	if header {
		a = atom.Th
	}
	if align == document.AlignNone {
		return element(a)
	}
	return element(a, attr("align", align.String()))
}

func (s *portableStrategy) CodeBlock(c *document.CodeBlock) *html.Node {
	pre := element(atom.Pre)
	code := element(atom.Code)
	if c.Language != "" {
		code.Attr = append(code.Attr, attr("class", "language-"+c.Language))
	}
	appendText(code, c.Text)
	pre.AppendChild(code)
	return pre
}

func (s *portableStrategy) HorizontalRule() *html.Node { return element(atom.Hr) }

func (s *portableStrategy) Embed(e *document.EmbedDirective) *html.Node {
	return s.embed.portableFrame(e)
}

func (s *portableStrategy) Emphasis() *html.Node      { return element(atom.Em) }
func (s *portableStrategy) Strong() *html.Node        { return element(atom.Strong) }
func (s *portableStrategy) Strikethrough() *html.Node { return element(atom.Del) }

func (s *portableStrategy) Link(l *document.Link, policy document.RenderPolicy) *html.Node {
	return element(atom.A, linkAttrs(l, policy)...)
}

func (s *portableStrategy) Image(i *document.Image) *html.Node {
	attrs := []html.Attribute{attr("src", i.Src), attr("alt", i.Alt)}
	if i.Title != "" {
		attrs = append(attrs, attr("title", i.Title))
	}
	return element(atom.Img, attrs...)
}

func (s *portableStrategy) InlineCode(value string) *html.Node {
	code := element(atom.Code)
	appendText(code, value)
	return code
}

// Emoji renders the bare glyph; the pasted text stays readable in plain-text
// contexts.
func (s *portableStrategy) Emoji(g *document.EmojiGlyph) *html.Node {
	return textNode(g.Glyph)
}

func (s *portableStrategy) LineBreak() *html.Node { return element(atom.Br) }
