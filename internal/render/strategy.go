package render

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/mdport/internal/document"
)

// Strategy builds the element for each node kind. The walker appends children
// to the returned containers, so container constructors return empty elements.
//
// Link and Image may return nil: the walker then renders the link's children,
// or the image's alt text, in place.
type Strategy interface {
	Heading(h *document.Heading) *html.Node
	Paragraph() *html.Node
	List(l *document.List, policy document.RenderPolicy) *html.Node
	// ListItem returns the item container, already holding a task checkbox
	// when the item is a task.
	ListItem(item *document.ListItem) *html.Node
	Blockquote() *html.Node
	Table(t *document.Table) *html.Node
	TableSection(header bool) *html.Node
	TableRow() *html.Node
	TableCell(header bool, align document.Alignment) *html.Node
	CodeBlock(c *document.CodeBlock) *html.Node
	HorizontalRule() *html.Node
	Embed(e *document.EmbedDirective) *html.Node

	Emphasis() *html.Node
	Strong() *html.Node
	Strikethrough() *html.Node
	Link(l *document.Link, policy document.RenderPolicy) *html.Node
	Image(i *document.Image) *html.Node
	InlineCode(value string) *html.Node
	Emoji(g *document.EmojiGlyph) *html.Node
	LineBreak() *html.Node
}

// SuppressedListStyle is the inline style applied to lists when list markers
// are suppressed.
const SuppressedListStyle = "list-style: none; margin-left: 0"

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func headingAtom(level int) atom.Atom {
	switch {
	case level < 1:
		level = 1
	case level > len(headingAtoms):
		level = len(headingAtoms)
	}
	return headingAtoms[level-1]
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// appendText appends s to parent, merging with a trailing text node.
func appendText(parent *html.Node, s string) {
	if s == "" {
		return
	}
	if last := parent.LastChild; last != nil && last.Type == html.TextNode {
		last.Data += s
		return
	}
	parent.AppendChild(textNode(s))
}

func checkbox(checked bool, extra ...html.Attribute) *html.Node {
	attrs := append([]html.Attribute{attr("type", "checkbox")}, extra...)
	attrs = append(attrs, attr("disabled", ""))
	if checked {
		attrs = append(attrs, attr("checked", ""))
	}
	return element(atom.Input, attrs...)
}

func linkAttrs(l *document.Link, policy document.RenderPolicy, extra ...html.Attribute) []html.Attribute {
	attrs := append([]html.Attribute{}, extra...)
	attrs = append(attrs, attr("href", l.Href))
	if l.Title != "" {
		attrs = append(attrs, attr("title", l.Title))
	}
	if policy.OpenLinksInNewTab {
		attrs = append(attrs, attr("target", "_blank"), attr("rel", "noopener noreferrer"))
	}
	return attrs
}
