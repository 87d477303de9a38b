// Package render turns a document into one of two HTML trees.
//
// Both targets share one traversal (walker) and differ only in the Strategy
// that builds each element:
//
//   - Preview: app-styled widgets for the live view. Embeds are thumbnail
//     placeholders that load nothing from the provider until played.
//   - Portable: minimal semantic HTML meant to be serialized, sanitized and
//     pasted elsewhere.
//
// Rendering is deterministic: the same document, policy and target always
// produce the same tree and the same serialized bytes.
package render

import (
	"fmt"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mdport/internal/document"
	"git.home.luguber.info/inful/mdport/internal/foundation/normalization"
)

// Target selects the output strategy.
type Target int

const (
	Preview Target = iota
	Portable
)

func (t Target) String() string {
	switch t {
	case Preview:
		return "preview"
	case Portable:
		return "portable"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

var targetNormalizer = normalization.New("render target", map[string]Target{
	"preview":  Preview,
	"portable": Portable,
	"html":     Portable,
}, Preview)

// ParseTarget parses a target name case-insensitively. "" selects Preview.
func ParseTarget(s string) (Target, error) {
	return targetNormalizer.Parse(s)
}

// Options configures a Renderer.
type Options struct {
	Embed EmbedProvider
}

// Renderer renders documents with fixed options. It holds no mutable state.
type Renderer struct {
	opts Options
}

// New returns a Renderer; zero-valued options fall back to defaults.
func New(opts Options) *Renderer {
	if opts.Embed.PlayerURL == "" || opts.Embed.ThumbnailURL == "" {
		opts.Embed = DefaultEmbedProvider()
	}
	return &Renderer{opts: opts}
}

var defaultRenderer = New(Options{})

// Render renders doc with the default renderer.
func Render(doc *document.Document, policy document.RenderPolicy, target Target) *html.Node {
	return defaultRenderer.Render(doc, policy, target)
}

// Render returns a fragment root (an html.DocumentNode) whose children are the
// rendered blocks. An empty document yields a root without children.
func (r *Renderer) Render(doc *document.Document, policy document.RenderPolicy, target Target) *html.Node {
	return r.RenderWith(doc, policy, r.Strategy(target))
}

// RenderWith renders doc using an arbitrary strategy.
func (r *Renderer) RenderWith(doc *document.Document, policy document.RenderPolicy, s Strategy) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	if doc.IsEmpty() {
		return root
	}
	w := &walker{s: s, policy: policy}
	w.blocks(root, doc.Blocks, false)
	return root
}

// Strategy returns the built-in strategy for target.
func (r *Renderer) Strategy(target Target) Strategy {
	if target == Portable {
		return &portableStrategy{embed: r.opts.Embed}
	}
	return &previewStrategy{embed: r.opts.Embed}
}

// walker is the traversal shared by every strategy.
type walker struct {
	s      Strategy
	policy document.RenderPolicy
}

func (w *walker) blocks(parent *html.Node, blocks []document.Block, tight bool) {
	for i, b := range blocks {
		if i > 0 {
			appendText(parent, "\n")
		}
		w.block(parent, b, tight)
	}
}

func (w *walker) block(parent *html.Node, b document.Block, tight bool) {
	switch n := b.(type) {
	case *document.Heading:
		el := w.s.Heading(n)
		w.inlines(el, n.Inlines)
		parent.AppendChild(el)
	case *document.Paragraph:
		if tight {
			w.inlines(parent, n.Inlines)
			return
		}
		el := w.s.Paragraph()
		w.inlines(el, n.Inlines)
		parent.AppendChild(el)
	case *document.List:
		el := w.s.List(n, w.policy)
		appendText(el, "\n")
		for _, item := range n.Items {
			el.AppendChild(w.listItem(item, n.Tight))
			appendText(el, "\n")
		}
		parent.AppendChild(el)
	case *document.ListItem:
		parent.AppendChild(w.listItem(n, false))
	case *document.Blockquote:
		el := w.s.Blockquote()
		appendText(el, "\n")
		w.blocks(el, n.Blocks, false)
		appendText(el, "\n")
		parent.AppendChild(el)
	case *document.Table:
		parent.AppendChild(w.table(n))
	case *document.CodeBlock:
		parent.AppendChild(w.s.CodeBlock(n))
	case *document.HorizontalRule:
		parent.AppendChild(w.s.HorizontalRule())
	case *document.EmbedDirective:
		parent.AppendChild(w.s.Embed(n))
	}
}

func (w *walker) listItem(item *document.ListItem, tight bool) *html.Node {
	el := w.s.ListItem(item)
	w.blocks(el, item.Blocks, tight)
	return el
}

func (w *walker) table(t *document.Table) *html.Node {
	el := w.s.Table(t)
	appendText(el, "\n")

	head := w.s.TableSection(true)
	appendText(head, "\n")
	head.AppendChild(w.tableRow(t, t.Header, true))
	appendText(head, "\n")
	el.AppendChild(head)
	appendText(el, "\n")

	if len(t.Rows) > 0 {
		body := w.s.TableSection(false)
		appendText(body, "\n")
		for _, row := range t.Rows {
			body.AppendChild(w.tableRow(t, row, false))
			appendText(body, "\n")
		}
		el.AppendChild(body)
		appendText(el, "\n")
	}
	return el
}

func (w *walker) tableRow(t *document.Table, cells []document.TableCell, header bool) *html.Node {
	tr := w.s.TableRow()
	appendText(tr, "\n")
	for i, cell := range cells {
		align := document.AlignNone
		if i < len(t.Alignments) {
			align = t.Alignments[i]
		}
		td := w.s.TableCell(header, align)
		w.inlines(td, cell.Inlines)
		tr.AppendChild(td)
		appendText(tr, "\n")
	}
	return tr
}

func (w *walker) inlines(parent *html.Node, inlines []document.Inline) {
	for _, in := range inlines {
		w.inline(parent, in)
	}
}

func (w *walker) inline(parent *html.Node, in document.Inline) {
	switch n := in.(type) {
	case *document.Text:
		appendText(parent, n.Value)
	case *document.Emphasis:
		el := w.s.Emphasis()
		w.inlines(el, n.Children)
		parent.AppendChild(el)
	case *document.Strong:
		el := w.s.Strong()
		w.inlines(el, n.Children)
		parent.AppendChild(el)
	case *document.Strikethrough:
		el := w.s.Strikethrough()
		w.inlines(el, n.Children)
		parent.AppendChild(el)
	case *document.Link:
		el := w.s.Link(n, w.policy)
		if el == nil {
			w.inlines(parent, n.Children)
			return
		}
		w.inlines(el, n.Children)
		parent.AppendChild(el)
	case *document.Image:
		if el := w.s.Image(n); el != nil {
			parent.AppendChild(el)
			return
		}
		appendText(parent, n.Alt)
	case *document.InlineCode:
		parent.AppendChild(w.s.InlineCode(n.Value))
	case *document.EmojiGlyph:
		parent.AppendChild(w.s.Emoji(n))
	case *document.LineBreak:
		parent.AppendChild(w.s.LineBreak())
		appendText(parent, "\n")
	}
}
