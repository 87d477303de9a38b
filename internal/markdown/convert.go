package markdown

import (
	"bytes"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/mdport/internal/document"
)

// converter maps a goldmark tree onto the document model.
type converter struct {
	source []byte
}

func (c *converter) document(root gmast.Node) *document.Document {
	return &document.Document{Blocks: c.blocks(root)}
}

func (c *converter) blocks(parent gmast.Node) []document.Block {
	var out []document.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := c.block(n); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (c *converter) block(n gmast.Node) document.Block {
	switch node := n.(type) {
	case *gmast.Heading:
		return &document.Heading{Level: node.Level, Inlines: c.inlines(node)}
	case *gmast.Paragraph:
		return &document.Paragraph{Inlines: c.inlines(node)}
	case *gmast.TextBlock:
		return &document.Paragraph{Inlines: c.inlines(node)}
	case *gmast.List:
		list := &document.List{Ordered: node.IsOrdered(), Start: node.Start, Tight: node.IsTight}
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if item, ok := child.(*gmast.ListItem); ok {
				list.Items = append(list.Items, c.listItem(item))
			}
		}
		return list
	case *gmast.Blockquote:
		return &document.Blockquote{Blocks: c.blocks(node)}
	case *gmast.FencedCodeBlock:
		return &document.CodeBlock{Language: string(node.Language(c.source)), Text: c.lines(node)}
	case *gmast.CodeBlock:
		return &document.CodeBlock{Text: c.lines(node)}
	case *gmast.ThematicBreak:
		return &document.HorizontalRule{}
	case *gmast.HTMLBlock:
		raw := c.lines(node)
		if node.HasClosure() {
			raw += string(node.ClosureLine.Value(c.source))
		}
		return literalBlock(strings.TrimRight(raw, "\n"))
	case *extast.Table:
		return c.table(node)
	case *Embed:
		return &document.EmbedDirective{Label: node.Label, ID: node.ID}
	case *LeafDirective:
		return literalBlock(node.Literal)
	default:
		if n.HasChildren() {
			return &document.Paragraph{Inlines: c.inlines(n)}
		}
		return nil
	}
}

func (c *converter) listItem(item *gmast.ListItem) *document.ListItem {
	out := &document.ListItem{}
	if first := item.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
			checked := box.IsChecked
			out.Task = &checked
		}
	}
	out.Blocks = c.blocks(item)
	return out
}

func (c *converter) table(node *extast.Table) *document.Table {
	t := &document.Table{Alignments: make([]document.Alignment, len(node.Alignments))}
	for i, a := range node.Alignments {
		t.Alignments[i] = alignment(a)
	}
	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []document.TableCell
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, document.TableCell{Inlines: c.inlines(cell)})
		}
		if _, ok := row.(*extast.TableHeader); ok {
			t.Header = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func alignment(a extast.Alignment) document.Alignment {
	switch a {
	case extast.AlignLeft:
		return document.AlignLeft
	case extast.AlignCenter:
		return document.AlignCenter
	case extast.AlignRight:
		return document.AlignRight
	default:
		return document.AlignNone
	}
}

func (c *converter) lines(n gmast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.source))
	}
	return buf.String()
}

func (c *converter) inlines(parent gmast.Node) []document.Inline {
	var out []document.Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = c.appendInline(out, n)
	}
	return out
}

func (c *converter) appendInline(out []document.Inline, n gmast.Node) []document.Inline {
	switch node := n.(type) {
	case *gmast.Text:
		out = appendText(out, string(node.Segment.Value(c.source)))
		switch {
		case node.HardLineBreak():
			out = append(out, &document.LineBreak{})
		case node.SoftLineBreak():
			out = appendText(out, "\n")
		}
		return out
	case *gmast.String:
		return appendText(out, string(node.Value))
	case *gmast.CodeSpan:
		return append(out, &document.InlineCode{Value: c.codeSpan(node)})
	case *gmast.Emphasis:
		if node.Level >= 2 {
			return append(out, &document.Strong{Children: c.inlines(node)})
		}
		return append(out, &document.Emphasis{Children: c.inlines(node)})
	case *extast.Strikethrough:
		return append(out, &document.Strikethrough{Children: c.inlines(node)})
	case *gmast.Link:
		return append(out, &document.Link{
			Href:     string(util.URLEscape(node.Destination, true)),
			Title:    string(node.Title),
			Children: c.inlines(node),
		})
	case *gmast.AutoLink:
		url := node.URL(c.source)
		if node.AutoLinkType == gmast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
			url = append([]byte("mailto:"), url...)
		}
		return append(out, &document.Link{
			Href:     string(util.URLEscape(url, false)),
			Children: []document.Inline{&document.Text{Value: string(node.Label(c.source))}},
			Autolink: true,
		})
	case *gmast.Image:
		return append(out, &document.Image{
			Src:   string(util.URLEscape(node.Destination, true)),
			Title: string(node.Title),
			Alt:   document.PlainText(c.inlines(node)),
		})
	case *gmast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			buf.Write(seg.Value(c.source))
		}
		return appendText(out, buf.String())
	case *extast.TaskCheckBox:
		return out
	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			out = c.appendInline(out, child)
		}
		return out
	}
}

// codeSpan joins the text of a code span; line endings become spaces.
func (c *converter) codeSpan(node *gmast.CodeSpan) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		var value []byte
		switch t := child.(type) {
		case *gmast.Text:
			value = t.Segment.Value(c.source)
		case *gmast.String:
			value = t.Value
		default:
			continue
		}
		if bytes.HasSuffix(value, []byte("\n")) {
			buf.Write(value[:len(value)-1])
			buf.WriteByte(' ')
			continue
		}
		buf.Write(value)
	}
	return buf.String()
}

// appendText merges adjacent text so later passes see whole runs.
func appendText(out []document.Inline, value string) []document.Inline {
	if value == "" {
		return out
	}
	if n := len(out); n > 0 {
		if last, ok := out[n-1].(*document.Text); ok {
			last.Value += value
			return out
		}
	}
	return append(out, &document.Text{Value: value})
}

func literalBlock(literal string) document.Block {
	return &document.Paragraph{Inlines: []document.Inline{&document.Text{Value: literal}}}
}
