package document

// WalkInlines calls fn for every inline container slice in the document, depth
// first. fn may return a replacement slice; it is not called for the children
// of InlineCode, CodeBlock or EmbedDirective, which hold no inlines, nor for
// the label of an autolink.
func WalkInlines(d *Document, fn func([]Inline) []Inline) {
	if d == nil {
		return
	}
	walkBlocks(d.Blocks, fn)
}

func walkBlocks(blocks []Block, fn func([]Inline) []Inline) {
	for _, b := range blocks {
		switch n := b.(type) {
		case *Heading:
			n.Inlines = walkInlineSlice(n.Inlines, fn)
		case *Paragraph:
			n.Inlines = walkInlineSlice(n.Inlines, fn)
		case *List:
			for _, item := range n.Items {
				walkBlocks(item.Blocks, fn)
			}
		case *ListItem:
			walkBlocks(n.Blocks, fn)
		case *Blockquote:
			walkBlocks(n.Blocks, fn)
		case *Table:
			for i := range n.Header {
				n.Header[i].Inlines = walkInlineSlice(n.Header[i].Inlines, fn)
			}
			for _, row := range n.Rows {
				for i := range row {
					row[i].Inlines = walkInlineSlice(row[i].Inlines, fn)
				}
			}
		}
	}
}

func walkInlineSlice(inlines []Inline, fn func([]Inline) []Inline) []Inline {
	for _, in := range inlines {
		switch n := in.(type) {
		case *Emphasis:
			n.Children = walkInlineSlice(n.Children, fn)
		case *Strong:
			n.Children = walkInlineSlice(n.Children, fn)
		case *Strikethrough:
			n.Children = walkInlineSlice(n.Children, fn)
		case *Link:
			if !n.Autolink {
				n.Children = walkInlineSlice(n.Children, fn)
			}
		}
	}
	return fn(inlines)
}

// PlainText concatenates the visible text of inlines, used for image alt text
// and accessible labels.
func PlainText(inlines []Inline) string {
	var out []byte
	var collect func([]Inline)
	collect = func(list []Inline) {
		for _, in := range list {
			switch n := in.(type) {
			case *Text:
				out = append(out, n.Value...)
			case *InlineCode:
				out = append(out, n.Value...)
			case *EmojiGlyph:
				out = append(out, n.Glyph...)
			case *Emphasis:
				collect(n.Children)
			case *Strong:
				collect(n.Children)
			case *Strikethrough:
				collect(n.Children)
			case *Link:
				collect(n.Children)
			case *Image:
				out = append(out, n.Alt...)
			case *LineBreak:
				out = append(out, '\n')
			}
		}
	}
	collect(inlines)
	return string(out)
}

// Embeds returns every EmbedDirective in document order.
func Embeds(d *Document) []*EmbedDirective {
	if d == nil {
		return nil
	}
	var out []*EmbedDirective
	var visit func([]Block)
	visit = func(blocks []Block) {
		for _, b := range blocks {
			switch n := b.(type) {
			case *EmbedDirective:
				out = append(out, n)
			case *List:
				for _, item := range n.Items {
					visit(item.Blocks)
				}
			case *ListItem:
				visit(n.Blocks)
			case *Blockquote:
				visit(n.Blocks)
			}
		}
	}
	visit(d.Blocks)
	return out
}
