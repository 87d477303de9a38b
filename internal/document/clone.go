package document

// Clone returns a deep copy of d. Mutating the copy never affects d.
func Clone(d *Document) *Document {
	if d == nil {
		return nil
	}
	return &Document{Blocks: cloneBlocks(d.Blocks)}
}

func cloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = cloneBlock(b)
	}
	return out
}

func cloneBlock(b Block) Block {
	switch n := b.(type) {
	case *Heading:
		return &Heading{Level: n.Level, Inlines: cloneInlines(n.Inlines)}
	case *Paragraph:
		return &Paragraph{Inlines: cloneInlines(n.Inlines)}
	case *List:
		c := &List{Ordered: n.Ordered, Start: n.Start, Tight: n.Tight}
		if n.Items != nil {
			c.Items = make([]*ListItem, len(n.Items))
			for i, item := range n.Items {
				c.Items[i] = cloneItem(item)
			}
		}
		return c
	case *ListItem:
		return cloneItem(n)
	case *Blockquote:
		return &Blockquote{Blocks: cloneBlocks(n.Blocks)}
	case *Table:
		c := &Table{
			Alignments: append([]Alignment(nil), n.Alignments...),
			Header:     cloneCells(n.Header),
		}
		if n.Rows != nil {
			c.Rows = make([][]TableCell, len(n.Rows))
			for i, row := range n.Rows {
				c.Rows[i] = cloneCells(row)
			}
		}
		return c
	case *CodeBlock:
		c := *n
		return &c
	case *HorizontalRule:
		return &HorizontalRule{}
	case *EmbedDirective:
		c := *n
		return &c
	default:
		return b
	}
}

func cloneItem(item *ListItem) *ListItem {
	if item == nil {
		return nil
	}
	c := &ListItem{Blocks: cloneBlocks(item.Blocks)}
	if item.Task != nil {
		checked := *item.Task
		c.Task = &checked
	}
	return c
}

func cloneCells(cells []TableCell) []TableCell {
	if cells == nil {
		return nil
	}
	out := make([]TableCell, len(cells))
	for i, cell := range cells {
		out[i] = TableCell{Inlines: cloneInlines(cell.Inlines)}
	}
	return out
}

func cloneInlines(inlines []Inline) []Inline {
	if inlines == nil {
		return nil
	}
	out := make([]Inline, len(inlines))
	for i, in := range inlines {
		out[i] = cloneInline(in)
	}
	return out
}

func cloneInline(in Inline) Inline {
	switch n := in.(type) {
	case *Text:
		c := *n
		return &c
	case *Emphasis:
		return &Emphasis{Children: cloneInlines(n.Children)}
	case *Strong:
		return &Strong{Children: cloneInlines(n.Children)}
	case *Strikethrough:
		return &Strikethrough{Children: cloneInlines(n.Children)}
	case *Link:
		return &Link{Href: n.Href, Title: n.Title, Children: cloneInlines(n.Children), Autolink: n.Autolink}
	case *Image:
		c := *n
		return &c
	case *InlineCode:
		c := *n
		return &c
	case *EmojiGlyph:
		c := *n
		return &c
	case *LineBreak:
		return &LineBreak{}
	default:
		return in
	}
}
