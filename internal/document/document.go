// Package document defines the tree produced by the markdown parser and
// consumed by the renderers.
//
// Block and Inline are closed sets: only the types in this package implement
// them, so renderers can switch over every variant explicitly.
package document

// Document is the root of a parsed text. A zero Document is empty.
type Document struct {
	Blocks []Block
}

// IsEmpty reports whether the document has no blocks.
func (d *Document) IsEmpty() bool {
	return d == nil || len(d.Blocks) == 0
}

// Block is a block-level node.
type Block interface {
	block()
}

// Inline is an inline node.
type Inline interface {
	inline()
}

// Heading is an ATX or setext heading. Level is 1-6 as written in the source.
type Heading struct {
	Level   int
	Inlines []Inline
}

type Paragraph struct {
	Inlines []Inline
}

// List is a bullet or ordered list. Start is the first ordinal of an ordered list.
// Tight lists render their paragraphs without paragraph wrappers.
type List struct {
	Ordered bool
	Start   int
	Tight   bool
	Items   []*ListItem
}

// ListItem holds the blocks of one list entry. Task is non-nil for GFM task
// items and points to the checked state.
type ListItem struct {
	Task   *bool
	Blocks []Block
}

type Blockquote struct {
	Blocks []Block
}

// Alignment is a table column alignment.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the CSS text-align value, or "" for AlignNone.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return ""
	}
}

// Table is a GFM table. Header and every row hold one cell per column.
type Table struct {
	Alignments []Alignment
	Header     []TableCell
	Rows       [][]TableCell
}

type TableCell struct {
	Inlines []Inline
}

// CodeBlock is a fenced or indented code block. Text is kept verbatim.
type CodeBlock struct {
	Language string
	Text     string
}

type HorizontalRule struct{}

// EmbedDirective is a recognized `::name[label]{#id}` leaf directive.
// ID is never empty.
type EmbedDirective struct {
	Label string
	ID    string
}

func (*Heading) block()        {}
func (*Paragraph) block()      {}
func (*List) block()           {}
func (*ListItem) block()       {}
func (*Blockquote) block()     {}
func (*Table) block()          {}
func (*CodeBlock) block()      {}
func (*HorizontalRule) block() {}
func (*EmbedDirective) block() {}

type Text struct {
	Value string
}

type Emphasis struct {
	Children []Inline
}

type Strong struct {
	Children []Inline
}

type Strikethrough struct {
	Children []Inline
}

type Link struct {
	Href     string
	Title    string
	Children []Inline
	// Autolink marks a bare URL or address whose label mirrors Href.
	Autolink bool
}

type Image struct {
	Src   string
	Title string
	Alt   string
}

type InlineCode struct {
	Value string
}

// EmojiGlyph is an expanded `:shortcode:` or emoticon. Token is the source
// text, Name the human readable name of the glyph.
type EmojiGlyph struct {
	Token string
	Glyph string
	Name  string
}

// LineBreak is a hard line break.
type LineBreak struct{}

func (*Text) inline()          {}
func (*Emphasis) inline()      {}
func (*Strong) inline()        {}
func (*Strikethrough) inline() {}
func (*Link) inline()          {}
func (*Image) inline()         {}
func (*InlineCode) inline()    {}
func (*EmojiGlyph) inline()    {}
func (*LineBreak) inline()     {}
