package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_IsEmpty(t *testing.T) {
	var nilDoc *Document
	assert.True(t, nilDoc.IsEmpty())
	assert.True(t, (&Document{}).IsEmpty())
	assert.False(t, (&Document{Blocks: []Block{&HorizontalRule{}}}).IsEmpty())
}

func TestDefaultRenderPolicy(t *testing.T) {
	assert.Equal(t, RenderPolicy{SuppressListMarkers: true, OpenLinksInNewTab: true}, DefaultRenderPolicy(true))
	assert.Equal(t, RenderPolicy{OpenLinksInNewTab: true}, DefaultRenderPolicy(false))
}

func TestAlignment_String(t *testing.T) {
	assert.Equal(t, "", AlignNone.String())
	assert.Equal(t, "left", AlignLeft.String())
	assert.Equal(t, "center", AlignCenter.String())
	assert.Equal(t, "right", AlignRight.String())
}

func TestWalkInlines_VisitsEveryContainer(t *testing.T) {
	doc := &Document{Blocks: []Block{
		&Heading{Level: 1, Inlines: []Inline{&Text{Value: "h"}}},
		&Blockquote{Blocks: []Block{
			&Paragraph{Inlines: []Inline{&Emphasis{Children: []Inline{&Text{Value: "e"}}}}},
		}},
		&List{Items: []*ListItem{{Blocks: []Block{&Paragraph{Inlines: []Inline{&Text{Value: "li"}}}}}}},
		&Table{
			Header: []TableCell{{Inlines: []Inline{&Text{Value: "th"}}}},
			Rows:   [][]TableCell{{{Inlines: []Inline{&Text{Value: "td"}}}}},
		},
		&CodeBlock{Text: "code"},
	}}

	var seen []string
	WalkInlines(doc, func(in []Inline) []Inline {
		for _, i := range in {
			if t, ok := i.(*Text); ok {
				seen = append(seen, t.Value)
			}
		}
		return in
	})
	assert.Equal(t, []string{"h", "e", "li", "th", "td"}, seen)
}

func TestWalkInlines_Replaces(t *testing.T) {
	p := &Paragraph{Inlines: []Inline{&Text{Value: "a"}}}
	doc := &Document{Blocks: []Block{p}}

	WalkInlines(doc, func(in []Inline) []Inline {
		return append(in, &LineBreak{})
	})
	require.Len(t, p.Inlines, 2)
	assert.IsType(t, &LineBreak{}, p.Inlines[1])

	WalkInlines(nil, func(in []Inline) []Inline { t.Fatal("called for nil document"); return in })
}

func TestWalkInlines_SkipsAutolinkLabel(t *testing.T) {
	auto := &Link{Href: "https://a.example", Autolink: true, Children: []Inline{&Text{Value: "https://a.example"}}}
	plain := &Link{Href: "https://b.example", Children: []Inline{&Text{Value: "b"}}}
	doc := &Document{Blocks: []Block{&Paragraph{Inlines: []Inline{auto, plain}}}}

	var seen []string
	WalkInlines(doc, func(in []Inline) []Inline {
		for _, i := range in {
			if t, ok := i.(*Text); ok {
				seen = append(seen, t.Value)
			}
		}
		return in
	})
	assert.Equal(t, []string{"b"}, seen)
}

func TestPlainText(t *testing.T) {
	got := PlainText([]Inline{
		&Text{Value: "a "},
		&Strong{Children: []Inline{&Text{Value: "b"}}},
		&InlineCode{Value: " c"},
		&EmojiGlyph{Token: ":x:", Glyph: "❌"},
		&Link{Href: "#", Children: []Inline{&Text{Value: " d"}}},
		&LineBreak{},
		&Image{Alt: "e"},
	})
	assert.Equal(t, "a b c❌ d\ne", got)
}

func TestEmbeds(t *testing.T) {
	first := &EmbedDirective{ID: "1"}
	nested := &EmbedDirective{ID: "2"}
	doc := &Document{Blocks: []Block{
		first,
		&Blockquote{Blocks: []Block{&List{Items: []*ListItem{{Blocks: []Block{nested}}}}}},
	}}
	assert.Equal(t, []*EmbedDirective{first, nested}, Embeds(doc))
	assert.Nil(t, Embeds(nil))
	assert.Empty(t, Embeds(&Document{}))
}

func TestClone(t *testing.T) {
	checked := true
	orig := &Document{Blocks: []Block{
		&Heading{Level: 2, Inlines: []Inline{&Text{Value: "h"}, &EmojiGlyph{Token: ":wink:", Glyph: "x", Name: "Wink"}}},
		&Paragraph{Inlines: []Inline{
			&Strong{Children: []Inline{&Emphasis{Children: []Inline{&Text{Value: "e"}}}}},
			&Strikethrough{Children: []Inline{&InlineCode{Value: "c"}}},
			&Link{Href: "https://a.example", Title: "t", Autolink: true, Children: []Inline{&Text{Value: "https://a.example"}}},
			&Image{Src: "i.png", Alt: "alt"},
			&LineBreak{},
		}},
		&List{Ordered: true, Start: 3, Tight: true, Items: []*ListItem{
			{Task: &checked, Blocks: []Block{&Paragraph{Inlines: []Inline{&Text{Value: "li"}}}}},
		}},
		&Blockquote{Blocks: []Block{&CodeBlock{Language: "go", Text: "x\n"}}},
		&Table{
			Alignments: []Alignment{AlignRight},
			Header:     []TableCell{{Inlines: []Inline{&Text{Value: "th"}}}},
			Rows:       [][]TableCell{{{Inlines: []Inline{&Text{Value: "td"}}}}},
		},
		&HorizontalRule{},
		&EmbedDirective{Label: "v", ID: "abc"},
	}}

	c := Clone(orig)
	require.Equal(t, orig, c)
	assert.NotSame(t, orig, c)

	c.Blocks[0].(*Heading).Inlines[0].(*Text).Value = "changed"
	*c.Blocks[2].(*List).Items[0].Task = false
	c.Blocks[4].(*Table).Rows[0][0].Inlines = nil
	c.Blocks[6].(*EmbedDirective).ID = "other"
	c.Blocks = append(c.Blocks[:1], c.Blocks[2:]...)

	assert.Equal(t, "h", orig.Blocks[0].(*Heading).Inlines[0].(*Text).Value)
	assert.True(t, *orig.Blocks[2].(*List).Items[0].Task)
	assert.Len(t, orig.Blocks[4].(*Table).Rows[0][0].Inlines, 1)
	assert.Equal(t, "abc", orig.Blocks[6].(*EmbedDirective).ID)
	assert.Len(t, orig.Blocks, 7)

	assert.Nil(t, Clone(nil))
}
