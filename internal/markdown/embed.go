package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// KindEmbed is the goldmark node kind of a recognized embed directive.
var KindEmbed = gmast.NewNodeKind("Embed")

var _ gmast.Node = (*Embed)(nil)

// Embed is a leaf directive that matched the configured embed name and
// carried a non-empty id.
type Embed struct {
	gmast.BaseBlock
	Label string
	ID    string
}

// Kind implements ast.Node.
func (n *Embed) Kind() gmast.NodeKind { return KindEmbed }

// IsRaw implements ast.Node.
func (n *Embed) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *Embed) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{"Label": n.Label, "ID": n.ID}, nil)
}

// embedTransformer rewrites leaf directives after parsing. Directives with the
// embed name and an id become Embed nodes; everything else becomes a paragraph
// holding the literal directive line.
type embedTransformer struct {
	name string
}

// NewEmbedTransformer returns the AST transformer for directive name.
func NewEmbedTransformer(name string) parser.ASTTransformer {
	return &embedTransformer{name: name}
}

func (t *embedTransformer) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	var directives []*LeafDirective
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if d, ok := n.(*LeafDirective); ok {
			directives = append(directives, d)
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	for _, d := range directives {
		parent := d.Parent()
		if parent == nil {
			continue
		}
		parent.ReplaceChild(parent, d, t.rewrite(d))
	}
}

func (t *embedTransformer) rewrite(d *LeafDirective) gmast.Node {
	if d.Name == t.name && d.ID() != "" {
		return &Embed{Label: d.Label, ID: d.ID()}
	}
	return literalParagraph(d.Literal)
}

func literalParagraph(literal string) gmast.Node {
	p := gmast.NewParagraph()
	p.AppendChild(p, gmast.NewString([]byte(literal)))
	return p
}
