package markdown

import (
	"regexp"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindLeafDirective is the goldmark node kind of a parsed `::name[label]{attrs}` line.
var KindLeafDirective = gmast.NewNodeKind("LeafDirective")

var _ gmast.Node = (*LeafDirective)(nil)

// LeafDirective is a single-line directive as written in the source. It only
// lives between block parsing and the embed transformer, which replaces every
// directive with an Embed node or a literal paragraph.
type LeafDirective struct {
	gmast.BaseBlock
	Name    string
	Label   string
	Attrs   map[string]string
	Literal string
}

// Kind implements ast.Node.
func (n *LeafDirective) Kind() gmast.NodeKind { return KindLeafDirective }

// IsRaw implements ast.Node; directives carry no inline content.
func (n *LeafDirective) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *LeafDirective) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{
		"Name":  n.Name,
		"Label": n.Label,
		"ID":    n.ID(),
	}, nil)
}

// ID returns the `#id` (or `id=`) attribute, or "".
func (n *LeafDirective) ID() string {
	return n.Attrs["id"]
}

var leafDirectivePattern = regexp.MustCompile(`^::([A-Za-z][A-Za-z0-9_-]*)\[([^\]\n]*)\](?:\{([^}\n]*)\})?$`)

type leafDirectiveParser struct{}

// NewLeafDirectiveParser returns a block parser recognizing leaf directives.
func NewLeafDirectiveParser() parser.BlockParser {
	return &leafDirectiveParser{}
}

func (p *leafDirectiveParser) Trigger() []byte {
	return []byte{':'}
}

func (p *leafDirectiveParser) Open(_ gmast.Node, reader text.Reader, pc parser.Context) (gmast.Node, parser.State) {
	if pc.BlockIndent() > 3 {
		return nil, parser.NoChildren
	}
	pos := pc.BlockOffset()
	if pos < 0 {
		return nil, parser.NoChildren
	}
	line, segment := reader.PeekLine()
	if pos >= len(line) {
		return nil, parser.NoChildren
	}
	rest := util.TrimRightSpace(line[pos:])
	m := leafDirectivePattern.FindSubmatch(rest)
	if m == nil {
		return nil, parser.NoChildren
	}
	node := &LeafDirective{
		Name:    string(m[1]),
		Label:   string(m[2]),
		Attrs:   parseDirectiveAttributes(string(m[3])),
		Literal: string(rest),
	}
	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (p *leafDirectiveParser) Continue(gmast.Node, text.Reader, parser.Context) parser.State {
	return parser.Close
}

func (p *leafDirectiveParser) Close(gmast.Node, text.Reader, parser.Context) {}

func (p *leafDirectiveParser) CanInterruptParagraph() bool {
	return true
}

func (p *leafDirectiveParser) CanAcceptIndentedLine() bool {
	return false
}

// parseDirectiveAttributes reads the brace body of a directive:
// `#id`, `.class`, `key`, `key=value`, `key="value"` and `key='value'`,
// separated by whitespace. Repeated classes are joined; later keys win.
func parseDirectiveAttributes(raw string) map[string]string {
	attrs := make(map[string]string)
	var classes []string
	s := strings.TrimSpace(raw)
	for s != "" {
		var token string
		token, s = nextAttributeToken(s)
		switch {
		case token == "":
		case strings.HasPrefix(token, "#"):
			attrs["id"] = token[1:]
		case strings.HasPrefix(token, "."):
			if token[1:] != "" {
				classes = append(classes, token[1:])
			}
		default:
			key, value, _ := strings.Cut(token, "=")
			attrs[key] = unquote(value)
		}
		s = strings.TrimLeft(s, " \t")
	}
	if len(classes) > 0 {
		attrs["class"] = strings.Join(classes, " ")
	}
	return attrs
}

// nextAttributeToken splits off the next whitespace separated token, keeping
// quoted values intact.
func nextAttributeToken(s string) (token, rest string) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ' ' || c == '\t':
			return s[:i], s[i:]
		}
	}
	return s, ""
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
