package render

import (
	_ "embed"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed preview.css
var previewCSS string

// DefaultCodeStyle is the chroma style used when none is configured.
const DefaultCodeStyle = "github"

// Stylesheet returns the Preview stylesheet followed by the CSS for the named
// chroma style. Unknown styles fall back to chroma's default.
func Stylesheet(codeStyle string) (string, error) {
	var b strings.Builder
	b.WriteString(previewCSS)
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&b, styles.Get(codeStyle)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Standalone wraps a rendered Preview tree in a complete HTML page carrying the
// stylesheet. The tree is not modified.
func Standalone(tree *xhtml.Node, title, codeStyle string) (string, error) {
	css, err := Stylesheet(codeStyle)
	if err != nil {
		return "", err
	}

	page := &xhtml.Node{Type: xhtml.DocumentNode}
	page.AppendChild(&xhtml.Node{Type: xhtml.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1")))
	titleEl := element(atom.Title)
	titleEl.AppendChild(textNode(title))
	head.AppendChild(titleEl)
	style := element(atom.Style)
	style.AppendChild(textNode(css))
	head.AppendChild(style)
	root.AppendChild(head)

	body := element(atom.Body)
	container := element(atom.Main, class("md-preview"))
	switch {
	case tree == nil:
	case tree.Type == xhtml.DocumentNode:
		for c := tree.FirstChild; c != nil; c = c.NextSibling {
			container.AppendChild(cloneNode(c))
		}
	default:
		container.AppendChild(cloneNode(tree))
	}
	body.AppendChild(container)
	root.AppendChild(body)
	page.AppendChild(root)

	var b strings.Builder
	if err := xhtml.Render(&b, page); err != nil {
		return "", err
	}
	return b.String(), nil
}

// CloneTree returns a deep copy of n, detached from any parent.
func CloneTree(n *xhtml.Node) *xhtml.Node {
	if n == nil {
		return nil
	}
	return cloneNode(n)
}

func cloneNode(n *xhtml.Node) *xhtml.Node {
	c := &xhtml.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]xhtml.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}
