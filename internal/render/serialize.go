package render

import (
	"strings"

	"golang.org/x/net/html"
)

// Serialize renders a tree to a string. For a fragment root (DocumentNode)
// only the children are written, with no doctype or wrapper.
func Serialize(root *html.Node) (string, error) {
	if root == nil {
		return "", nil
	}
	var b strings.Builder
	if root.Type != html.DocumentNode {
		if err := html.Render(&b, root); err != nil {
			return "", err
		}
		return b.String(), nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
