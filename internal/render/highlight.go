package render

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// highlightInto appends chroma-classed spans for text to code. Unknown or
// missing languages leave the text unhighlighted.
func highlightInto(code *html.Node, language, text string) {
	if language == "" {
		appendText(code, text)
		return
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		appendText(code, text)
		return
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		appendText(code, text)
		return
	}
	for tok := it(); tok != chroma.EOF; tok = it() {
		cls := tokenClass(tok.Type)
		if cls == "" {
			appendText(code, tok.Value)
			continue
		}
		span := element(atom.Span, class(cls))
		span.AppendChild(textNode(tok.Value))
		code.AppendChild(span)
	}
}

// tokenClass maps a token type to the short class used by chroma's CSS,
// falling back to the sub-category and category.
func tokenClass(t chroma.TokenType) string {
	for _, candidate := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if cls, ok := chroma.StandardTypes[candidate]; ok && cls != "" {
			return cls
		}
	}
	return ""
}
