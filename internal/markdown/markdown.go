// Package markdown builds a document.Document from extended-Markdown text.
//
// Parsing uses goldmark with GitHub-flavored extensions plus a leaf directive
// extension that turns `::youtube[label]{#id}` lines into embed nodes. Emoji
// shortcodes and emoticons are expanded after conversion. Parsing never fails:
// anything the grammar does not recognize stays literal text.
package markdown

import (
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/mdport/internal/document"
	"git.home.luguber.info/inful/mdport/internal/emoji"
	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
	"git.home.luguber.info/inful/mdport/internal/logfields"
)

// DefaultEmbedName is the directive name recognized as a video embed.
const DefaultEmbedName = "youtube"

const (
	priorityLeafDirectiveParser = 550 // after fenced code, before paragraphs
	priorityEmbedTransformer    = 100
)

// ErrParseRecoverable is logged when parsing panics and the text is kept literal.
var ErrParseRecoverable = foundationerrors.ParseError("markdown parse failed; falling back to literal text").Build()

// Options controls parsing.
type Options struct {
	// EmbedName is the directive name turned into embeds. Defaults to DefaultEmbedName.
	EmbedName string
	// DisableEmoji skips shortcode and emoticon expansion.
	DisableEmoji bool
	Logger       *slog.Logger
}

// Parser turns text into documents. A Parser is immutable and safe to reuse.
type Parser struct {
	md   goldmark.Markdown
	opts Options
}

// NewParser builds a parser for opts.
func NewParser(opts Options) *Parser {
	if opts.EmbedName == "" {
		opts.EmbedName = DefaultEmbedName
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithBlockParsers(
				util.Prioritized(NewLeafDirectiveParser(), priorityLeafDirectiveParser),
			),
			parser.WithASTTransformers(
				util.Prioritized(NewEmbedTransformer(opts.EmbedName), priorityEmbedTransformer),
			),
		),
	)
	return &Parser{md: md, opts: opts}
}

// EmbedName returns the directive name this parser turns into embeds.
func (p *Parser) EmbedName() string {
	return p.opts.EmbedName
}

var defaultParser = NewParser(Options{})

// Parse parses text with default options.
func Parse(text string) *document.Document {
	return defaultParser.Parse(text)
}

// Parse parses text into a fresh document. Empty text yields an empty document.
func (p *Parser) Parse(src string) (doc *document.Document) {
	if src == "" {
		return &document.Document{}
	}
	defer func() {
		if r := recover(); r != nil {
			err := ErrParseRecoverable.Wrap(fmt.Errorf("%v", r))
			p.log().Warn("Parse failed; rendering literal text",
				logfields.Category(string(err.Category())),
				logfields.Error(err))
			doc = &document.Document{Blocks: []document.Block{literalBlock(src)}}
		}
	}()

	source := []byte(src)
	root := p.md.Parser().Parse(text.NewReader(source))
	conv := &converter{source: source}
	doc = conv.document(root)
	if !p.opts.DisableEmoji {
		emoji.Expand(doc)
	}
	for _, e := range document.Embeds(doc) {
		p.log().Debug("Embed directive recognized",
			logfields.Directive(p.opts.EmbedName),
			logfields.EmbedID(e.ID))
	}
	return doc
}

func (p *Parser) log() *slog.Logger {
	if p.opts.Logger != nil {
		return p.opts.Logger
	}
	return slog.Default()
}
