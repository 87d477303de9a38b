// Package sanitize cleans rendered HTML against an allowlist before it leaves
// the application.
//
// Sanitize drops script, style and unknown elements, strips attributes that
// are not allowlisted, removes URLs with schemes other than http, https and
// mailto, and restricts inline styles and embed frames to the exact shapes the
// portable renderer produces. Text inside embed frames is dropped. Sanitizing
// is idempotent.
package sanitize

import (
	"bytes"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
	"git.home.luguber.info/inful/mdport/internal/logfields"
)

// ErrSanitizeInputMalformed is logged when the input cannot be read; the
// result is then empty.
var ErrSanitizeInputMalformed = foundationerrors.SanitizeError("malformed sanitizer input").Build()

// Sanitize returns the cleaned form of raw. A nil policy uses DefaultPolicy.
func Sanitize(raw string, policy *Policy) string {
	if raw == "" {
		return ""
	}
	if policy == nil {
		policy = DefaultPolicy()
	}
	var out bytes.Buffer
	if err := policy.bm.SanitizeReaderToWriter(strings.NewReader(raw), &out); err != nil {
		werr := ErrSanitizeInputMalformed.Wrap(err)
		slog.Warn("Sanitize failed; dropping output",
			logfields.Category(string(werr.Category())),
			logfields.InputBytes(len(raw)),
			logfields.Error(werr))
		return ""
	}
	if len(policy.emptied) == 0 {
		return out.String()
	}
	return dropRawText(out.String(), policy.emptied)
}

// dropRawText removes the text content of the given elements. The tokenizer
// reads that content unparsed, so every sanitize pass would escape it again.
func dropRawText(s string, emptied map[atom.Atom]struct{}) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))
	var open atom.Atom
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a != 0 {
				if _, ok := emptied[a]; ok {
					open = a
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if open != 0 && atom.Lookup(name) == open {
				open = 0
			}
		case html.TextToken:
			if open != 0 {
				continue
			}
		}
		b.Write(z.Raw())
	}
}
