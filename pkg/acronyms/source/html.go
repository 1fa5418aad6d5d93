package source

import (
	"errors"
	"io"
	"iter"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements start and end a sentence; text between them is joined.
var blockElements = map[atom.Atom]bool{
	atom.P:          true,
	atom.Li:         true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Td:         true,
	atom.Th:         true,
	atom.Dd:         true,
	atom.Dt:         true,
	atom.Blockquote: true,
	atom.Figcaption: true,
	atom.Div:        true,
	atom.Pre:        true,
	atom.Title:      true,
	atom.Br:         true,
}

// HTML yields the text of each block element in r, tokenizing the
// document as it is read. Script and style content is dropped.
func HTML(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		z := html.NewTokenizer(r)
		var buf strings.Builder
		skip := 0

		flush := func() bool {
			text := strings.Join(strings.Fields(buf.String()), " ")
			buf.Reset()
			if text == "" {
				return true
			}
			return yield(text, nil)
		}

		for {
			tt := z.Next()
			switch tt {
			case html.ErrorToken:
				err := z.Err()
				if !flush() {
					return
				}
				if !errors.Is(err, io.EOF) {
					yield("", err)
				}
				return

			case html.TextToken:
				if skip == 0 {
					buf.Write(z.Text())
				}

			case html.StartTagToken, html.SelfClosingTagToken:
				name, _ := z.TagName()
				a := atom.Lookup(name)
				if a == atom.Script || a == atom.Style {
					if tt == html.StartTagToken {
						skip++
					}
					continue
				}
				if blockElements[a] && !flush() {
					return
				}

			case html.EndTagToken:
				name, _ := z.TagName()
				a := atom.Lookup(name)
				if a == atom.Script || a == atom.Style {
					if skip > 0 {
						skip--
					}
					continue
				}
				if blockElements[a] && !flush() {
					return
				}
			}
		}
	}
}
