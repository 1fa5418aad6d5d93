// Package source turns files and readers into lazy sentence sequences for
// acronyms.AggregateSource. Every producer reads one record at a time.
package source

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/cognicore/acronyms/pkg/acronyms/internalerr"
)

// Formats accepted by Open.
const (
	FormatLines = "lines"
	FormatJSONL = "jsonl"
	FormatHTML  = "html"
)

const maxLineSize = 4 * 1024 * 1024

// Slice yields each string of a materialized list.
func Slice(sentences []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, s := range sentences {
			if !yield(s, nil) {
				return
			}
		}
	}
}

// Chain yields every sentence of each sequence in turn.
func Chain(seqs ...iter.Seq2[string, error]) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, seq := range seqs {
			for s, err := range seq {
				if !yield(s, err) {
					return
				}
				if err != nil {
					return
				}
			}
		}
	}
}

// Lines yields one sentence per non-blank line of r.
func Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		sc := newScanner(r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			if !yield(line, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield("", err)
		}
	}
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return sc
}

// File is an opened input whose sentences are read lazily.
type File struct {
	Name   string
	Format string
	Field  string
	rc     io.ReadCloser
}

// Open opens path for reading. "-" reads standard input.
func Open(path, format, field string) (*File, error) {
	switch format {
	case "":
		format = FormatLines
	case FormatLines, FormatJSONL, FormatHTML:
	default:
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownFormat, format)
	}

	var rc io.ReadCloser
	if path == "-" {
		rc = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		rc = f
	}

	return &File{Name: path, Format: format, Field: field, rc: rc}, nil
}

// Sentences returns the lazy sentence sequence for the file's format.
// Errors are prefixed with the file name.
func (f *File) Sentences() iter.Seq2[string, error] {
	var seq iter.Seq2[string, error]
	switch f.Format {
	case FormatJSONL:
		seq = JSONL(f.rc, f.Field)
	case FormatHTML:
		seq = HTML(f.rc)
	default:
		seq = Lines(f.rc)
	}

	return func(yield func(string, error) bool) {
		for s, err := range seq {
			if err != nil {
				err = fmt.Errorf("%s: %w", f.Name, err)
			}
			if !yield(s, err) {
				return
			}
		}
	}
}

// Close releases the underlying reader.
func (f *File) Close() error {
	return f.rc.Close()
}
