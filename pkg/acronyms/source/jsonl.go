package source

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/cognicore/acronyms/pkg/acronyms/internalerr"
)

// DefaultField is the JSONL key read when none is given.
const DefaultField = "text"

// JSONL yields the string value of field from each JSON object line.
// Blank lines and objects without the field are skipped; a malformed
// line stops the sequence with an error.
func JSONL(r io.Reader, field string) iter.Seq2[string, error] {
	if field == "" {
		field = DefaultField
	}

	return func(yield func(string, error) bool) {
		sc := newScanner(r)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}

			var record map[string]json.RawMessage
			if err := json.Unmarshal([]byte(line), &record); err != nil {
				yield("", fmt.Errorf("%w: line %d: %v", internalerr.ErrInvalidInput, lineNo, err))
				return
			}

			raw, ok := record[field]
			if !ok {
				continue
			}
			var text string
			if err := json.Unmarshal(raw, &text); err != nil {
				yield("", fmt.Errorf("%w: line %d: field %q is not a string", internalerr.ErrInvalidInput, lineNo, field))
				return
			}
			if strings.TrimSpace(text) == "" {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield("", err)
		}
	}
}
