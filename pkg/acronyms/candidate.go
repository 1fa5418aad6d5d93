package acronyms

import (
	"strings"
	"unicode/utf8"
)

// Expansion is an immutable token sequence. Tokens never contain
// whitespace, so they are stored joined by single spaces and the value
// can be compared and hashed as a plain string.
type Expansion string

// NewExpansion builds an Expansion from whitespace-free tokens.
func NewExpansion(tokens ...string) Expansion {
	return Expansion(strings.Join(tokens, " "))
}

// Words returns the expansion tokens in order.
func (e Expansion) Words() []string {
	return strings.Fields(string(e))
}

// Len returns the number of tokens.
func (e Expansion) Len() int {
	if e == "" {
		return 0
	}
	return strings.Count(string(e), " ") + 1
}

func (e Expansion) String() string {
	return string(e)
}

// Candidate pairs an acronym with the tokens that precede it.
// Candidates are comparable and are used directly as Table keys.
type Candidate struct {
	Acronym   string
	Expansion Expansion
}

// Valid reports whether the expansion has exactly one token per acronym letter.
func (c Candidate) Valid() bool {
	return c.Acronym != "" && c.Expansion.Len() == utf8.RuneCountInString(c.Acronym)
}

func (c Candidate) String() string {
	return c.Acronym + " -> " + string(c.Expansion)
}
