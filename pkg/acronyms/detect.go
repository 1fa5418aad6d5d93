package acronyms

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// bracketPattern captures everything between the first "(" and the last ")"
// of a single token.
var bracketPattern = regexp.MustCompile(`\((.*)\)`)

// Detect returns the acronym candidates found in sentence, left to right.
//
// A token such as "(TDD)" produces a candidate only when its bracket
// interior is made of uppercase letters and at least len(acronym) tokens
// precede it. Those preceding tokens become the expansion, punctuation
// included.
func Detect(sentence string) []Candidate {
	tokens := strings.Fields(sentence)

	var found []Candidate
	for idx, token := range tokens {
		if !strings.Contains(token, "(") {
			continue
		}
		for _, match := range bracketPattern.FindAllStringSubmatch(token, -1) {
			res := match[1]
			if !isUpperWord(res) {
				continue
			}
			// "(UK) spent time here" has no tokens to expand into
			n := utf8.RuneCountInString(res)
			if idx < n {
				continue
			}
			found = append(found, Candidate{
				Acronym:   res,
				Expansion: NewExpansion(tokens[idx-n : idx]...),
			})
		}
	}
	return found
}

// isUpperWord reports whether s is non-empty and made only of uppercase letters.
func isUpperWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
