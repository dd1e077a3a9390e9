package distance

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// stopwords are dropped before computing lexical overlap. They appear in
// almost every attribute and would pull unrelated entities together.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "in": {},
	"is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "that": {},
	"the": {}, "to": {}, "was": {}, "were": {}, "with": {},
}

// Tokenize case-folds text and splits it into word tokens. Tokens shorter
// than two runes and stopwords are dropped. Duplicates are kept.
func Tokenize(text string) []string {
	folded := cases.Fold().String(text)
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := words[:0]
	for _, w := range words {
		if len([]rune(w)) < 2 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}
