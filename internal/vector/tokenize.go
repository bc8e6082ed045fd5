package vector

import (
	"strings"

	"github.com/localrivet/lexsummary/internal/util"
)

// MinTokenLength is the shortest token kept by Tokenize.
const MinTokenLength = 3

// stopWords is a fixed list of English function words that carry no topic.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {},
	"for": {}, "of": {}, "with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {},
	"would": {}, "could": {}, "should": {}, "may": {}, "might": {}, "must": {}, "can": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {},
	"they": {}, "me": {}, "him": {}, "her": {}, "us": {}, "them": {},
}

// IsStopWord reports whether word is in the stop-word list. word must already
// be lowercase.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// IsWordChar reports whether r is an ASCII letter, digit or underscore.
func IsWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// Tokenize lowercases sentence, splits it on every non-word character and
// drops short tokens and stop words.
func Tokenize(sentence string) []string {
	lowered := util.FoldDiacritics(util.Lower(sentence))
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !IsWordChar(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) < MinTokenLength || IsStopWord(field) {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}
