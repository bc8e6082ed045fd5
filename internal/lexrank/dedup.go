package lexrank

import (
	"strings"
	"unicode"

	"github.com/localrivet/lexsummary/internal/util"
	"github.com/localrivet/lexsummary/internal/vector"
)

// Normalize returns the comparison key for a sentence: lowercased, with
// diacritics folded, non-word characters removed and whitespace collapsed.
func Normalize(s string) string {
	folded := util.FoldDiacritics(util.Lower(s))
	kept := strings.Map(func(r rune) rune {
		if vector.IsWordChar(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, folded)
	return strings.Join(strings.Fields(kept), " ")
}

// StringSimilarity returns 1 - levenshtein(a, b) / max(len(a), len(b)),
// measured in runes. Two empty strings are identical; one empty string is
// entirely dissimilar from a non-empty one.
func StringSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	longest := max(len(ra), len(rb))
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Deduplicate drops exact and near-duplicate sentences, keeping the first
// occurrence. Each sentence is compared only against sentences already kept,
// so a sentence removed as a duplicate never suppresses a later one.
func Deduplicate(sentences []Sentence) []Sentence {
	unique := make([]Sentence, 0, len(sentences))
	keys := make([]string, 0, len(sentences))
	seen := make(map[string]struct{}, len(sentences))

	for _, sentence := range sentences {
		key := Normalize(sentence.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		if similarToAny(key, keys, DuplicateThreshold) {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
		unique = append(unique, sentence)
	}
	return unique
}

func similarToAny(key string, keys []string, threshold float64) bool {
	for _, other := range keys {
		if StringSimilarity(key, other) > threshold {
			return true
		}
	}
	return false
}
