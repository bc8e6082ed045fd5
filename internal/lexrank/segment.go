package lexrank

import (
	"regexp"
	"strings"

	"github.com/localrivet/lexsummary/internal/util"
)

var (
	whitespacePattern    = regexp.MustCompile(`\s+`)
	wordPairPattern      = regexp.MustCompile(`\b(\w+)\s+(\w{1,3})\b`)
	vowelKPattern        = regexp.MustCompile(`[aeiou]k$`)
	sentenceBreakPattern = regexp.MustCompile(`([.!?])\s*([A-Z])`)
	phonePattern         = regexp.MustCompile(`\d{10,}`)
	numericPattern       = regexp.MustCompile(`^\d+$`)
	titleFragmentPattern = regexp.MustCompile(`(?i)^(CEO|VP|Director|Manager|Officer)\s+`)
	terminalPunctuation  = ".!?"
)

// Segment splits raw text into candidate sentences in document order.
//
// Whitespace is collapsed, words broken by a stray space are re-joined, a
// break is placed after terminal punctuation that precedes an uppercase
// letter, and long digit runs are redacted. Segments that are too short,
// lack terminal punctuation, are purely numeric or look like a job-title
// fragment are dropped. At most MaxSentences segments are returned.
func Segment(text string) []string {
	cleaned := whitespacePattern.ReplaceAllString(text, " ")
	cleaned = repairTruncatedWords(cleaned)
	cleaned = sentenceBreakPattern.ReplaceAllString(cleaned, "$1\n$2")
	cleaned = phonePattern.ReplaceAllString(cleaned, "[PHONE]")
	cleaned = strings.TrimSpace(cleaned)

	segments := make([]string, 0, MaxSentences)
	for _, part := range strings.Split(cleaned, "\n") {
		part = strings.TrimSpace(part)
		if !keepSegment(part) {
			continue
		}
		segments = append(segments, part)
		if len(segments) == MaxSentences {
			break
		}
	}
	return segments
}

func keepSegment(s string) bool {
	if util.RuneLen(s) <= MinSentenceLength {
		return false
	}
	if !strings.ContainsAny(s[len(s)-1:], terminalPunctuation) {
		return false
	}
	if numericPattern.MatchString(s) {
		return false
	}
	return !titleFragmentPattern.MatchString(s)
}

// repairTruncatedWords re-joins "care ful" and "smok ing" style splits left
// behind by upstream extraction. Other word pairs pass through unchanged.
func repairTruncatedWords(s string) string {
	matches := wordPairPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		word, fragment := s[m[2]:m[3]], s[m[4]:m[5]]
		b.WriteString(s[last:m[0]])
		if joined, ok := joinFragment(word, fragment); ok {
			b.WriteString(joined)
		} else {
			b.WriteString(s[m[0]:m[1]])
		}
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func joinFragment(word, fragment string) (string, bool) {
	if len(word) <= 3 {
		return "", false
	}
	switch {
	case fragment == "ful" && !strings.HasSuffix(word, "ful"):
		return word + fragment, true
	case fragment == "ing" && vowelKPattern.MatchString(word):
		return word + fragment, true
	}
	return "", false
}
