package lexrank

import (
	"regexp"
	"sort"
	"strings"

	"github.com/localrivet/lexsummary/internal/util"
)

var (
	fragmentOpenerPattern = regexp.MustCompile(`(?i)^(Until|And|But|Or)\s+`)
	genericOpenerPattern  = regexp.MustCompile(`(?i)^This\s+(method|technique|approach)\s`)
	completeSentence      = regexp.MustCompile(`^[A-Z].*[.!?]$`)
	wordPattern           = regexp.MustCompile(`\w+`)
)

var (
	marketingPhrases = []string{"'ve tried so many"}
	salesPhrases     = []string{"might be for you"}
	substantiveTerms = []string{"technique", "method", "approach"}
)

// Candidate pairs a sentence with its centrality and quality scores.
type Candidate struct {
	Sentence Sentence
	Rank     float64
	Quality  float64
}

// Score is the value candidates are ordered by.
func (c Candidate) Score() float64 {
	return c.Rank * c.Quality
}

// Quality rates how well a sentence reads on its own, in [0, 1].
func Quality(sentence string) float64 {
	quality := 1.0

	length := util.RuneLen(sentence)
	if length < 30 {
		quality *= 0.5
	}
	if length < 15 {
		quality *= 0.3
	}

	if containsAny(sentence, marketingPhrases) {
		quality *= 0.2
	}
	if fragmentOpenerPattern.MatchString(sentence) {
		quality *= 0.6
	}
	if len(strings.Fields(sentence)) < 5 {
		quality *= 0.4
	}
	if hasRepeatedWord(sentence) {
		quality *= 0.7
	}
	if completeSentence.MatchString(sentence) {
		quality *= 1.2
	}
	if containsAny(sentence, substantiveTerms) {
		quality *= 1.1
	}
	if containsAny(sentence, salesPhrases) {
		quality *= 0.3
	}
	if genericOpenerPattern.MatchString(sentence) {
		quality *= 0.5
	}

	return min(max(quality, 0), 1)
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}

// hasRepeatedWord reports whether any whole word occurs twice, ignoring case.
func hasRepeatedWord(s string) bool {
	seen := make(map[string]struct{})
	for _, word := range wordPattern.FindAllString(s, -1) {
		word = strings.ToLower(word)
		if _, ok := seen[word]; ok {
			return true
		}
		seen[word] = struct{}{}
	}
	return false
}

// Select picks up to maxSentences sentences by rank and quality and returns
// them in document order. scores[i] is the rank of sentences[i].
//
// Sentences whose quality does not exceed QualityFloor are discarded. The
// rest are visited best first and a candidate is skipped when it reads too
// much like a sentence already chosen.
func Select(sentences []Sentence, scores []float64, maxSentences int) []Sentence {
	candidates := make([]Candidate, 0, len(sentences))
	for i, sentence := range sentences {
		quality := Quality(sentence.Text)
		if quality <= QualityFloor {
			continue
		}
		rank := 0.0
		if i < len(scores) {
			rank = scores[i]
		}
		candidates = append(candidates, Candidate{Sentence: sentence, Rank: rank, Quality: quality})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score() > candidates[b].Score()
	})

	selected := make([]Sentence, 0, maxSentences)
	keys := make([]string, 0, maxSentences)
	for _, c := range candidates {
		if len(selected) >= maxSentences {
			break
		}
		key := Normalize(c.Sentence.Text)
		if similarToAny(key, keys, DiversityThreshold) {
			continue
		}
		selected = append(selected, c.Sentence)
		keys = append(keys, key)
	}

	sort.SliceStable(selected, func(a, b int) bool {
		return selected[a].Index < selected[b].Index
	})
	return selected
}
