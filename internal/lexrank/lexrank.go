// Package lexrank produces extractive summaries of plain text.
//
// A call runs a fixed pipeline: the text is split into sentences,
// near-duplicates are removed, each sentence becomes a TF-IDF vector, the
// vectors form a cosine-similarity graph, a damped random walk over that
// graph scores every sentence, and the best scoring sentences that also pass
// a quality and diversity check are shaped into key points and sections.
//
// Every function here is pure. Nothing is cached between calls and nothing is
// logged, so the package is safe for concurrent use.
package lexrank

import (
	"github.com/localrivet/lexsummary/internal/util"
	"github.com/localrivet/lexsummary/internal/vector"
)

const (
	// DefaultMaxSentences is used when the caller asks for zero or fewer sentences.
	DefaultMaxSentences = 5

	// DefaultTitle replaces an empty title in every result.
	DefaultTitle = "Text Summary"

	// MinTextLength is the input length, in characters, below which no summary is attempted.
	MinTextLength = 300

	// MaxSentences caps how many segmented sentences are considered.
	MaxSentences = 30

	// MinSentenceLength is the length a segment must exceed to be kept.
	MinSentenceLength = 20

	// SimilarityThreshold is the cosine similarity a pair must exceed to share an edge.
	SimilarityThreshold = 0.1

	// DampingFactor is the probability that the walk follows an edge instead of teleporting.
	DampingFactor = 0.85

	// ConvergenceThreshold stops the ranker once the summed score change drops below it.
	ConvergenceThreshold = 0.0001

	// MaxIterations bounds the ranker loop.
	MaxIterations = 50

	// DuplicateThreshold is the string similarity above which a sentence is a near-duplicate.
	DuplicateThreshold = 0.85

	// DiversityThreshold is the string similarity above which a candidate repeats a selected sentence.
	DiversityThreshold = 0.6

	// QualityFloor is the quality score a candidate must exceed to be selected.
	QualityFloor = 0.3

	// MainContentHeading names the paragraph section produced for long documents.
	MainContentHeading = "Main Content"
)

// Sentence is one segmented sentence and its position in the document.
type Sentence struct {
	Text  string
	Index int
}

// Section is either a bullet list (Points) or a paragraph (Content).
type Section struct {
	Heading      string   `json:"heading" yaml:"heading"`
	HeadingLevel int      `json:"headingLevel,omitempty" yaml:"headingLevel,omitempty"`
	Points       []string `json:"points,omitempty" yaml:"points,omitempty"`
	Content      string   `json:"content,omitempty" yaml:"content,omitempty"`
}

// SummaryResult is the structured summary of one document.
type SummaryResult struct {
	Title          string    `json:"title" yaml:"title"`
	Sections       []Section `json:"sections" yaml:"sections"`
	KeyPoints      []string  `json:"keyPoints" yaml:"keyPoints"`
	TotalSentences int       `json:"totalSentences" yaml:"totalSentences"`
	SummaryRatio   float64   `json:"summaryRatio" yaml:"summaryRatio"`
}

// EarlyExit names the shortcut a call took, if any.
type EarlyExit string

const (
	EarlyExitNone         EarlyExit = ""
	EarlyExitShortText    EarlyExit = "short_text"
	EarlyExitFewSentences EarlyExit = "few_sentences"
)

// Stats describes what happened inside one Summarize call.
type Stats struct {
	RawSentences    int
	UniqueSentences int
	Selected        int
	Iterations      int
	Converged       bool
	EarlyExit       EarlyExit
}

// Summarize returns an extractive summary of text with at most maxSentences
// selected sentences. It never fails: degenerate input yields an empty result.
func Summarize(text, title string, maxSentences int) SummaryResult {
	result, _ := SummarizeWithStats(text, title, maxSentences)
	return result
}

// SummarizeWithStats is Summarize plus a description of the run.
func SummarizeWithStats(text, title string, maxSentences int) (SummaryResult, Stats) {
	var stats Stats
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	if util.RuneLen(text) < MinTextLength {
		stats.EarlyExit = EarlyExitShortText
		return Format(nil, nil, title), stats
	}

	segments := Segment(text)
	sentences := make([]Sentence, len(segments))
	for i, segment := range segments {
		sentences[i] = Sentence{Text: segment, Index: i}
	}
	stats.RawSentences = len(sentences)

	unique := Deduplicate(sentences)
	stats.UniqueSentences = len(unique)

	if len(unique) <= 2 {
		stats.EarlyExit = EarlyExitFewSentences
		stats.Selected = len(unique)
		stats.Converged = true
		return Format(unique, unique, title), stats
	}

	maxSentences = CapMaxSentences(maxSentences, len(unique))

	texts := make([]string, len(unique))
	for i, sentence := range unique {
		texts[i] = sentence.Text
	}

	vectors, _ := vector.Vectorize(texts)
	graph := BuildSimilarityGraph(vectors)
	ranked := Rank(graph)
	stats.Iterations = ranked.Iterations
	stats.Converged = ranked.Converged

	selected := Select(unique, ranked.Scores, maxSentences)
	stats.Selected = len(selected)

	return Format(selected, unique, title), stats
}
