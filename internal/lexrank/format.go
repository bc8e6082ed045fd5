package lexrank

import (
	"math"
	"strings"
)

// CapMaxSentences limits the requested summary length by how many unique
// sentences the document has.
func CapMaxSentences(requested, uniqueCount int) int {
	switch {
	case uniqueCount <= 4:
		return min(requested, 2)
	case uniqueCount <= 8:
		return min(requested, 4)
	default:
		return min(requested, 7)
	}
}

// Format shapes the selected sentences into a SummaryResult. all is the
// full set of unique sentences and only its size is used.
//
// Short documents get key points only. Long documents with enough selected
// sentences split them between key points and a "Main Content" paragraph.
func Format(selected, all []Sentence, title string) SummaryResult {
	if title == "" {
		title = DefaultTitle
	}

	result := SummaryResult{
		Title:          title,
		Sections:       []Section{},
		KeyPoints:      []string{},
		TotalSentences: len(all),
	}
	if len(all) > 0 {
		result.SummaryRatio = math.Round(float64(len(selected))/float64(len(all))*100) / 100
	}

	k := len(selected)
	if k == 0 {
		return result
	}

	texts := make([]string, k)
	for i, sentence := range selected {
		texts[i] = sentence.Text
	}

	switch {
	case len(all) <= 5:
		count := min(max(1, int(math.Ceil(float64(k)*0.8))), 3)
		result.KeyPoints = append(result.KeyPoints, texts[:min(count, k)]...)

	case len(all) >= 12 && k >= 4:
		count := min(max(2, int(math.Floor(float64(k)*0.6))), 4)
		result.KeyPoints = append(result.KeyPoints, texts[:count]...)

		rest := texts[count:min(k, count+3)]
		if len(rest) > 0 {
			result.Sections = append(result.Sections, Section{
				Heading:      MainContentHeading,
				HeadingLevel: 3,
				Content:      strings.Join(rest, " "),
			})
		}

	default:
		count := min(max(1, int(math.Ceil(float64(k)*0.7))), 4)
		result.KeyPoints = append(result.KeyPoints, texts[:min(count, k)]...)
	}

	return result
}
