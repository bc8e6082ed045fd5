package lexrank

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/localrivet/lexsummary/internal/vector"
)

var healthText = strings.Join([]string{
	"Regular exercise strengthens the heart, improves circulation, and helps people maintain a healthy body weight throughout their adult lives.",
	"Nutritionists recommend a balanced diet rich in vegetables, whole grains, and lean proteins to support long term physical wellbeing.",
	"Adequate sleep allows the brain to consolidate memories, regulate mood, and recover from the cognitive demands of a busy working day.",
}, " ")

var gardenSentences = []string{
	"Community gardens give city residents fresh vegetables and shared green space.",
	"Volunteers plant tomatoes, beans, and herbs in raised beds every spring.",
	"Local schools use the gardens to teach children where food comes from.",
	"Rainwater barrels collect runoff that keeps the garden beds watered in summer.",
	"Compost made from kitchen scraps enriches the soil across every plot.",
	"Neighbors who garden together report stronger ties within their community.",
	"City councils increasingly fund garden projects on vacant public land.",
	"Pollinators such as bees and butterflies thrive among the flowering herbs.",
	"Harvest festivals celebrate the season and share surplus vegetables with families.",
	"Garden plots are assigned each year through a simple lottery system.",
	"Experienced growers mentor newcomers on pruning, watering, and pest control.",
	"Food banks receive fresh produce donated by community garden members.",
	"Urban heat is reduced where green space replaces asphalt and concrete.",
	"Research links regular garden work to lower stress and better health.",
	"Many cities now map their community gardens to help residents find a plot.",
}

var gardenText = strings.Join(gardenSentences, " ")

var reportText = strings.Join([]string{
	"The quarterly report shows strong growth in every regional market.",
	"Revenue from subscription services doubled compared with the previous year.",
	"The quarterly report shows strong growth in every regional sector.",
	"Operating costs fell after the company consolidated its data centers.",
	"Analysts expect the new product line to launch before the holiday season.",
	"Hiring slowed slightly as managers focused on training existing staff.",
	"Shareholders approved the dividend increase at the annual meeting.",
}, " ")

var degenerateText = strings.Join([]string{
	"It was data to him, and data to her, as it had been.",
	"We do have data, so we will be data for us.",
	"Data is data, or it should be data to them.",
	"I am data, you are data, we are data, be it so.",
	"They could have had data by the data of those.",
	"She did have data, he had data, it is data.",
	"These were data, those were data, and we can be data.",
}, " ")

func TestSummarizeShortText(t *testing.T) {
	result, stats := SummarizeWithStats("Too short to summarize.", "", 5)

	if result.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", result.Title, DefaultTitle)
	}
	if result.TotalSentences != 0 || result.SummaryRatio != 0 {
		t.Errorf("TotalSentences = %d, SummaryRatio = %v; want 0, 0", result.TotalSentences, result.SummaryRatio)
	}
	if len(result.KeyPoints) != 0 || len(result.Sections) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if stats.EarlyExit != EarlyExitShortText {
		t.Errorf("EarlyExit = %q, want %q", stats.EarlyExit, EarlyExitShortText)
	}
}

func TestSummarizeSmallDocument(t *testing.T) {
	result := Summarize(healthText, "Health", 5)

	if result.Title != "Health" {
		t.Errorf("Title = %q", result.Title)
	}
	if result.TotalSentences != 3 {
		t.Errorf("TotalSentences = %d, want 3", result.TotalSentences)
	}
	if len(result.KeyPoints) != 2 {
		t.Errorf("KeyPoints = %q, want 2 entries", result.KeyPoints)
	}
	if len(result.Sections) != 0 {
		t.Errorf("Sections = %+v, want none", result.Sections)
	}
	if result.SummaryRatio != 0.67 {
		t.Errorf("SummaryRatio = %v, want 0.67", result.SummaryRatio)
	}
}

func TestSummarizeTwoSentences(t *testing.T) {
	text := "The observatory recorded an unusual burst of radio signals from a distant galaxy cluster late last night, " +
		"prompting astronomers around the world to coordinate follow up observations. Scientists believe the signals " +
		"may originate from a rapidly rotating neutron star, although further analysis of the data will be required " +
		"before any firm conclusions can be drawn."

	result, stats := SummarizeWithStats(text, "", 5)

	if stats.EarlyExit != EarlyExitFewSentences {
		t.Errorf("EarlyExit = %q, want %q", stats.EarlyExit, EarlyExitFewSentences)
	}
	if result.TotalSentences != 2 || len(result.KeyPoints) != 2 {
		t.Errorf("TotalSentences = %d, KeyPoints = %d; want 2, 2", result.TotalSentences, len(result.KeyPoints))
	}
	if result.SummaryRatio != 1 {
		t.Errorf("SummaryRatio = %v, want 1", result.SummaryRatio)
	}
}

func TestSummarizeLongDocument(t *testing.T) {
	result, stats := SummarizeWithStats(gardenText, "Gardens", 5)

	if result.TotalSentences != len(gardenSentences) {
		t.Fatalf("TotalSentences = %d, want %d", result.TotalSentences, len(gardenSentences))
	}
	if n := len(result.KeyPoints); n < 2 || n > 4 {
		t.Errorf("KeyPoints has %d entries, want 2 to 4", n)
	}
	if len(result.Sections) != 1 {
		t.Fatalf("Sections = %+v, want one", result.Sections)
	}
	section := result.Sections[0]
	if section.Heading != MainContentHeading || section.HeadingLevel != 3 || section.Content == "" {
		t.Errorf("unexpected section %+v", section)
	}

	inSection := 0
	for _, sentence := range gardenSentences {
		if strings.Contains(section.Content, sentence) {
			inSection++
		}
	}
	if stats.Selected != len(result.KeyPoints)+inSection {
		t.Errorf("Selected = %d, key points %d + section %d", stats.Selected, len(result.KeyPoints), inSection)
	}

	want := math.Round(float64(stats.Selected)/float64(len(gardenSentences))*100) / 100
	if result.SummaryRatio != want {
		t.Errorf("SummaryRatio = %v, want %v", result.SummaryRatio, want)
	}
}

func TestSummarizeDropsNearDuplicates(t *testing.T) {
	raw := Segment(reportText)
	result, stats := SummarizeWithStats(reportText, "Quarterly", 5)

	if stats.RawSentences != len(raw) {
		t.Errorf("RawSentences = %d, want %d", stats.RawSentences, len(raw))
	}
	if result.TotalSentences != len(raw)-1 {
		t.Errorf("TotalSentences = %d, want %d", result.TotalSentences, len(raw)-1)
	}
	for _, point := range result.KeyPoints {
		if strings.HasSuffix(point, "regional sector.") {
			t.Errorf("near-duplicate %q survived", point)
		}
	}
}

func TestSummarizeDegenerateVocabulary(t *testing.T) {
	result, stats := SummarizeWithStats(degenerateText, "", 5)

	if math.IsNaN(result.SummaryRatio) || result.SummaryRatio <= 0 {
		t.Errorf("SummaryRatio = %v", result.SummaryRatio)
	}
	if result.TotalSentences != 7 {
		t.Errorf("TotalSentences = %d, want 7", result.TotalSentences)
	}
	if len(result.KeyPoints) == 0 {
		t.Error("expected key points")
	}
	if stats.Iterations == 0 || stats.Iterations > MaxIterations {
		t.Errorf("Iterations = %d", stats.Iterations)
	}

	vectors, _ := vector.Vectorize(Segment(degenerateText))
	for i, score := range Rank(BuildSimilarityGraph(vectors)).Scores {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			t.Errorf("score[%d] = %v", i, score)
		}
	}
}

func TestSummarizeProperties(t *testing.T) {
	inputs := map[string]string{
		"health":     healthText,
		"garden":     gardenText,
		"report":     reportText,
		"degenerate": degenerateText,
	}

	for name, text := range inputs {
		t.Run(name, func(t *testing.T) {
			result := Summarize(text, "", 5)

			if again := Summarize(text, "", 5); !reflect.DeepEqual(result, again) {
				t.Errorf("results differ between runs:\n%+v\n%+v", result, again)
			}
			if defaulted := Summarize(text, "", 0); !reflect.DeepEqual(result, defaulted) {
				t.Errorf("maxSentences 0 did not default to %d", DefaultMaxSentences)
			}

			if result.SummaryRatio < 0 || result.SummaryRatio > 1 {
				t.Errorf("SummaryRatio = %v out of range", result.SummaryRatio)
			}
			if result.TotalSentences > MaxSentences {
				t.Errorf("TotalSentences = %d exceeds %d", result.TotalSentences, MaxSentences)
			}

			last := -1
			for _, point := range result.KeyPoints {
				pos := strings.Index(text, point)
				if pos < 0 {
					t.Fatalf("key point %q is not in the input", point)
				}
				if pos <= last {
					t.Errorf("key point %q is out of document order", point)
				}
				last = pos
			}
			for _, section := range result.Sections {
				if pos := strings.Index(text, section.Content); pos >= 0 && pos <= last {
					t.Errorf("section content precedes key points")
				}
			}
		})
	}
}

func TestSummarizeSentenceCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "Paragraph %d describes a separate topic about item %d in detail. ", i, i*7)
	}

	result := Summarize(b.String(), "", 10)
	if result.TotalSentences > MaxSentences {
		t.Errorf("TotalSentences = %d, want at most %d", result.TotalSentences, MaxSentences)
	}
	if len(result.KeyPoints) == 0 {
		t.Error("expected key points")
	}
}
