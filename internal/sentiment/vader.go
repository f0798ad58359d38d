// Package sentiment normalizes upstream sentiment into the discrete labels
// the metrics pipeline works with. It runs before augmentation, never inside
// it.
package sentiment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/partyscope/internal/models"
)

var (
	analyzer    = govader.NewSentimentIntensityAnalyzer()
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := RemoveLinks(stripTags(string(output)))

	return strings.Join(strings.Fields(plainText), " ")
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripTags(html string) string {
	return tagPattern.ReplaceAllString(html, " ")
}

// LabelFromScore maps a continuous score to a label: above zero is positive,
// below is negative. A score of exactly zero has no polarity.
func LabelFromScore(score float64) (models.Sentiment, bool) {
	switch {
	case score > 0:
		return models.Positive, true
	case score < 0:
		return models.Negative, true
	default:
		return 0, false
	}
}

// AnalyzeWithVADER scores raw post text with VADER and labels the compound
// score with LabelFromScore.
func AnalyzeWithVADER(text string) (float64, models.Sentiment, bool) {
	score := analyzer.PolarityScores(ConvertMarkdownToText(text)).Compound
	label, ok := LabelFromScore(score)
	return score, label, ok
}

// Normalize turns a raw sentiment cell into a canonical label string. Labels
// pass through upper-cased; numeric cells are read as continuous scores. When
// the cell is empty and text is given, the text is scored with VADER.
// Values that cannot be labelled are returned unchanged so augmentation can
// report them.
func Normalize(raw, text string) string {
	raw = strings.TrimSpace(raw)
	if label, ok := models.ParseSentiment(raw); ok {
		return label.String()
	}
	if score, err := strconv.ParseFloat(raw, 64); err == nil {
		if label, ok := LabelFromScore(score); ok {
			return label.String()
		}
		return raw
	}
	if raw == "" && strings.TrimSpace(text) != "" {
		if _, label, ok := AnalyzeWithVADER(text); ok {
			return label.String()
		}
	}
	return raw
}
