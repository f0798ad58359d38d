// Package aggregate derives per-topic metric tables from augmented records.
//
// Every function filters on the exact display name of a topic, groups the
// remaining records by an explicit composite key, and derives one metric per
// group. Groups without records are never emitted, so no row is zero-filled.
// Rows come back ordered by year, then party, then sentiment.
//
// All functions are pure and safe for concurrent use.
package aggregate

import (
	"cmp"
	"math"
	"slices"

	"github.com/spacesedan/partyscope/internal/models"
)

type sentimentCounts struct {
	positive int
	negative int
}

func (c sentimentCounts) total() int {
	return c.positive + c.negative
}

func (c *sentimentCounts) add(s models.Sentiment) {
	if s == models.Positive {
		c.positive++
	} else {
		c.negative++
	}
}

func countByYearParty(records []models.AugmentedRecord, topicName string) map[models.GroupKey]*sentimentCounts {
	groups := make(map[models.GroupKey]*sentimentCounts)
	for _, r := range records {
		if r.TopicName != topicName {
			continue
		}
		key := models.GroupKey{Year: r.Year, Party: r.Party}
		c, ok := groups[key]
		if !ok {
			c = &sentimentCounts{}
			groups[key] = c
		}
		c.add(r.Label)
	}
	return groups
}

func sortedKeys(groups map[models.GroupKey]*sentimentCounts) []models.GroupKey {
	keys := make([]models.GroupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b models.GroupKey) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Party, b.Party)
	})
	return keys
}

// Ratio divides positive by negative. A zero denominator yields +Inf when
// positive is non-zero; the caller decides how to display it.
func Ratio(positive, negative int) float64 {
	if negative == 0 {
		if positive == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	}
	return float64(positive) / float64(negative)
}

// SentimentRatioByYearParty emits positive/negative per (year, party) for the
// topic. A group with no NEGATIVE records gets a ratio of +Inf.
func SentimentRatioByYearParty(records []models.AugmentedRecord, topicName string) []models.MetricRow {
	groups := countByYearParty(records, topicName)
	rows := make([]models.MetricRow, 0, len(groups))
	for _, k := range sortedKeys(groups) {
		c := groups[k]
		if c.total() == 0 {
			continue
		}
		ratio := models.Ratio(Ratio(c.positive, c.negative))
		rows = append(rows, models.MetricRow{
			Year:     k.Year,
			Party:    k.Party,
			Count:    c.total(),
			Positive: c.positive,
			Negative: c.negative,
			Ratio:    &ratio,
		})
	}
	return rows
}

// TweetShareByYearParty emits each party's share of the year's records for
// the topic, as a percentage.
func TweetShareByYearParty(records []models.AugmentedRecord, topicName string) []models.MetricRow {
	groups := countByYearParty(records, topicName)
	yearTotals := make(map[int]int)
	for k, c := range groups {
		yearTotals[k.Year] += c.total()
	}

	rows := make([]models.MetricRow, 0, len(groups))
	for _, k := range sortedKeys(groups) {
		count := groups[k].total()
		rows = append(rows, models.MetricRow{
			Year:       k.Year,
			Party:      k.Party,
			Count:      count,
			Percentage: 100 * float64(count) / float64(yearTotals[k.Year]),
		})
	}
	return rows
}

// SentimentShareByYearPartySentiment emits, per (year, party, sentiment), the
// share of that (year, party) pair's records carrying the sentiment.
func SentimentShareByYearPartySentiment(records []models.AugmentedRecord, topicName string) []models.MetricRow {
	groups := countByYearParty(records, topicName)
	rows := make([]models.MetricRow, 0, 2*len(groups))
	for _, k := range sortedKeys(groups) {
		c := groups[k]
		total := c.total()
		for _, s := range models.Sentiments {
			count := c.negative
			if s == models.Positive {
				count = c.positive
			}
			if count == 0 {
				continue
			}
			sentiment := s
			rows = append(rows, models.MetricRow{
				Year:       k.Year,
				Party:      k.Party,
				Sentiment:  &sentiment,
				Count:      count,
				Percentage: 100 * float64(count) / float64(total),
			})
		}
	}
	return rows
}
