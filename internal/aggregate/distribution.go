package aggregate

import (
	"cmp"
	"slices"

	"github.com/spacesedan/partyscope/internal/models"
)

// TopicDistribution counts records per topic. Every name in names gets a bar,
// in the given order, even when it has no records.
func TopicDistribution(records []models.AugmentedRecord, names []string) []models.TopicCount {
	counts := make(map[string]int, len(names))
	for _, r := range records {
		counts[r.TopicName]++
	}
	out := make([]models.TopicCount, 0, len(names))
	for _, name := range names {
		out = append(out, models.TopicCount{TopicName: name, Count: counts[name]})
	}
	return out
}

// SentimentDistribution counts every record by sentiment regardless of topic.
// Percentages sum to 100 whenever records is non-empty.
func SentimentDistribution(records []models.AugmentedRecord) []models.MetricRow {
	var c sentimentCounts
	for _, r := range records {
		c.add(r.Label)
	}
	rows := make([]models.MetricRow, 0, len(models.Sentiments))
	if c.total() == 0 {
		return rows
	}
	for _, s := range models.Sentiments {
		count := c.negative
		if s == models.Positive {
			count = c.positive
		}
		sentiment := s
		rows = append(rows, models.MetricRow{
			Sentiment:  &sentiment,
			Count:      count,
			Percentage: 100 * float64(count) / float64(c.total()),
		})
	}
	return rows
}

// SentimentTimelineByParty builds a day-by-day sentiment series per party for
// the topic. Parties are sorted by name and points by date.
func SentimentTimelineByParty(records []models.AugmentedRecord, topicName string) []models.PartyTimeline {
	byParty := make(map[string]map[string]*sentimentCounts)
	for _, r := range records {
		if r.TopicName != topicName {
			continue
		}
		days, ok := byParty[r.Party]
		if !ok {
			days = make(map[string]*sentimentCounts)
			byParty[r.Party] = days
		}
		c, ok := days[r.Date]
		if !ok {
			c = &sentimentCounts{}
			days[r.Date] = c
		}
		c.add(r.Label)
	}

	parties := make([]string, 0, len(byParty))
	for p := range byParty {
		parties = append(parties, p)
	}
	slices.Sort(parties)

	out := make([]models.PartyTimeline, 0, len(parties))
	for _, party := range parties {
		days := byParty[party]
		points := make([]models.SentimentPoint, 0, len(days))
		for date, c := range days {
			points = append(points, models.SentimentPoint{
				Date:     date,
				Positive: c.positive,
				Negative: c.negative,
				Net:      c.positive - c.negative,
			})
		}
		slices.SortFunc(points, func(a, b models.SentimentPoint) int {
			return cmp.Compare(a.Date, b.Date)
		})
		out = append(out, models.PartyTimeline{Party: party, Points: points})
	}
	return out
}
