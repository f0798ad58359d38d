package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/partyscope/internal/models"
)

func TestTopicDistribution(t *testing.T) {
	t.Parallel()
	names := []string{gratitude, "Civic Engagement and Honor", tax}

	got := TopicDistribution(fixture(), names)
	assert.Equal(t, []models.TopicCount{
		{TopicName: gratitude, Count: 10},
		{TopicName: "Civic Engagement and Honor", Count: 0},
		{TopicName: tax, Count: 2},
	}, got)
}

func TestSentimentDistribution(t *testing.T) {
	t.Parallel()

	rows := SentimentDistribution(fixture())
	require.Len(t, rows, 2)
	assert.Equal(t, models.Negative, *rows[0].Sentiment)
	assert.Equal(t, 6, rows[0].Count)
	assert.Equal(t, models.Positive, *rows[1].Sentiment)
	assert.Equal(t, 6, rows[1].Count)
	assert.InDelta(t, 100, rows[0].Percentage+rows[1].Percentage, 1e-6)

	assert.Empty(t, SentimentDistribution(nil))
}

func TestSentimentTimelineByParty(t *testing.T) {
	t.Parallel()
	withDate := func(r models.AugmentedRecord, date string) models.AugmentedRecord {
		r.Date = date
		return r
	}
	records := []models.AugmentedRecord{
		withDate(rec(2020, "Republican", models.Positive, gratitude), "2020-01-02"),
		withDate(rec(2020, "Republican", models.Negative, gratitude), "2020-01-01"),
		withDate(rec(2020, "Republican", models.Positive, gratitude), "2020-01-02"),
		withDate(rec(2020, "Democrat", models.Negative, gratitude), "2020-01-05"),
		withDate(rec(2020, "Democrat", models.Negative, tax), "2020-01-05"),
	}

	got := SentimentTimelineByParty(records, gratitude)
	assert.Equal(t, []models.PartyTimeline{
		{
			Party: "Democrat",
			Points: []models.SentimentPoint{
				{Date: "2020-01-05", Positive: 0, Negative: 1, Net: -1},
			},
		},
		{
			Party: "Republican",
			Points: []models.SentimentPoint{
				{Date: "2020-01-01", Positive: 0, Negative: 1, Net: -1},
				{Date: "2020-01-02", Positive: 2, Negative: 0, Net: 2},
			},
		},
	}, got)
}
