package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/partyscope/internal/models"
)

const (
	gratitude = "Appreciation and Gratitude"
	tax       = "Tax Policy and Economic Issues"
)

func rec(year int, party string, label models.Sentiment, topic string) models.AugmentedRecord {
	return models.AugmentedRecord{
		Record:    models.Record{Party: party, Sentiment: label.String()},
		Year:      year,
		TopicName: topic,
		Label:     label,
	}
}

func fixture() []models.AugmentedRecord {
	return []models.AugmentedRecord{
		rec(2019, "Republican", models.Positive, gratitude),
		rec(2019, "Republican", models.Negative, gratitude),
		rec(2019, "Republican", models.Negative, gratitude),
		rec(2019, "Democrat", models.Positive, gratitude),
		rec(2020, "Democrat", models.Positive, gratitude),
		rec(2020, "Democrat", models.Positive, gratitude),
		rec(2020, "Republican", models.Negative, gratitude),
		rec(2020, "Independent", models.Positive, gratitude),
		rec(2020, "Independent", models.Negative, gratitude),
		rec(2020, "Independent", models.Negative, gratitude),
		rec(2020, "Republican", models.Positive, tax),
		rec(2021, "Democrat", models.Negative, tax),
	}
}

func TestSentimentRatioByYearParty_Example(t *testing.T) {
	t.Parallel()
	records := []models.AugmentedRecord{
		rec(2020, "Republican", models.Positive, gratitude),
		rec(2020, "Republican", models.Positive, gratitude),
		rec(2020, "Republican", models.Negative, gratitude),
	}

	rows := SentimentRatioByYearParty(records, gratitude)
	require.Len(t, rows, 1)
	assert.Equal(t, 2020, rows[0].Year)
	assert.Equal(t, "Republican", rows[0].Party)
	assert.Equal(t, 2.0, rows[0].RatioValue())
}

func TestSentimentRatioByYearParty(t *testing.T) {
	t.Parallel()
	rows := SentimentRatioByYearParty(fixture(), gratitude)

	type want struct {
		year  int
		party string
		ratio float64
	}
	expected := []want{
		{2019, "Democrat", math.Inf(1)},
		{2019, "Republican", 0.5},
		{2020, "Democrat", math.Inf(1)},
		{2020, "Independent", 0.5},
		{2020, "Republican", 0},
	}
	require.Len(t, rows, len(expected))
	for i, w := range expected {
		assert.Equal(t, w.year, rows[i].Year)
		assert.Equal(t, w.party, rows[i].Party)
		assert.Equal(t, w.ratio, rows[i].RatioValue(), "%d %s", w.year, w.party)
		assert.Greater(t, rows[i].Positive+rows[i].Negative, 0)
	}
	assert.True(t, rows[0].Ratio.IsInf())
}

func TestTweetShareByYearParty_SumsTo100(t *testing.T) {
	t.Parallel()
	rows := TweetShareByYearParty(fixture(), gratitude)
	require.Len(t, rows, 5)

	perYear := map[int]float64{}
	for _, r := range rows {
		perYear[r.Year] += r.Percentage
		assert.Nil(t, r.Ratio)
	}
	require.Len(t, perYear, 2)
	for year, sum := range perYear {
		assert.InDelta(t, 100, sum, 1e-6, "year %d", year)
	}

	assert.Equal(t, 2019, rows[0].Year)
	assert.Equal(t, "Democrat", rows[0].Party)
	assert.InDelta(t, 25.0, rows[0].Percentage, 1e-9)
	assert.InDelta(t, 75.0, rows[1].Percentage, 1e-9)
}

func TestSentimentShareByYearPartySentiment_SumsTo100(t *testing.T) {
	t.Parallel()
	rows := SentimentShareByYearPartySentiment(fixture(), gratitude)

	perGroup := map[models.GroupKey]float64{}
	for _, r := range rows {
		require.NotNil(t, r.Sentiment)
		perGroup[models.GroupKey{Year: r.Year, Party: r.Party}] += r.Percentage
	}
	require.Len(t, perGroup, 5)
	for k, sum := range perGroup {
		assert.InDelta(t, 100, sum, 1e-6, "%+v", k)
	}

	// 2019 Republican: one positive, two negative; NEGATIVE sorts first.
	var rep2019 []models.MetricRow
	for _, r := range rows {
		if r.Year == 2019 && r.Party == "Republican" {
			rep2019 = append(rep2019, r)
		}
	}
	require.Len(t, rep2019, 2)
	assert.Equal(t, models.Negative, *rep2019[0].Sentiment)
	assert.InDelta(t, 200.0/3, rep2019[0].Percentage, 1e-9)
	assert.Equal(t, models.Positive, *rep2019[1].Sentiment)
	assert.InDelta(t, 100.0/3, rep2019[1].Percentage, 1e-9)
}

func TestAggregations_FilterByExactName(t *testing.T) {
	t.Parallel()
	records := fixture()

	assert.Empty(t, SentimentRatioByYearParty(records, "appreciation and gratitude"))
	assert.Empty(t, TweetShareByYearParty(records, "Tax Policy"))

	rows := SentimentRatioByYearParty(records, tax)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Ratio.IsInf())
	assert.Equal(t, 0.0, rows[1].RatioValue())
}

func TestAggregations_EmptyInput(t *testing.T) {
	t.Parallel()

	for name, rows := range map[string][]models.MetricRow{
		"ratio":           SentimentRatioByYearParty(nil, gratitude),
		"tweet share":     TweetShareByYearParty(nil, gratitude),
		"sentiment share": SentimentShareByYearPartySentiment([]models.AugmentedRecord{}, gratitude),
	} {
		assert.NotNil(t, rows, name)
		assert.Empty(t, rows, name)
	}
}

func TestAggregations_Idempotent(t *testing.T) {
	t.Parallel()
	records := fixture()
	before := append([]models.AugmentedRecord(nil), records...)

	first := SentimentShareByYearPartySentiment(records, gratitude)
	second := SentimentShareByYearPartySentiment(records, gratitude)
	assert.Equal(t, first, second)
	assert.Equal(t, before, records)
}

func TestRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.0, Ratio(4, 2))
	assert.Equal(t, 0.0, Ratio(0, 3))
	assert.True(t, math.IsInf(Ratio(1, 0), 1))
	assert.True(t, math.IsNaN(Ratio(0, 0)))
}
