// Package report assembles every metric table a dashboard needs for one
// selected topic.
package report

import (
	"context"
	"fmt"

	"github.com/spacesedan/partyscope/internal/aggregate"
	"github.com/spacesedan/partyscope/internal/models"
	"github.com/spacesedan/partyscope/internal/topics"
	"github.com/spacesedan/partyscope/internal/wordfreq"
)

type Report struct {
	Topic                 string                 `json:"topic"`
	TopicID               int                    `json:"topic_id"`
	SentimentRatio        []models.MetricRow     `json:"sentiment_ratio"`
	TweetShare            []models.MetricRow     `json:"tweet_share"`
	SentimentShare        []models.MetricRow     `json:"sentiment_share"`
	Timeline              []models.PartyTimeline `json:"timeline"`
	WordCloud             map[string]float64     `json:"word_cloud"`
	TopicDistribution     []models.TopicCount    `json:"topic_distribution"`
	SentimentDistribution []models.MetricRow     `json:"sentiment_distribution"`
}

type Builder struct {
	resolver  *topics.Resolver
	extractor *wordfreq.Extractor
	records   []models.AugmentedRecord
}

// NewBuilder keeps records as loaded; they are never modified.
func NewBuilder(resolver *topics.Resolver, extractor *wordfreq.Extractor, records []models.AugmentedRecord) *Builder {
	return &Builder{resolver: resolver, extractor: extractor, records: records}
}

// Build computes a fresh report. Nothing is cached between calls.
func (b *Builder) Build(ctx context.Context, topicName string) (*Report, error) {
	id, err := b.resolver.ResolveID(topicName)
	if err != nil {
		return nil, err
	}
	cloud, err := b.extractor.Frequencies(ctx, topicName)
	if err != nil {
		return nil, fmt.Errorf("word cloud for %q: %w", topicName, err)
	}

	return &Report{
		Topic:                 topicName,
		TopicID:               id,
		SentimentRatio:        aggregate.SentimentRatioByYearParty(b.records, topicName),
		TweetShare:            aggregate.TweetShareByYearParty(b.records, topicName),
		SentimentShare:        aggregate.SentimentShareByYearPartySentiment(b.records, topicName),
		Timeline:              aggregate.SentimentTimelineByParty(b.records, topicName),
		WordCloud:             cloud,
		TopicDistribution:     aggregate.TopicDistribution(b.records, b.resolver.Names()),
		SentimentDistribution: aggregate.SentimentDistribution(b.records),
	}, nil
}
