// Package wordfreq turns a topic's salient terms into word-cloud frequencies.
package wordfreq

import (
	"context"

	"github.com/spacesedan/partyscope/internal/models"
	"github.com/spacesedan/partyscope/internal/topics"
)

const DefaultCount = 100

type Extractor struct {
	resolver     *topics.Resolver
	defaultCount int
}

type Option func(*Extractor)

// WithDefaultCount sets the number of words returned by Frequencies.
// Non-positive values are ignored.
func WithDefaultCount(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.defaultCount = n
		}
	}
}

func New(resolver *topics.Resolver, opts ...Option) *Extractor {
	e := &Extractor{resolver: resolver, defaultCount: DefaultCount}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extractor) DefaultCount() int {
	return e.defaultCount
}

// Top returns the n heaviest terms of the named topic in descending weight.
func (e *Extractor) Top(ctx context.Context, topicName string, n int) ([]models.TopicWordWeight, error) {
	id, err := e.resolver.ResolveID(topicName)
	if err != nil {
		return nil, err
	}
	return e.resolver.TopWords(ctx, id, n)
}

// FrequenciesN maps each of the n heaviest words of the topic to its weight.
func (e *Extractor) FrequenciesN(ctx context.Context, topicName string, n int) (map[string]float64, error) {
	top, err := e.Top(ctx, topicName, n)
	if err != nil {
		return nil, err
	}
	freqs := make(map[string]float64, len(top))
	for _, term := range top {
		freqs[term.Word] = term.Weight
	}
	return freqs, nil
}

// Frequencies is FrequenciesN with the extractor's default count.
func (e *Extractor) Frequencies(ctx context.Context, topicName string) (map[string]float64, error) {
	return e.FrequenciesN(ctx, topicName, e.defaultCount)
}
