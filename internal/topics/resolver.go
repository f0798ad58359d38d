package topics

import (
	"context"
	"math"
	"slices"

	"github.com/spacesedan/partyscope/internal/models"
)

// TopicModel is the already-trained topic model. Terms come back in the
// model's own order.
type TopicModel interface {
	TopicTerms(ctx context.Context, topicID int) ([]models.TopicWordWeight, error)
}

// Resolver answers label and top-word questions for one label table and one
// topic model. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	table LabelTable
	model TopicModel
}

// NewResolver binds a label table to a topic model. model may be nil when
// only name lookups are needed; TopWords then fails.
func NewResolver(table LabelTable, model TopicModel) *Resolver {
	return &Resolver{table: table, model: model}
}

func (r *Resolver) ResolveName(topicID int) (string, error) {
	name, ok := r.table.byID[topicID]
	if !ok {
		return "", &UnknownTopicError{ID: topicID}
	}
	return name, nil
}

func (r *Resolver) ResolveID(name string) (int, error) {
	id, ok := r.table.byName[name]
	if !ok {
		return 0, &UnknownTopicError{Name: name, ByName: true}
	}
	return id, nil
}

// Names lists display names in declaration order.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.table.labels))
	for _, l := range r.table.labels {
		names = append(names, l.Name)
	}
	return names
}

// TopWords returns at most n terms for the topic ranked by RankTerms.
func (r *Resolver) TopWords(ctx context.Context, topicID int, n int) ([]models.TopicWordWeight, error) {
	if r.model == nil {
		return nil, &UnknownTopicError{ID: topicID, Reason: "no topic model configured"}
	}
	terms, err := r.model.TopicTerms(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, &UnknownTopicError{ID: topicID, Reason: "topic model has no terms"}
	}
	return RankTerms(terms, n), nil
}

// RankTerms returns at most n terms, heaviest first. Equal weights keep their
// input order and a repeated word keeps only its first occurrence. Negative
// or NaN weights are dropped. terms is not modified.
func RankTerms(terms []models.TopicWordWeight, n int) []models.TopicWordWeight {
	valid := make([]models.TopicWordWeight, 0, len(terms))
	for _, term := range terms {
		if math.IsNaN(term.Weight) || term.Weight < 0 {
			continue
		}
		valid = append(valid, term)
	}
	slices.SortStableFunc(valid, func(a, b models.TopicWordWeight) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return 0
		}
	})

	if n < 0 {
		n = 0
	}
	seen := make(map[string]struct{}, len(valid))
	top := make([]models.TopicWordWeight, 0, min(n, len(valid)))
	for _, term := range valid {
		if len(top) == n {
			break
		}
		if _, dup := seen[term.Word]; dup {
			continue
		}
		seen[term.Word] = struct{}{}
		top = append(top, term)
	}
	return top
}
