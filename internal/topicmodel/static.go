// Package topicmodel provides read-only topic models that serve the terms of
// an already trained model.
package topicmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spacesedan/partyscope/internal/models"
)

// Static serves terms held in memory.
type Static struct {
	terms map[int][]models.TopicWordWeight
}

// NewStatic copies terms so later changes by the caller are not observed.
func NewStatic(terms map[int][]models.TopicWordWeight) *Static {
	cp := make(map[int][]models.TopicWordWeight, len(terms))
	for id, t := range terms {
		cp[id] = append([]models.TopicWordWeight(nil), t...)
	}
	return &Static{terms: cp}
}

// TopicTerms returns a copy of the topic's terms, or nil when unknown.
func (s *Static) TopicTerms(_ context.Context, topicID int) ([]models.TopicWordWeight, error) {
	t, ok := s.terms[topicID]
	if !ok {
		return nil, nil
	}
	return append([]models.TopicWordWeight(nil), t...), nil
}

// TopicIDs lists the topics the model knows about, unordered.
func (s *Static) TopicIDs() []int {
	ids := make([]int, 0, len(s.terms))
	for id := range s.terms {
		ids = append(ids, id)
	}
	return ids
}

// Terms returns every topic's terms; the result must not be modified.
func (s *Static) Terms() map[int][]models.TopicWordWeight {
	return s.terms
}

// LoadFile reads a JSON export of the form {"0": [{"word": "great", "weight": 0.0137}, ...]}.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[TopicModel] read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses the JSON export format used by LoadFile.
func Decode(data []byte) (*Static, error) {
	var raw map[string][]models.TopicWordWeight
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("[TopicModel] decode terms: %w", err)
	}
	terms := make(map[int][]models.TopicWordWeight, len(raw))
	for key, t := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("[TopicModel] topic key %q is not an integer", key)
		}
		terms[id] = t
	}
	return &Static{terms: terms}, nil
}
