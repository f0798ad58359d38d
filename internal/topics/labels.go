package topics

import (
	"fmt"
	"strings"

	"github.com/spacesedan/partyscope/internal/models"
)

// LabelTable is an immutable, injective topic id to display name mapping.
// The zero value is an empty table.
type LabelTable struct {
	labels []models.TopicLabel
	byID   map[int]string
	byName map[string]int
}

// NewLabelTable validates the entries and keeps their declaration order.
func NewLabelTable(labels []models.TopicLabel) (LabelTable, error) {
	t := LabelTable{
		labels: make([]models.TopicLabel, 0, len(labels)),
		byID:   make(map[int]string, len(labels)),
		byName: make(map[string]int, len(labels)),
	}
	for _, l := range labels {
		if strings.TrimSpace(l.Name) == "" {
			return LabelTable{}, fmt.Errorf("topic %d has an empty display name", l.ID)
		}
		if prev, ok := t.byID[l.ID]; ok {
			return LabelTable{}, fmt.Errorf("topic %d declared twice (%q and %q)", l.ID, prev, l.Name)
		}
		if prev, ok := t.byName[l.Name]; ok {
			return LabelTable{}, fmt.Errorf("display name %q shared by topics %d and %d", l.Name, prev, l.ID)
		}
		t.byID[l.ID] = l.Name
		t.byName[l.Name] = l.ID
		t.labels = append(t.labels, l)
	}
	return t, nil
}

// MustLabelTable is NewLabelTable for tables fixed at compile time.
func MustLabelTable(labels []models.TopicLabel) LabelTable {
	t, err := NewLabelTable(labels)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultLabels are the names given to the five LDA topics trained on the
// congressional tweet corpus.
func DefaultLabels() []models.TopicLabel {
	return []models.TopicLabel{
		{ID: 0, Name: "Appreciation and Gratitude"},
		{ID: 1, Name: "American Families and Values"},
		{ID: 2, Name: "Civic Engagement and Honor"},
		{ID: 3, Name: "Tax Policy and Economic Issues"},
		{ID: 4, Name: "Legislative Action and Health Care"},
	}
}

func (t LabelTable) Len() int {
	return len(t.labels)
}

// Labels returns a copy of the entries in declaration order.
func (t LabelTable) Labels() []models.TopicLabel {
	return append([]models.TopicLabel(nil), t.labels...)
}
