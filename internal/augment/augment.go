// Package augment derives the year, topic name and parsed sentiment of raw
// records once, at load time.
package augment

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/partyscope/internal/models"
	"github.com/spacesedan/partyscope/internal/topics"
)

// Policy decides what happens to a record with a malformed timestamp or
// sentiment label. Unknown topics always abort.
type Policy int

const (
	// AbortOnInvalid fails the whole batch on the first malformed record.
	AbortOnInvalid Policy = iota
	// SkipInvalid logs and drops malformed records.
	SkipInvalid
)

// ParsePolicy maps "abort" and "skip" to a Policy. Empty means abort.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return AbortOnInvalid, nil
	case "skip":
		return SkipInvalid, nil
	default:
		return 0, fmt.Errorf("unknown invalid record policy %q", s)
	}
}

func (p Policy) String() string {
	if p == SkipInvalid {
		return "skip"
	}
	return "abort"
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp tries each accepted layout in turn. The result keeps the
// offset written in ts; values without one are read as UTC.
func ParseTimestamp(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Year returns the calendar year of ts in its own offset.
func Year(ts string) (int, bool) {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

// Augmenter attaches derived fields to records.
type Augmenter struct {
	resolver *topics.Resolver
	policy   Policy
}

func New(resolver *topics.Resolver, policy Policy) *Augmenter {
	return &Augmenter{resolver: resolver, policy: policy}
}

// Augment returns a new slice; records is left untouched.
func (a *Augmenter) Augment(records []models.Record) ([]models.AugmentedRecord, error) {
	out := make([]models.AugmentedRecord, 0, len(records))
	skipped := 0
	for _, rec := range records {
		aug, err := a.augmentOne(rec)
		if err == nil {
			out = append(out, aug)
			continue
		}
		if a.policy == SkipInvalid && !errors.Is(err, topics.ErrUnknownTopic) {
			slog.Warn("[Augmenter] Skipping malformed record",
				slog.String("record_id", rec.ID),
				slog.String("error", err.Error()))
			skipped++
			continue
		}
		return nil, err
	}

	if skipped > 0 {
		slog.Info("[Augmenter] Augmented records with skips",
			slog.Int("kept", len(out)),
			slog.Int("skipped", skipped))
	}
	return out, nil
}

func (a *Augmenter) augmentOne(rec models.Record) (models.AugmentedRecord, error) {
	ts, ok := ParseTimestamp(rec.Timestamp)
	if !ok {
		return models.AugmentedRecord{}, &InvalidTimestampError{RecordID: rec.ID, Value: rec.Timestamp}
	}
	label, ok := models.ParseSentiment(rec.Sentiment)
	if !ok {
		return models.AugmentedRecord{}, &InvalidSentimentError{RecordID: rec.ID, Value: rec.Sentiment}
	}
	name, err := a.topicName(&rec)
	if err != nil {
		return models.AugmentedRecord{}, fmt.Errorf("record %q: %w", rec.ID, err)
	}
	return models.AugmentedRecord{
		Record:    rec,
		Year:      ts.Year(),
		Date:      ts.Format(time.DateOnly),
		TopicName: name,
		Label:     label,
	}, nil
}

// topicName resolves the record's topic. A display name is checked against
// the label table and its id is written back into rec.
func (a *Augmenter) topicName(rec *models.Record) (string, error) {
	if rec.AssignedTopic == "" {
		return a.resolver.ResolveName(rec.TopicID)
	}
	id, err := a.resolver.ResolveID(rec.AssignedTopic)
	if err != nil {
		return "", err
	}
	rec.TopicID = id
	return rec.AssignedTopic, nil
}
