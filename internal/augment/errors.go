package augment

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidSentiment = errors.New("invalid sentiment")
)

// InvalidTimestampError reports a record whose timestamp matches none of the
// accepted layouts.
type InvalidTimestampError struct {
	RecordID string
	Value    string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("record %q: unparsable timestamp %q", e.RecordID, e.Value)
}

func (e *InvalidTimestampError) Is(target error) bool {
	return target == ErrInvalidTimestamp
}

// InvalidSentimentError reports a record whose sentiment is not a known label.
type InvalidSentimentError struct {
	RecordID string
	Value    string
}

func (e *InvalidSentimentError) Error() string {
	return fmt.Sprintf("record %q: unknown sentiment label %q", e.RecordID, e.Value)
}

func (e *InvalidSentimentError) Is(target error) bool {
	return target == ErrInvalidSentiment
}
