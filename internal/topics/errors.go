package topics

import (
	"errors"
	"fmt"
)

// ErrUnknownTopic matches every UnknownTopicError via errors.Is.
var ErrUnknownTopic = errors.New("unknown topic")

// UnknownTopicError reports a topic id or name missing from the label table,
// or a topic the model has no terms for. Either way the label table and the
// trained model disagree.
type UnknownTopicError struct {
	ID     int
	Name   string
	ByName bool
	Reason string
}

func (e *UnknownTopicError) Error() string {
	var msg string
	if e.ByName {
		msg = fmt.Sprintf("unknown topic name %q", e.Name)
	} else {
		msg = fmt.Sprintf("unknown topic id %d", e.ID)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnknownTopicError) Is(target error) bool {
	return target == ErrUnknownTopic
}
