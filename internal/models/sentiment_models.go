package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Sentiment is the discrete polarity attached to a record.
type Sentiment int

const (
	Negative Sentiment = iota
	Positive
)

// Sentiments lists every polarity in output order.
var Sentiments = []Sentiment{Negative, Positive}

var sentimentNames = map[Sentiment]string{
	Negative: "NEGATIVE",
	Positive: "POSITIVE",
}

func (s Sentiment) String() string {
	if name, ok := sentimentNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sentiment(%d)", int(s))
}

// ParseSentiment accepts the label case-insensitively, surrounding spaces ignored.
func ParseSentiment(label string) (Sentiment, bool) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "NEGATIVE":
		return Negative, true
	case "POSITIVE":
		return Positive, true
	default:
		return 0, false
	}
}

func (s Sentiment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Sentiment) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, ok := ParseSentiment(label)
	if !ok {
		return fmt.Errorf("unknown sentiment label %q", label)
	}
	*s = parsed
	return nil
}
