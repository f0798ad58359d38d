package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// GroupKey buckets records before a metric is derived. Fields that are not
// part of a given grouping stay at their zero value.
type GroupKey struct {
	Year      int
	Party     string
	Sentiment Sentiment
}

// MetricRow is one aggregation result. Only the fields relevant to the
// metric family that produced it are populated.
type MetricRow struct {
	Year       int        `json:"year"`
	Party      string     `json:"party"`
	Sentiment  *Sentiment `json:"sentiment,omitempty"`
	Count      int        `json:"count"`
	Positive   int        `json:"positive"`
	Negative   int        `json:"negative"`
	Ratio      *Ratio     `json:"ratio,omitempty"`
	Percentage float64    `json:"percentage"`
}

// RatioValue returns the ratio, or NaN for rows of other metric families.
func (m MetricRow) RatioValue() float64 {
	if m.Ratio == nil {
		return math.NaN()
	}
	return float64(*m.Ratio)
}

// Ratio is a positive/negative ratio. +Inf is a valid value meaning "no
// negative records", and is encoded in JSON as the string "Infinity". NaN
// has no defined ratio and is encoded as null.
type Ratio float64

func (r Ratio) IsInf() bool {
	return math.IsInf(float64(r), 1)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.IsInf() {
		return json.Marshal("Infinity")
	}
	if math.IsNaN(float64(r)) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(r), 'g', -1, 64)), nil
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio(math.NaN())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "Infinity" {
			*r = Ratio(math.Inf(1))
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*r = Ratio(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}

// TopicCount is one bar of the topic distribution.
type TopicCount struct {
	TopicName string `json:"topic_name"`
	Count     int    `json:"count"`
}

// SentimentPoint is one day of a party's sentiment timeline.
type SentimentPoint struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Net      int    `json:"net"`
}

// PartyTimeline is the day-by-day sentiment of one party for a topic.
type PartyTimeline struct {
	Party  string           `json:"party"`
	Points []SentimentPoint `json:"points"`
}
