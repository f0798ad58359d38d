// Package loader reads exported post tables into records.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/spacesedan/partyscope/internal/models"
	"github.com/spacesedan/partyscope/internal/sentiment"
)

// Accepted header names per field, compared case-insensitively.
var columnAliases = map[string][]string{
	"id":         {"id", "tweet_id", "post_id"},
	"party":      {"party"},
	"timestamp":  {"timestamp", "created_at", "date"},
	"sentiment":  {"sentiment", "sentiment_label", "label"},
	"topic_id":   {"topic_id", "dominant_topic", "topic"},
	"topic_name": {"assigned topic", "assigned_topic", "topic_name"},
	"text":       {"text", "tweet", "content"},
}

var requiredColumns = []string{"party", "timestamp", "sentiment"}

// LoadCSVFile opens path and reads it with ReadCSV.
func LoadCSVFile(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[Loader] open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("[Loader] %s: %w", path, err)
	}
	slog.Info("[Loader] Loaded records from CSV",
		slog.String("path", path),
		slog.Int("count", len(records)))
	return records, nil
}

// ReadCSV reads a headed CSV table. Rows without an id get a random one and
// sentiment cells go through sentiment.Normalize. The topic is either an
// integer id column or a display name column such as "Assigned Topic". A
// missing required column or a non-integer topic id fails the load.
func ReadCSV(r io.Reader) ([]models.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty CSV, header row missing")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []models.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var topicID int
		if _, ok := cols["topic_id"]; ok {
			topicCell := strings.TrimSpace(cell(row, cols, "topic_id"))
			topicID, err = strconv.Atoi(topicCell)
			if err != nil {
				return nil, fmt.Errorf("line %d: topic id %q is not an integer", line, topicCell)
			}
		}
		topicName := strings.TrimSpace(cell(row, cols, "topic_name"))
		if _, ok := cols["topic_name"]; ok && topicName == "" {
			return nil, fmt.Errorf("line %d: assigned topic is empty", line)
		}

		id := strings.TrimSpace(cell(row, cols, "id"))
		if id == "" {
			id = uuid.NewString()
		}

		records = append(records, models.Record{
			ID:            id,
			Party:         strings.TrimSpace(cell(row, cols, "party")),
			Timestamp:     strings.TrimSpace(cell(row, cols, "timestamp")),
			Sentiment:     sentiment.Normalize(cell(row, cols, "sentiment"), cell(row, cols, "text")),
			TopicID:       topicID,
			AssignedTopic: topicName,
		})
	}
	return records, nil
}

func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range columnAliases {
			if _, seen := cols[field]; seen {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					cols[field] = i
				}
			}
		}
	}
	for _, field := range requiredColumns {
		if _, ok := cols[field]; !ok {
			return nil, fmt.Errorf("missing required column %q", field)
		}
	}
	_, hasID := cols["topic_id"]
	_, hasName := cols["topic_name"]
	if !hasID && !hasName {
		return nil, errors.New(`missing required column "topic_id" or "assigned topic"`)
	}
	return cols, nil
}

func cell(row []string, cols map[string]int, field string) string {
	i, ok := cols[field]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
