package topicmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/partyscope/internal/clients"
	"github.com/spacesedan/partyscope/internal/models"
)

const (
	DefaultTermsKey = "topicmodel:terms"
	valkeyRetries   = 3
)

// Valkey serves terms stored as one hash per model: the field is the topic
// id and the value the JSON encoded term list in model order.
type Valkey struct {
	vc  *clients.ValkeyClient
	key string
}

func NewValkey(vc *clients.ValkeyClient, key string) *Valkey {
	if key == "" {
		key = DefaultTermsKey
	}
	return &Valkey{vc: vc, key: key}
}

// TopicTerms returns nil when the hash has no field for the topic.
func (v *Valkey) TopicTerms(ctx context.Context, topicID int) ([]models.TopicWordWeight, error) {
	cmd := v.vc.B().Hget().Key(v.key).Field(strconv.Itoa(topicID)).Build()
	res := v.vc.DoWithRetry(ctx, cmd, valkeyRetries)

	raw, err := res.ToString()
	if valkey.IsValkeyNil(err) {
		slog.Warn("[TopicModel] No terms stored for topic",
			slog.String("key", v.key),
			slog.Int("topic_id", topicID))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[TopicModel] fetch terms for topic %d: %w", topicID, err)
	}
	return decodeTerms([]byte(raw))
}

// Publish writes every topic's terms into the hash in one HSET.
func (v *Valkey) Publish(ctx context.Context, terms map[int][]models.TopicWordWeight) error {
	if len(terms) == 0 {
		return nil
	}
	ids := make([]int, 0, len(terms))
	for id := range terms {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	cmd := v.vc.B().Hset().Key(v.key).FieldValue()
	for _, id := range ids {
		encoded, err := json.Marshal(terms[id])
		if err != nil {
			return fmt.Errorf("[TopicModel] encode terms for topic %d: %w", id, err)
		}
		cmd = cmd.FieldValue(strconv.Itoa(id), string(encoded))
	}

	if err := v.vc.DoWithRetry(ctx, cmd.Build(), valkeyRetries).Error(); err != nil {
		return fmt.Errorf("[TopicModel] publish terms: %w", err)
	}
	slog.Info("[TopicModel] Published topic terms",
		slog.String("key", v.key),
		slog.Int("topics", len(ids)))
	return nil
}

func decodeTerms(data []byte) ([]models.TopicWordWeight, error) {
	var terms []models.TopicWordWeight
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, fmt.Errorf("[TopicModel] decode stored terms: %w", err)
	}
	return terms, nil
}
