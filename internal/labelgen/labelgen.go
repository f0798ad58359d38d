// Package labelgen names topics by showing their top words to a chat model.
package labelgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"

	"github.com/spacesedan/partyscope/internal/clients"
	"github.com/spacesedan/partyscope/internal/models"
	"github.com/spacesedan/partyscope/internal/topics"
)

const (
	wordsPerTopic    = 10
	maxAttempts      = 3
	retryDelay       = 2 * time.Second
	systemPromptText = `You name topics produced by an LDA model trained on tweets from members of the US Congress.
For every topic you receive its id and its most salient words, heaviest first.
Give each topic a short, human readable title of two to six words in Title Case.
Every title must be distinct.

You MUST return only valid JSON, formatted exactly as follows:
{"topics": [{"id": 0, "name": "XXX"}]}
No Markdown, no explanations, no trailing commas.`
)

// Completer sends one system + user exchange to a chat model and returns the
// raw reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// TermSource is the topic model the generator reads words from.
type TermSource interface {
	TopicTerms(ctx context.Context, topicID int) ([]models.TopicWordWeight, error)
}

type Generator struct {
	completer Completer
	terms     TermSource
	sleep     func(time.Duration)
}

func New(completer Completer, terms TermSource) *Generator {
	return &Generator{completer: completer, terms: terms, sleep: time.Sleep}
}

type topicWords struct {
	ID    int      `json:"id"`
	Words []string `json:"words"`
}

type namedTopics struct {
	Topics []models.TopicLabel `json:"topics"`
}

// Generate returns a valid label table covering every id in topicIDs, in the
// order given. Topics the model did not name, or named twice, fall back to
// "Topic <id>" so the table stays injective.
func (g *Generator) Generate(ctx context.Context, topicIDs []int) (topics.LabelTable, error) {
	prompt := make([]topicWords, 0, len(topicIDs))
	for _, id := range topicIDs {
		terms, err := g.terms.TopicTerms(ctx, id)
		if err != nil {
			return topics.LabelTable{}, fmt.Errorf("[LabelGenerator] terms for topic %d: %w", id, err)
		}
		top := topics.RankTerms(terms, wordsPerTopic)
		if len(top) == 0 {
			return topics.LabelTable{}, fmt.Errorf("[LabelGenerator] %w", &topics.UnknownTopicError{ID: id, Reason: "topic model has no terms"})
		}
		words := make([]string, 0, len(top))
		for _, t := range top {
			words = append(words, t.Word)
		}
		prompt = append(prompt, topicWords{ID: id, Words: words})
	}

	body, err := json.Marshal(prompt)
	if err != nil {
		return topics.LabelTable{}, err
	}

	var named namedTopics
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			g.sleep(retryDelay)
		}
		reply, err := g.completer.Complete(ctx, systemPromptText, string(body))
		if err != nil {
			lastErr = err
			slog.Warn("[LabelGenerator] Completion failed, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			continue
		}
		named = namedTopics{}
		if err := json.Unmarshal([]byte(cleanOpenAIResponse(reply)), &named); err != nil {
			lastErr = err
			slog.Warn("[LabelGenerator] Failed to parse JSON into struct, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			continue
		}
		lastErr = nil
		break
	}
	if lastErr != nil {
		return topics.LabelTable{}, fmt.Errorf("[LabelGenerator] no usable reply after %d attempts: %w", maxAttempts, lastErr)
	}

	return topics.NewLabelTable(assemble(topicIDs, named.Topics))
}

func assemble(topicIDs []int, named []models.TopicLabel) []models.TopicLabel {
	byID := make(map[int]string, len(named))
	for _, l := range named {
		if _, dup := byID[l.ID]; !dup {
			byID[l.ID] = strings.TrimSpace(l.Name)
		}
	}

	used := make(map[string]struct{}, len(topicIDs))
	labels := make([]models.TopicLabel, 0, len(topicIDs))
	for _, id := range topicIDs {
		name := byID[id]
		if _, taken := used[name]; name == "" || taken {
			slog.Warn("[LabelGenerator] Topic left unnamed or named twice, using fallback",
				slog.Int("topic_id", id),
				slog.String("name", name))
			name = fmt.Sprintf("Topic %d", id)
		}
		used[name] = struct{}{}
		labels = append(labels, models.TopicLabel{ID: id, Name: name})
	}
	return labels
}

func cleanOpenAIResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	response = strings.ReplaceAll(response, "“", `"`) // Left curly quote
	response = strings.ReplaceAll(response, "”", `"`) // Right curly quote

	return strings.TrimSpace(response)
}

// OpenAICompleter backs Completer with the chat completions API.
type OpenAICompleter struct {
	client *clients.OpenAIClient
	model  openai.ChatModel
}

func NewOpenAICompleter(client *clients.OpenAIClient) *OpenAICompleter {
	return &OpenAICompleter{client: client, model: openai.ChatModelGPT4oMini}
}

func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		}),
		Model:       openai.F(c.model),
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.New("empty completion")
	}
	slog.Info("[LabelGenerator] OpenAI Response Finish Reason",
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)))
	return resp.Choices[0].Message.Content, nil
}
