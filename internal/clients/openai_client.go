package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	openAIRequestTimeout = 60 * time.Second
)

var (
	openAIClientInstance *OpenAIClient
	openAIOnce           sync.Once
)

type OpenAIClient struct {
	Client *openai.Client
}

func GetOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		slog.Error("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
		return nil, errors.New("[OpenAIClient] missing OPENAI_API_KEY")
	}
	openAIOnce.Do(func() {
		openAIClientInstance = &OpenAIClient{
			Client: openai.NewClient(
				option.WithAPIKey(apiKey),
				option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
				option.WithMaxRetries(MAX_RETRIES),
			),
		}
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout", slog.Duration("timeout", openAIRequestTimeout))
	})
	return openAIClientInstance, nil
}
