package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	RecordSourceCSV      = "csv"
	RecordSourceDynamoDB = "dynamodb"
)

type Config struct {
	Env      string
	LogLevel string

	RecordSource     string
	RecordsCSVPath   string
	RecordsTableName string
	InvalidPolicy    string

	AWSEndpoint string
	AWSRegion   string

	LabelsFile     string
	TopicTermsFile string
	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
	TopicTermsKey  string

	WordCloudSize int
	OpenAIAPIKey  string
}

// Env returns APP_ENV, defaulting to dev.
func Env() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	return env
}

// Load reads the configuration from the environment. Call LoadEnv first to
// pull in the .env file for the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              Env(),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		RecordSource:     strings.ToLower(getenv("RECORD_SOURCE", RecordSourceCSV)),
		RecordsCSVPath:   getenv("RECORDS_CSV_PATH", "data/processed.csv"),
		RecordsTableName: getenv("RECORDS_TABLE_NAME", "PoliticalTweets"),
		InvalidPolicy:    getenv("INVALID_RECORD_POLICY", "abort"),
		AWSEndpoint:      os.Getenv("AWS_ENDPOINT"),
		AWSRegion:        getenv("AWS_REGION", "us-west-2"),
		LabelsFile:       os.Getenv("TOPIC_LABELS_FILE"),
		TopicTermsFile:   os.Getenv("TOPIC_TERMS_FILE"),
		ValkeyAddress:    os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword:   os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:        os.Getenv("VALKEY_TLS") == "true",
		TopicTermsKey:    getenv("TOPIC_TERMS_KEY", "topicmodel:terms"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}

	size, err := strconv.Atoi(getenv("WORD_CLOUD_SIZE", "100"))
	if err != nil || size <= 0 {
		return Config{}, fmt.Errorf("WORD_CLOUD_SIZE must be a positive integer, got %q", os.Getenv("WORD_CLOUD_SIZE"))
	}
	cfg.WordCloudSize = size

	switch cfg.RecordSource {
	case RecordSourceCSV, RecordSourceDynamoDB:
	default:
		return Config{}, fmt.Errorf("RECORD_SOURCE must be %q or %q, got %q", RecordSourceCSV, RecordSourceDynamoDB, cfg.RecordSource)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
