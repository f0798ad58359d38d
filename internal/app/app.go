// Package app wires configuration to the record sources, label table and
// topic model shared by the commands.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spacesedan/partyscope/config"
	"github.com/spacesedan/partyscope/internal/clients"
	"github.com/spacesedan/partyscope/internal/db"
	"github.com/spacesedan/partyscope/internal/loader"
	"github.com/spacesedan/partyscope/internal/models"
	"github.com/spacesedan/partyscope/internal/topicmodel"
	"github.com/spacesedan/partyscope/internal/topics"
)

// LoadRecords reads every post from the configured source.
func LoadRecords(ctx context.Context, cfg config.Config) ([]models.Record, error) {
	switch cfg.RecordSource {
	case config.RecordSourceDynamoDB:
		store, err := RecordStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store.GetAllRecords(ctx)
	default:
		return loader.LoadCSVFile(cfg.RecordsCSVPath)
	}
}

func RecordStore(ctx context.Context, cfg config.Config) (*db.RecordStore, error) {
	client, err := clients.GetDynamoDBClient(ctx, clients.AWSOptions{
		Region:   cfg.AWSRegion,
		Endpoint: cfg.AWSEndpoint,
	})
	if err != nil {
		return nil, err
	}
	return db.NewRecordStore(client, cfg.RecordsTableName), nil
}

// LoadLabels reads the label table file when configured and falls back to
// the built-in labels otherwise.
func LoadLabels(cfg config.Config) (topics.LabelTable, error) {
	if cfg.LabelsFile == "" {
		return topics.NewLabelTable(topics.DefaultLabels())
	}
	data, err := os.ReadFile(cfg.LabelsFile)
	if err != nil {
		return topics.LabelTable{}, fmt.Errorf("[App] read labels: %w", err)
	}
	var labels []models.TopicLabel
	if err := json.Unmarshal(data, &labels); err != nil {
		return topics.LabelTable{}, fmt.Errorf("[App] decode labels %s: %w", cfg.LabelsFile, err)
	}
	return topics.NewLabelTable(labels)
}

// TopicModel serves terms from the exported terms file when configured,
// otherwise from Valkey.
func TopicModel(cfg config.Config) (topics.TopicModel, error) {
	if cfg.TopicTermsFile != "" {
		slog.Info("[App] Serving topic terms from file", slog.String("path", cfg.TopicTermsFile))
		model, err := topicmodel.LoadFile(cfg.TopicTermsFile)
		if err != nil {
			return nil, err
		}
		return model, nil
	}
	vc, err := Valkey(cfg)
	if err != nil {
		return nil, err
	}
	return topicmodel.NewValkey(vc, cfg.TopicTermsKey), nil
}

func Valkey(cfg config.Config) (*clients.ValkeyClient, error) {
	if cfg.ValkeyAddress == "" {
		return nil, errors.New("[App] neither TOPIC_TERMS_FILE nor VALKEY_INIT_ADDRESS is set")
	}
	return clients.InitValkey(clients.ValkeyOptions{
		Address:  cfg.ValkeyAddress,
		Password: cfg.ValkeyPassword,
		TLS:      cfg.ValkeyTLS,
	})
}
