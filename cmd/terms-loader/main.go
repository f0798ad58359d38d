// Command terms-loader seeds the stores the reporting commands read from:
// topic terms into Valkey and, with -records, posts from a CSV export into
// DynamoDB.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/spacesedan/partyscope/config"
	"github.com/spacesedan/partyscope/internal/app"
	"github.com/spacesedan/partyscope/internal/clients"
	"github.com/spacesedan/partyscope/internal/loader"
	"github.com/spacesedan/partyscope/internal/logging"
	"github.com/spacesedan/partyscope/internal/topicmodel"
)

func main() {
	termsFile := flag.String("terms", "", "JSON topic terms export to publish to Valkey")
	recordsFile := flag.String("records", "", "CSV posts export to write to DynamoDB")
	flag.Parse()

	config.LoadEnv(config.Env())
	cfg, err := config.Load()
	if err != nil {
		slog.Error("[TermsLoader] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *termsFile != "" {
		if err := publishTerms(ctx, cfg, *termsFile); err != nil {
			slog.Error("[TermsLoader] Publishing terms failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if *recordsFile != "" {
		if err := importRecords(ctx, cfg, *recordsFile); err != nil {
			slog.Error("[TermsLoader] Importing records failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

func publishTerms(ctx context.Context, cfg config.Config, path string) error {
	model, err := topicmodel.LoadFile(path)
	if err != nil {
		return err
	}
	vc, err := app.Valkey(cfg)
	if err != nil {
		return err
	}
	defer clients.CloseValkey()
	return topicmodel.NewValkey(vc, cfg.TopicTermsKey).Publish(ctx, model.Terms())
}

func importRecords(ctx context.Context, cfg config.Config, path string) error {
	records, err := loader.LoadCSVFile(path)
	if err != nil {
		return err
	}
	store, err := app.RecordStore(ctx, cfg)
	if err != nil {
		return err
	}
	return store.StoreRecords(ctx, records)
}
