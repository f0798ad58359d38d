package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spacesedan/partyscope/config"
	"github.com/spacesedan/partyscope/internal/app"
	"github.com/spacesedan/partyscope/internal/augment"
	"github.com/spacesedan/partyscope/internal/clients"
	"github.com/spacesedan/partyscope/internal/logging"
	"github.com/spacesedan/partyscope/internal/report"
	"github.com/spacesedan/partyscope/internal/topics"
	"github.com/spacesedan/partyscope/internal/wordfreq"
)

func main() {
	topic := flag.String("topic", "", "topic display name to report on (defaults to the first label)")
	list := flag.Bool("list", false, "print the topic names and exit")
	words := flag.Int("words", 0, "word cloud size (overrides WORD_CLOUD_SIZE)")
	flag.Parse()

	config.LoadEnv(config.Env())
	cfg, err := config.Load()
	if err != nil {
		slog.Error("[TopicReport] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	if err := run(cfg, *topic, *list, *words); err != nil {
		slog.Error("[TopicReport] Failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, topic string, list bool, words int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	table, err := app.LoadLabels(cfg)
	if err != nil {
		return err
	}
	if list {
		for _, name := range topics.NewResolver(table, nil).Names() {
			fmt.Println(name)
		}
		return nil
	}

	model, err := app.TopicModel(cfg)
	if err != nil {
		return err
	}
	defer clients.CloseValkey()
	resolver := topics.NewResolver(table, model)

	policy, err := augment.ParsePolicy(cfg.InvalidPolicy)
	if err != nil {
		return err
	}
	raw, err := app.LoadRecords(ctx, cfg)
	if err != nil {
		return err
	}
	records, err := augment.New(resolver, policy).Augment(raw)
	if err != nil {
		return err
	}

	if topic == "" {
		names := resolver.Names()
		if len(names) == 0 {
			return fmt.Errorf("label table is empty")
		}
		topic = names[0]
	}
	if words <= 0 {
		words = cfg.WordCloudSize
	}

	extractor := wordfreq.New(resolver, wordfreq.WithDefaultCount(words))
	rep, err := report.NewBuilder(resolver, extractor, records).Build(ctx, topic)
	if err != nil {
		return err
	}

	slog.Info("[TopicReport] Report built",
		slog.String("topic", topic),
		slog.Int("records", len(records)),
		slog.String("policy", policy.String()))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
