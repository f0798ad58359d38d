package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/partyscope/config"
	"github.com/spacesedan/partyscope/internal/app"
	"github.com/spacesedan/partyscope/internal/clients"
	"github.com/spacesedan/partyscope/internal/labelgen"
	"github.com/spacesedan/partyscope/internal/logging"
)

func main() {
	ids := flag.String("topics", "0,1,2,3,4", "comma separated topic ids to name")
	flag.Parse()

	config.LoadEnv(config.Env())
	cfg, err := config.Load()
	if err != nil {
		slog.Error("[LabelGenerator] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	topicIDs, err := parseIDs(*ids)
	if err != nil {
		slog.Error("[LabelGenerator] Invalid -topics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute*2)
	defer cancel()

	model, err := app.TopicModel(cfg)
	if err != nil {
		slog.Error("[LabelGenerator] Topic model unavailable", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer clients.CloseValkey()
	ai, err := clients.GetOpenAIClient(cfg.OpenAIAPIKey)
	if err != nil {
		os.Exit(1)
	}

	table, err := labelgen.New(labelgen.NewOpenAICompleter(ai), model).Generate(ctx, topicIDs)
	if err != nil {
		slog.Error("[LabelGenerator] Label generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(table.Labels()); err != nil {
		os.Exit(1)
	}
	slog.Info("[LabelGenerator] Label generation completed successfully", slog.Int("topics", table.Len()))
}

func parseIDs(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
