package cmd

import (
	"context"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/YagYk/FairDeal/internal/benchmark"
	"github.com/YagYk/FairDeal/internal/pipeline"
	"github.com/YagYk/FairDeal/internal/store"
	"github.com/YagYk/FairDeal/pkg/llm"
)

// loadBenchmarkEngine reads market data from the configured directory when
// it exists, falling back to the single-file dataset.
func loadBenchmarkEngine() (*benchmark.Engine, error) {
	standards, err := benchmark.LoadStandards(cfg.Data.StandardsPath)
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(cfg.Data.MarketDataDir); err == nil && info.IsDir() {
		records, err := benchmark.LoadDatasetDir(cfg.Data.MarketDataDir)
		if err != nil {
			return nil, err
		}
		return benchmark.NewEngine(records, standards), nil
	}

	records, err := benchmark.LoadDataset(cfg.Data.MarketDataPath)
	if err != nil {
		return nil, eris.Wrap(err, "cmd: no market data found")
	}
	return benchmark.NewEngine(records, standards), nil
}

// buildPipeline assembles the analysis pipeline with whatever optional
// collaborators the configuration enables. The returned cleanup closes the
// store.
func buildPipeline(ctx context.Context, useLLM bool) (*pipeline.Pipeline, func(), error) {
	engine, err := loadBenchmarkEngine()
	if err != nil {
		return nil, nil, err
	}

	var opts []pipeline.Option
	cleanup := func() {}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		zap.L().Warn("cmd: run cache unavailable", zap.Error(err))
	} else {
		opts = append(opts, pipeline.WithStore(st))
		cleanup = func() {
			if err := st.Close(); err != nil {
				zap.L().Warn("cmd: close store", zap.Error(err))
			}
		}
	}

	if useLLM && cfg.Anthropic.Key != "" {
		client := llm.New(cfg.Anthropic.Key,
			llm.WithModel(cfg.Anthropic.Model),
			llm.WithTimeout(time.Duration(cfg.Anthropic.TimeoutSecs)*time.Second),
			llm.WithLimiter(rate.NewLimiter(rate.Limit(cfg.Anthropic.RequestsPerMin/60), 1)),
		)
		opts = append(opts, pipeline.WithLLM(client))
	}

	return pipeline.New(cfg, engine, opts...), cleanup, nil
}
