// Package pipeline orchestrates one full contract analysis: extraction,
// market benchmarking, red-flag detection, scoring, and the negotiation
// playbook, with optional LLM fallback and run caching.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/YagYk/FairDeal/internal/benchmark"
	"github.com/YagYk/FairDeal/internal/config"
	"github.com/YagYk/FairDeal/internal/extract"
	"github.com/YagYk/FairDeal/internal/model"
	"github.com/YagYk/FairDeal/internal/negotiation"
	"github.com/YagYk/FairDeal/internal/redflag"
	"github.com/YagYk/FairDeal/internal/scoring"
	"github.com/YagYk/FairDeal/internal/store"
	"github.com/YagYk/FairDeal/pkg/llm"
)

// Pipeline wires the analysis stages together. The LLM client and the store
// are optional; a nil client means pattern-only extraction and no
// narration, a nil store disables caching.
type Pipeline struct {
	cfg       *config.Config
	extractor *extract.Extractor
	bench     *benchmark.Engine
	scorer    *scoring.Engine
	llm       llm.Client
	store     store.Store
}

// Option configures optional collaborators.
type Option func(*Pipeline)

func WithLLM(c llm.Client) Option {
	return func(p *Pipeline) { p.llm = c }
}

func WithStore(s store.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

func New(cfg *config.Config, bench *benchmark.Engine, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		extractor: extract.NewExtractor(),
		bench:     bench,
		scorer:    scoring.NewEngine(cfg.Scoring),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analyze runs the full pipeline over one document. Identical document text
// is served from the run cache when a store is configured.
func (p *Pipeline) Analyze(ctx context.Context, doc *model.Document, userCtx model.Context) (*model.AnalysisResult, error) {
	textHash := hashText(doc.FullText)

	if cached := p.lookupCache(ctx, textHash); cached != nil {
		return cached, nil
	}

	res := p.extractor.Extract(doc)
	p.fallbackExtract(ctx, doc, res)

	benchResult := p.runBenchmarks(ctx, res.Fields, userCtx)

	cohortSize := 0
	if benchResult != nil {
		cohortSize = benchResult.CohortSize
	}
	sctx := detectContext(userCtx, res.Fields, cohortSize)

	in := buildScoringInput(res, benchResult, sctx, userCtx, len(doc.FullText), p.cfg.Scoring)
	in.RedFlags, in.FavorableTerms = redflag.Detect(in)

	score := p.scorer.Score(in, sctx)

	points := negotiation.Build(in, benchResult)
	if !sctx.SalaryNegotiable {
		points = dropPoint(points, "SALARY")
	}

	result := &model.AnalysisResult{
		Extraction:     res.Fields,
		Benchmark:      benchResult,
		Score:          score,
		RedFlags:       in.RedFlags,
		FavorableTerms: in.FavorableTerms,
		Negotiation:    points,
		Warnings:       collectWarnings(benchResult, sctx),
	}

	p.narrate(ctx, result)
	p.persist(ctx, doc, textHash, result)

	return result, nil
}

// fallbackExtract asks the LLM for fields the cascades missed. Best effort:
// a failing model call never fails the analysis.
func (p *Pipeline) fallbackExtract(ctx context.Context, doc *model.Document, res *extract.Result) {
	if p.llm == nil {
		return
	}
	if res.Fields.CTCInr.Present() && res.Fields.NoticePeriodDays.Present() && res.Fields.Role.Present() {
		return
	}

	inferred, err := p.llm.ExtractFields(ctx, doc.FullText)
	if err != nil {
		zap.L().Warn("pipeline: llm fallback extraction failed", zap.Error(err))
		return
	}
	res.Fields.Merge(inferred)
}

// runBenchmarks executes the salary and notice passes concurrently. The
// benchmark engine is read-only, so the two queries share it safely.
func (p *Pipeline) runBenchmarks(ctx context.Context, fields *model.ContractExtractionResult, userCtx model.Context) *model.BenchmarkResult {
	role := userCtx.Role
	if role == "" {
		role, _ = fields.Role.String()
	}
	if role == "" {
		zap.L().Warn("pipeline: no role available, skipping benchmark")
		return nil
	}

	q := benchmark.Query{
		Role:            role,
		ExperienceYears: userCtx.ExperienceYears,
		CompanyType:     userCtx.CompanyType,
		Location:        userCtx.Location,
		Industry:        userCtx.Industry,
	}
	if v, ok := fields.CTCInr.Float(); ok {
		q.SalaryInr = v
	}
	if v, ok := fields.NoticePeriodDays.Int(); ok {
		q.NoticeDays = v
	}

	var (
		result     *model.BenchmarkResult
		noticeMean float64
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		result = p.bench.Benchmark(q)
		return nil
	})
	g.Go(func() error {
		noticeMean, _, _ = p.bench.NoticeStats(userCtx.CompanyType)
		return nil
	})
	_ = g.Wait()

	if result != nil && result.PercentileNotice == nil && q.NoticeDays > 0 && noticeMean > 0 {
		// No per-cohort notice data; at least record how the raw value
		// compares to the segment mean.
		if float64(q.NoticeDays) > noticeMean {
			result.Warning = strings.TrimSpace(result.Warning + " notice period exceeds the segment average")
		}
	}
	return result
}

func (p *Pipeline) narrate(ctx context.Context, result *model.AnalysisResult) {
	if p.llm == nil {
		return
	}
	text, err := p.llm.Narrate(ctx, result)
	if err != nil {
		zap.L().Warn("pipeline: narration failed", zap.Error(err))
		return
	}
	result.Narration = text
}

func (p *Pipeline) lookupCache(ctx context.Context, textHash string) *model.AnalysisResult {
	if p.store == nil {
		return nil
	}
	run, err := p.store.FindByHash(ctx, textHash)
	if err != nil {
		if !eris.Is(err, store.ErrNotFound) {
			zap.L().Warn("pipeline: cache lookup failed", zap.Error(err))
		}
		return nil
	}
	var result model.AnalysisResult
	if err := json.Unmarshal(run.Result, &result); err != nil {
		zap.L().Warn("pipeline: cached result unreadable", zap.Error(err))
		return nil
	}
	zap.L().Info("pipeline: served from run cache", zap.String("run_id", run.ID))
	return &result
}

func (p *Pipeline) persist(ctx context.Context, doc *model.Document, textHash string, result *model.AnalysisResult) {
	if p.store == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		zap.L().Warn("pipeline: marshal result failed", zap.Error(err))
		return
	}
	role, _ := result.Extraction.Role.String()
	company, _ := result.Extraction.Company.String()
	run := &store.Run{
		Filename: doc.Filename,
		TextHash: textHash,
		Role:     role,
		Company:  company,
		Score:    result.Score.OverallScore,
		Grade:    string(result.Score.Grade),
		Result:   payload,
	}
	if err := p.store.SaveRun(ctx, run); err != nil {
		zap.L().Warn("pipeline: persist run failed", zap.Error(err))
	}
}

func collectWarnings(bench *model.BenchmarkResult, sctx model.ScoringContext) []string {
	var out []string
	if bench != nil && bench.Warning != "" {
		out = append(out, bench.Warning)
	} else if bench == nil {
		out = append(out, "no market benchmark available, percentile factors scored neutral")
	}
	out = append(out, sctx.Warnings...)
	return out
}

func dropPoint(points []model.NegotiationPoint, id string) []model.NegotiationPoint {
	out := points[:0]
	for _, pt := range points {
		if pt.ID != id {
			out = append(out, pt)
		}
	}
	return out
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
