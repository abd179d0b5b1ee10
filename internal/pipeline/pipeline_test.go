package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YagYk/FairDeal/internal/benchmark"
	"github.com/YagYk/FairDeal/internal/config"
	"github.com/YagYk/FairDeal/internal/model"
	"github.com/YagYk/FairDeal/internal/store"
)

func testCfg() *config.Config {
	return &config.Config{
		Scoring: config.ScoringConfig{
			SalaryWeight:         0.35,
			NoticeWeight:         0.20,
			BenefitsWeight:       0.20,
			ClausesWeight:        0.15,
			LegalWeight:          0.10,
			HighBondThreshold:    200_000,
			ToxicBondThreshold:   300_000,
			AbsenceTextThreshold: 2_000,
		},
	}
}

func marketRecords() []benchmark.Record {
	f := func(v float64) *float64 { return &v }
	var out []benchmark.Record
	for _, r := range []struct {
		salary, notice float64
	}{
		{600_000, 90}, {800_000, 60}, {1_000_000, 60}, {1_200_000, 30}, {1_500_000, 30}, {1_800_000, 30},
	} {
		out = append(out, benchmark.Record{
			Role:       "software engineer",
			SalaryInr:  f(r.salary),
			NoticeDays: f(r.notice),
		})
	}
	return out
}

const offerText = `OFFER OF EMPLOYMENT

We are pleased to offer you the position of Software Engineer at
Acme Technologies Pvt. Ltd. Your annual CTC will be 14 LPA.

The notice period shall be 30 days. You will be entitled to health
insurance, provident fund contributions, gratuity as per statute, 24 days
of paid leave, and an annual performance bonus.`

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	engine := benchmark.NewEngine(marketRecords(), nil)
	return New(testCfg(), engine, opts...)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	p := newTestPipeline(t)

	doc := model.NewDocument("offer.txt", offerText)
	res, err := p.Analyze(context.Background(), doc, model.Context{ExperienceYears: 3})
	require.NoError(t, err)

	ctc, ok := res.Extraction.CTCInr.Float()
	require.True(t, ok)
	assert.Equal(t, 1_400_000.0, ctc)

	require.NotNil(t, res.Benchmark)
	require.True(t, res.Benchmark.Available())
	// Four of six market salaries are <= 1.4M.
	assert.InDelta(t, 66.67, *res.Benchmark.PercentileSalary, 0.5)

	require.NotNil(t, res.Score)
	assert.Greater(t, res.Score.OverallScore, 60.0)
	assert.Empty(t, res.Score.LegalViolations)
	assert.Empty(t, res.RedFlags)
	assert.NotEmpty(t, res.FavorableTerms)
}

func TestAnalyzeFlagsNonCompeteWithoutDuration(t *testing.T) {
	p := newTestPipeline(t)

	doc := model.NewDocument("offer.txt", offerText+`

You shall be bound by a restrictive covenant and shall not join a
competing organization after leaving the company.`)
	res, err := p.Analyze(context.Background(), doc, model.Context{ExperienceYears: 3})
	require.NoError(t, err)

	var ids []string
	for _, f := range res.RedFlags {
		ids = append(ids, f.ID)
	}
	assert.Contains(t, ids, "NON_COMPETE_PRESENT")
}

func TestAnalyzeUsesRunCache(t *testing.T) {
	ctx := context.Background()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer st.Close()

	p := newTestPipeline(t, WithStore(st))
	doc := model.NewDocument("offer.txt", offerText)

	first, err := p.Analyze(ctx, doc, model.Context{ExperienceYears: 3})
	require.NoError(t, err)

	second, err := p.Analyze(ctx, doc, model.Context{ExperienceYears: 3})
	require.NoError(t, err)
	assert.Equal(t, first.Score.OverallScore, second.Score.OverallScore)

	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1, "second analysis is a cache hit, not a new run")
}

type stubLLM struct {
	fields    *model.ContractExtractionResult
	narration string
	extracts  int
}

func (s *stubLLM) ExtractFields(_ context.Context, _ string) (*model.ContractExtractionResult, error) {
	s.extracts++
	return s.fields, nil
}

func (s *stubLLM) Narrate(_ context.Context, _ *model.AnalysisResult) (string, error) {
	return s.narration, nil
}

func TestAnalyzeLLMFallback(t *testing.T) {
	stub := &stubLLM{
		fields: &model.ContractExtractionResult{
			CTCInr:           &model.ExtractedField{Value: 900_000.0, Confidence: 0.6, Method: model.MethodModelInferred},
			NoticePeriodDays: &model.ExtractedField{Value: 60.0, Confidence: 0.6, Method: model.MethodModelInferred},
			Role:             &model.ExtractedField{Value: "Software Engineer", Confidence: 0.6, Method: model.MethodModelInferred},
			Company:          model.MissingField(),
			BondAmountInr:    model.MissingField(),
			NonCompeteMonths: model.MissingField(),
			ProbationMonths:  model.MissingField(),
		},
		narration: "A fair offer overall.",
	}
	p := newTestPipeline(t, WithLLM(stub))

	// Scanned-image text: the cascades find nothing.
	doc := model.NewDocument("scan.pdf", "employment terms as discussed")
	res, err := p.Analyze(context.Background(), doc, model.Context{ExperienceYears: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, stub.extracts)
	ctc, ok := res.Extraction.CTCInr.Float()
	require.True(t, ok)
	assert.Equal(t, 900_000.0, ctc)
	assert.Equal(t, model.MethodModelInferred, res.Extraction.CTCInr.Method)
	assert.Equal(t, "A fair offer overall.", res.Narration)
}

func TestDetectContext(t *testing.T) {
	res := &model.ContractExtractionResult{
		Role:    &model.ExtractedField{Value: "Graduate Engineer Trainee", Method: model.MethodPatternMatch},
		Company: &model.ExtractedField{Value: "Infosys Limited", Method: model.MethodPatternMatch},
	}

	sctx := detectContext(model.Context{ExperienceYears: 0}, res, 150)

	assert.Equal(t, "service", sctx.CompanyType)
	assert.Equal(t, "entry", sctx.RoleLevel)
	assert.True(t, sctx.IsCampusHire)
	assert.False(t, sctx.SalaryNegotiable)
	assert.Equal(t, "high", sctx.CohortConfidence)
	assert.NotEmpty(t, sctx.Warnings)
}

func TestDetectContextDefaults(t *testing.T) {
	res := &model.ContractExtractionResult{
		Role:    model.MissingField(),
		Company: model.MissingField(),
	}

	sctx := detectContext(model.Context{ExperienceYears: 7}, res, 4)

	assert.Equal(t, "unknown", sctx.CompanyType)
	assert.Equal(t, "senior", sctx.RoleLevel)
	assert.False(t, sctx.IsCampusHire)
	assert.True(t, sctx.SalaryNegotiable)
	assert.Equal(t, "insufficient", sctx.CohortConfidence)
}

func TestBenefitStatus(t *testing.T) {
	long := 5_000
	short := 500
	benefits := []string{"health insurance", "provident fund"}

	assert.Equal(t, model.StatusPresent, benefitStatus(benefits, "provident fund", long, 2_000))
	assert.Equal(t, model.StatusAbsent, benefitStatus(benefits, "gratuity", long, 2_000))
	assert.Equal(t, model.StatusUnknown, benefitStatus(benefits, "gratuity", short, 2_000))
}

func TestAnalyzeWithoutRoleSkipsBenchmark(t *testing.T) {
	p := newTestPipeline(t)

	doc := model.NewDocument("terms.txt", strings.Repeat("general terms and conditions. ", 10))
	res, err := p.Analyze(context.Background(), doc, model.Context{})
	require.NoError(t, err)

	assert.Nil(t, res.Benchmark)
	assert.NotEmpty(t, res.Warnings)
	require.NotNil(t, res.Score)
	// Neutral percentile defaults keep the score mid-band.
	assert.Greater(t, res.Score.OverallScore, 30.0)
	assert.Less(t, res.Score.OverallScore, 70.0)
}
