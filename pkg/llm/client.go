// Package llm provides the optional model-backed fallback extractor and the
// result narrator. Everything here is best-effort: the analysis pipeline
// works fully without it, and every value it produces is tagged
// model_inferred at reduced confidence.
package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/YagYk/FairDeal/internal/model"
)

// Client is the narrow surface the pipeline depends on; tests substitute it
// freely.
type Client interface {
	ExtractFields(ctx context.Context, text string) (*model.ContractExtractionResult, error)
	Narrate(ctx context.Context, result *model.AnalysisResult) (string, error)
}

// inferredConfidence tags every model-derived field below any pattern match.
const inferredConfidence = 0.6

type anthropicClient struct {
	client  anthropic.Client
	model   string
	limiter *rate.Limiter
	timeout time.Duration
}

// Option configures the client.
type Option func(*anthropicClient)

// WithModel overrides the default model.
func WithModel(m string) Option {
	return func(c *anthropicClient) { c.model = m }
}

// WithLimiter injects the request rate limiter shared across the process.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *anthropicClient) { c.limiter = l }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *anthropicClient) { c.timeout = d }
}

// New builds an Anthropic-backed client.
func New(apiKey string, opts ...Option) Client {
	c := &anthropicClient{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   "claude-haiku-4-5",
		limiter: rate.NewLimiter(rate.Limit(15.0/60.0), 1),
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

const extractSystem = `You extract employment contract terms. Respond with a single JSON object and nothing else, using exactly these keys (null when not found):
{"ctc_inr": number, "notice_period_days": number, "bond_amount_inr": number, "non_compete_months": number, "probation_months": number, "role": string, "company": string, "benefits": [string]}`

// extractionPayload mirrors the strict JSON contract of the extraction
// prompt. Pointers keep null distinguishable from zero.
type extractionPayload struct {
	CTCInr           *float64 `json:"ctc_inr"`
	NoticePeriodDays *float64 `json:"notice_period_days"`
	BondAmountInr    *float64 `json:"bond_amount_inr"`
	NonCompeteMonths *float64 `json:"non_compete_months"`
	ProbationMonths  *float64 `json:"probation_months"`
	Role             *string  `json:"role"`
	Company          *string  `json:"company"`
	Benefits         []string `json:"benefits"`
}

// ExtractFields asks the model for the fields the pattern cascades missed.
// The pipeline merges the result without ever overwriting a pattern match.
func (c *anthropicClient) ExtractFields(ctx context.Context, text string) (*model.ContractExtractionResult, error) {
	raw, err := c.complete(ctx, extractSystem, clip(text, 12_000))
	if err != nil {
		return nil, eris.Wrap(err, "llm: extract fields")
	}

	result, err := parseExtraction(raw)
	if err != nil {
		return nil, eris.Wrap(err, "llm: extract fields")
	}
	zap.L().Info("llm: fallback extraction completed")
	return result, nil
}

const narrateSystem = `You summarize an employment contract fairness analysis for the candidate in plain language. Three short paragraphs: the verdict, the main risks, and what to negotiate first. No markdown, no preamble.`

// Narrate produces a plain-language summary of a finished analysis.
func (c *anthropicClient) Narrate(ctx context.Context, result *model.AnalysisResult) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", eris.Wrap(err, "llm: marshal analysis")
	}
	text, err := c.complete(ctx, narrateSystem, string(payload))
	if err != nil {
		return "", eris.Wrap(err, "llm: narrate")
	}
	return strings.TrimSpace(text), nil
}

func (c *anthropicClient) complete(ctx context.Context, system, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "llm: rate limit wait")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: messages request")
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}

// parseExtraction decodes the strict JSON response, tolerating code fences
// and surrounding prose by slicing to the outermost object.
func parseExtraction(raw string) (*model.ContractExtractionResult, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, eris.New("llm: no JSON object in response")
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, eris.Wrap(err, "llm: decode extraction payload")
	}

	result := &model.ContractExtractionResult{
		CTCInr:           inferredNumber(payload.CTCInr),
		NoticePeriodDays: inferredNumber(payload.NoticePeriodDays),
		BondAmountInr:    inferredNumber(payload.BondAmountInr),
		NonCompeteMonths: inferredNumber(payload.NonCompeteMonths),
		ProbationMonths:  inferredNumber(payload.ProbationMonths),
		Role:             inferredString(payload.Role),
		Company:          inferredString(payload.Company),
		Benefits:         payload.Benefits,
		BenefitsCount:    len(payload.Benefits),
	}
	return result, nil
}

func inferredNumber(v *float64) *model.ExtractedField {
	if v == nil {
		return model.MissingField()
	}
	return &model.ExtractedField{
		Value:      *v,
		Confidence: inferredConfidence,
		Method:     model.MethodModelInferred,
	}
}

func inferredString(v *string) *model.ExtractedField {
	if v == nil || strings.TrimSpace(*v) == "" {
		return model.MissingField()
	}
	return &model.ExtractedField{
		Value:      strings.TrimSpace(*v),
		Confidence: inferredConfidence,
		Method:     model.MethodModelInferred,
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
