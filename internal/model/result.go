package model

// BenchmarkResult reports where a value sits within a market cohort, along
// with a full audit trail of how the cohort was reached. A cohort size of
// zero always comes with nil percentiles and a warning.
type BenchmarkResult struct {
	PercentileSalary *float64       `json:"percentile_salary"`
	PercentileNotice *float64       `json:"percentile_notice"`
	CohortSize       int            `json:"cohort_size"`
	FiltersUsed      map[string]any `json:"filters_used"`
	BroadenSteps     []string       `json:"broaden_steps"`
	MarketMean       float64        `json:"market_mean"`
	MarketMedian     float64        `json:"market_median"`
	MarketP25        float64        `json:"market_p25"`
	MarketP75        float64        `json:"market_p75"`
	Warning          string         `json:"warning,omitempty"`
}

// Available reports whether the benchmark produced a usable salary
// percentile.
func (b *BenchmarkResult) Available() bool {
	return b != nil && b.CohortSize > 0 && b.PercentileSalary != nil
}

// Grade is one of the eight score bands.
type Grade string

const (
	GradeExceptional  Grade = "EXCEPTIONAL"
	GradeExcellent    Grade = "EXCELLENT"
	GradeGood         Grade = "GOOD"
	GradeFair         Grade = "FAIR"
	GradeAverage      Grade = "AVERAGE"
	GradeBelowAverage Grade = "BELOW_AVERAGE"
	GradePoor         Grade = "POOR"
	GradeCritical     Grade = "CRITICAL"
)

// BreakdownItem is one signed contribution to the overall score.
type BreakdownItem struct {
	Factor     string  `json:"factor"`
	Points     float64 `json:"points"`
	Reason     string  `json:"reason"`
	SourceText string  `json:"source_text,omitempty"`
}

// ScoreResult is the final calibrated fairness score with its full
// itemization. The breakdown items (a 50-point base plus signed per-factor
// contributions) sum to RawScore, the value fed into the context
// multipliers and calibration curve.
type ScoreResult struct {
	OverallScore    float64            `json:"overall_score"`
	Grade           Grade              `json:"grade"`
	Confidence      float64            `json:"confidence"`
	RawScore        float64            `json:"raw_score"`
	Multiplier      float64            `json:"multiplier"`
	Breakdown       []BreakdownItem    `json:"breakdown"`
	Weights         map[string]float64 `json:"weights"`
	Badges          []string           `json:"badges"`
	RiskFactors     []string           `json:"risk_factors"`
	LegalViolations []string           `json:"legal_violations"`
}

// AnalysisResult is the complete output of one pipeline run.
type AnalysisResult struct {
	Extraction     *ContractExtractionResult `json:"extraction"`
	Benchmark      *BenchmarkResult          `json:"benchmark,omitempty"`
	Score          *ScoreResult              `json:"scoring"`
	RedFlags       []RedFlag                 `json:"red_flags"`
	FavorableTerms []FavorableTerm           `json:"favorable_terms"`
	Negotiation    []NegotiationPoint        `json:"negotiation_points,omitempty"`
	Warnings       []string                  `json:"warnings,omitempty"`
	Narration      string                    `json:"narration,omitempty"`
}
