package model

// Severity ranks red flags from critical down to low.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Weight returns the multiplier applied to a flag's impact score when it is
// aggregated into the overall score.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityCritical:
		return 1.0
	case SeverityHigh:
		return 0.8
	case SeverityMedium:
		return 0.6
	case SeverityLow:
		return 0.4
	}
	return 0.5
}

// RedFlag is a rule-derived risk finding. ImpactScore is negative.
type RedFlag struct {
	ID             string   `json:"id"`
	Severity       Severity `json:"severity"`
	Rule           string   `json:"rule"`
	Explanation    string   `json:"explanation"`
	SourceText     string   `json:"source_text,omitempty"`
	ImpactScore    float64  `json:"impact_score"`
	MarketContext  string   `json:"market_context,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// FavorableTerm is a rule-derived positive finding. ImpactScore is positive.
type FavorableTerm struct {
	ID            string  `json:"id"`
	Term          string  `json:"term"`
	Explanation   string  `json:"explanation"`
	SourceText    string  `json:"source_text,omitempty"`
	Value         string  `json:"value"`
	ImpactScore   float64 `json:"impact_score"`
	MarketContext string  `json:"market_context,omitempty"`
}

// NegotiationPoint is one prioritized entry of the negotiation playbook.
type NegotiationPoint struct {
	ID                 string   `json:"id"`
	Priority           int      `json:"priority"`
	Topic              string   `json:"topic"`
	CurrentTerm        string   `json:"current_term"`
	TargetTerm         string   `json:"target_term"`
	Rationale          string   `json:"rationale"`
	SuccessProbability string   `json:"success_probability"`
	Script             string   `json:"script"`
	Fallback           string   `json:"fallback,omitempty"`
	Evidence           []string `json:"evidence,omitempty"`
}
