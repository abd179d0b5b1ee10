// Package negotiation builds a prioritized playbook of negotiation points
// from the analysis findings, each with a concrete ask and a fallback.
package negotiation

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/YagYk/FairDeal/internal/model"
)

// Build assembles negotiation points from the scoring input and benchmark.
// Points are ordered by priority: money first, then mobility restrictions,
// then protections. Nothing is generated for terms already at or above
// market.
func Build(in model.ScoringInput, bench *model.BenchmarkResult) []model.NegotiationPoint {
	var points []model.NegotiationPoint

	if p := salaryPoint(in, bench); p != nil {
		points = append(points, *p)
	}
	if p := bondPoint(in); p != nil {
		points = append(points, *p)
	}
	if p := noticePoint(in, bench); p != nil {
		points = append(points, *p)
	}
	if p := nonCompetePoint(in); p != nil {
		points = append(points, *p)
	}
	if p := benefitsPoint(in); p != nil {
		points = append(points, *p)
	}
	if p := probationPoint(in); p != nil {
		points = append(points, *p)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Priority < points[j].Priority
	})

	zap.L().Info("negotiation: playbook built", zap.Int("points", len(points)))
	return points
}

func salaryPoint(in model.ScoringInput, bench *model.BenchmarkResult) *model.NegotiationPoint {
	if in.SalaryPercentile == nil || *in.SalaryPercentile >= 50 {
		return nil
	}
	target := ""
	evidence := []string{}
	if bench != nil && bench.MarketMedian > 0 {
		target = fmt.Sprintf("₹%.0f (market median)", bench.MarketMedian)
		evidence = append(evidence,
			fmt.Sprintf("market median for this cohort is ₹%.0f", bench.MarketMedian),
			fmt.Sprintf("cohort of %d comparable offers", bench.CohortSize))
	}
	prob := "medium"
	if *in.SalaryPercentile <= 25 {
		prob = "high"
	}
	return &model.NegotiationPoint{
		ID:                 "SALARY",
		Priority:           1,
		Topic:              "base compensation",
		CurrentTerm:        fmt.Sprintf("₹%.0f per annum", in.SalaryInr),
		TargetTerm:         target,
		Rationale:          "the offer sits below the market median for comparable roles",
		SuccessProbability: prob,
		Script: "I'm excited about the role. Based on market data for similar positions, " +
			"I was expecting base compensation closer to the market median. Is there room to move on the base?",
		Fallback: "ask for a six-month compensation review with defined criteria",
		Evidence: evidence,
	}
}

func bondPoint(in model.ScoringInput) *model.NegotiationPoint {
	if !in.TrainingBond && in.TrainingBondAmount == 0 {
		return nil
	}
	return &model.NegotiationPoint{
		ID:                 "BOND",
		Priority:           2,
		Topic:              "training bond",
		CurrentTerm:        fmt.Sprintf("₹%.0f bond", in.TrainingBondAmount),
		TargetTerm:         "removal, or pro-rated reduction over the bond period",
		Rationale:          "bonds above actual training cost are a retention device, not cost recovery",
		SuccessProbability: "medium",
		Script: "Could you share the itemized training cost behind the bond? " +
			"I'd like the amount to reflect actual cost and reduce pro-rata as I serve the period.",
		Fallback: "ask for the bond to be waived after the first year of service",
	}
}

func noticePoint(in model.ScoringInput, bench *model.BenchmarkResult) *model.NegotiationPoint {
	if in.NoticePeriodDays <= 60 {
		return nil
	}
	evidence := []string{}
	if bench != nil && bench.PercentileNotice != nil {
		evidence = append(evidence,
			fmt.Sprintf("notice period is longer than %.0f%% of the market", *bench.PercentileNotice))
	}
	return &model.NegotiationPoint{
		ID:                 "NOTICE",
		Priority:           3,
		Topic:              "notice period",
		CurrentTerm:        fmt.Sprintf("%d days", in.NoticePeriodDays),
		TargetTerm:         "60 days, or a salary buyout option",
		Rationale:          "long notice periods delay transitions and are routinely negotiated down",
		SuccessProbability: "medium",
		Script: "The notice period is longer than standard for this market. " +
			"Could we bring it to sixty days, or add a buyout clause?",
		Fallback: "ask for garden leave during the notice period",
		Evidence: evidence,
	}
}

func nonCompetePoint(in model.ScoringInput) *model.NegotiationPoint {
	if !in.NonCompete && in.NonCompeteMonths == 0 {
		return nil
	}
	prob := "high"
	if in.NonCompeteMonths <= 6 {
		prob = "medium"
	}
	return &model.NegotiationPoint{
		ID:                 "NON_COMPETE",
		Priority:           4,
		Topic:              "non-compete clause",
		CurrentTerm:        fmt.Sprintf("%d months", in.NonCompeteMonths),
		TargetTerm:         "removal, or narrowed to named direct competitors",
		Rationale:          "broad post-employment non-competes are generally unenforceable in India",
		SuccessProbability: prob,
		Script: "The non-compete as written covers any company in the space. " +
			"Can we narrow it to a short list of direct competitors, or drop it?",
		Fallback: "ask for the restriction to lapse if the company initiates separation",
	}
}

func benefitsPoint(in model.ScoringInput) *model.NegotiationPoint {
	if in.BenefitsCount >= 3 {
		return nil
	}
	return &model.NegotiationPoint{
		ID:                 "BENEFITS",
		Priority:           5,
		Topic:              "benefits package",
		CurrentTerm:        fmt.Sprintf("%d benefit categories documented", in.BenefitsCount),
		TargetTerm:         "health insurance, paid leave, and statutory benefits in writing",
		Rationale:          "benefits not written into the contract are not commitments",
		SuccessProbability: "high",
		Script: "Could the offer letter spell out the insurance, leave, and statutory benefits? " +
			"I'd like the package documented alongside the compensation.",
		Fallback: "ask for the HR policy document to be referenced in the contract",
	}
}

func probationPoint(in model.ScoringInput) *model.NegotiationPoint {
	if in.ProbationMonths <= 6 {
		return nil
	}
	return &model.NegotiationPoint{
		ID:                 "PROBATION",
		Priority:           6,
		Topic:              "probation period",
		CurrentTerm:        fmt.Sprintf("%d months", in.ProbationMonths),
		TargetTerm:         "three months, six at most",
		Rationale:          "probation beyond six months extends the window of reduced protections",
		SuccessProbability: "medium",
		Script:             "Probation beyond six months is unusual. Can we align it with the standard three to six?",
		Fallback:           "ask for a written confirmation-review date",
	}
}
