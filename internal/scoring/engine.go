package scoring

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/YagYk/FairDeal/internal/config"
	"github.com/YagYk/FairDeal/internal/model"
)

// Engine computes the overall fairness score. It is stateless and safe for
// concurrent use.
type Engine struct {
	cfg config.ScoringConfig
}

func NewEngine(cfg config.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Score runs the full pipeline: component scores, context-derived weights,
// severity-weighted flag adjustments, badge multipliers, and calibration.
//
// The breakdown is an audit trail, not decoration: a 50-point base item plus
// the signed per-factor and per-flag items always sums to RawScore.
func (e *Engine) Score(in model.ScoringInput, sctx model.ScoringContext) *model.ScoreResult {
	violations := detectViolations(in)

	components := map[string]float64{
		factorSalary:   salaryComponent(in.SalaryPercentile),
		factorNotice:   noticeComponent(in.NoticePercentile),
		factorBenefits: benefitsComponent(in),
		factorClauses:  clausesComponent(in, e.cfg.HighBondThreshold),
		factorLegal:    legalComponent(violations),
	}

	weights := computeWeights(e.cfg, in.RoleLevel, in.Industry, len(violations) > 0)

	breakdown := []model.BreakdownItem{{
		Factor: "base",
		Points: neutralScore,
		Reason: "neutral starting point before factor contributions",
	}}

	raw := neutralScore
	for _, f := range factorOrder {
		points := weights[f] * (components[f] - neutralScore)
		raw += points
		breakdown = append(breakdown, model.BreakdownItem{
			Factor: f,
			Points: points,
			Reason: fmt.Sprintf("component scored %.1f at weight %.2f", components[f], weights[f]),
		})
	}

	for _, flag := range in.RedFlags {
		points := flag.ImpactScore * flag.Severity.Weight()
		raw += points
		breakdown = append(breakdown, model.BreakdownItem{
			Factor:     "red_flag:" + flag.Rule,
			Points:     points,
			Reason:     flag.Explanation,
			SourceText: flag.SourceText,
		})
	}
	for _, term := range in.FavorableTerms {
		points := term.ImpactScore * 0.5
		raw += points
		breakdown = append(breakdown, model.BreakdownItem{
			Factor:     "favorable:" + term.Term,
			Points:     points,
			Reason:     term.Explanation,
			SourceText: term.SourceText,
		})
	}

	badgeNames, multiplier := applyBadges(in, sctx, badgeEnv{
		highBond:      e.cfg.HighBondThreshold,
		hasViolations: len(violations) > 0,
	})
	overall := calibrate(raw * multiplier)

	result := &model.ScoreResult{
		OverallScore:    overall,
		Grade:           gradeFor(overall),
		Confidence:      confidence(in, sctx),
		RawScore:        raw,
		Multiplier:      multiplier,
		Breakdown:       breakdown,
		Weights:         weights,
		Badges:          badgeNames,
		RiskFactors:     riskFactors(in, violations, e.cfg.ToxicBondThreshold),
		LegalViolations: violationLabels(violations),
	}

	zap.L().Info("scoring: contract scored",
		zap.Float64("overall", overall),
		zap.Float64("raw", raw),
		zap.Float64("multiplier", multiplier),
		zap.String("grade", string(result.Grade)),
		zap.Strings("badges", badgeNames),
	)
	return result
}

// riskFactors lists the headline risks a reader should check first.
func riskFactors(in model.ScoringInput, violations []legalViolation, toxicBond float64) []string {
	var out []string
	if in.TrainingBond {
		out = append(out, "training bond restricts early exit")
	}
	if in.TrainingBondAmount > toxicBond {
		out = append(out, "bond amount beyond any defensible training cost")
	}
	if in.NonCompeteMonths > 6 {
		out = append(out, "extended non-compete restriction")
	}
	if in.NoticePeriodDays > 60 {
		out = append(out, "notice period above market norm")
	}
	if in.TerminationAtWill {
		out = append(out, "employer may terminate without cause")
	}
	if in.IPAssignmentAllWork {
		out = append(out, "ip assignment covers all work")
	}
	for _, v := range violations {
		out = append(out, v.label)
	}
	return out
}

func violationLabels(violations []legalViolation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.label)
	}
	return out
}
