package scoring

import "github.com/YagYk/FairDeal/internal/model"

// badgeEnv carries the derived facts badges condition on beyond the raw
// input: the high-value bond threshold from config and whether any statutory
// violation was detected.
type badgeEnv struct {
	highBond      float64
	hasViolations bool
}

// badge is a named context multiplier. Multipliers compose by product, so
// an offer can be both an equity upside and a retention trap.
type badge struct {
	name       string
	multiplier float64
	applies    func(in model.ScoringInput, sctx model.ScoringContext, env badgeEnv) bool
}

var badges = []badge{
	{
		name:       "exceptional package",
		multiplier: 1.15,
		applies: func(in model.ScoringInput, _ model.ScoringContext, _ badgeEnv) bool {
			return in.SalaryPercentile != nil && *in.SalaryPercentile >= 80 &&
				in.NoticePercentile != nil && *in.NoticePercentile <= 20 &&
				in.BenefitsCount >= 5 &&
				!in.NonCompete && in.NonCompeteMonths == 0
		},
	},
	{
		name:       "startup equity upside",
		multiplier: 1.08,
		applies: func(in model.ScoringInput, sctx model.ScoringContext, _ badgeEnv) bool {
			return sctx.CompanyType == "startup" && in.HasEquity
		},
	},
	{
		name:       "standard package",
		multiplier: 1.02,
		applies: func(in model.ScoringInput, _ model.ScoringContext, _ badgeEnv) bool {
			// Mid-market on both percentiles; top-of-market offers take the
			// exceptional badge instead.
			if in.SalaryPercentile == nil || *in.SalaryPercentile < 40 || *in.SalaryPercentile >= 80 {
				return false
			}
			if in.NoticePercentile != nil && (*in.NoticePercentile < 20 || *in.NoticePercentile >= 80) {
				return false
			}
			return in.BenefitsCount >= 3
		},
	},
	{
		name:       "retention trap",
		multiplier: 0.95,
		applies: func(in model.ScoringInput, _ model.ScoringContext, _ badgeEnv) bool {
			// A top-of-market salary paired with a long non-compete: the
			// money is good, leaving is expensive.
			return in.SalaryPercentile != nil && *in.SalaryPercentile >= 90 &&
				in.NonCompeteMonths >= 12
		},
	},
	{
		name:       "service-sector pattern",
		multiplier: 0.90,
		applies: func(in model.ScoringInput, _ model.ScoringContext, _ badgeEnv) bool {
			return (in.TrainingBond || in.TrainingBondAmount > 0) &&
				in.NoticePeriodDays >= 60 &&
				in.SalaryPercentile != nil && *in.SalaryPercentile <= 40
		},
	},
	{
		name:       "high-risk contract",
		multiplier: 0.85,
		applies: func(in model.ScoringInput, _ model.ScoringContext, env badgeEnv) bool {
			risks := 0
			if in.SalaryPercentile != nil && *in.SalaryPercentile <= 15 {
				risks++
			}
			if in.NoticePeriodDays > 90 || (in.NoticePercentile != nil && *in.NoticePercentile >= 90) {
				risks++
			}
			if in.NonCompeteMonths > 12 {
				risks++
			}
			if in.TrainingBondAmount > env.highBond {
				risks++
			}
			if env.hasViolations {
				risks++
			}
			return risks >= 3
		},
	},
}

// applyBadges returns the matched badge names and their combined multiplier.
func applyBadges(in model.ScoringInput, sctx model.ScoringContext, env badgeEnv) ([]string, float64) {
	var names []string
	multiplier := 1.0
	for _, b := range badges {
		if b.applies(in, sctx, env) {
			names = append(names, b.name)
			multiplier *= b.multiplier
		}
	}
	return names, multiplier
}
