// Package redflag derives rule-based risk findings and favorable terms from
// extracted contract fields and their market position.
package redflag

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/YagYk/FairDeal/internal/model"
)

// Detect runs every rule against the scoring input and returns red flags
// sorted by impact (worst first) alongside favorable terms. Rules that need
// a percentile fall back to raw values when no benchmark was available.
func Detect(in model.ScoringInput) ([]model.RedFlag, []model.FavorableTerm) {
	var flags []model.RedFlag
	var terms []model.FavorableTerm

	flags, terms = salaryRules(in, flags, terms)
	flags, terms = noticeRules(in, flags, terms)
	flags = nonCompeteRules(in, flags)
	flags = bondRules(in, flags)
	flags, terms = probationRules(in, flags, terms)
	flags, terms = benefitsRules(in, flags, terms)

	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].ImpactScore < flags[j].ImpactScore
	})

	zap.L().Info("redflag: rules evaluated",
		zap.Int("flags", len(flags)),
		zap.Int("favorable", len(terms)),
	)
	return flags, terms
}

func salaryRules(in model.ScoringInput, flags []model.RedFlag, terms []model.FavorableTerm) ([]model.RedFlag, []model.FavorableTerm) {
	if in.SalaryPercentile == nil {
		return flags, terms
	}
	p := *in.SalaryPercentile
	ctx := fmt.Sprintf("salary sits at the %.0fth percentile of comparable offers", p)

	switch {
	case p <= 10:
		flags = append(flags, model.RedFlag{
			ID:             "SALARY_CRITICAL_LOW",
			Rule:           "SALARY_CRITICAL_LOW",
			Severity:       model.SeverityCritical,
			Explanation:    "compensation is in the bottom decile for this role and market",
			ImpactScore:    -12,
			MarketContext:  ctx,
			Recommendation: "treat the offer as below market and negotiate base compensation first",
		})
	case p <= 25:
		flags = append(flags, model.RedFlag{
			ID:             "SALARY_LOW",
			Rule:           "SALARY_LOW",
			Severity:       model.SeverityHigh,
			Explanation:    "compensation is in the bottom quartile for this role and market",
			ImpactScore:    -8,
			MarketContext:  ctx,
			Recommendation: "ask for market data to be reflected in the base component",
		})
	case p >= 85:
		terms = append(terms, model.FavorableTerm{
			ID:            "SALARY_EXCELLENT",
			Term:          "top-of-market salary",
			Explanation:   "compensation beats the vast majority of comparable offers",
			Value:         fmt.Sprintf("%.0fth percentile", p),
			ImpactScore:   4,
			MarketContext: ctx,
		})
	}
	return flags, terms
}

func noticeRules(in model.ScoringInput, flags []model.RedFlag, terms []model.FavorableTerm) ([]model.RedFlag, []model.FavorableTerm) {
	if in.NoticePercentile != nil {
		p := *in.NoticePercentile
		ctx := fmt.Sprintf("notice period is longer than %.0f%% of the market", p)
		switch {
		case p >= 80:
			flags = append(flags, model.RedFlag{
				ID:             "NOTICE_VERY_LONG",
				Rule:           "NOTICE_VERY_LONG",
				Severity:       model.SeverityHigh,
				Explanation:    "notice period is longer than almost all comparable contracts",
				ImpactScore:    -7,
				MarketContext:  ctx,
				Recommendation: "negotiate the notice period down or add a buyout option",
			})
		case p >= 60:
			flags = append(flags, model.RedFlag{
				ID:            "NOTICE_LONG",
				Rule:          "NOTICE_LONG",
				Severity:      model.SeverityMedium,
				Explanation:   "notice period is above the market norm",
				ImpactScore:   -4,
				MarketContext: ctx,
			})
		case p <= 20:
			terms = append(terms, model.FavorableTerm{
				ID:            "NOTICE_SHORT",
				Term:          "short notice period",
				Explanation:   "exit is easier than at most comparable employers",
				Value:         fmt.Sprintf("%d days", in.NoticePeriodDays),
				ImpactScore:   3,
				MarketContext: ctx,
			})
		}
		return flags, terms
	}

	// Raw-day fallback when no benchmark is available.
	switch {
	case in.NoticePeriodDays >= 90:
		flags = append(flags, model.RedFlag{
			ID:          "NOTICE_VERY_LONG",
			Rule:        "NOTICE_VERY_LONG",
			Severity:    model.SeverityHigh,
			Explanation: "a ninety-day notice period severely limits mobility",
			ImpactScore: -7,
		})
	case in.NoticePeriodDays >= 60:
		flags = append(flags, model.RedFlag{
			ID:          "NOTICE_LONG",
			Rule:        "NOTICE_LONG",
			Severity:    model.SeverityMedium,
			Explanation: "notice period is on the long side",
			ImpactScore: -4,
		})
	case in.NoticePeriodDays > 0 && in.NoticePeriodDays <= 30:
		terms = append(terms, model.FavorableTerm{
			ID:          "NOTICE_SHORT",
			Term:        "short notice period",
			Explanation: "a month or less of notice keeps exit costs low",
			Value:       fmt.Sprintf("%d days", in.NoticePeriodDays),
			ImpactScore: 3,
		})
	}
	return flags, terms
}

func nonCompeteRules(in model.ScoringInput, flags []model.RedFlag) []model.RedFlag {
	if !in.NonCompete && in.NonCompeteMonths == 0 {
		return flags
	}
	switch {
	case in.NonCompeteMonths > 12:
		flags = append(flags, model.RedFlag{
			ID:             "NON_COMPETE_EXCESSIVE",
			Rule:           "NON_COMPETE_EXCESSIVE",
			Severity:       model.SeverityHigh,
			Explanation:    "a non-compete beyond a year is rarely enforceable and signals overreach",
			ImpactScore:    -8,
			Recommendation: "push to strike the clause or limit it to direct competitors",
		})
	case in.NonCompeteMonths > 6:
		flags = append(flags, model.RedFlag{
			ID:          "NON_COMPETE_LONG",
			Rule:        "NON_COMPETE_LONG",
			Severity:    model.SeverityMedium,
			Explanation: "the non-compete restriction exceeds the typical six months",
			ImpactScore: -5,
		})
	default:
		flags = append(flags, model.RedFlag{
			ID:          "NON_COMPETE_PRESENT",
			Rule:        "NON_COMPETE_PRESENT",
			Severity:    model.SeverityLow,
			Explanation: "the contract carries a non-compete restriction",
			ImpactScore: -2,
		})
	}
	return flags
}

func bondRules(in model.ScoringInput, flags []model.RedFlag) []model.RedFlag {
	if !in.TrainingBond && in.TrainingBondAmount == 0 {
		return flags
	}
	switch {
	case in.TrainingBondAmount >= 200_000:
		flags = append(flags, model.RedFlag{
			ID:             "BOND_EXCESSIVE",
			Rule:           "BOND_EXCESSIVE",
			Severity:       model.SeverityCritical,
			Explanation:    "the bond amount far exceeds any plausible training cost",
			ImpactScore:    -10,
			Recommendation: "ask for an itemized training cost or a pro-rated reduction schedule",
		})
	case in.TrainingBondAmount >= 50_000:
		flags = append(flags, model.RedFlag{
			ID:          "BOND_HIGH",
			Rule:        "BOND_HIGH",
			Severity:    model.SeverityHigh,
			Explanation: "the training bond is a meaningful financial lock-in",
			ImpactScore: -6,
		})
	default:
		flags = append(flags, model.RedFlag{
			ID:          "BOND_PRESENT",
			Rule:        "BOND_PRESENT",
			Severity:    model.SeverityMedium,
			Explanation: "the contract carries a service bond",
			ImpactScore: -3,
		})
	}
	return flags
}

func probationRules(in model.ScoringInput, flags []model.RedFlag, terms []model.FavorableTerm) ([]model.RedFlag, []model.FavorableTerm) {
	switch {
	case in.ProbationMonths > 6:
		flags = append(flags, model.RedFlag{
			ID:          "PROBATION_LONG",
			Rule:        "PROBATION_LONG",
			Severity:    model.SeverityMedium,
			Explanation: "probation beyond six months extends the low-protection window",
			ImpactScore: -4,
		})
	case in.ProbationMonths > 0 && in.ProbationMonths <= 3:
		terms = append(terms, model.FavorableTerm{
			ID:          "PROBATION_SHORT",
			Term:        "short probation",
			Explanation: "full protections kick in within a quarter",
			Value:       fmt.Sprintf("%d months", in.ProbationMonths),
			ImpactScore: 2,
		})
	}
	return flags, terms
}

func benefitsRules(in model.ScoringInput, flags []model.RedFlag, terms []model.FavorableTerm) ([]model.RedFlag, []model.FavorableTerm) {
	switch {
	case in.BenefitsCount >= 6:
		terms = append(terms, model.FavorableTerm{
			ID:          "BENEFITS_COMPREHENSIVE",
			Term:        "comprehensive benefits",
			Explanation: "the package covers most benefit categories seen in the market",
			Value:       fmt.Sprintf("%d categories", in.BenefitsCount),
			ImpactScore: 4,
		})
	case in.BenefitsCount >= 4:
		terms = append(terms, model.FavorableTerm{
			ID:          "BENEFITS_SOLID",
			Term:        "solid benefits",
			Explanation: "the package covers the core benefit categories",
			Value:       fmt.Sprintf("%d categories", in.BenefitsCount),
			ImpactScore: 2,
		})
	case in.BenefitsCount <= 1:
		flags = append(flags, model.RedFlag{
			ID:          "BENEFITS_SPARSE",
			Rule:        "BENEFITS_SPARSE",
			Severity:    model.SeverityMedium,
			Explanation: "almost no benefits are spelled out in the contract",
			ImpactScore: -4,
		})
	}
	return flags, terms
}
