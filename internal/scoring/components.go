// Package scoring turns extracted terms and market percentiles into a
// calibrated 0-100 fairness score with a fully itemized breakdown.
package scoring

import (
	"github.com/YagYk/FairDeal/internal/model"
)

// neutralScore is what a component reports when its inputs are missing. A
// contract is never penalized for data we failed to extract.
const neutralScore = 50.0

// salaryCurve maps a market percentile onto a component score. The curve is
// steep through the low percentiles so below-market offers separate clearly,
// and flattens near the top.
func salaryCurve(p float64) float64 {
	switch {
	case p <= 10:
		return 20 + p/10*15
	case p <= 25:
		return 35 + (p-10)/15*20
	case p <= 50:
		return 55 + (p-25)/25*15
	case p <= 75:
		return 70 + (p-50)/25*15
	case p <= 90:
		return 85 + (p-75)/15*10
	default:
		return 95 + (p-90)/10*5
	}
}

// salaryComponent scores the salary percentile; nil means no benchmark was
// available and scores neutral.
func salaryComponent(percentile *float64) float64 {
	if percentile == nil {
		return neutralScore
	}
	return salaryCurve(*percentile)
}

// noticeComponent inverts the percentile before applying the shared curve: a
// notice period longer than most of the market is a worse deal.
func noticeComponent(percentile *float64) float64 {
	if percentile == nil {
		return neutralScore
	}
	return salaryCurve(100 - *percentile)
}

// benefitsBase maps the detected category count to a base score.
var benefitsBase = map[int]float64{
	0: 30, 1: 50, 2: 60, 3: 70, 4: 80, 5: 88, 6: 93, 7: 97, 8: 99,
}

// premiumBenefits earn a small bonus on top of the count-based base.
var premiumBenefits = map[string]bool{
	"stock options":   true,
	"relocation":      true,
	"signing bonus":   true,
	"flexible work":   true,
	"learning budget": true,
	"wellness":        true,
}

// benefitsComponent scores the benefit package. Statutory benefits (PF,
// gratuity) penalize only when confirmed absent; unknown status is neutral.
func benefitsComponent(in model.ScoringInput) float64 {
	base, ok := benefitsBase[in.BenefitsCount]
	if !ok {
		base = 100
	}

	premium := 0
	for _, b := range in.Benefits {
		if premiumBenefits[b] {
			premium++
		}
	}
	score := base + min(float64(premium)*3, 10)

	if in.PFStatus == model.StatusAbsent {
		score -= 15
	}
	if in.GratuityStatus == model.StatusAbsent {
		score -= 15
	}

	return clamp(score, 20, 100)
}

// clausesComponent starts from a clean slate and deducts for restrictive
// terms. The floor keeps a single terrible clause from zeroing the factor.
func clausesComponent(in model.ScoringInput, highBond float64) float64 {
	score := 100.0

	if in.NonCompete || in.NonCompeteMonths > 0 {
		switch {
		case in.NonCompeteMonths > 12:
			score -= 30
		case in.NonCompeteMonths > 6:
			score -= 20
		case in.NonCompeteMonths > 3:
			score -= 12
		default:
			score -= 5
		}
		if in.NonCompeteBroad {
			score -= 10
		}
	}

	if in.TrainingBond || in.TrainingBondAmount > 0 {
		// Tier by how long the bond binds; the amount only adds the
		// high-value surcharge.
		switch {
		case in.TrainingBondMonths > 12:
			score -= 20
		case in.TrainingBondMonths > 6:
			score -= 12
		case in.TrainingBondMonths > 0:
			score -= 5
		default:
			score -= 12
		}
		if in.TrainingBondAmount > highBond {
			score -= 10
		}
	}

	if in.GardenLeave {
		score -= 8
	}
	if in.IPAssignmentAllWork {
		score -= 15
	}
	if in.ProbationMonths > 6 {
		score -= 8
	}
	if in.TerminationAtWill {
		score -= 12
	}

	return clamp(score, 20, 100)
}

// legalViolation pairs a detected statutory problem with its deduction.
type legalViolation struct {
	label  string
	points float64
}

// detectViolations applies the statutory checks. Thresholds follow Indian
// employment norms: 48-hour work weeks, 90-day notice ceilings, mandatory PF
// and gratuity. Statutory benefits count only when confirmed absent; unknown
// status raises nothing.
func detectViolations(in model.ScoringInput) []legalViolation {
	var out []legalViolation
	if in.NoticePeriodDays > 90 {
		out = append(out, legalViolation{"notice period beyond reasonable limit", 30})
	}
	if in.PFStatus == model.StatusAbsent {
		out = append(out, legalViolation{"provident fund confirmed absent", 25})
	}
	if in.GratuityStatus == model.StatusAbsent {
		out = append(out, legalViolation{"gratuity confirmed absent", 15})
	}
	if in.WeeklyHours > 48 {
		out = append(out, legalViolation{"working hours exceed statutory limit", 20})
	}
	if in.UnlimitedDeductions {
		out = append(out, legalViolation{"unlimited salary deduction clause", 20})
	}
	return out
}

func legalComponent(violations []legalViolation) float64 {
	score := 100.0
	for _, v := range violations {
		score -= v.points
	}
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
