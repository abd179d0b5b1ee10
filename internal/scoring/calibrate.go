package scoring

import (
	"math"

	"github.com/YagYk/FairDeal/internal/model"
)

// calibrate maps the raw multiplied score onto the published 0-100 scale.
// The curve compresses the extremes so a stack of multipliers cannot push a
// merely good offer into the exceptional band, and keeps the middle linear.
// The segments meet at their breakpoints, so the curve is continuous and
// strictly increasing across the whole input range.
func calibrate(x float64) float64 {
	return math.Round(clamp(compress(x), 0, 100))
}

func compress(x float64) float64 {
	switch {
	case x >= 85:
		return 82.75 + (x-85)*0.6
	case x >= 70:
		return 70 + (x-70)*0.85
	case x >= 50:
		return x
	case x >= 30:
		return 50 - (50-x)*0.9
	default:
		return 32 - (30-x)*0.8
	}
}

func gradeFor(score float64) model.Grade {
	switch {
	case score >= 90:
		return model.GradeExceptional
	case score >= 80:
		return model.GradeExcellent
	case score >= 70:
		return model.GradeGood
	case score >= 60:
		return model.GradeFair
	case score >= 50:
		return model.GradeAverage
	case score >= 40:
		return model.GradeBelowAverage
	case score >= 30:
		return model.GradePoor
	default:
		return model.GradeCritical
	}
}

// confidence reflects how much of the score rests on extracted data rather
// than neutral defaults.
func confidence(in model.ScoringInput, sctx model.ScoringContext) float64 {
	c := 0.50
	if in.SalaryInr > 0 {
		c += 0.20
	}
	if in.NoticePeriodDays > 0 {
		c += 0.10
	}
	if in.SalaryPercentile != nil {
		c += 0.05
	}
	if in.BenefitsCount > 0 {
		c += 0.03
	}
	if in.NoticePercentile != nil {
		c += 0.02
	}
	if in.NonCompete || in.NonCompeteMonths > 0 {
		c += 0.02
	}
	if in.TrainingBond || in.TrainingBondAmount > 0 {
		c += 0.02
	}
	if statusKnown(in.PFStatus) && statusKnown(in.GratuityStatus) {
		c += 0.03
	}
	switch sctx.CohortConfidence {
	case "high":
		c += 0.05
	case "medium":
		c += 0.03
	case "low":
		c += 0.02
	}
	return math.Min(c, 0.98)
}

func statusKnown(s model.TriState) bool {
	return s == model.StatusPresent || s == model.StatusAbsent
}
