package pipeline

import (
	"github.com/YagYk/FairDeal/internal/config"
	"github.com/YagYk/FairDeal/internal/extract"
	"github.com/YagYk/FairDeal/internal/model"
)

// buildScoringInput flattens the extraction, benchmark, and detected
// context into the scoring engine's configuration surface. Missing data
// stays nil or zero so the engine falls back to neutral defaults.
func buildScoringInput(
	res *extract.Result,
	bench *model.BenchmarkResult,
	sctx model.ScoringContext,
	userCtx model.Context,
	textLen int,
	cfg config.ScoringConfig,
) model.ScoringInput {
	fields := res.Fields

	in := model.ScoringInput{
		BenefitsCount: fields.BenefitsCount,
		Benefits:      fields.Benefits,
		RoleLevel:     sctx.RoleLevel,
		Industry:      userCtx.Industry,
	}

	if bench != nil {
		in.SalaryPercentile = bench.PercentileSalary
		in.NoticePercentile = bench.PercentileNotice
	}

	if v, ok := fields.CTCInr.Float(); ok {
		in.SalaryInr = v
	}
	if v, ok := fields.NoticePeriodDays.Int(); ok {
		in.NoticePeriodDays = v
	}
	if v, ok := fields.NonCompeteMonths.Int(); ok {
		in.NonCompete = true
		in.NonCompeteMonths = v
	}
	if res.Traits.NonCompetePresent {
		in.NonCompete = true
	}
	if v, ok := fields.ProbationMonths.Int(); ok {
		in.ProbationMonths = v
	}

	if res.Bond != nil {
		in.TrainingBond = true
		in.TrainingBondMonths = res.Bond.Months
		if v, ok := fields.BondAmountInr.Float(); ok {
			in.TrainingBondAmount = v
		}
	}

	in.NonCompeteBroad = res.Traits.NonCompeteBroad
	in.GardenLeave = res.Traits.GardenLeave
	in.IPAssignmentAllWork = res.Traits.IPAssignmentAllWork
	in.TerminationAtWill = res.Traits.TerminationAtWill
	in.UnlimitedDeductions = res.Traits.UnlimitedDeductions
	in.WeeklyHours = res.Traits.WeeklyHours
	in.HasEquity = hasBenefit(fields.Benefits, "stock options")

	in.PFStatus = benefitStatus(fields.Benefits, "provident fund", textLen, cfg.AbsenceTextThreshold)
	in.GratuityStatus = benefitStatus(fields.Benefits, "gratuity", textLen, cfg.AbsenceTextThreshold)

	return in
}

func hasBenefit(benefits []string, name string) bool {
	for _, b := range benefits {
		if b == name {
			return true
		}
	}
	return false
}
