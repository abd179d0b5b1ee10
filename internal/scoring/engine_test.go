package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YagYk/FairDeal/internal/config"
	"github.com/YagYk/FairDeal/internal/model"
)

func testConfig() config.ScoringConfig {
	return config.ScoringConfig{
		SalaryWeight:       0.35,
		NoticeWeight:       0.20,
		BenefitsWeight:     0.20,
		ClausesWeight:      0.15,
		LegalWeight:        0.10,
		HighBondThreshold:  200_000,
		ToxicBondThreshold: 300_000,
	}
}

func pf(v float64) *float64 { return &v }

func breakdownSum(items []model.BreakdownItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Points
	}
	return sum
}

func TestScoreTopOfMarketOffer(t *testing.T) {
	e := NewEngine(testConfig())

	in := model.ScoringInput{
		SalaryPercentile: pf(85),
		NoticePercentile: pf(15),
		BenefitsCount:    6,
		Benefits: []string{
			"health insurance", "provident fund", "gratuity",
			"paid leave", "performance bonus", "meal benefits",
		},
		PFStatus:         model.StatusPresent,
		GratuityStatus:   model.StatusPresent,
		NoticePeriodDays: 30,
		SalaryInr:        2_400_000,
	}

	res := e.Score(in, model.ScoringContext{CompanyType: "product", CohortConfidence: "high"})

	assert.InDelta(t, 94.02, res.RawScore, 0.01)
	assert.Equal(t, []string{"exceptional package"}, res.Badges)
	assert.InDelta(t, 1.15, res.Multiplier, 0.001)
	assert.Equal(t, 97.0, res.OverallScore)
	assert.Equal(t, model.GradeExceptional, res.Grade)
	assert.InDelta(t, res.RawScore, breakdownSum(res.Breakdown), 0.001)
	assert.Empty(t, res.LegalViolations)
}

func TestScoreExploitativeOffer(t *testing.T) {
	e := NewEngine(testConfig())

	in := model.ScoringInput{
		SalaryPercentile:   pf(8),
		NoticePercentile:   pf(92),
		BenefitsCount:      1,
		Benefits:           []string{"provident fund"},
		PFStatus:           model.StatusPresent,
		GratuityStatus:     model.StatusAbsent,
		TrainingBond:       true,
		TrainingBondAmount: 350_000,
		NonCompete:         true,
		NonCompeteMonths:   12,
		NonCompeteBroad:    true,
		NoticePeriodDays:   95,
		ProbationMonths:    6,
		SalaryInr:          400_000,
		RedFlags: []model.RedFlag{
			{Rule: "BOND_EXCESSIVE", Severity: model.SeverityCritical, ImpactScore: -10, Explanation: "bond far above training cost"},
			{Rule: "SALARY_CRITICAL_LOW", Severity: model.SeverityCritical, ImpactScore: -8, Explanation: "salary in bottom decile"},
		},
	}

	res := e.Score(in, model.ScoringContext{CompanyType: "service"})

	assert.Less(t, res.OverallScore, 40.0)
	assert.Contains(t, res.LegalViolations, "notice period beyond reasonable limit")
	assert.Contains(t, res.LegalViolations, "gratuity confirmed absent")
	assert.Contains(t, res.Badges, "service-sector pattern")
	assert.Contains(t, res.Badges, "high-risk contract")
	assert.InDelta(t, 0.90*0.85, res.Multiplier, 0.001)
	assert.InDelta(t, 0.20, res.Weights[factorLegal], 1e-9)
	assert.InDelta(t, res.RawScore, breakdownSum(res.Breakdown), 0.001)
	assert.Contains(t, res.RiskFactors, "bond amount beyond any defensible training cost")
}

func TestBadgeConditions(t *testing.T) {
	env := badgeEnv{highBond: 200_000}

	find := func(name string) badge {
		for _, b := range badges {
			if b.name == name {
				return b
			}
		}
		t.Fatalf("no badge named %q", name)
		return badge{}
	}

	t.Run("retention trap needs top salary and a long non-compete", func(t *testing.T) {
		b := find("retention trap")
		trapped := model.ScoringInput{SalaryPercentile: pf(92), NonCompete: true, NonCompeteMonths: 12}
		assert.True(t, b.applies(trapped, model.ScoringContext{}, env))

		midMarket := trapped
		midMarket.SalaryPercentile = pf(70)
		assert.False(t, b.applies(midMarket, model.ScoringContext{}, env))

		shortClause := trapped
		shortClause.NonCompeteMonths = 6
		assert.False(t, b.applies(shortClause, model.ScoringContext{}, env))
	})

	t.Run("exceptional package rejects any non-compete", func(t *testing.T) {
		b := find("exceptional package")
		in := model.ScoringInput{
			SalaryPercentile: pf(85),
			NoticePercentile: pf(10),
			BenefitsCount:    6,
		}
		assert.True(t, b.applies(in, model.ScoringContext{}, env))

		in.NonCompete = true
		in.NonCompeteMonths = 3
		assert.False(t, b.applies(in, model.ScoringContext{}, env))
	})

	t.Run("high-risk contract needs three risk conditions", func(t *testing.T) {
		b := find("high-risk contract")
		in := model.ScoringInput{
			SalaryPercentile: pf(10),
			NoticePeriodDays: 120,
		}
		assert.False(t, b.applies(in, model.ScoringContext{}, env))
		assert.True(t, b.applies(in, model.ScoringContext{}, badgeEnv{highBond: 200_000, hasViolations: true}))
	})

	t.Run("startup equity upside needs both startup and equity", func(t *testing.T) {
		b := find("startup equity upside")
		in := model.ScoringInput{HasEquity: true}
		assert.True(t, b.applies(in, model.ScoringContext{CompanyType: "startup"}, env))
		assert.False(t, b.applies(in, model.ScoringContext{CompanyType: "product"}, env))
	})
}

func TestScoreNeutralDefaults(t *testing.T) {
	e := NewEngine(testConfig())

	res := e.Score(model.ScoringInput{}, model.ScoringContext{})

	// Missing percentiles score neutral; only the empty benefits package
	// pulls the score below the base.
	assert.InDelta(t, 58.5, res.RawScore, 0.01)
	assert.Equal(t, 59.0, res.OverallScore)
	assert.Equal(t, model.GradeAverage, res.Grade)
	assert.InDelta(t, 0.50, res.Confidence, 0.001)
	assert.InDelta(t, res.RawScore, breakdownSum(res.Breakdown), 0.001)
}

func TestComputeWeights(t *testing.T) {
	cfg := testConfig()

	sum := func(w map[string]float64) float64 {
		var s float64
		for _, v := range w {
			s += v
		}
		return s
	}

	t.Run("always normalized", func(t *testing.T) {
		for _, tc := range []struct {
			roleLevel  string
			industry   string
			violations bool
		}{
			{"", "", false},
			{"entry", "", false},
			{"senior", "finance", true},
			{"mid", "tech", true},
		} {
			w := computeWeights(cfg, tc.roleLevel, tc.industry, tc.violations)
			assert.InDelta(t, 1.0, sum(w), 1e-9)
		}
	})

	t.Run("entry level favors salary and benefits over notice", func(t *testing.T) {
		base := computeWeights(cfg, "", "", false)
		entry := computeWeights(cfg, "entry", "", false)
		assert.Greater(t, entry[factorSalary], base[factorSalary])
		assert.Greater(t, entry[factorBenefits], base[factorBenefits])
		assert.Less(t, entry[factorNotice], base[factorNotice])
	})

	t.Run("senior shifts weight into notice and clauses", func(t *testing.T) {
		base := computeWeights(cfg, "", "", false)
		senior := computeWeights(cfg, "senior", "", false)
		assert.Greater(t, senior[factorNotice], base[factorNotice])
		assert.Greater(t, senior[factorClauses], base[factorClauses])
		assert.Less(t, senior[factorSalary], base[factorSalary])
	})

	t.Run("violations pin legal weight", func(t *testing.T) {
		flagged := computeWeights(cfg, "", "", true)
		assert.InDelta(t, 0.20, flagged[factorLegal], 1e-9)
		// The remaining factors keep their relative proportions.
		assert.InDelta(t, 0.35/0.20, flagged[factorSalary]/flagged[factorNotice], 1e-9)
	})

	t.Run("deterministic", func(t *testing.T) {
		a := computeWeights(cfg, "senior", "finance", true)
		b := computeWeights(cfg, "senior", "finance", true)
		assert.Equal(t, a, b)
	})
}

func TestSalaryCurve(t *testing.T) {
	tests := []struct {
		percentile float64
		want       float64
	}{
		{0, 20}, {10, 35}, {25, 55}, {50, 70}, {75, 85}, {85, 91.67}, {90, 95}, {100, 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, salaryCurve(tt.percentile), 0.01, "percentile %v", tt.percentile)
	}

	// Piecewise segments must join without discontinuities.
	for _, boundary := range []float64{10, 25, 50, 75, 90} {
		below := salaryCurve(boundary - 1e-9)
		above := salaryCurve(boundary + 1e-9)
		assert.InDelta(t, below, above, 0.001, "discontinuity at %v", boundary)
	}
}

func TestBenefitsComponent(t *testing.T) {
	t.Run("absent statutory benefits penalized", func(t *testing.T) {
		with := benefitsComponent(model.ScoringInput{BenefitsCount: 4, PFStatus: model.StatusPresent})
		without := benefitsComponent(model.ScoringInput{BenefitsCount: 4, PFStatus: model.StatusAbsent})
		assert.Equal(t, 15.0, with-without)
	})

	t.Run("unknown status is never penalized", func(t *testing.T) {
		unknown := benefitsComponent(model.ScoringInput{BenefitsCount: 4, PFStatus: model.StatusUnknown})
		present := benefitsComponent(model.ScoringInput{BenefitsCount: 4, PFStatus: model.StatusPresent})
		assert.Equal(t, present, unknown)
	})

	t.Run("relocation and signing bonus are premium class", func(t *testing.T) {
		in := model.ScoringInput{
			BenefitsCount: 2,
			Benefits:      []string{"relocation", "signing bonus"},
		}
		assert.Equal(t, 66.0, benefitsComponent(in))
	})

	t.Run("premium bonus caps at ten", func(t *testing.T) {
		in := model.ScoringInput{
			BenefitsCount: 4,
			Benefits:      []string{"stock options", "flexible work", "learning budget", "wellness"},
		}
		assert.Equal(t, 90.0, benefitsComponent(in))
	})

	t.Run("floor holds", func(t *testing.T) {
		in := model.ScoringInput{
			BenefitsCount:  0,
			PFStatus:       model.StatusAbsent,
			GratuityStatus: model.StatusAbsent,
		}
		assert.Equal(t, 20.0, benefitsComponent(in))
	})
}

func TestClausesComponentFloor(t *testing.T) {
	in := model.ScoringInput{
		NonCompete:          true,
		NonCompeteMonths:    24,
		NonCompeteBroad:     true,
		TrainingBond:        true,
		TrainingBondAmount:  400_000,
		GardenLeave:         true,
		IPAssignmentAllWork: true,
		ProbationMonths:     9,
		TerminationAtWill:   true,
	}
	assert.Equal(t, 20.0, clausesComponent(in, 200_000))
}

func TestCalibrate(t *testing.T) {
	t.Run("continuous at breakpoints", func(t *testing.T) {
		for _, boundary := range []float64{30, 50, 70, 85} {
			below := compress(boundary - 1e-9)
			above := compress(boundary + 1e-9)
			assert.InDelta(t, below, above, 1e-6, "discontinuity at %v", boundary)
		}
	})

	t.Run("monotonic", func(t *testing.T) {
		prev := -1.0
		for x := 0.0; x <= 130; x += 0.5 {
			y := calibrate(x)
			assert.GreaterOrEqual(t, y, prev)
			prev = y
		}
	})

	t.Run("clamped to scale", func(t *testing.T) {
		assert.Equal(t, 100.0, calibrate(130))
		assert.Equal(t, 0.0, calibrate(-40))
	})

	t.Run("linear middle band passes through", func(t *testing.T) {
		assert.Equal(t, 60.0, calibrate(60))
	})
}

func TestGrades(t *testing.T) {
	tests := []struct {
		score float64
		want  model.Grade
	}{
		{95, model.GradeExceptional},
		{85, model.GradeExcellent},
		{75, model.GradeGood},
		{65, model.GradeFair},
		{55, model.GradeAverage},
		{45, model.GradeBelowAverage},
		{35, model.GradePoor},
		{20, model.GradeCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gradeFor(tt.score), "score %v", tt.score)
	}
}

func TestConfidence(t *testing.T) {
	in := model.ScoringInput{
		SalaryInr:        1_000_000,
		NoticePeriodDays: 60,
		SalaryPercentile: pf(50),
		NoticePercentile: pf(50),
		BenefitsCount:    3,
	}

	t.Run("adds up across verified signals", func(t *testing.T) {
		c := confidence(in, model.ScoringContext{CohortConfidence: "high"})
		assert.InDelta(t, 0.95, c, 0.001)
	})

	t.Run("clause and statutory knowledge earn credit", func(t *testing.T) {
		base := confidence(in, model.ScoringContext{})

		withClauses := in
		withClauses.NonCompete = true
		withClauses.TrainingBond = true
		withClauses.PFStatus = model.StatusPresent
		withClauses.GratuityStatus = model.StatusAbsent
		c := confidence(withClauses, model.ScoringContext{})
		assert.InDelta(t, base+0.07, c, 0.001)
	})

	t.Run("half-known statutory status earns nothing", func(t *testing.T) {
		partial := in
		partial.PFStatus = model.StatusPresent
		assert.Equal(t, confidence(in, model.ScoringContext{}), confidence(partial, model.ScoringContext{}))
	})

	t.Run("capped below certainty", func(t *testing.T) {
		full := in
		full.NonCompete = true
		full.TrainingBond = true
		full.PFStatus = model.StatusPresent
		full.GratuityStatus = model.StatusPresent
		c := confidence(full, model.ScoringContext{CohortConfidence: "high"})
		assert.Equal(t, 0.98, c)
	})
}
