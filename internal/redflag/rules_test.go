package redflag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YagYk/FairDeal/internal/model"
)

func pf(v float64) *float64 { return &v }

func TestDetectExploitativeContract(t *testing.T) {
	in := model.ScoringInput{
		SalaryPercentile:   pf(8),
		NoticePercentile:   pf(88),
		NoticePeriodDays:   90,
		NonCompete:         true,
		NonCompeteMonths:   18,
		TrainingBond:       true,
		TrainingBondAmount: 300_000,
		ProbationMonths:    9,
		BenefitsCount:      1,
	}

	flags, terms := Detect(in)

	ids := make([]string, 0, len(flags))
	for _, f := range flags {
		ids = append(ids, f.ID)
	}
	assert.ElementsMatch(t, []string{
		"SALARY_CRITICAL_LOW", "NOTICE_VERY_LONG", "NON_COMPETE_EXCESSIVE",
		"BOND_EXCESSIVE", "PROBATION_LONG", "BENEFITS_SPARSE",
	}, ids)
	assert.Empty(t, terms)

	// Worst first.
	for i := 1; i < len(flags); i++ {
		assert.LessOrEqual(t, flags[i-1].ImpactScore, flags[i].ImpactScore)
	}
	require.Equal(t, "SALARY_CRITICAL_LOW", flags[0].ID)
	assert.Equal(t, model.SeverityCritical, flags[0].Severity)
	assert.NotEmpty(t, flags[0].MarketContext)
}

func TestDetectFavorableContract(t *testing.T) {
	in := model.ScoringInput{
		SalaryPercentile: pf(92),
		NoticePercentile: pf(12),
		NoticePeriodDays: 30,
		ProbationMonths:  3,
		BenefitsCount:    7,
	}

	flags, terms := Detect(in)
	assert.Empty(t, flags)

	ids := make([]string, 0, len(terms))
	for _, term := range terms {
		ids = append(ids, term.ID)
	}
	assert.ElementsMatch(t, []string{
		"SALARY_EXCELLENT", "NOTICE_SHORT", "PROBATION_SHORT", "BENEFITS_COMPREHENSIVE",
	}, ids)
}

func TestNoticeRawFallback(t *testing.T) {
	t.Run("long notice without benchmark", func(t *testing.T) {
		flags, _ := Detect(model.ScoringInput{NoticePeriodDays: 90, BenefitsCount: 4})
		require.Len(t, flags, 1)
		assert.Equal(t, "NOTICE_VERY_LONG", flags[0].ID)
		assert.Empty(t, flags[0].MarketContext)
	})

	t.Run("short notice without benchmark", func(t *testing.T) {
		_, terms := Detect(model.ScoringInput{NoticePeriodDays: 15, BenefitsCount: 4})
		ids := make([]string, 0, len(terms))
		for _, term := range terms {
			ids = append(ids, term.ID)
		}
		assert.Contains(t, ids, "NOTICE_SHORT")
	})
}

func TestMissingDataRaisesNothing(t *testing.T) {
	flags, terms := Detect(model.ScoringInput{BenefitsCount: 3})
	assert.Empty(t, flags)
	assert.Empty(t, terms)
}
