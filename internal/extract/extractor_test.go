package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YagYk/FairDeal/internal/model"
)

func TestExtractSalary(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{
			name: "lpa shorthand",
			text: "your annual ctc will be 12 lpa payable monthly",
			want: 1_200_000,
			ok:   true,
		},
		{
			name: "lakhs per annum",
			text: "a compensation of rs. 8.5 lakhs per annum",
			want: 850_000,
			ok:   true,
		},
		{
			name: "explicit ctc amount",
			text: "total ctc: ₹ 1,450,000 inr",
			want: 1_450_000,
			ok:   true,
		},
		{
			name: "small ctc is lpa shorthand",
			text: "ctc offered 15",
			want: 1_500_000,
			ok:   true,
		},
		{
			name: "monthly salary annualized",
			text: "you will be paid rs. 85,000 per month",
			want: 1_020_000,
			ok:   true,
		},
		{
			name: "bare currency amount",
			text: "remuneration of ₹ 950,000 /- subject to deductions",
			want: 950_000,
			ok:   true,
		},
		{
			name: "gratuity ceiling excluded",
			text: "gratuity payable up to a maximum of rs. 2,000,000 as per the act",
			want: 0,
			ok:   false,
		},
		{
			name: "insurance cover near lpa form excluded",
			text: "medical insurance coverage of 5 lpa for you and dependents",
			want: 0,
			ok:   false,
		},
		{
			name: "currency-marked fixed component wins over breakdown sum",
			text: "fixed: rs. 900,000 and variable: rs. 100,000 reviewed annually",
			want: 900_000,
			ok:   true,
		},
		{
			name: "unmarked fixed plus variable summed",
			text: "fixed: 900,000 and variable: 100,000 reviewed annually",
			want: 1_000_000,
			ok:   true,
		},
		{
			name: "no salary",
			text: "this letter confirms your employment terms",
			want: 0,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := extractSalary(tt.text)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 0.01)
			}
		})
	}
}

func TestSanitizeSalary(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
		ok   bool
	}{
		{"plausible annual", 1_200_000, 1_200_000, true},
		{"tiny value was lpa", 12, 1_200_000, true},
		{"small value was monthly", 9_000, 108_000, true},
		{"absurd value discarded", 600_000_000, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sanitizeSalary(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractNotice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
		ok   bool
	}{
		{
			name: "explicit notice period",
			text: "the notice period shall be 60 days from the date of resignation",
			want: 60,
			ok:   true,
		},
		{
			name: "hyphenated word number months",
			text: "either party may terminate by giving two-months' written notice",
			want: 60,
			ok:   true,
		},
		{
			name: "weeks converted to days",
			text: "a notice period of six weeks applies during probation",
			want: 42,
			ok:   true,
		},
		{
			name: "probation duration not mistaken for notice",
			text: "you will be on probation for three months. termination requires notice as per policy.",
			want: 0,
			ok:   false,
		},
		{
			name: "salary in lieu of notice",
			text: "the company may pay one month salary in lieu of notice",
			want: 30,
			ok:   true,
		},
		{
			name: "ninety days explicit",
			text: "notice period: ninety days",
			want: 90,
			ok:   true,
		},
		{
			name: "out of range rejected",
			text: "notice period of 24 months applies",
			want: 0,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := extractNotice(tt.text)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractBond(t *testing.T) {
	t.Run("absolute amount", func(t *testing.T) {
		b := extractBond("you agree to a service bond of rs. 200,000 for two years")
		require.NotNil(t, b)
		assert.Equal(t, model.BondAbsolute, b.Kind)
		assert.Equal(t, 200_000.0, b.Amount)
	})

	t.Run("lakh form", func(t *testing.T) {
		b := extractBond("a training bond of ₹ 2 lakhs shall apply")
		require.NotNil(t, b)
		assert.Equal(t, model.BondAbsolute, b.Kind)
		assert.Equal(t, 200_000.0, b.Amount)
	})

	t.Run("salary multiple", func(t *testing.T) {
		b := extractBond("under the service agreement you must repay six months' salary if you leave within a year")
		require.NotNil(t, b)
		assert.Equal(t, model.BondSalaryMultiple, b.Kind)
		assert.Equal(t, 6, b.Months)
		assert.Zero(t, b.Amount)
	})

	t.Run("presence without amount", func(t *testing.T) {
		b := extractBond("this employment bond binds you for the training period")
		require.NotNil(t, b)
		assert.Equal(t, model.BondUnknown, b.Kind)
	})

	t.Run("no bond", func(t *testing.T) {
		assert.Nil(t, extractBond("standard employment terms apply"))
	})
}

func TestExtractDurations(t *testing.T) {
	t.Run("non-compete years to months", func(t *testing.T) {
		got, _, ok := extractNonCompete("a non-compete restriction for a period of two years after separation")
		require.True(t, ok)
		assert.Equal(t, 24, got)
	})

	t.Run("probation word form", func(t *testing.T) {
		got, _, ok := extractProbation("you will be on probation for six months")
		require.True(t, ok)
		assert.Equal(t, 6, got)
	})

	t.Run("probation in days rounds to the nearest month", func(t *testing.T) {
		got, _, ok := extractProbation("probationary period of 45 days")
		require.True(t, ok)
		assert.Equal(t, 2, got)
	})

	t.Run("short probation never rounds below one month", func(t *testing.T) {
		got, _, ok := extractProbation("probationary period of 10 days")
		require.True(t, ok)
		assert.Equal(t, 1, got)
	})
}

func TestNonCompetePresenceWithoutDuration(t *testing.T) {
	res := NewExtractor().Extract(model.NewDocument("offer.txt",
		"A restrictive covenant applies following termination of employment."))

	assert.True(t, res.Traits.NonCompetePresent)
	assert.False(t, res.Fields.NonCompeteMonths.Present())
}

func TestExtractBenefits(t *testing.T) {
	text := strings.ToLower(`You are entitled to Health Insurance for self and family,
Provident Fund contributions as per statute, Gratuity, 24 days of paid leave,
work from home twice a week, and ESOP grants per the plan.`)

	got := extractBenefits(text)
	assert.ElementsMatch(t, []string{
		"health insurance", "provident fund", "gratuity", "paid leave",
		"flexible work", "stock options",
	}, got)
	assert.True(t, hasEquity(got))
}

func TestExtractIdentity(t *testing.T) {
	original := `We are pleased to offer you the position of Senior Software Engineer at
Acme Technologies Pvt. Ltd. on the following terms.`
	lowered := strings.ToLower(original)

	role, _, ok := extractRole(lowered, original)
	require.True(t, ok)
	assert.Equal(t, "Senior Software Engineer", role)

	company, _, ok := extractCompany(original)
	require.True(t, ok)
	assert.Contains(t, company, "Acme Technologies")
}

func TestExtractorFinalization(t *testing.T) {
	e := NewExtractor()

	t.Run("salary multiple bond resolved against ctc", func(t *testing.T) {
		doc := model.NewDocument("offer.txt", `Your annual CTC will be 12 LPA.
Under the service agreement you must repay six months' salary if you resign within the bond period.`)
		res := e.Extract(doc)

		require.NotNil(t, res.Bond)
		assert.Equal(t, model.BondAbsolute, res.Bond.Kind)
		assert.InDelta(t, 600_000, res.Bond.Amount, 0.01)

		amount, ok := res.Fields.BondAmountInr.Float()
		require.True(t, ok)
		assert.InDelta(t, 600_000, amount, 0.01)
	})

	t.Run("salary multiple bond with unknown salary resolves to no bond", func(t *testing.T) {
		doc := model.NewDocument("offer.txt",
			`Under the service agreement you must repay six months' salary if you resign early.`)
		res := e.Extract(doc)

		assert.Nil(t, res.Bond)
		assert.False(t, res.Fields.BondAmountInr.Present())
	})

	t.Run("bond equal to salary dropped as misparse", func(t *testing.T) {
		doc := model.NewDocument("offer.txt", `Total CTC: ₹ 1,200,000 INR.
The service bond amount of ₹ 1,200,000 applies as stated above.`)
		res := e.Extract(doc)

		assert.Nil(t, res.Bond)
		assert.False(t, res.Fields.BondAmountInr.Present())
	})

	t.Run("missing fields carry missing method", func(t *testing.T) {
		doc := model.NewDocument("offer.txt", "this letter confirms your employment")
		res := e.Extract(doc)

		assert.Equal(t, model.MethodMissing, res.Fields.CTCInr.Method)
		assert.False(t, res.Fields.CTCInr.Present())
		assert.Equal(t, model.MethodMissing, res.Fields.NoticePeriodDays.Method)
		assert.Zero(t, res.Fields.BenefitsCount)
	})
}

func TestMergeNeverOverwritesPresent(t *testing.T) {
	base := &model.ContractExtractionResult{
		CTCInr:           &model.ExtractedField{Value: 1_200_000.0, Confidence: 0.9, Method: model.MethodPatternMatch},
		NoticePeriodDays: model.MissingField(),
	}
	fallback := &model.ContractExtractionResult{
		CTCInr:           &model.ExtractedField{Value: 900_000.0, Confidence: 0.6, Method: model.MethodModelInferred},
		NoticePeriodDays: &model.ExtractedField{Value: 60, Confidence: 0.6, Method: model.MethodModelInferred},
	}

	base.Merge(fallback)

	ctc, ok := base.CTCInr.Float()
	require.True(t, ok)
	assert.Equal(t, 1_200_000.0, ctc)
	assert.Equal(t, model.MethodPatternMatch, base.CTCInr.Method)

	notice, ok := base.NoticePeriodDays.Int()
	require.True(t, ok)
	assert.Equal(t, 60, notice)
	assert.Equal(t, model.MethodModelInferred, base.NoticePeriodDays.Method)
}
