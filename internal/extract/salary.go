package extract

import (
	"regexp"

	"go.uber.org/zap"
)

const lakh = 100_000

// Exclusion keywords that indicate a statutory ceiling or benefit cap near
// an amount, not compensation.
var salaryExclusions = []string{
	"gratuity", "insurance", "mediclaim", "coverage", "maximum", "limit",
	"cap", "sum assured", "benefit up to", "variable pay", "performance bonus",
}

var bareAmountExclusions = []string{
	"gratuity", "insurance", "maximum", "limit", "cap", "coverage",
}

const cur = `(?:₹|rs\.?|inr)`

// salaryRules is the ordered salary cascade, most specific family first.
var salaryRules = buildSalaryRules()

func buildSalaryRules() []rule {
	lpaConvert := func(v float64) (float64, bool) { return v * lakh, true }
	lpaValidate := func(groups []string) (float64, bool) {
		v, ok := parseNumber(groups[1])
		if !ok || v < 1 || v > 500 {
			return 0, false
		}
		return v, true
	}

	var rules []rule

	// 1. LPA / lakhs-per-annum forms.
	for _, p := range []string{
		cur + `?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:/-)?\s*(?:lpa|l\.p\.a\.)`,
		cur + `?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:lakhs?|lacs?|lac)\s*(?:per\s*annum|p\.?\s*a\.?|annual(?:ly)?)`,
		`ctc[\s:]*` + cur + `?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:lpa|lakhs?|lacs?)`,
		`salary[\s:]*` + cur + `?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:lpa|lakhs?|lacs?)`,
		`package[\s:]*` + cur + `?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:lpa|lakhs?|lacs?)`,
		`compensation[\s:]*` + cur + `?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:lpa|lakhs?|lacs?)`,
	} {
		rules = append(rules, rule{
			name:       "salary_lpa",
			re:         regexp.MustCompile(p),
			exclusions: salaryExclusions,
			window:     50,
			parse:      lpaValidate,
			convert:    lpaConvert,
		})
	}

	// 2. Explicit CTC/annual-salary forms. Amounts above one lakh are
	// already annual INR; small amounts are LPA shorthand.
	ctcConvert := func(v float64) (float64, bool) {
		if v > 100_000 {
			return v, true
		}
		if v >= 1 && v <= 500 {
			return v * lakh, true
		}
		return 0, false
	}
	for _, p := range []string{
		`(?:total|annual|gross|fixed)?\s*ctc\s*(?:offered|is|:|-|–)?\s*` + cur + `?\s*([0-9,]+(?:\.[0-9]+)?)(?:\s*(?:inr|rs\.?|/-))?`,
		`cost\s*to\s*company\s*(?:is|:|-|–)?\s*` + cur + `?\s*([0-9,]+(?:\.[0-9]+)?)(?:\s*(?:inr|rs\.?|/-))?`,
		`(?:annual|yearly)\s*(?:salary|compensation|package)\s*(?:is|:|-|–)?\s*` + cur + `?\s*([0-9,]+(?:\.[0-9]+)?)(?:\s*(?:inr|rs\.?|/-))?`,
		`(?:salary|ctc)\s+is\s+` + cur + `?\s*([0-9,]+(?:\.[0-9]+)?)(?:\s*(?:inr|rs\.?|/-))?`,
	} {
		rules = append(rules, rule{
			name:    "salary_ctc_explicit",
			re:      regexp.MustCompile(p),
			convert: ctcConvert,
		})
	}

	// 3. Monthly salary forms, annualized.
	monthlyConvert := func(v float64) (float64, bool) {
		if v < 10_000 || v > 1_000_000 {
			return 0, false
		}
		return v * 12, true
	}
	for _, p := range []string{
		cur + `?\s*([0-9,]+(?:\.[0-9]+)?)\s*(?:per\s*month|monthly|p\.?\s*m\.?|/\s*month)`,
		`monthly\s*(?:salary|ctc|compensation|pay)\s*(?:is|:|-|–)?\s*` + cur + `?\s*([0-9,]+(?:\.[0-9]+)?)`,
		`cost\s*to\s*company\s*(?:per\s*month|monthly)\s*` + cur + `?\s*([0-9,]+(?:\.[0-9]+)?)`,
	} {
		rules = append(rules, rule{
			name:    "salary_monthly",
			re:      regexp.MustCompile(p),
			convert: monthlyConvert,
		})
	}

	// 4. Bare currency-prefixed large numbers (six digits and up).
	bigConvert := func(v float64) (float64, bool) { return v, v > 100_000 }
	for _, p := range []string{
		cur + `\s*([0-9,]{6,})(?:\s*/-|\s*per\s*annum|p\.a\.)?`,
		`([0-9,]{6,})\s*(?:inr|rs\.?)(?:\s*/-|\s*per\s*annum|p\.a\.)?`,
	} {
		rules = append(rules, rule{
			name:       "salary_inr_amount",
			re:         regexp.MustCompile(p),
			exclusions: bareAmountExclusions,
			window:     50,
			convert:    bigConvert,
		})
	}

	// 5. Fixed + variable breakdown, summed; a small sum was monthly. Last
	// resort for breakdowns that carry no currency marker.
	rules = append(rules, rule{
		name: "salary_fixed_variable",
		re:   regexp.MustCompile(`(?s)fixed[\s:]+` + cur + `?\s*([0-9,]+).*?variable[\s:]+` + cur + `?\s*([0-9,]+)`),
		parse: func(groups []string) (float64, bool) {
			fixed, ok := parseNumber(groups[1])
			if !ok {
				return 0, false
			}
			variable, _ := parseNumber(groups[2])
			total := fixed + variable
			if total < 200_000 {
				total *= 12
			}
			return total, true
		},
	})

	return rules
}

// extractSalary runs the salary cascade and the post-pass sanity check
// against lowered text, returning the annual CTC in INR.
func extractSalary(text string) (float64, string, bool) {
	res, ok := runCascade(text, salaryRules)
	if !ok {
		zap.L().Debug("extract: no salary found")
		return 0, "", false
	}
	v, ok := sanitizeSalary(res.value)
	if !ok {
		zap.L().Warn("extract: implausible salary discarded",
			zap.Float64("value", res.value),
			zap.String("rule", res.rule),
		)
		return 0, "", false
	}
	zap.L().Info("extract: salary found",
		zap.Float64("annual_inr", v),
		zap.String("rule", res.rule),
	)
	return v, res.source, true
}

// sanitizeSalary re-classifies implausible results: tiny values were LPA,
// small values were monthly, absurd values are garbage.
func sanitizeSalary(v float64) (float64, bool) {
	switch {
	case v > 500_000_000:
		return 0, false
	case v < 200:
		return v * lakh, true
	case v < 10_000:
		return v * 12, true
	}
	return v, true
}
