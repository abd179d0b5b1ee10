package extract

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/YagYk/FairDeal/internal/model"
)

// bondAmountRules matches explicit bond/service-agreement amounts in INR.
// Lakh forms come first so "₹2 lakhs bond" does not parse as 2 rupees.
var bondAmountRules = buildBondAmountRules()

func buildBondAmountRules() []rule {
	lakhConvert := func(v float64) (float64, bool) {
		if v < 0.1 || v > 100 {
			return 0, false
		}
		return v * lakh, true
	}
	absConvert := func(v float64) (float64, bool) { return v, v >= 10_000 && v <= 10_000_000 }

	bondCtx := `(?:bond|service\s*agreement|service\s*commitment|training\s*(?:cost|agreement|bond)|indemnity)`

	var rules []rule
	for _, p := range []string{
		bondCtx + `.{0,150}?` + cur + `\s*([0-9]+(?:\.[0-9]+)?)\s*(?:lakhs?|lacs?|lac)`,
		cur + `\s*([0-9]+(?:\.[0-9]+)?)\s*(?:lakhs?|lacs?|lac).{0,150}?` + bondCtx,
	} {
		rules = append(rules, rule{
			name:    "bond_lakh",
			re:      regexp.MustCompile(`(?s)` + p),
			convert: lakhConvert,
		})
	}
	for _, p := range []string{
		bondCtx + `.{0,150}?` + cur + `\s*([0-9,]{5,})`,
		cur + `\s*([0-9,]{5,})(?:\s*/-)?.{0,150}?` + bondCtx,
		bondCtx + `\s*(?:of|amount(?:ing)?\s*(?:to)?|:)?\s*` + cur + `?\s*([0-9,]{5,})`,
		`(?:liquidated\s*damages|recover(?:y)?|reimburse).{0,80}?` + cur + `\s*([0-9,]{5,})`,
	} {
		rules = append(rules, rule{
			name:    "bond_amount",
			re:      regexp.MustCompile(`(?s)` + p),
			convert: absConvert,
		})
	}
	return rules
}

// bondMultipleRules matches "N months' salary/CTC" obligations, which can
// only be resolved to rupees once the salary is known. Months parse directly
// (no day conversion) because bonds legitimately run past twelve months.
var bondMultipleRules = []*regexp.Regexp{
	regexp.MustCompile(`(?s)(?:bond|service\s*agreement|training).{0,150}?(\w+)` + sep +
		`months?(?:` + quo + `?s?)?\s*(?:of\s*)?(?:gross\s*|basic\s*)?(?:salary|ctc|compensation|remuneration)`),
	regexp.MustCompile(`(?s)(?:pay|repay|refund|reimburse).{0,60}?(\w+)` + sep +
		`months?(?:` + quo + `?s?)?\s*(?:of\s*)?(?:gross\s*|basic\s*)?(?:salary|ctc|compensation)` +
		`.{0,150}?(?:leav|resign|terminat|bond|before)`),
}

// bondPresence detects a bond obligation with no recoverable amount.
var bondPresence = regexp.MustCompile(
	`(?:service\s*(?:bond|agreement\s*of)|training\s*bond|employment\s*bond|bonded\s*(?:for|period))`)

// extractBond returns the tagged bond obligation found in the text, or nil.
// Salary-multiple bonds carry months, not rupees; the finalization pass in
// the extractor resolves them against the extracted salary.
func extractBond(text string) *model.Bond {
	if res, ok := runCascade(text, bondAmountRules); ok {
		zap.L().Info("extract: bond amount found",
			zap.Float64("amount_inr", res.value),
			zap.String("rule", res.rule),
		)
		return &model.Bond{Kind: model.BondAbsolute, Amount: res.value, SourceText: res.source}
	}

	for _, re := range bondMultipleRules {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		groups := submatches(text, loc)
		months, ok := parseCount(groups[1])
		if !ok || months < 1 || months > 24 {
			continue
		}
		zap.L().Info("extract: bond expressed as salary multiple",
			zap.Int("months", months),
		)
		return &model.Bond{Kind: model.BondSalaryMultiple, Months: months, SourceText: groups[0]}
	}

	if loc := bondPresence.FindStringIndex(text); loc != nil {
		zap.L().Debug("extract: bond detected without amount")
		return &model.Bond{Kind: model.BondUnknown, SourceText: text[loc[0]:loc[1]]}
	}

	return nil
}
