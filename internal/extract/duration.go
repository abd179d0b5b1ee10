package extract

import (
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// monthsParse resolves a count-plus-unit submatch to whole months. Weeks
// divide by four and days by thirty, rounding to the nearest month but
// never below one.
func monthsParse(groups []string) (float64, bool) {
	val, ok := parseCount(groups[1])
	if !ok {
		return 0, false
	}
	unit := strings.ToLower(groups[2])
	months := float64(val)
	switch {
	case strings.Contains(unit, "week"):
		months = math.Round(float64(val) / 4)
	case strings.Contains(unit, "day"):
		months = math.Round(float64(val) / 30)
	case strings.Contains(unit, "year"):
		months = float64(val) * 12
	}
	if months < 1 {
		months = 1
	}
	return months, true
}

var nonCompeteRules = buildNonCompeteRules()

func buildNonCompeteRules() []rule {
	units := `(months?|years?)`
	ncCtx := `(?:non[\s-]*compet(?:e|ition)|restrictive\s*covenant|shall\s*not\s*(?:join|work|engage|be\s*employed))`
	validate := func(v float64) (float64, bool) { return v, v >= 1 && v <= 60 }

	var rules []rule
	for _, p := range []string{
		ncCtx + `.{0,200}?(?:period\s*of\s*|for\s*(?:a\s*period\s*of\s*)?)(\w+)` + sep + units,
		`(?:period\s*of\s*|for\s*)(\w+)` + sep + units + `.{0,120}?` + ncCtx,
		ncCtx + `.{0,200}?(\w+)` + sep + units,
	} {
		rules = append(rules, rule{
			name:    "non_compete",
			re:      regexp.MustCompile(`(?s)` + p),
			parse:   monthsParse,
			convert: validate,
		})
	}
	return rules
}

// extractNonCompete returns the non-compete restriction length in months.
func extractNonCompete(text string) (int, string, bool) {
	res, ok := runCascade(text, nonCompeteRules)
	if !ok {
		return 0, "", false
	}
	zap.L().Info("extract: non-compete found",
		zap.Int("months", int(res.value)),
		zap.String("rule", res.rule),
	)
	return int(res.value), res.source, true
}

// hasNonCompeteClause reports a non-compete obligation even when its
// duration could not be parsed.
var nonCompetePresence = regexp.MustCompile(
	`non[\s-]*compet(?:e|ition)|restrictive\s*covenant`)

func hasNonCompeteClause(text string) bool {
	return nonCompetePresence.MatchString(text)
}

var probationRules = buildProbationRules()

func buildProbationRules() []rule {
	units := `(months?|weeks?|days?)`
	validate := func(v float64) (float64, bool) { return v, v >= 1 && v <= 24 }

	var rules []rule
	for _, p := range []string{
		`probation(?:ary)?\s*(?:period)?\s*(?:of|is|shall\s*be|will\s*be|:|-|–)?\s*(\w+)` + sep + units,
		`(?:on|under)\s*probation\s*(?:for|of)\s*(\w+)` + sep + units,
		`(\w+)` + sep + units + `(?:` + quo + `?s?)?\s*(?:of\s*)?probation`,
	} {
		rules = append(rules, rule{
			name:    "probation",
			re:      regexp.MustCompile(`(?s)` + p),
			parse:   monthsParse,
			convert: validate,
		})
	}
	return rules
}

// extractProbation returns the probation period in months.
func extractProbation(text string) (int, string, bool) {
	res, ok := runCascade(text, probationRules)
	if !ok {
		return 0, "", false
	}
	zap.L().Info("extract: probation found",
		zap.Int("months", int(res.value)),
		zap.String("rule", res.rule),
	)
	return int(res.value), res.source, true
}
