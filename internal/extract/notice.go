package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Quote/apostrophe variants and number-unit separators seen in contracts.
const (
	quo = `['` + "`" + `´‘’]`
	sep = `[\s\-]*`
)

// Keywords that mark a duration as belonging to an unrelated clause.
var noticeExclusions = []string{
	"probation", "bond", "training", "gratuity", "leave", "insurance",
	"maternity", "paternity",
}

// hyphenatedUnit normalizes "one-month" / "three–months'" to "one month"
// before the cascade runs.
var hyphenatedUnit = regexp.MustCompile(
	`\b(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|fifteen|thirty|sixty|ninety|\d+)\s*[-–—]\s*(month|week|day|calendar)`)

func normalizeNoticeText(text string) string {
	return hyphenatedUnit.ReplaceAllString(text, "$1 $2")
}

// toDays converts a count in the matched unit to days, bounded to [1,365].
func toDays(val int, unit string) (int, bool) {
	days := val
	switch {
	case strings.Contains(unit, "week"):
		days = val * 7
	case strings.Contains(unit, "month"), strings.Contains(unit, "calendar"):
		days = val * 30
	}
	if days < 1 || days > 365 {
		return 0, false
	}
	return days, true
}

// durationParse resolves group 1 as a numeric or word count and group 2 as
// the unit, producing days.
func durationParse(groups []string) (float64, bool) {
	val, ok := parseCount(groups[1])
	if !ok {
		return 0, false
	}
	days, ok := toDays(val, strings.ToLower(groups[2]))
	if !ok {
		return 0, false
	}
	return float64(days), true
}

var noticeRules = buildNoticeRules()

func buildNoticeRules() []rule {
	units := `(days?|weeks?|months?|calendar\s*months?)`
	shortUnits := `(months?|weeks?|days?)`
	qualifiers := `(?:written\s+|advance\s+|prior\s+)*`

	mk := func(name, pattern string, exclude bool) rule {
		r := rule{
			name:  name,
			re:    regexp.MustCompile(`(?s)` + pattern),
			parse: durationParse,
		}
		if exclude {
			r.exclusions = noticeExclusions
			r.window = 80
		}
		return r
	}

	return []rule{
		// Explicit "notice period is/of/shall be N unit".
		mk("notice_explicit", `notice\s*period\s*(?:is|of|shall\s*be|will\s*be|:|-|–)?\s*(\w+)`+sep+units, false),

		// "giving/providing/serving N unit(s)' notice".
		mk("notice_giving", `(?:by\s+)?giving\s+(\w+)`+sep+shortUnits+`(?:`+quo+`?s?)?\s*`+qualifiers+`notice`, false),
		mk("notice_giving", `(?:by\s+)?provid(?:e|ing)\s+(\w+)`+sep+shortUnits+`(?:`+quo+`?s?)?\s*`+qualifiers+`notice`, false),
		mk("notice_giving", `serve\s+(?:a\s+)?(\w+)`+sep+shortUnits+`(?:`+quo+`?s?)?\s*`+qualifiers+`notice`, false),

		// Generic "N unit(s)['] notice" — context-checked against unrelated
		// clauses within ±80 characters.
		mk("notice_generic", `(\w+)`+sep+shortUnits+`(?:`+quo+`?s?)?\s*`+qualifiers+`notice(?:\s+period)?`, true),
		mk("notice_generic", `(\w+)`+sep+shortUnits+`(?:`+quo+`?s?)?\s*notice\s+(?:in\s+writing)`, true),

		// "notice of N unit".
		mk("notice_of", `notice\s*of\s*(\w+)`+sep+units, false),
		mk("notice_of", `advance\s*(?:written\s+)?notice\s*of\s*(\w+)`+sep+units, false),

		// Termination/resignation-section scan.
		mk("notice_termination", `terminat(?:ion|e|able).{0,250}?(?:giving|provide|serve)\s+(\w+)`+sep+shortUnits+`(?:`+quo+`?s?)?\s*`+qualifiers+`notice`, false),
		mk("notice_termination", `resign(?:ation|ing)?.{0,200}?(?:giving|provide)\s+(\w+)`+sep+shortUnits+`(?:`+quo+`?s?)?\s*`+qualifiers+`notice`, false),
		mk("notice_termination", `terminat(?:ion|e|able).{0,250}?(\w+)`+sep+shortUnits+`(?:`+quo+`?s?)?\s*`+qualifiers+`notice`, false),

		// "salary in lieu of notice".
		mk("notice_lieu", `(\w+)`+sep+shortUnits+`(?:`+quo+`?s?)?\s*(?:salary|pay|compensation).{0,30}?in\s*lieu\s*(?:of)?\s*(?:the\s*)?notice`, false),
		mk("notice_lieu", `in\s*lieu\s*(?:of)?\s*(?:the\s*)?notice\s*(?:period)?.{0,40}?(\w+)`+sep+shortUnits, false),
	}
}

// anyDuration feeds the last-resort proximity scan.
var anyDuration = regexp.MustCompile(`(\w+)` + sep + `(months?|weeks?|days?)(?:` + quo + `?s?)?`)

// extractNotice returns the notice period in days.
func extractNotice(text string) (int, string, bool) {
	norm := normalizeNoticeText(text)

	if res, ok := runCascade(norm, noticeRules); ok {
		zap.L().Info("extract: notice period found",
			zap.Int("days", int(res.value)),
			zap.String("rule", res.rule),
		)
		return int(res.value), res.source, true
	}

	// Last resort: any "N unit" with "notice" within 80 characters, as long
	// as no unrelated-clause keyword shares the window.
	for _, loc := range anyDuration.FindAllStringSubmatchIndex(norm, -1) {
		groups := submatches(norm, loc)
		val, ok := parseCount(groups[1])
		if !ok {
			continue
		}
		lo := max(0, loc[0]-80)
		hi := min(len(norm), loc[1]+80)
		window := norm[lo:hi]
		if !strings.Contains(window, "notice") {
			continue
		}
		if containsAny(window, noticeExclusions) {
			continue
		}
		if days, ok := toDays(val, strings.ToLower(groups[2])); ok {
			zap.L().Info("extract: notice period found",
				zap.Int("days", days),
				zap.String("rule", "notice_proximity"),
			)
			return days, groups[0], true
		}
	}

	zap.L().Debug("extract: no notice period found")
	return 0, "", false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
