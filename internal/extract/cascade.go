// Package extract turns raw contract text into confidence-tagged typed
// fields using deterministic, ordered pattern cascades. No model inference
// happens here; the optional LLM fallback lives in pkg/llm and is merged in
// by the pipeline.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// rule is one entry of an ordered pattern cascade: a pre-compiled pattern,
// an optional exclusion-keyword window check, and parse/validate/convert
// hooks. The first rule whose match survives all checks wins and later
// rules are not consulted.
type rule struct {
	name string
	re   *regexp.Regexp

	// exclusions rejects a match when any keyword appears within window
	// characters around it (statutory ceilings, unrelated clauses).
	exclusions []string
	window     int

	// parse extracts the candidate value from the submatch; defaults to
	// parsing group 1 as a number. Returning false rejects the match.
	parse func(groups []string) (float64, bool)

	// convert maps the parsed value to canonical units (LPA to INR, months
	// to days). Returning false rejects the match.
	convert func(v float64) (float64, bool)
}

// cascadeResult carries the winning value with the text that produced it.
type cascadeResult struct {
	value  float64
	source string
	rule   string
}

// runCascade evaluates rules in order against lowered text and returns the
// first accepted match.
func runCascade(text string, rules []rule) (cascadeResult, bool) {
	for _, r := range rules {
		loc := r.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		groups := submatches(text, loc)
		if r.excludedAt(text, loc[0], loc[1]) {
			zap.L().Debug("extract: match rejected by exclusion context",
				zap.String("rule", r.name),
				zap.String("match", truncate(groups[0], 60)),
			)
			continue
		}
		v, ok := parseWith(r, groups)
		if !ok {
			continue
		}
		if r.convert != nil {
			if v, ok = r.convert(v); !ok {
				continue
			}
		}
		return cascadeResult{value: v, source: groups[0], rule: r.name}, true
	}
	return cascadeResult{}, false
}

func parseWith(r rule, groups []string) (float64, bool) {
	if r.parse != nil {
		return r.parse(groups)
	}
	if len(groups) < 2 {
		return 0, false
	}
	return parseNumber(groups[1])
}

func (r rule) excludedAt(text string, start, end int) bool {
	if len(r.exclusions) == 0 {
		return false
	}
	w := r.window
	if w <= 0 {
		w = 50
	}
	lo := max(0, start-w)
	hi := min(len(text), end+w)
	window := text[lo:hi]
	for _, kw := range r.exclusions {
		if strings.Contains(window, kw) {
			return true
		}
	}
	return false
}

func submatches(text string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		if loc[2*i] >= 0 {
			out[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return out
}

// parseNumber strips grouping characters and parses the remainder. A match
// that fails to parse is dropped silently and extraction continues
// (sanitization failures never abort a cascade).
func parseNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, c := range s {
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteRune(c)
		}
	}
	clean := b.String()
	if clean == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		zap.L().Debug("extract: unparseable numeric match dropped", zap.String("raw", truncate(s, 40)))
		return 0, false
	}
	return v, true
}

// wordNumbers resolves the word-number tokens that appear in notice and
// probation clauses.
var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "fifteen": 15, "thirty": 30,
	"sixty": 60, "ninety": 90,
}

// parseCount resolves a token that may be a digit string or a word number.
func parseCount(raw string) (int, bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if v, ok := wordNumbers[raw]; ok {
		return v, true
	}
	n, ok := parseNumber(raw)
	if !ok || n <= 0 {
		return 0, false
	}
	return int(n), true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
