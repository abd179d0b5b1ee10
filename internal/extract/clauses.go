package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/YagYk/FairDeal/internal/model"
)

// clauseHeading locates a clause block by its heading keywords, then
// captures up to the next heading-like line or a hard length cap.
type clauseHeading struct {
	name string
	re   *regexp.Regexp
}

var clauseHeadings = []clauseHeading{
	{"termination", regexp.MustCompile(`(?m)^\s*(?:\d+[.)]\s*)?(?:termination|notice\s+period|separation)\b.*$`)},
	{"ip_assignment", regexp.MustCompile(`(?m)^\s*(?:\d+[.)]\s*)?(?:intellectual\s+property|ip\s+assignment|inventions?)\b.*$`)},
	{"non_compete", regexp.MustCompile(`(?m)^\s*(?:\d+[.)]\s*)?(?:non[\s-]*compet(?:e|ition)|restrictive\s+covenants?)\b.*$`)},
	{"confidentiality", regexp.MustCompile(`(?m)^\s*(?:\d+[.)]\s*)?(?:confidentiality|non[\s-]*disclosure|nda)\b.*$`)},
}

// nextHeading marks where a captured clause block ends.
var nextHeading = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]|[A-Z][A-Z ]{3,}:?)\s*$|^\s*\d+[.)]\s+[A-Za-z]`)

const maxClauseLen = 1500

// extractClauses pulls the four clause blocks that downstream scoring and
// negotiation reference as evidence. Matching is done on lowered text, the
// block text is taken from the original.
func extractClauses(lowered, original string) map[string]model.ExtractedClause {
	out := make(map[string]model.ExtractedClause)
	for _, h := range clauseHeadings {
		loc := h.re.FindStringIndex(lowered)
		if loc == nil {
			continue
		}
		start := loc[0]
		rest := lowered[loc[1]:]
		end := len(lowered)
		if next := nextHeading.FindStringIndex(rest); next != nil {
			end = loc[1] + next[0]
		}
		if end-start > maxClauseLen {
			end = start + maxClauseLen
		}
		block := strings.TrimSpace(original[start:end])
		if block == "" {
			continue
		}
		out[h.name] = model.ExtractedClause{
			Text: block,
			Evidence: &model.ExtractedField{
				Value:      h.name,
				Confidence: 0.9,
				SourceText: truncate(block, 200),
				Method:     model.MethodPatternMatch,
			},
		}
	}
	if len(out) > 0 {
		names := make([]string, 0, len(out))
		for k := range out {
			names = append(names, k)
		}
		zap.L().Debug("extract: clause blocks located", zap.Strings("clauses", names))
	}
	return out
}

// Clause-trait detectors consumed by the scoring input builder.

var broadNonCompete = regexp.MustCompile(
	`non[\s-]*compet.{0,300}?(?:any\s+(?:other\s+)?(?:company|business|organization|entity)|competitor\s+or\s+otherwise|in\s+any\s+capacity)`)

var gardenLeaveClause = regexp.MustCompile(`garden\s*leave`)

var ipAllWork = regexp.MustCompile(
	`(?:all|any).{0,60}?(?:inventions?|work\s*product|intellectual\s*property|creations?).{0,120}?(?:belong|assign|property\s+of|vest)`)

var atWillTermination = regexp.MustCompile(
	`terminat.{0,80}?(?:at\s+(?:its\s+)?(?:sole\s+)?discretion|without\s+(?:any\s+)?(?:cause|reason|notice))`)

var unlimitedDeductions = regexp.MustCompile(
	`deduct.{0,80}?(?:any|all)\s+(?:amounts?|sums?|dues)|recover.{0,60}?from\s+(?:your\s+)?(?:salary|dues|full\s+and\s+final)`)

var weeklyHoursRe = regexp.MustCompile(`(\d{2})\s*hours?\s*(?:per|a|each)\s*week`)

// clauseTraits captures the boolean clause signals scored downstream.
// NonCompetePresent covers clauses whose duration never parsed; the
// restriction still exists and still counts against the contract.
type clauseTraits struct {
	NonCompetePresent   bool
	NonCompeteBroad     bool
	GardenLeave         bool
	IPAssignmentAllWork bool
	TerminationAtWill   bool
	UnlimitedDeductions bool
	WeeklyHours         int
}

func detectClauseTraits(lowered string) clauseTraits {
	t := clauseTraits{
		NonCompetePresent:   hasNonCompeteClause(lowered),
		NonCompeteBroad:     broadNonCompete.MatchString(lowered),
		GardenLeave:         gardenLeaveClause.MatchString(lowered),
		IPAssignmentAllWork: ipAllWork.MatchString(lowered),
		TerminationAtWill:   atWillTermination.MatchString(lowered),
		UnlimitedDeductions: unlimitedDeductions.MatchString(lowered),
	}
	if m := weeklyHoursRe.FindStringSubmatch(lowered); m != nil {
		if v, ok := parseCount(m[1]); ok && v >= 20 && v <= 100 {
			t.WeeklyHours = v
		}
	}
	return t
}
