package benchmark

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/YagYk/FairDeal/internal/model"
)

// minCohortSize is the floor below which a filter is dropped rather than
// applied, and below which no percentile is reported at all.
const minCohortSize = 5

// roleAliases folds common shorthands into canonical titles before category
// matching.
var roleAliases = map[string]string{
	"sde":                          "software engineer",
	"swe":                          "software engineer",
	"software development engineer": "software engineer",
	"sde-1":                        "software engineer",
	"sde-2":                        "software engineer",
	"programmer":                   "software engineer",
	"full stack developer":         "software engineer",
	"backend developer":            "software engineer",
	"frontend developer":           "software engineer",
	"ml engineer":                  "data scientist",
	"machine learning engineer":    "data scientist",
	"pm":                           "product manager",
	"sre":                          "devops engineer",
	"site reliability engineer":    "devops engineer",
	"qa engineer":                  "test engineer",
	"sdet":                         "test engineer",
}

// roleCategories groups titles that benchmark against each other.
var roleCategories = map[string][]string{
	"software engineer": {"software engineer", "developer", "software developer"},
	"data scientist":    {"data scientist", "data engineer", "ai engineer"},
	"data analyst":      {"data analyst", "business analyst", "analyst"},
	"product manager":   {"product manager", "program manager", "product owner"},
	"devops engineer":   {"devops engineer", "devops", "platform engineer", "cloud engineer"},
	"test engineer":     {"test engineer", "qa", "quality engineer"},
	"designer":          {"designer", "ux designer", "ui designer", "product designer"},
}

// industryCategories maps a narrow industry label to the broad category
// tried before the industry filter is dropped entirely.
var industryCategories = map[string]string{
	"fintech":    "tech",
	"edtech":     "tech",
	"healthtech": "tech",
	"saas":       "tech",
	"ecommerce":  "tech",
	"it":         "tech",
	"software":   "tech",
	"banking":    "finance",
	"insurance":  "finance",
	"nbfc":       "finance",
}

// Query identifies the cohort a contract is benchmarked against.
type Query struct {
	Role            string
	ExperienceYears float64
	CompanyType     string
	Location        string
	Industry        string
	SalaryInr       float64
	NoticeDays      int
}

// Engine answers benchmark queries against an in-memory market dataset.
type Engine struct {
	records   []Record
	standards map[string]IndustryStandard
}

func NewEngine(records []Record, standards map[string]IndustryStandard) *Engine {
	if standards == nil {
		standards = defaultStandards
	}
	return &Engine{records: records, standards: standards}
}

// Benchmark builds the tightest cohort of at least minCohortSize records for
// the query. The role cohort is mandatory: if neither categorical nor
// token-overlap matching clears the floor, the result is empty. Each further
// filter (company type, location, experience, industry, in that fixed order)
// is kept only while the cohort stays at or above the floor; a dropped
// filter is recorded as a broaden step. Role is never relaxed.
func (e *Engine) Benchmark(q Query) *model.BenchmarkResult {
	canonical := canonicalRole(q.Role)
	filters := map[string]any{"role": canonical}
	result := &model.BenchmarkResult{FiltersUsed: filters}

	cohort := e.roleCohort(canonical)
	if len(cohort) < minCohortSize {
		result.Warning = "no comparable market records found"
		zap.L().Warn("benchmark: role cohort below floor",
			zap.String("role", canonical),
			zap.Int("matched", len(cohort)),
		)
		return result
	}

	var steps []string
	apply := func(key, step string, value any, pred func(Record) bool) {
		filtered := keep(cohort, pred)
		if len(filtered) >= minCohortSize {
			cohort = filtered
			filters[key] = value
			return
		}
		steps = append(steps, step)
	}

	if q.CompanyType != "" {
		ct := strings.ToLower(q.CompanyType)
		apply("company_type", "removed_company_type_constraint", ct, func(r Record) bool {
			return r.CompanyType == ct
		})
	}
	if q.Location != "" {
		loc := strings.ToLower(q.Location)
		apply("location", "removed_location_constraint", loc, func(r Record) bool {
			return r.Location == loc
		})
	}
	if q.ExperienceYears > 0 {
		apply("experience_years", "removed_experience_constraint", q.ExperienceYears, func(r Record) bool {
			return experienceMatches(q.ExperienceYears, r)
		})
	}
	if q.Industry != "" {
		ind := strings.ToLower(strings.TrimSpace(q.Industry))
		narrow := keep(cohort, func(r Record) bool {
			return r.Industry == "" || r.Industry == ind
		})
		switch {
		case len(narrow) >= minCohortSize:
			cohort = narrow
			filters["industry"] = ind
		default:
			// Widen to the industry category before giving up on the
			// constraint entirely.
			cat := industryCategoryFor(ind)
			broadened := keep(cohort, func(r Record) bool {
				return r.Industry == "" || industryCategoryFor(r.Industry) == cat
			})
			if len(broadened) >= minCohortSize {
				cohort = broadened
				filters["industry"] = cat
				steps = append(steps, "broadened_industry_category")
			} else {
				steps = append(steps, "removed_industry_constraint")
			}
		}
	}

	result.CohortSize = len(cohort)
	result.BroadenSteps = steps

	salaries := collect(cohort, func(r Record) *float64 { return r.SalaryInr })
	if len(salaries) < minCohortSize {
		result.Warning = "too few salary records in cohort, percentile unavailable"
	} else {
		sort.Float64s(salaries)
		if q.SalaryInr > 0 {
			p := percentileOf(salaries, q.SalaryInr)
			result.PercentileSalary = &p
		}
		result.MarketMean = mean(salaries)
		result.MarketMedian = quantile(salaries, 0.50)
		result.MarketP25 = quantile(salaries, 0.25)
		result.MarketP75 = quantile(salaries, 0.75)
	}

	if q.NoticeDays > 0 {
		if p, ok := e.noticePercentile(q); ok {
			result.PercentileNotice = &p
		}
	}

	zap.L().Info("benchmark: cohort resolved",
		zap.String("role", canonical),
		zap.Int("cohort_size", len(cohort)),
		zap.Strings("steps", steps),
	)
	return result
}

// roleCohort selects the records the query can be compared against. Exact
// and categorical title matches are preferred; if they fall under the floor
// the match widens to token overlap against free-text titles.
func (e *Engine) roleCohort(canonical string) []Record {
	exact := keep(e.records, func(r Record) bool {
		return categoricalRoleMatch(canonical, r.Role)
	})
	if len(exact) >= minCohortSize {
		return exact
	}
	return keep(e.records, func(r Record) bool {
		if r.Role == "" {
			return false
		}
		return categoricalRoleMatch(canonical, r.Role) ||
			tokenOverlap(canonical, canonicalRole(r.Role))
	})
}

func keep(records []Record, pred func(Record) bool) []Record {
	var out []Record
	for _, rec := range records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func canonicalRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if alias, ok := roleAliases[role]; ok {
		return alias
	}
	return role
}

func categoricalRoleMatch(canonical, recordRole string) bool {
	if recordRole == "" {
		return false
	}
	recordRole = canonicalRole(recordRole)
	if canonical == recordRole {
		return true
	}
	for _, members := range roleCategories {
		if containsRole(members, canonical) && containsRole(members, recordRole) {
			return true
		}
	}
	return false
}

func containsRole(members []string, role string) bool {
	for _, m := range members {
		if m == role || strings.Contains(role, m) {
			return true
		}
	}
	return false
}

// tokenOverlap accepts a record title only when every significant token of
// the query title appears in it; seniority qualifiers are ignored.
func tokenOverlap(query, record string) bool {
	stop := map[string]bool{
		"senior": true, "junior": true, "lead": true, "principal": true,
		"staff": true, "associate": true, "i": true, "ii": true, "iii": true,
	}
	matched := false
	for _, tok := range strings.Fields(query) {
		if len(tok) < 3 || stop[tok] {
			continue
		}
		if !strings.Contains(record, tok) {
			return false
		}
		matched = true
	}
	return matched
}

// experienceMatches accepts records whose experience band contains the
// candidate; point values get a one-year tolerance either side.
func experienceMatches(years float64, rec Record) bool {
	if rec.ExpLow == nil {
		return true
	}
	lo := *rec.ExpLow
	if rec.ExpHigh != nil && *rec.ExpHigh != lo {
		return years >= lo && years <= *rec.ExpHigh
	}
	return years >= lo-1 && years <= lo+1
}

func industryCategoryFor(industry string) string {
	key := strings.ToLower(strings.TrimSpace(industry))
	if cat, ok := industryCategories[key]; ok {
		return cat
	}
	return key
}

// noticePercentile benchmarks the notice period against the company-type
// segment, falling back to the full dataset when that segment is under the
// floor.
func (e *Engine) noticePercentile(q Query) (float64, bool) {
	segment := func(typed bool) []float64 {
		var out []float64
		for _, rec := range e.records {
			if rec.NoticeDays == nil {
				continue
			}
			if typed && rec.CompanyType != "" && rec.CompanyType != strings.ToLower(q.CompanyType) {
				continue
			}
			out = append(out, *rec.NoticeDays)
		}
		return out
	}

	values := segment(q.CompanyType != "")
	if len(values) < minCohortSize {
		values = segment(false)
	}
	if len(values) == 0 {
		return 0, false
	}
	sort.Float64s(values)
	return percentileOf(values, float64(q.NoticeDays)), true
}

// NoticeStats summarizes notice periods for a company type.
func (e *Engine) NoticeStats(companyType string) (meanDays, medianDays float64, n int) {
	var values []float64
	for _, rec := range e.records {
		if rec.NoticeDays == nil {
			continue
		}
		if companyType != "" && rec.CompanyType != "" && rec.CompanyType != strings.ToLower(companyType) {
			continue
		}
		values = append(values, *rec.NoticeDays)
	}
	if len(values) == 0 {
		return 0, 0, 0
	}
	sort.Float64s(values)
	return mean(values), quantile(values, 0.50), len(values)
}

// percentileOf is the inclusive empirical percentile: the share of sorted
// values less than or equal to x.
func percentileOf(sorted []float64, x float64) float64 {
	count := sort.SearchFloat64s(sorted, x)
	for count < len(sorted) && sorted[count] <= x {
		count++
	}
	return float64(count) / float64(len(sorted)) * 100
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// quantile interpolates linearly between order statistics.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

func collect(records []Record, get func(Record) *float64) []float64 {
	var out []float64
	for _, rec := range records {
		if v := get(rec); v != nil {
			out = append(out, *v)
		}
	}
	return out
}
