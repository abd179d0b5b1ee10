// Package benchmark places extracted contract terms within market cohorts
// built from offer datasets, relaxing cohort constraints progressively when
// too few comparable records exist.
package benchmark

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Record is one market data point. Numeric fields are pointers because
// source datasets routinely carry nulls and junk strings; a record with no
// salary still contributes to notice cohorts and vice versa.
type Record struct {
	Role        string
	SalaryInr   *float64
	NoticeDays  *float64
	Location    string
	Industry    string
	ExpLow      *float64
	ExpHigh     *float64
	CompanyType string
}

// Column aliases seen across scraped datasets, checked in order.
var (
	salaryKeys     = []string{"salary_inr", "ctc_inr", "annual_ctc", "salary", "salary_annual"}
	noticeKeys     = []string{"notice_period_days", "notice_days", "notice_period"}
	locationKeys   = []string{"location", "city"}
	industryKeys   = []string{"industry", "category"}
	experienceKeys = []string{"yoe", "experience_years", "experience"}
	roleKeys       = []string{"role", "designation", "title", "job_title"}
	companyKeys    = []string{"company_type", "company_category"}
)

// LoadDataset reads one JSON array of records. Records that coerce to
// neither a salary nor a notice value are dropped; they would only inflate
// cohort sizes without contributing to any percentile.
func LoadDataset(path string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "benchmark: read dataset %s", path)
	}

	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, eris.Wrapf(err, "benchmark: parse dataset %s", path)
	}

	companyType := inferCompanyType(filepath.Base(path))

	records := make([]Record, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		rec := coerceRecord(row)
		if rec.CompanyType == "" {
			rec.CompanyType = companyType
		}
		if rec.SalaryInr == nil && rec.NoticeDays == nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	zap.L().Info("benchmark: dataset loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped),
	)
	return records, nil
}

// LoadDatasetDir loads every .json file under dir, concatenating records.
// Per-file company type is inferred from the filename.
func LoadDatasetDir(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "benchmark: read dataset dir %s", dir)
	}

	var all []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		records, err := LoadDataset(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	if len(all) == 0 {
		return nil, eris.Errorf("benchmark: no records found under %s", dir)
	}
	return all, nil
}

// inferCompanyType reads the dataset's company segment off its filename.
func inferCompanyType(filename string) string {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "product"):
		return "product"
	case strings.Contains(name, "startup"):
		return "startup"
	case strings.Contains(name, "service"):
		return "service"
	}
	return ""
}

func coerceRecord(row map[string]any) Record {
	rec := Record{
		Role:        strings.ToLower(firstString(row, roleKeys)),
		SalaryInr:   firstNumber(row, salaryKeys),
		NoticeDays:  firstNumber(row, noticeKeys),
		Location:    strings.ToLower(firstString(row, locationKeys)),
		Industry:    strings.ToLower(firstString(row, industryKeys)),
		CompanyType: strings.ToLower(firstString(row, companyKeys)),
	}
	rec.ExpLow, rec.ExpHigh = firstExperience(row)
	return rec
}

func firstString(row map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := row[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// firstNumber coerces the first aliased column that parses; non-numeric
// values become null rather than zero.
func firstNumber(row map[string]any, keys []string) *float64 {
	for _, k := range keys {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return &n
		case string:
			s := strings.TrimSpace(n)
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstExperience parses the experience column, which appears as a number,
// a range like "0-2", an open range like "3+" (read as a three-year band),
// or the word "fresher".
func firstExperience(row map[string]any) (*float64, *float64) {
	for _, k := range experienceKeys {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return &n, &n
		case string:
			if lo, hi, ok := parseExperienceRange(n); ok {
				return lo, hi
			}
		}
	}
	return nil, nil
}

func parseExperienceRange(s string) (*float64, *float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return nil, nil, false
	case s == "fresher":
		lo, hi := 0.0, 1.0
		return &lo, &hi, true
	case strings.HasSuffix(s, "+"):
		base, err := strconv.ParseFloat(strings.TrimSuffix(s, "+"), 64)
		if err != nil {
			return nil, nil, false
		}
		hi := base + 3
		return &base, &hi, true
	case strings.Contains(s, "-"):
		parts := strings.SplitN(s, "-", 2)
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return nil, nil, false
		}
		return &lo, &hi, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, nil, false
	}
	return &v, &v, true
}
