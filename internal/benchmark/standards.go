package benchmark

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// IndustryStandard holds the accepted contract norms red-flag rules compare
// against.
type IndustryStandard struct {
	TypicalNoticeDays   int `json:"typical_notice_days"`
	MaxProbationMonths  int `json:"max_probation_months"`
	MaxNonCompeteMonths int `json:"max_non_compete_months"`
}

// defaultStandards covers the two industries the datasets span. Unlisted
// industries fall back to tech norms.
var defaultStandards = map[string]IndustryStandard{
	"tech":    {TypicalNoticeDays: 60, MaxProbationMonths: 6, MaxNonCompeteMonths: 12},
	"finance": {TypicalNoticeDays: 90, MaxProbationMonths: 6, MaxNonCompeteMonths: 24},
}

// LoadStandards reads industry norms from a JSON object keyed by industry.
// A missing file is not an error; callers fall back to defaults.
func LoadStandards(path string) (map[string]IndustryStandard, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultStandards, nil
		}
		return nil, eris.Wrapf(err, "benchmark: read standards %s", path)
	}
	var out map[string]IndustryStandard
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, eris.Wrapf(err, "benchmark: parse standards %s", path)
	}
	return out, nil
}

// Standard resolves the norms for an industry, mapping narrow labels to
// their category and defaulting to tech.
func (e *Engine) Standard(industry string) IndustryStandard {
	key := strings.ToLower(strings.TrimSpace(industry))
	if cat, ok := industryCategories[key]; ok {
		key = cat
	}
	if std, ok := e.standards[key]; ok {
		return std
	}
	return e.standards["tech"]
}
