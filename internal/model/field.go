// Package model defines the typed records exchanged between the extraction,
// benchmark, red-flag, and scoring engines.
package model

// ExtractionMethod records how a field value was obtained.
type ExtractionMethod string

const (
	MethodPatternMatch  ExtractionMethod = "pattern_match"
	MethodModelInferred ExtractionMethod = "model_inferred"
	MethodMissing       ExtractionMethod = "missing"
)

// ExtractedField is a confidence-tagged value pulled from contract text.
// A missing field has Method == MethodMissing, a nil value, and zero
// confidence; zero is a valid domain value and is never used to mean
// "not found".
type ExtractedField struct {
	Value      any              `json:"value"`
	Confidence float64          `json:"confidence"`
	SourceText string           `json:"source_text,omitempty"`
	PageNumber int              `json:"page_number,omitempty"`
	Method     ExtractionMethod `json:"method"`
}

// MissingField returns the canonical "not found" field.
func MissingField() *ExtractedField {
	return &ExtractedField{Value: nil, Confidence: 0, Method: MethodMissing}
}

// Present reports whether the field carries a real value.
func (f *ExtractedField) Present() bool {
	return f != nil && f.Method != MethodMissing && f.Value != nil
}

// Float returns the field value as a float64 if present.
func (f *ExtractedField) Float() (float64, bool) {
	if !f.Present() {
		return 0, false
	}
	switch v := f.Value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Int returns the field value as an int if present.
func (f *ExtractedField) Int() (int, bool) {
	v, ok := f.Float()
	if !ok {
		return 0, false
	}
	return int(v), true
}

// String returns the field value as a string if present.
func (f *ExtractedField) String() (string, bool) {
	if !f.Present() {
		return "", false
	}
	s, ok := f.Value.(string)
	return s, ok
}

// BondKind tags how a bond obligation was expressed in the contract.
type BondKind string

const (
	BondAbsolute       BondKind = "absolute"        // explicit amount
	BondSalaryMultiple BondKind = "salary_multiple" // "N months of salary"
	BondUnknown        BondKind = "unknown"
)

// Bond is the tagged representation of a training/service bond. A
// SalaryMultiple bond holds Months and is resolved to an Absolute amount in
// the extraction finalization step once the salary is known; if the salary
// is unknown the bond collapses to Unknown.
type Bond struct {
	Kind       BondKind `json:"kind"`
	Amount     float64  `json:"amount,omitempty"`
	Months     int      `json:"months,omitempty"`
	SourceText string   `json:"source_text,omitempty"`
}

// ExtractedClause is a clause block located in the contract with its
// supporting evidence field.
type ExtractedClause struct {
	Text     string          `json:"text"`
	Evidence *ExtractedField `json:"evidence,omitempty"`
}

// ContractExtractionResult aggregates all fields extracted from one
// document. It is created once per analysis and not mutated after the
// finalization pass, except for field-by-field merge with a fallback
// extractor (which never overwrites a present field).
type ContractExtractionResult struct {
	CTCInr           *ExtractedField            `json:"ctc_inr,omitempty"`
	NoticePeriodDays *ExtractedField            `json:"notice_period_days,omitempty"`
	BondAmountInr    *ExtractedField            `json:"bond_amount_inr,omitempty"`
	NonCompeteMonths *ExtractedField            `json:"non_compete_months,omitempty"`
	ProbationMonths  *ExtractedField            `json:"probation_months,omitempty"`
	Role             *ExtractedField            `json:"role,omitempty"`
	Company          *ExtractedField            `json:"company,omitempty"`
	Benefits         []string                   `json:"benefits"`
	BenefitsCount    int                        `json:"benefits_count"`
	Clauses          map[string]ExtractedClause `json:"extracted_clauses,omitempty"`
}

// Merge fills missing fields from a fallback extraction. Present fields are
// never overwritten.
func (r *ContractExtractionResult) Merge(other *ContractExtractionResult) {
	if other == nil {
		return
	}
	merge := func(dst **ExtractedField, src *ExtractedField) {
		if !(*dst).Present() && src.Present() {
			*dst = src
		}
	}
	merge(&r.CTCInr, other.CTCInr)
	merge(&r.NoticePeriodDays, other.NoticePeriodDays)
	merge(&r.BondAmountInr, other.BondAmountInr)
	merge(&r.NonCompeteMonths, other.NonCompeteMonths)
	merge(&r.ProbationMonths, other.ProbationMonths)
	merge(&r.Role, other.Role)
	merge(&r.Company, other.Company)
	if r.BenefitsCount == 0 && other.BenefitsCount > 0 {
		r.Benefits = other.Benefits
		r.BenefitsCount = other.BenefitsCount
	}
}
