package extract

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/YagYk/FairDeal/internal/model"
)

// Result is the extraction output plus the clause-trait signals that feed
// the scoring input builder.
type Result struct {
	Fields *model.ContractExtractionResult
	Bond   *model.Bond
	Traits clauseTraits
}

// Extractor runs the deterministic pattern cascades over a document.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract runs every cascade against the document and finalizes the result
// in a single pass: salary-multiple bonds are resolved against the extracted
// salary, implausible bonds are cross-validated away, and page numbers are
// resolved from source snippets. Fields never come back nil; a field that
// was not found is MethodMissing.
func (e *Extractor) Extract(doc *model.Document) *Result {
	lowered := strings.ToLower(doc.FullText)

	fields := &model.ContractExtractionResult{
		CTCInr:           model.MissingField(),
		NoticePeriodDays: model.MissingField(),
		BondAmountInr:    model.MissingField(),
		NonCompeteMonths: model.MissingField(),
		ProbationMonths:  model.MissingField(),
		Role:             model.MissingField(),
		Company:          model.MissingField(),
	}

	if v, src, ok := extractSalary(lowered); ok {
		fields.CTCInr = patternField(doc, v, src, 0.9)
	}
	if v, src, ok := extractNotice(lowered); ok {
		fields.NoticePeriodDays = patternField(doc, v, src, 0.9)
	}
	if v, src, ok := extractNonCompete(lowered); ok {
		fields.NonCompeteMonths = patternField(doc, v, src, 0.85)
	}
	if v, src, ok := extractProbation(lowered); ok {
		fields.ProbationMonths = patternField(doc, v, src, 0.85)
	}
	if v, src, ok := extractRole(lowered, doc.FullText); ok {
		fields.Role = patternField(doc, v, src, 0.8)
	}
	if v, src, ok := extractCompany(doc.FullText); ok {
		fields.Company = patternField(doc, v, src, 0.8)
	}

	fields.Benefits = extractBenefits(lowered)
	fields.BenefitsCount = len(fields.Benefits)
	fields.Clauses = extractClauses(lowered, doc.FullText)

	bond := extractBond(lowered)
	bond = e.finalizeBond(doc, fields, bond)

	return &Result{
		Fields: fields,
		Bond:   bond,
		Traits: detectClauseTraits(lowered),
	}
}

// finalizeBond resolves salary-multiple bonds and cross-validates absolute
// ones. A bond amount within one rupee of the annual CTC is a misparse of
// the salary clause and is dropped.
func (e *Extractor) finalizeBond(doc *model.Document, fields *model.ContractExtractionResult, bond *model.Bond) *model.Bond {
	if bond == nil {
		return nil
	}

	salary, haveSalary := fields.CTCInr.Float()

	switch bond.Kind {
	case model.BondSalaryMultiple:
		if !haveSalary {
			// Without a salary the obligation has no resolvable amount, so
			// no bond is reported and nothing downstream penalizes it.
			zap.L().Warn("extract: salary-multiple bond with unknown salary, dropped",
				zap.Int("months", bond.Months),
			)
			return nil
		}
		bond.Amount = float64(bond.Months) * salary / 12
		bond.Kind = model.BondAbsolute
		zap.L().Info("extract: salary-multiple bond resolved",
			zap.Int("months", bond.Months),
			zap.Float64("amount_inr", bond.Amount),
		)
	case model.BondAbsolute:
		if haveSalary && math.Abs(bond.Amount-salary) < 1 {
			zap.L().Warn("extract: bond amount equals annual salary, dropping as misparse",
				zap.Float64("amount_inr", bond.Amount),
			)
			return nil
		}
	case model.BondUnknown:
		return bond
	}

	fields.BondAmountInr = patternField(doc, bond.Amount, bond.SourceText, 0.85)
	return bond
}

func patternField(doc *model.Document, value any, source string, confidence float64) *model.ExtractedField {
	return &model.ExtractedField{
		Value:      value,
		Confidence: confidence,
		SourceText: source,
		PageNumber: doc.ResolvePage(source),
		Method:     model.MethodPatternMatch,
	}
}
