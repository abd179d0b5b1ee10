package scoring

import "github.com/YagYk/FairDeal/internal/config"

// Factor names used across weights, breakdown items, and output maps.
const (
	factorSalary   = "salary"
	factorNotice   = "notice_period"
	factorBenefits = "benefits"
	factorClauses  = "restrictive_clauses"
	factorLegal    = "legal_compliance"
)

var factorOrder = []string{factorSalary, factorNotice, factorBenefits, factorClauses, factorLegal}

// violationLegalWeight is the share the legal factor takes whenever any
// statutory violation exists; the remaining factors rescale into the rest.
const violationLegalWeight = 0.20

// computeWeights derives the per-factor weight vector from the base
// configuration and the detected context. The function is pure: same inputs,
// same weights, and the result always sums to one.
//
// Entry-level candidates weigh salary and benefits over notice flexibility;
// senior candidates weigh notice and restrictive clauses more; startup
// offers shift a little weight from salary into benefits. Any statutory
// violation pins the legal factor at violationLegalWeight.
func computeWeights(cfg config.ScoringConfig, roleLevel, industry string, hasViolations bool) map[string]float64 {
	w := map[string]float64{
		factorSalary:   cfg.SalaryWeight,
		factorNotice:   cfg.NoticeWeight,
		factorBenefits: cfg.BenefitsWeight,
		factorClauses:  cfg.ClausesWeight,
		factorLegal:    cfg.LegalWeight,
	}

	switch roleLevel {
	case "entry":
		w[factorSalary] += 0.05
		w[factorBenefits] += 0.05
		w[factorNotice] -= 0.10
	case "senior":
		w[factorNotice] += 0.05
		w[factorClauses] += 0.05
		w[factorSalary] -= 0.10
	}

	if industry == "startup" {
		w[factorBenefits] += 0.03
		w[factorSalary] -= 0.03
	}

	if hasViolations {
		rest := w[factorSalary] + w[factorNotice] + w[factorBenefits] + w[factorClauses]
		scale := (1 - violationLegalWeight) / rest
		for _, f := range factorOrder[:4] {
			w[f] *= scale
		}
		w[factorLegal] = violationLegalWeight
	}

	// Adjustments can push a weight below zero before renormalization.
	var sum float64
	for _, f := range factorOrder {
		if w[f] < 0.01 {
			w[f] = 0.01
		}
		sum += w[f]
	}
	for _, f := range factorOrder {
		w[f] /= sum
	}
	return w
}
