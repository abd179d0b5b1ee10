package pipeline

import (
	"strings"

	"github.com/YagYk/FairDeal/internal/model"
)

// Known employer segments used when the caller does not supply a company
// type. Lowercase substring matching against the extracted company name.
var serviceCompanies = []string{
	"tcs", "tata consultancy", "infosys", "wipro", "hcl", "tech mahindra",
	"cognizant", "accenture", "capgemini", "mindtree", "ltimindtree", "mphasis",
}

var productCompanies = []string{
	"google", "microsoft", "amazon", "flipkart", "adobe", "oracle", "sap",
	"uber", "atlassian", "salesforce", "walmart",
}

var startupMarkers = []string{
	"zomato", "swiggy", "paytm", "phonepe", "razorpay", "cred", "meesho",
	"zerodha", "groww", "freshworks",
}

// detectContext derives the scoring context from the caller-supplied
// context, the extraction, and the benchmark cohort.
func detectContext(userCtx model.Context, res *model.ContractExtractionResult, cohortSize int) model.ScoringContext {
	sctx := model.ScoringContext{
		CompanyType:      strings.ToLower(userCtx.CompanyType),
		RoleLevel:        roleLevelFor(userCtx.ExperienceYears),
		SalaryNegotiable: true,
	}

	if sctx.CompanyType == "" {
		if company, ok := res.Company.String(); ok {
			sctx.CompanyType = companyTypeFor(company)
		} else {
			sctx.CompanyType = "unknown"
		}
	}

	role, _ := res.Role.String()
	if userCtx.Role != "" {
		role = userCtx.Role
	}
	sctx.IsCampusHire = userCtx.ExperienceYears < 1 && isCampusRole(role)

	// Campus offers at service majors are standardized; flag the salary ask
	// as unlikely rather than generating a doomed negotiation point.
	if sctx.IsCampusHire && sctx.CompanyType == "service" {
		sctx.SalaryNegotiable = false
		sctx.Warnings = append(sctx.Warnings,
			"campus offers at large service companies rarely have negotiable base pay")
	}

	switch {
	case cohortSize >= 100:
		sctx.CohortConfidence = "high"
	case cohortSize >= 30:
		sctx.CohortConfidence = "medium"
	case cohortSize >= 10:
		sctx.CohortConfidence = "low"
	default:
		sctx.CohortConfidence = "insufficient"
		if cohortSize > 0 {
			sctx.Warnings = append(sctx.Warnings,
				"market comparison rests on very few records")
		}
	}

	return sctx
}

func roleLevelFor(years float64) string {
	switch {
	case years <= 1:
		return "entry"
	case years <= 5:
		return "mid"
	default:
		return "senior"
	}
}

func companyTypeFor(company string) string {
	name := strings.ToLower(company)
	for _, m := range serviceCompanies {
		if strings.Contains(name, m) {
			return "service"
		}
	}
	for _, m := range productCompanies {
		if strings.Contains(name, m) {
			return "product"
		}
	}
	for _, m := range startupMarkers {
		if strings.Contains(name, m) {
			return "startup"
		}
	}
	return "unknown"
}

func isCampusRole(role string) bool {
	role = strings.ToLower(role)
	for _, marker := range []string{"trainee", "intern", "graduate", "fresher", "associate engineer"} {
		if strings.Contains(role, marker) {
			return true
		}
	}
	return false
}

// benefitStatus resolves the tri-state for a statutory benefit: detected
// benefits are present; in a document long enough to have listed them,
// absence of any mention reads as confirmed absent; short documents leave
// the status unknown.
func benefitStatus(benefits []string, name string, textLen, absenceThreshold int) model.TriState {
	for _, b := range benefits {
		if b == name {
			return model.StatusPresent
		}
	}
	if textLen >= absenceThreshold {
		return model.StatusAbsent
	}
	return model.StatusUnknown
}
