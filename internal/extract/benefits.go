package extract

import (
	"strings"

	"go.uber.org/zap"
)

// benefitCategory maps a canonical benefit name to the keywords that detect
// it. A category counts once no matter how many keywords hit.
type benefitCategory struct {
	name     string
	keywords []string
}

var benefitCategories = []benefitCategory{
	{"health insurance", []string{"health insurance", "medical insurance", "mediclaim", "group medical", "hospitalization"}},
	{"provident fund", []string{"provident fund", "pf contribution", "epf", " pf "}},
	{"gratuity", []string{"gratuity"}},
	{"paid leave", []string{"paid leave", "annual leave", "earned leave", "privilege leave", "casual leave", "sick leave"}},
	{"flexible work", []string{"work from home", "remote work", "hybrid work", "flexible working", "flexi hours", "flexible hours"}},
	{"performance bonus", []string{"performance bonus", "annual bonus", "variable pay", "incentive pay", "performance incentive"}},
	{"stock options", []string{"stock option", "esop", "rsu", "restricted stock", "equity grant", "employee stock"}},
	{"meal benefits", []string{"meal voucher", "food coupon", "sodexo", "free meals", "subsidized food", "cafeteria allowance"}},
	{"transport", []string{"transport allowance", "cab facility", "conveyance allowance", "commute", "fuel allowance"}},
	{"relocation", []string{"relocation assistance", "relocation allowance", "relocation bonus"}},
	{"signing bonus", []string{"signing bonus", "sign-on bonus", "sign on bonus", "joining bonus", "one-time bonus"}},
	{"learning budget", []string{"learning budget", "certification reimbursement", "training reimbursement", "education assistance", "upskilling"}},
	{"wellness", []string{"wellness program", "gym membership", "fitness reimbursement", "mental health support"}},
	{"connectivity allowance", []string{"internet allowance", "broadband reimbursement", "mobile reimbursement", "phone allowance", "connectivity allowance"}},
	{"life insurance", []string{"life insurance", "term insurance", "accidental insurance", "group term life"}},
}

// extractBenefits scans lowered text and returns the detected benefit
// categories in table order.
func extractBenefits(text string) []string {
	// Pad so the bare " pf " keyword can hit at text boundaries.
	padded := " " + text + " "

	var found []string
	for _, cat := range benefitCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(padded, kw) {
				found = append(found, cat.name)
				break
			}
		}
	}
	zap.L().Debug("extract: benefits detected", zap.Strings("benefits", found))
	return found
}

// hasEquity reports whether the detected benefits include an equity grant.
func hasEquity(benefits []string) bool {
	for _, b := range benefits {
		if b == "stock options" {
			return true
		}
	}
	return false
}
