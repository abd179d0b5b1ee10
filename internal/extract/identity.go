package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// rolePatterns run against lowered text; the matched span is re-read from
// the original to preserve casing.
var rolePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:position|post)\s+of\s+([a-z][a-z0-9 /&+.-]{1,48}?)(?:\s+(?:at|with|in|on)\b|[.,;\n])`),
	regexp.MustCompile(`designat(?:ed|ion)\s*(?:as|:)?\s+([a-z][a-z0-9 /&+.-]{1,48}?)(?:\s+(?:at|with|in|on)\b|[.,;\n])`),
	regexp.MustCompile(`role\s+of\s+(?:a\s+|an\s+)?([a-z][a-z0-9 /&+.-]{1,48}?)(?:\s+(?:at|with|in|on)\b|[.,;\n])`),
	regexp.MustCompile(`(?:employed|appointed|hired|join(?:ing)?)\s+(?:us\s+)?as\s+(?:a\s+|an\s+)?([a-z][a-z0-9 /&+.-]{1,48}?)(?:\s+(?:at|with|in|on)\b|[.,;\n])`),
	regexp.MustCompile(`offer\s+(?:you\s+)?(?:employment\s+|the\s+position\s+)?(?:for|as)\s+(?:a\s+|an\s+)?([a-z][a-z0-9 /&+.-]{1,48}?)(?:\s+(?:at|with|in|on)\b|[.,;\n])`),
}

// extractRole returns the designation named in the offer.
func extractRole(lowered, original string) (string, string, bool) {
	for _, re := range rolePatterns {
		loc := re.FindStringSubmatchIndex(lowered)
		if loc == nil {
			continue
		}
		role := strings.TrimSpace(original[loc[2]:loc[3]])
		if len(role) <= 2 || len(role) >= 50 {
			continue
		}
		// "the following terms" style captures are boilerplate, not titles.
		if strings.Contains(strings.ToLower(role), "following") {
			continue
		}
		zap.L().Info("extract: role found", zap.String("role", role))
		return role, original[loc[0]:loc[1]], true
	}
	return "", "", false
}

// companyPatterns are case-sensitive: legal suffixes in running text are
// capitalized, which keeps prose like "the private limited company" from
// matching.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Z][A-Za-z0-9&.' ]{1,60}?(?:Pvt\.?\s*Ltd\.?|Private\s+Limited))`),
	regexp.MustCompile(`([A-Z][A-Za-z0-9&.' ]{1,60}?(?:Limited|Ltd\.?|LLP|Inc\.?|Corp(?:oration)?\.?))\b`),
	regexp.MustCompile(`([A-Z][A-Za-z0-9&.' ]{1,60}?(?:Technologies|Solutions|Systems|Consultancy|Services|Labs|Software))\b`),
	regexp.MustCompile(`(?:employer|company)[,:]?\s+([A-Z][A-Za-z0-9&.' ]{2,60}?)[.,;\n]`),
}

// knownCompanies short-circuits suffix matching for household names that
// appear without a legal suffix.
var knownCompanies = []string{
	"TCS", "Infosys", "Wipro", "HCL", "Tech Mahindra", "Cognizant",
	"Accenture", "Capgemini", "IBM", "Google", "Microsoft", "Amazon",
	"Flipkart", "Zomato", "Swiggy", "Paytm", "PhonePe", "Razorpay",
	"Freshworks", "Zoho",
}

// extractCompany returns the employer name from the contract.
func extractCompany(original string) (string, string, bool) {
	for _, name := range knownCompanies {
		if idx := strings.Index(original, name); idx >= 0 {
			zap.L().Info("extract: company found", zap.String("company", name))
			return name, name, true
		}
	}
	for _, re := range companyPatterns {
		loc := re.FindStringSubmatchIndex(original)
		if loc == nil {
			continue
		}
		company := strings.TrimSpace(original[loc[2]:loc[3]])
		if len(company) <= 2 || len(company) > 70 {
			continue
		}
		zap.L().Info("extract: company found", zap.String("company", company))
		return company, original[loc[0]:loc[1]], true
	}
	return "", "", false
}
