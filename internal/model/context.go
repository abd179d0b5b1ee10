package model

// TriState distinguishes a confirmed-absent benefit from one we simply
// could not determine. Only Absent is ever penalized.
type TriState string

const (
	StatusPresent TriState = "present"
	StatusAbsent  TriState = "absent"
	StatusUnknown TriState = "unknown"
)

// Context is the caller-supplied analysis context.
type Context struct {
	Role            string  `json:"role"`
	ExperienceYears float64 `json:"experience_years"`
	CompanyType     string  `json:"company_type"` // service | product | startup
	Location        string  `json:"location,omitempty"`
	Industry        string  `json:"industry,omitempty"`
}

// ScoringContext is the detected context used to adapt scoring behavior.
type ScoringContext struct {
	CompanyType      string   `json:"company_type"` // service | product | startup | unknown
	RoleLevel        string   `json:"role_level"`   // entry | mid | senior | unknown
	IsCampusHire     bool     `json:"is_campus_hire"`
	SalaryNegotiable bool     `json:"salary_negotiable"`
	CohortConfidence string   `json:"cohort_confidence"` // high | medium | low | insufficient
	Warnings         []string `json:"warnings,omitempty"`
}

// ScoringInput is the configuration surface of the scoring engine. Every
// optional field has a neutral default when absent: nil percentiles score
// 50, unknown tri-states are never penalized, and zero-value booleans and
// counts mean "not detected".
type ScoringInput struct {
	SalaryPercentile *float64 `json:"salary_percentile"`
	NoticePercentile *float64 `json:"notice_percentile"`
	BenefitsCount    int      `json:"benefits_count"`
	Benefits         []string `json:"benefits"`

	NonCompete       bool `json:"non_compete"`
	NonCompeteMonths int  `json:"non_compete_months"`
	NonCompeteBroad  bool `json:"non_compete_broad"` // scope covers all companies

	TrainingBond       bool    `json:"training_bond"`
	TrainingBondMonths int     `json:"training_bond_months"`
	TrainingBondAmount float64 `json:"training_bond_amount"`

	NoticePeriodDays    int      `json:"notice_period_days"`
	ProbationMonths     int      `json:"probation_months"`
	GardenLeave         bool     `json:"garden_leave"`
	IPAssignmentAllWork bool     `json:"ip_assignment_all_work"`
	TerminationAtWill   bool     `json:"termination_at_will"`
	WeeklyHours         int      `json:"weekly_hours"`
	UnlimitedDeductions bool     `json:"unlimited_deductions"`
	PFStatus            TriState `json:"pf_status"`
	GratuityStatus      TriState `json:"gratuity_status"`
	HasEquity           bool     `json:"has_equity"`
	SalaryInr           float64  `json:"salary_inr"`

	RoleLevel string `json:"role_level"`
	Industry  string `json:"industry"`

	RedFlags       []RedFlag       `json:"red_flags,omitempty"`
	FavorableTerms []FavorableTerm `json:"favorable_terms,omitempty"`
}
