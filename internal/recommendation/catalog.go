package recommendation

import "go-benefit-recommender/internal/domain"

// catalogRevision versions the rules and keyword lists. Bump it whenever either
// changes so results cached by an older build are not served.
const catalogRevision = 2

// Tier orders rule groups by how specific their signal is. Weight tables must
// keep every baseline score below every specific score, and every specific
// score below every combined score.
type Tier int

const (
	TierBaseline Tier = iota
	TierSpecific
	TierCombined
)

func (t Tier) String() string {
	switch t {
	case TierBaseline:
		return "baseline"
	case TierCombined:
		return "combined"
	default:
		return "specific"
	}
}

// benefit is a fixed suggestion emitted by a rule group. Its score is looked
// up by key in the engine's weight table.
type benefit struct {
	key         string
	name        string
	description string
	category    domain.Category
}

type ruleGroup struct {
	id       string
	tier     Tier
	when     func(*OfferContext) bool
	benefits []benefit
}

func hasDomain(tag string) func(*OfferContext) bool {
	return func(c *OfferContext) bool { return c.Has(tag) }
}

func inBracket(bracket string) func(*OfferContext) bool {
	return func(c *OfferContext) bool { return c.SalaryBracket() == bracket }
}

func always(*OfferContext) bool { return true }

// catalog lists every rule group in emission order. The order only matters for
// tie-breaks; every group whose predicate holds contributes its benefits.
var catalog = []ruleGroup{
	{
		id: "mode.remote", tier: TierSpecific,
		when: func(c *OfferContext) bool { return c.Remote },
		benefits: []benefit{
			{"remote_allowance", "Remote work allowance", "Monthly allowance covering home internet and energy costs.", domain.CategoryFinancial},
			{"home_office_budget", "Home office equipment budget", "One-off budget for a desk, chair and screen at home.", domain.CategoryMaterial},
			{"flexible_hours", "Flexible hours", "Freedom to organise the working day around core hours.", domain.CategoryWellbeing},
		},
	},
	{
		id: "mode.on_site", tier: TierSpecific,
		when: func(c *OfferContext) bool { return c.OnSite },
		benefits: []benefit{
			{"transport_pass", "Public transport pass", "Full reimbursement of the monthly public transport pass.", domain.CategoryFinancial},
			{"parking_space", "Parking space", "Reserved parking space at the office.", domain.CategoryMaterial},
			{"meal_vouchers", "Meal vouchers", "Employer-funded meal vouchers for every working day.", domain.CategoryFinancial},
		},
	},
	{
		id: "mode.hybrid", tier: TierSpecific,
		when: func(c *OfferContext) bool { return c.Hybrid },
		benefits: []benefit{
			{"choose_remote_days", "Choose your remote days", "Employees pick which days they work from home each week.", domain.CategoryWellbeing},
		},
	},
	{
		id: "contract.permanent", tier: TierSpecific,
		when: func(c *OfferContext) bool { return c.Permanent },
		benefits: []benefit{
			{"savings_plan", "Company savings plan", "Employer-matched company savings plan.", domain.CategoryFinancial},
			{"premium_health", "Premium health insurance", "Top-tier health cover for the employee and family.", domain.CategoryWellbeing},
			{"extra_leave", "Extra paid leave", "Additional paid days off on top of the legal minimum.", domain.CategoryWellbeing},
		},
	},
	{
		id: "contract.fixed_term", tier: TierSpecific,
		when: func(c *OfferContext) bool { return c.FixedTerm },
		benefits: []benefit{
			{"end_of_contract_bonus", "End-of-contract bonus", "Bonus paid when the fixed-term contract ends.", domain.CategoryFinancial},
		},
	},
	{
		id: "contract.internship", tier: TierSpecific,
		when: func(c *OfferContext) bool { return c.Intern },
		benefits: []benefit{
			{"certified_training", "Certified training budget", "Budget for a certifying training course during the contract.", domain.CategoryOther},
			{"intern_mentoring", "Mentoring program", "A dedicated mentor for the whole contract.", domain.CategoryWellbeing},
			{"hire_potential", "Permanent hire opportunity", "Clear path to a permanent position at the end of the contract.", domain.CategoryOther},
		},
	},
	{
		id: "contract.freelance", tier: TierSpecific,
		when: func(c *OfferContext) bool { return c.Freelance },
		benefits: []benefit{
			{"daily_rate", "Competitive daily rate", "Daily rate above market average for the profile.", domain.CategoryFinancial},
		},
	},
	{
		id: "domain.tech", tier: TierSpecific,
		when: hasDomain(DomainTech),
		benefits: []benefit{
			{"modern_equipment", "Modern work equipment", "Recent high-end laptop and peripherals of choice.", domain.CategoryMaterial},
			{"tech_conference_budget", "Conference budget", "Yearly budget to attend technical conferences.", domain.CategoryOther},
			{"dev_tooling", "Developer tooling licenses", "Paid licenses for IDEs and developer tools.", domain.CategoryMaterial},
			{"learning_time", "Dedicated learning time", "Time set aside every sprint for self-training.", domain.CategoryOther},
		},
	},
	{
		id: "domain.management", tier: TierSpecific,
		when: hasDomain(DomainManagement),
		benefits: []benefit{
			{"management_coaching", "Leadership coaching", "Sessions with a professional leadership coach.", domain.CategoryOther},
			{"management_bonus", "Performance bonus", "Annual bonus tied to team objectives.", domain.CategoryFinancial},
			{"management_team_building", "Team building", "Budget for team offsites and activities.", domain.CategoryOther},
		},
	},
	{
		id: "domain.commercial", tier: TierSpecific,
		when: hasDomain(DomainCommercial),
		benefits: []benefit{
			{"sales_commission", "Sales commission", "Uncapped commission on signed deals.", domain.CategoryFinancial},
			{"company_car", "Company car", "Company car available for client visits and personal use.", domain.CategoryMaterial},
			{"mobile_kit", "Phone and laptop", "Professional phone and laptop for travel.", domain.CategoryMaterial},
		},
	},
	{
		id: "domain.design", tier: TierSpecific,
		when: hasDomain(DomainDesign),
		benefits: []benefit{
			{"creative_licenses", "Creative software licenses", "Licenses for the full creative software suite.", domain.CategoryMaterial},
			{"design_tablet", "Design tablet", "Professional graphics tablet.", domain.CategoryMaterial},
			{"inspiration_budget", "Inspiration events budget", "Budget for exhibitions, festivals and design events.", domain.CategoryOther},
		},
	},
	{
		id: "domain.international", tier: TierSpecific,
		when: hasDomain(DomainInternational),
		benefits: []benefit{
			{"language_courses", "Language courses", "Paid language lessons during working hours.", domain.CategoryOther},
			{"international_mobility", "International mobility", "Access to assignments in foreign offices.", domain.CategoryOther},
			{"relocation", "Relocation assistance", "Help with moving costs and administrative steps.", domain.CategoryFinancial},
		},
	},
	{
		id: "domain.rh", tier: TierSpecific,
		when: hasDomain(DomainRH),
		benefits: []benefit{
			{"hr_certification", "HR certification training", "Funding for a recognised HR certification.", domain.CategoryOther},
			{"wellbeing_program", "Wellbeing at work program", "Company-wide quality of life at work program.", domain.CategoryWellbeing},
		},
	},
	{
		id: "domain.finance", tier: TierSpecific,
		when: hasDomain(DomainFinance),
		benefits: []benefit{
			{"profit_sharing", "Profit-sharing", "Share of company profits paid yearly.", domain.CategoryFinancial},
			{"professional_certification", "Professional certification funding", "Funding for professional finance certifications.", domain.CategoryOther},
		},
	},
	{
		id: "domain.marketing", tier: TierSpecific,
		when: hasDomain(DomainMarketing),
		benefits: []benefit{
			{"marketing_tools", "Marketing tools subscriptions", "Subscriptions to analytics and marketing tools.", domain.CategoryMaterial},
			{"marketing_conference_budget", "Conference budget", "Yearly budget to attend marketing events.", domain.CategoryOther},
		},
	},
	{
		id: "salary.high", tier: TierSpecific,
		when: inBracket(BracketHigh),
		benefits: []benefit{
			{"stock_options", "Stock options", "Equity package vesting over four years.", domain.CategoryFinancial},
			{"life_insurance", "Premium life insurance", "Enhanced life and disability insurance.", domain.CategoryWellbeing},
			{"concierge", "Concierge service", "Personal concierge service for everyday errands.", domain.CategoryWellbeing},
		},
	},
	{
		id: "salary.mid", tier: TierSpecific,
		when: inBracket(BracketMid),
		benefits: []benefit{
			{"performance_bonus", "Performance bonus", "Annual bonus based on individual objectives.", domain.CategoryFinancial},
			{"gift_vouchers", "Gift vouchers", "Gift vouchers for holidays and life events.", domain.CategoryFinancial},
		},
	},
	{
		id: "salary.entry", tier: TierSpecific,
		when: inBracket(BracketEntry),
		benefits: []benefit{
			{"housing_aid", "Housing assistance", "Help with rent deposit and housing search.", domain.CategoryFinancial},
			{"meal_allowance", "Meal allowance", "Daily meal allowance or subsidised canteen.", domain.CategoryFinancial},
		},
	},
	{
		id: "seniority.senior", tier: TierSpecific,
		when: hasDomain(DomainSenior),
		benefits: []benefit{
			{"health_checkup", "Executive health check-up", "Yearly comprehensive health check-up.", domain.CategoryWellbeing},
			{"senior_coaching", "Leadership coaching", "Coaching to grow into technical or people leadership.", domain.CategoryOther},
			{"sabbatical", "Sabbatical leave option", "Option for a paid sabbatical after a few years.", domain.CategoryWellbeing},
		},
	},
	{
		id: "seniority.junior", tier: TierSpecific,
		when: hasDomain(DomainJunior),
		benefits: []benefit{
			{"onboarding_buddy", "Onboarding buddy", "A peer buddy for the first months.", domain.CategoryWellbeing},
			{"junior_mentoring", "Mentoring program", "Regular sessions with an experienced mentor.", domain.CategoryWellbeing},
		},
	},
	{
		id: "combined.remote_international", tier: TierCombined,
		when: func(c *OfferContext) bool { return c.Remote && c.Has(DomainInternational) },
		benefits: []benefit{
			{"work_from_anywhere", "Work from anywhere", "Several weeks a year working from any country.", domain.CategoryWellbeing},
		},
	},
	{
		id: "combined.senior_tech", tier: TierCombined,
		when: func(c *OfferContext) bool { return c.Has(DomainTech) && c.Has(DomainSenior) },
		benefits: []benefit{
			{"technical_career_track", "Technical career track", "Expert career path with the same growth as management.", domain.CategoryOther},
		},
	},
	{
		id: "baseline", tier: TierBaseline,
		when: always,
		benefits: []benefit{
			{"sport_subsidy", "Sport and wellness subsidy", "Subsidised gym or sport club membership.", domain.CategoryWellbeing},
			{"telemedicine", "Telemedicine access", "Unlimited remote consultations with doctors.", domain.CategoryWellbeing},
			{"team_building", "Team building", "Regular company-wide team events.", domain.CategoryOther},
		},
	},
}
