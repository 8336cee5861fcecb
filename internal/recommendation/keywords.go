package recommendation

// Domain tags detected in an offer's title and description.
const (
	DomainTech          = "tech"
	DomainManagement    = "management"
	DomainCommercial    = "commercial"
	DomainDesign        = "design"
	DomainRH            = "rh"
	DomainFinance       = "finance"
	DomainMarketing     = "marketing"
	DomainInternational = "international"
	DomainSenior        = "senior"
	DomainJunior        = "junior"
)

type keywordList struct {
	domain   string
	keywords []string
}

// domainKeywords is matched by plain substring containment against the
// lower-cased offer text, so short stems ("dev", "comptab") also hit longer words.
// All entries must be lower case, and short ones must not occur inside
// ordinary words ("ux" alone hits "deux" and "linux").
var domainKeywords = []keywordList{
	{DomainTech, []string{
		"dev", "développeur", "software", "logiciel", "engineer", "ingénieur",
		"java", "python", "golang", "javascript", "typescript", "react", "backend",
		"frontend", "fullstack", "full stack", "cloud", "data", "informatique", "sre",
	}},
	{DomainManagement, []string{
		"manager", "management", "team lead", "head of", "directeur", "directrice",
		"director", "chef de projet", "chef d'équipe", "responsable",
	}},
	{DomainCommercial, []string{
		"commercial", "sales", "vente", "business developer", "account manager",
		"key account", "chargé d'affaires", "prospection",
	}},
	{DomainDesign, []string{
		"design", "ux/ui", "ui/ux", "ux design", "designer ux", "ux designer", "ux research",
		"figma", "graphiste", "graphic", "créatif", "creative",
		"directeur artistique", "art director",
	}},
	{DomainRH, []string{
		"drh", "chargé rh", "chargée rh", "responsable rh", "assistant rh", "assistante rh",
		"gestionnaire rh", "rh/", "/rh", "(rh)", "ressources humaines", "human resources",
		"hr manager", "hr business partner", "recrut", "recruit",
		"talent", "paie", "payroll",
	}},
	{DomainFinance, []string{
		"finance", "financier", "comptab", "accountant", "accounting", "audit",
		"contrôleur de gestion", "controller", "trésorerie", "treasury",
	}},
	{DomainMarketing, []string{
		"marketing", "seo", "sea ", "growth", "brand", "community manager",
		"content", "communication",
	}},
	{DomainInternational, []string{
		"international", "anglais", "english", "bilingue", "bilingual", "export",
		"multinational", "global", "mobilité",
	}},
	{DomainSenior, []string{
		"senior", "confirmé", "expérimenté", "experienced", "expert", "principal", "staff",
	}},
	{DomainJunior, []string{
		"junior", "débutant", "jeune diplômé", "graduate", "entry level", "entry-level",
	}},
}

// Tokens matched against the normalized contract type field.
var (
	permanentTokens  = []string{"cdi", "permanent", "indéterminée", "indeterminee"}
	fixedTermTokens  = []string{"cdd", "fixed-term", "fixed term", "temporary", "intérim", "interim", "temporaire"}
	internshipTokens = []string{"stage", "intern", "alternance", "apprenti", "apprentice"}
	freelanceTokens  = []string{"freelance", "consultant", "indépendant", "independant", "contractor", "portage"}
)

// Tokens matched against the normalized work mode field. "hybride" is listed
// as a remote token on purpose: a French hybrid offer also earns remote perks.
var (
	remoteTokens = []string{"remote", "télétravail", "teletravail", "distanciel", "hybride"}
	onSiteTokens = []string{"on_site", "on-site", "onsite", "on site", "présentiel", "presentiel", "sur site"}
	hybridTokens = []string{"hybrid", "mixte"}
)
