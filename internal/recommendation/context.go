package recommendation

import (
	"sort"
	"strings"

	"go-benefit-recommender/internal/domain"
)

// Salary brackets derived from the monthly salary average.
const (
	BracketNone  = "none"
	BracketEntry = "entry"
	BracketMid   = "mid"
	BracketHigh  = "high"

	highSalaryFloor = 5000
	midSalaryFloor  = 2500
)

// OfferContext is the normalized view of an offer that rules are evaluated against.
type OfferContext struct {
	FullText      string
	ContractType  string
	WorkMode      string
	SalaryAverage float64
	Domains       map[string]bool

	Remote    bool
	OnSite    bool
	Hybrid    bool
	Permanent bool
	FixedTerm bool
	Intern    bool
	Freelance bool
}

// NewOfferContext extracts features from offer. Text beyond maxTextLen runes is
// ignored for domain detection; maxTextLen <= 0 disables the cap. Extraction
// never fails: unknown values simply raise no flag.
func NewOfferContext(offer *domain.Offer, maxTextLen int) *OfferContext {
	ctx := &OfferContext{Domains: map[string]bool{}}
	if offer == nil {
		return ctx
	}

	title := strings.TrimSpace(offer.Title)
	description := strings.TrimSpace(offer.Description)
	ctx.FullText = truncateRunes(strings.ToLower(title+" "+description), maxTextLen)
	ctx.ContractType = strings.ToLower(strings.TrimSpace(offer.ContractType))
	ctx.WorkMode = strings.ToLower(strings.TrimSpace(offer.WorkMode))
	ctx.SalaryAverage = (offer.SalaryMin + offer.SalaryMax) / 2

	for _, kl := range domainKeywords {
		if containsAny(ctx.FullText, kl.keywords) {
			ctx.Domains[kl.domain] = true
		}
	}

	ctx.Remote = containsAny(ctx.WorkMode, remoteTokens)
	ctx.OnSite = containsAny(ctx.WorkMode, onSiteTokens)
	ctx.Hybrid = containsAny(ctx.WorkMode, hybridTokens)

	ctx.Permanent = containsAny(ctx.ContractType, permanentTokens)
	ctx.FixedTerm = containsAny(ctx.ContractType, fixedTermTokens)
	ctx.Intern = containsAny(ctx.ContractType, internshipTokens)
	ctx.Freelance = containsAny(ctx.ContractType, freelanceTokens)

	return ctx
}

// Has reports whether the domain tag was detected.
func (c *OfferContext) Has(tag string) bool { return c.Domains[tag] }

// SalaryBracket classifies the salary average. An average of zero means the
// salary is unspecified; negative averages are treated the same way.
func (c *OfferContext) SalaryBracket() string {
	switch avg := c.SalaryAverage; {
	case avg >= highSalaryFloor:
		return BracketHigh
	case avg >= midSalaryFloor:
		return BracketMid
	case avg > 0:
		return BracketEntry
	default:
		return BracketNone
	}
}

// DomainList returns the detected tags in sorted order.
func (c *OfferContext) DomainList() []string {
	out := make([]string, 0, len(c.Domains))
	for d := range c.Domains {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func containsAny(text string, needles []string) bool {
	if text == "" {
		return false
	}
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
