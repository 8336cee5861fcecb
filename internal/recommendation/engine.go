// Package recommendation scores job offers against a fixed catalog of
// weighted benefit rules and returns a ranked, deduplicated suggestion list.
//
// Suggest is a two-phase pipeline: every rule group whose predicate holds
// emits candidates, then the candidate list is reduced (dedup by name,
// stable sort by score, truncate). The engine holds no mutable state and is
// safe for concurrent use.
package recommendation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"go-benefit-recommender/internal/domain"
)

const (
	// DefaultMaxSuggestions is the limit used by SuggestDefault.
	DefaultMaxSuggestions = 8
	// DefaultMaxTextLength caps the runes of title+description scanned for domain keywords.
	DefaultMaxTextLength = 10000
)

// Candidate is a scored, not yet deduplicated suggestion.
type Candidate struct {
	Key         string
	Name        string
	Description string
	Category    domain.Category
	Score       int
}

// Explanation describes which signals an offer raised and which rule groups fired.
type Explanation struct {
	Domains       []string `json:"domains"`
	Remote        bool     `json:"remote"`
	OnSite        bool     `json:"on_site"`
	Hybrid        bool     `json:"hybrid"`
	Permanent     bool     `json:"permanent"`
	FixedTerm     bool     `json:"fixed_term"`
	Internship    bool     `json:"internship"`
	Freelance     bool     `json:"freelance"`
	SalaryAverage float64  `json:"salary_average"`
	SalaryBracket string   `json:"salary_bracket"`
	FiredGroups   []string `json:"fired_groups"`
}

type Engine struct {
	weights     Weights
	maxTextLen  int
	fingerprint string
}

type Option func(*Engine)

// WithWeights replaces the default weight table. The table is copied.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = make(Weights, len(w))
		for k, v := range w {
			e.weights[k] = v
		}
	}
}

// WithMaxTextLength sets how many runes of the offer text are scanned for
// domain keywords. Anything past the cap is ignored. n <= 0 disables the cap.
func WithMaxTextLength(n int) Option {
	return func(e *Engine) { e.maxTextLen = n }
}

// NewEngine builds an engine. It fails only when the weight table is invalid.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		weights:    DefaultWeights(),
		maxTextLen: DefaultMaxTextLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.weights.Validate(); err != nil {
		return nil, err
	}
	e.fingerprint = fingerprint(e.weights, e.maxTextLen)
	return e, nil
}

// Fingerprint identifies everything that shapes the ranking: the catalog
// revision, the weight table and the text cap.
func (e *Engine) Fingerprint() string { return e.fingerprint }

// MaxTextLength returns the rune cap applied to offer text.
func (e *Engine) MaxTextLength() int { return e.maxTextLen }

// SuggestDefault is Suggest with DefaultMaxSuggestions.
func (e *Engine) SuggestDefault(offer *domain.Offer) []domain.Suggestion {
	return e.Suggest(offer, DefaultMaxSuggestions)
}

// Suggest returns at most maxSuggestions benefits for offer, best first.
// A nil offer or a non-positive limit yields an empty slice.
func (e *Engine) Suggest(offer *domain.Offer, maxSuggestions int) []domain.Suggestion {
	if offer == nil || maxSuggestions <= 0 {
		return []domain.Suggestion{}
	}

	ranked := Rank(e.Candidates(NewOfferContext(offer, e.maxTextLen)))
	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}

	out := make([]domain.Suggestion, len(ranked))
	for i, c := range ranked {
		out[i] = domain.Suggestion{
			Name:        c.Name,
			Description: c.Description,
			Category:    c.Category,
			OfferID:     offer.ID,
			Score:       c.Score,
		}
	}
	return out
}

// Candidates evaluates every rule group against ctx and returns all emitted
// candidates in catalog order.
func (e *Engine) Candidates(ctx *OfferContext) []Candidate {
	var out []Candidate
	for _, g := range catalog {
		if !g.when(ctx) {
			continue
		}
		for _, b := range g.benefits {
			out = append(out, Candidate{
				Key:         b.key,
				Name:        b.name,
				Description: b.description,
				Category:    b.category,
				Score:       e.weights[b.key],
			})
		}
	}
	return out
}

// Explain reports the features extracted from offer and the rule groups that fire.
func (e *Engine) Explain(offer *domain.Offer) Explanation {
	ctx := NewOfferContext(offer, e.maxTextLen)
	ex := Explanation{
		Domains:       ctx.DomainList(),
		Remote:        ctx.Remote,
		OnSite:        ctx.OnSite,
		Hybrid:        ctx.Hybrid,
		Permanent:     ctx.Permanent,
		FixedTerm:     ctx.FixedTerm,
		Internship:    ctx.Intern,
		Freelance:     ctx.Freelance,
		SalaryAverage: ctx.SalaryAverage,
		SalaryBracket: ctx.SalaryBracket(),
		FiredGroups:   []string{},
	}
	if offer == nil {
		return ex
	}
	for _, g := range catalog {
		if g.when(ctx) {
			ex.FiredGroups = append(ex.FiredGroups, g.id)
		}
	}
	return ex
}

func fingerprint(w Weights, maxTextLen int) string {
	h := sha256.New()
	fmt.Fprintf(h, "catalog=%d;weights=%s;text=%d", catalogRevision, w.Fingerprint(), maxTextLen)
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// Rank deduplicates candidates by case-insensitive name and sorts them by
// score, highest first. A later duplicate replaces an earlier one only with a
// strictly higher score, and takes over the earlier one's position. Equal
// scores keep emission order.
func Rank(candidates []Candidate) []Candidate {
	index := make(map[string]int, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if i, ok := index[key]; ok {
			if c.Score > out[i].Score {
				out[i] = c
			}
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
