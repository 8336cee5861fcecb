package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Category classifies the nature of a benefit.
type Category string

const (
	CategoryFinancial Category = "FINANCIAL"
	CategoryWellbeing Category = "WELLBEING"
	CategoryMaterial  Category = "MATERIAL"
	CategoryOther     Category = "OTHER"
)

// ParseCategory converts a raw string to a Category, returning an error for
// unknown values. Matching is case-insensitive.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CategoryFinancial, CategoryWellbeing, CategoryMaterial, CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("unknown benefit category %q", s)
}

// Suggestion is a ranked benefit proposed for an offer.
type Suggestion struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	OfferID     int64    `json:"offer_id"`
	Score       int      `json:"score"`
}

// SavedBenefit is a suggestion the caller chose to keep for an offer.
type SavedBenefit struct {
	ID          int64     `json:"id"`
	OfferID     int64     `json:"offer_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}

type BenefitRepository interface {
	// ReplaceForOffer makes the saved set for offerID equal to suggestions.
	ReplaceForOffer(ctx context.Context, offerID int64, suggestions []Suggestion) error
	ListByOffer(ctx context.Context, offerID int64) ([]SavedBenefit, error)
}

// SuggestionCache stores ranked suggestion lists under an opaque key.
// A miss is reported as (nil, false, nil).
type SuggestionCache interface {
	Get(ctx context.Context, key string) ([]Suggestion, bool, error)
	Set(ctx context.Context, key string, suggestions []Suggestion) error
}

type SuggestionUsecase interface {
	Preview(ctx context.Context, offer *Offer, limit int) ([]Suggestion, error)
	SuggestForOffer(ctx context.Context, offerID int64, limit int) ([]Suggestion, error)
	SaveSelection(ctx context.Context, offerID int64, names []string) ([]Suggestion, error)
	ListSaved(ctx context.Context, offerID int64) ([]SavedBenefit, error)
}
