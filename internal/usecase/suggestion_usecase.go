package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go-benefit-recommender/internal/domain"
	"go-benefit-recommender/internal/recommendation"
	"go-benefit-recommender/internal/repository/cache"
	"go-benefit-recommender/pkg/apperror"
	"go-benefit-recommender/pkg/logger"
)

// SuggestionLimits bounds what callers may ask for.
type SuggestionLimits struct {
	DefaultLimit         int // used when the caller passes 0
	MaxLimit             int // larger requests are clamped
	MaxDescriptionLength int // runes of title+description accepted by Preview; 0 disables
}

type suggestionUsecase struct {
	engine      *recommendation.Engine
	offerRepo   domain.OfferRepository
	benefitRepo domain.BenefitRepository
	cache       domain.SuggestionCache
	limits      SuggestionLimits
}

// NewSuggestionUsecase wires the engine to its collaborators. offerRepo,
// benefitRepo and suggestionCache may be nil: offer-backed operations then
// answer 503, and results are simply not cached.
func NewSuggestionUsecase(
	engine *recommendation.Engine,
	offerRepo domain.OfferRepository,
	benefitRepo domain.BenefitRepository,
	suggestionCache domain.SuggestionCache,
	limits SuggestionLimits,
) domain.SuggestionUsecase {
	if limits.DefaultLimit < 1 {
		limits.DefaultLimit = recommendation.DefaultMaxSuggestions
	}
	if limits.MaxLimit < limits.DefaultLimit {
		limits.MaxLimit = limits.DefaultLimit
	}
	return &suggestionUsecase{
		engine:      engine,
		offerRepo:   offerRepo,
		benefitRepo: benefitRepo,
		cache:       suggestionCache,
		limits:      limits,
	}
}

func (u *suggestionUsecase) Preview(ctx context.Context, offer *domain.Offer, limit int) ([]domain.Suggestion, error) {
	if offer == nil {
		return []domain.Suggestion{}, nil
	}
	if maxLen := u.limits.MaxDescriptionLength; maxLen > 0 {
		if n := utf8.RuneCountInString(offer.Title) + utf8.RuneCountInString(offer.Description); n > maxLen {
			return nil, apperror.InputTooLarge(fmt.Sprintf("Offer text is %d characters, the limit is %d", n, maxLen))
		}
	}
	return u.suggest(ctx, offer, u.clamp(limit)), nil
}

func (u *suggestionUsecase) SuggestForOffer(ctx context.Context, offerID int64, limit int) ([]domain.Suggestion, error) {
	offer, err := u.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return u.suggest(ctx, offer, u.clamp(limit)), nil
}

// SaveSelection persists the named suggestions for an offer. Names must come
// from the offer's current suggestion list; matching ignores case. An empty
// list is rejected so a save never wipes the offer's benefits.
func (u *suggestionUsecase) SaveSelection(ctx context.Context, offerID int64, names []string) ([]domain.Suggestion, error) {
	if u.benefitRepo == nil {
		return nil, apperror.ServiceUnavailable("Benefit storage is not configured")
	}
	if len(names) == 0 {
		return nil, apperror.BadRequest("Select at least one benefit")
	}
	offer, err := u.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(strings.TrimSpace(n))] = true
	}

	selected := make([]domain.Suggestion, 0, len(wanted))
	for _, s := range u.engine.Suggest(offer, u.limits.MaxLimit) {
		key := strings.ToLower(s.Name)
		if wanted[key] {
			selected = append(selected, s)
			delete(wanted, key)
		}
	}
	for _, n := range names {
		if wanted[strings.ToLower(strings.TrimSpace(n))] {
			return nil, apperror.BadRequest(fmt.Sprintf("Benefit %q is not suggested for this offer", n))
		}
	}

	if err := u.benefitRepo.ReplaceForOffer(ctx, offerID, selected); err != nil {
		return nil, err
	}
	logger.Log.Info("Saved benefit selection", "offer_id", offerID, "count", len(selected))
	return selected, nil
}

func (u *suggestionUsecase) ListSaved(ctx context.Context, offerID int64) ([]domain.SavedBenefit, error) {
	if u.benefitRepo == nil {
		return nil, apperror.ServiceUnavailable("Benefit storage is not configured")
	}
	return u.benefitRepo.ListByOffer(ctx, offerID)
}

func (u *suggestionUsecase) loadOffer(ctx context.Context, offerID int64) (*domain.Offer, error) {
	if u.offerRepo == nil {
		return nil, apperror.ServiceUnavailable("Offer storage is not configured")
	}
	offer, err := u.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Offer not found")
		}
		return nil, err
	}
	return offer, nil
}

// suggest runs the engine behind the optional cache. Cache failures are
// logged and never fail the request.
func (u *suggestionUsecase) suggest(ctx context.Context, offer *domain.Offer, limit int) []domain.Suggestion {
	if u.cache == nil || limit <= 0 {
		return u.engine.Suggest(offer, limit)
	}

	key := cache.Key(u.engine.Fingerprint(), offer, limit)
	cached, ok, err := u.cache.Get(ctx, key)
	if err != nil {
		logger.Log.Warn("Suggestion cache read failed", "error", err)
	}
	if ok {
		logger.Log.Debug("Suggestion cache hit", "offer_id", offer.ID)
		return cached
	}

	out := u.engine.Suggest(offer, limit)
	if err := u.cache.Set(ctx, key, out); err != nil {
		logger.Log.Warn("Suggestion cache write failed", "error", err)
	}
	return out
}

func (u *suggestionUsecase) clamp(limit int) int {
	switch {
	case limit == 0:
		return u.limits.DefaultLimit
	case limit > u.limits.MaxLimit:
		return u.limits.MaxLimit
	default:
		return limit
	}
}
