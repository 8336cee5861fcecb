package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"go-benefit-recommender/internal/domain"
	"go-benefit-recommender/internal/recommendation"
	"go-benefit-recommender/internal/repository/cache"
	"go-benefit-recommender/internal/usecase"
	"go-benefit-recommender/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockOfferRepo struct {
	mock.Mock
}

func (m *MockOfferRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

type MockBenefitRepo struct {
	mock.Mock
}

func (m *MockBenefitRepo) ReplaceForOffer(ctx context.Context, offerID int64, suggestions []domain.Suggestion) error {
	return m.Called(ctx, offerID, suggestions).Error(0)
}

func (m *MockBenefitRepo) ListByOffer(ctx context.Context, offerID int64) ([]domain.SavedBenefit, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedBenefit), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]domain.Suggestion, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Suggestion), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key string, suggestions []domain.Suggestion) error {
	return m.Called(ctx, key, suggestions).Error(0)
}

var remoteOffer = &domain.Offer{ID: 42, Title: "Support agent", WorkMode: "REMOTE"}

func newEngine(t *testing.T) *recommendation.Engine {
	t.Helper()
	e, err := recommendation.NewEngine()
	require.NoError(t, err)
	return e
}

func limits() usecase.SuggestionLimits {
	return usecase.SuggestionLimits{DefaultLimit: 8, MaxLimit: 20, MaxDescriptionLength: 100}
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func suggestionNames(s []domain.Suggestion) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].Name
	}
	return out
}

func TestPreview(t *testing.T) {
	e := newEngine(t)
	uc := usecase.NewSuggestionUsecase(e, nil, nil, nil, limits())
	ctx := context.Background()

	t.Run("Should match the engine for the default limit", func(t *testing.T) {
		got, err := uc.Preview(ctx, remoteOffer, 0)
		require.NoError(t, err)
		assert.Equal(t, e.SuggestDefault(remoteOffer), got)
	})

	t.Run("Should clamp limits above the maximum", func(t *testing.T) {
		offer := &domain.Offer{Title: "Senior engineering manager", Description: "International", ContractType: "CDI", WorkMode: "hybride", SalaryMin: 6000, SalaryMax: 7000}
		got, err := uc.Preview(ctx, offer, 500)
		require.NoError(t, err)
		assert.Len(t, got, 20)
	})

	t.Run("Should return an empty list for negative limits", func(t *testing.T) {
		got, err := uc.Preview(ctx, remoteOffer, -3)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Should return an empty list for a nil offer", func(t *testing.T) {
		got, err := uc.Preview(ctx, nil, 8)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Should reject oversized text", func(t *testing.T) {
		_, err := uc.Preview(ctx, &domain.Offer{Title: "Dev", Description: strings.Repeat("é", 98)}, 8)
		assertStatus(t, err, http.StatusRequestEntityTooLarge)
	})

	t.Run("Should accept text at the limit", func(t *testing.T) {
		_, err := uc.Preview(ctx, &domain.Offer{Title: "De", Description: strings.Repeat("é", 98)}, 8)
		assert.NoError(t, err)
	})
}

func TestPreviewCache(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	key := cache.Key(e.Fingerprint(), remoteOffer, 8)

	t.Run("Should serve hits without recomputing", func(t *testing.T) {
		mockCache := new(MockCache)
		cached := []domain.Suggestion{{Name: "Cached", Score: 1, OfferID: 42}}
		mockCache.On("Get", mock.Anything, key).Return(cached, true, nil)

		uc := usecase.NewSuggestionUsecase(e, nil, nil, mockCache, limits())
		got, err := uc.Preview(ctx, remoteOffer, 0)
		require.NoError(t, err)
		assert.Equal(t, cached, got)
		mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should store misses", func(t *testing.T) {
		mockCache := new(MockCache)
		want := e.SuggestDefault(remoteOffer)
		mockCache.On("Get", mock.Anything, key).Return(nil, false, nil)
		mockCache.On("Set", mock.Anything, key, want).Return(nil)

		uc := usecase.NewSuggestionUsecase(e, nil, nil, mockCache, limits())
		got, err := uc.Preview(ctx, remoteOffer, 8)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		mockCache.AssertExpectations(t)
	})

	t.Run("Should ignore cache failures", func(t *testing.T) {
		mockCache := new(MockCache)
		mockCache.On("Get", mock.Anything, key).Return(nil, false, errors.New("connection refused"))
		mockCache.On("Set", mock.Anything, key, mock.Anything).Return(errors.New("connection refused"))

		uc := usecase.NewSuggestionUsecase(e, nil, nil, mockCache, limits())
		got, err := uc.Preview(ctx, remoteOffer, 8)
		require.NoError(t, err)
		assert.Equal(t, e.SuggestDefault(remoteOffer), got)
	})

	t.Run("Should skip the cache for empty limits", func(t *testing.T) {
		mockCache := new(MockCache)
		uc := usecase.NewSuggestionUsecase(e, nil, nil, mockCache, limits())
		got, err := uc.Preview(ctx, remoteOffer, -1)
		require.NoError(t, err)
		assert.Empty(t, got)
		mockCache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestSuggestForOffer(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("Should rank the stored offer", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", mock.Anything, int64(42)).Return(remoteOffer, nil)

		uc := usecase.NewSuggestionUsecase(e, offerRepo, nil, nil, limits())
		got, err := uc.SuggestForOffer(ctx, 42, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"Remote work allowance", "Home office equipment budget", "Flexible hours"}, suggestionNames(got))
		for _, s := range got {
			assert.Equal(t, int64(42), s.OfferID)
		}
	})

	t.Run("Should map missing offers to 404", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)

		uc := usecase.NewSuggestionUsecase(e, offerRepo, nil, nil, limits())
		_, err := uc.SuggestForOffer(ctx, 7, 0)
		assertStatus(t, err, http.StatusNotFound)
	})

	t.Run("Should pass through storage errors", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		dbErr := errors.New("pool closed")
		offerRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, dbErr)

		uc := usecase.NewSuggestionUsecase(e, offerRepo, nil, nil, limits())
		_, err := uc.SuggestForOffer(ctx, 7, 0)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Should answer 503 without storage", func(t *testing.T) {
		uc := usecase.NewSuggestionUsecase(e, nil, nil, nil, limits())
		_, err := uc.SuggestForOffer(ctx, 42, 0)
		assertStatus(t, err, http.StatusServiceUnavailable)
	})
}

func TestSaveSelection(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("Should save matching suggestions in rank order", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		benefitRepo := new(MockBenefitRepo)
		offerRepo.On("GetByID", mock.Anything, int64(42)).Return(remoteOffer, nil)
		benefitRepo.On("ReplaceForOffer", mock.Anything, int64(42), mock.MatchedBy(func(s []domain.Suggestion) bool {
			return len(s) == 2 && s[0].Name == "Remote work allowance" && s[1].Name == "Flexible hours"
		})).Return(nil)

		uc := usecase.NewSuggestionUsecase(e, offerRepo, benefitRepo, nil, limits())
		got, err := uc.SaveSelection(ctx, 42, []string{" flexible HOURS", "remote work allowance", "Remote Work Allowance"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Remote work allowance", "Flexible hours"}, suggestionNames(got))
		assert.Equal(t, 85, got[0].Score)
		benefitRepo.AssertExpectations(t)
	})

	t.Run("Should reject names the engine did not suggest", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		benefitRepo := new(MockBenefitRepo)
		offerRepo.On("GetByID", mock.Anything, int64(42)).Return(remoteOffer, nil)

		uc := usecase.NewSuggestionUsecase(e, offerRepo, benefitRepo, nil, limits())
		_, err := uc.SaveSelection(ctx, 42, []string{"Flexible hours", "Company car"})
		assertStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, err.Error(), `"Company car"`)
		benefitRepo.AssertNotCalled(t, "ReplaceForOffer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should refuse an empty selection", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		benefitRepo := new(MockBenefitRepo)

		uc := usecase.NewSuggestionUsecase(e, offerRepo, benefitRepo, nil, limits())
		for _, names := range [][]string{nil, {}} {
			_, err := uc.SaveSelection(ctx, 42, names)
			assertStatus(t, err, http.StatusBadRequest)
		}
		offerRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		benefitRepo.AssertNotCalled(t, "ReplaceForOffer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should propagate repository failures", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		benefitRepo := new(MockBenefitRepo)
		dbErr := errors.New("tx aborted")
		offerRepo.On("GetByID", mock.Anything, int64(42)).Return(remoteOffer, nil)
		benefitRepo.On("ReplaceForOffer", mock.Anything, int64(42), mock.Anything).Return(dbErr)

		uc := usecase.NewSuggestionUsecase(e, offerRepo, benefitRepo, nil, limits())
		_, err := uc.SaveSelection(ctx, 42, []string{"Flexible hours"})
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Should answer 503 without benefit storage", func(t *testing.T) {
		uc := usecase.NewSuggestionUsecase(e, new(MockOfferRepo), nil, nil, limits())
		_, err := uc.SaveSelection(ctx, 42, []string{"Flexible hours"})
		assertStatus(t, err, http.StatusServiceUnavailable)
	})
}

func TestListSaved(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("Should return stored benefits", func(t *testing.T) {
		benefitRepo := new(MockBenefitRepo)
		saved := []domain.SavedBenefit{{ID: 1, OfferID: 42, Name: "Flexible hours", Category: domain.CategoryWellbeing, Score: 70}}
		benefitRepo.On("ListByOffer", mock.Anything, int64(42)).Return(saved, nil)

		uc := usecase.NewSuggestionUsecase(e, nil, benefitRepo, nil, limits())
		got, err := uc.ListSaved(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, saved, got)
	})

	t.Run("Should answer 503 without storage", func(t *testing.T) {
		uc := usecase.NewSuggestionUsecase(e, nil, nil, nil, limits())
		_, err := uc.ListSaved(ctx, 42)
		assertStatus(t, err, http.StatusServiceUnavailable)
	})
}

func TestNewSuggestionUsecaseFixesLimits(t *testing.T) {
	e := newEngine(t)
	uc := usecase.NewSuggestionUsecase(e, nil, nil, nil, usecase.SuggestionLimits{})

	got, err := uc.Preview(context.Background(), remoteOffer, 0)
	require.NoError(t, err)
	assert.Equal(t, e.SuggestDefault(remoteOffer), got)

	big := &domain.Offer{Title: "Senior engineering manager", Description: "International", ContractType: "CDI", WorkMode: "hybride", SalaryMin: 6000, SalaryMax: 7000}
	got, err = uc.Preview(context.Background(), big, 50)
	require.NoError(t, err)
	assert.Len(t, got, recommendation.DefaultMaxSuggestions)
}
