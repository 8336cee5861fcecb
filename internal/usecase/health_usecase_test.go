package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-benefit-recommender/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	e := newEngine(t)

	t.Run("Should report disabled dependencies as healthy", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(e, map[string]usecase.Pinger{"database": nil, "redis": nil})
		got := uc.Check(context.Background())

		assert.Equal(t, "ok", got["status"])
		assert.Equal(t, "disabled", got["database"])
		assert.Equal(t, e.Fingerprint(), got["weights"])
	})

	t.Run("Should degrade when a dependency fails", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(e, map[string]usecase.Pinger{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
		})
		got := uc.Check(context.Background())

		assert.Equal(t, "degraded", got["status"])
		assert.Equal(t, "ok", got["database"])
		assert.Equal(t, "unavailable", got["redis"])
	})
}
