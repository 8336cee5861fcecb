package postgres

import (
	"testing"

	"go-benefit-recommender/internal/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeepNames(t *testing.T) {
	t.Run("Lower-cases the selection", func(t *testing.T) {
		got := keepNames([]domain.Suggestion{{Name: "Remote Work Allowance"}, {Name: "flexible hours"}})
		assert.Equal(t, []string{"remote work allowance", "flexible hours"}, got)
	})

	t.Run("Empty selection binds as an empty array", func(t *testing.T) {
		got := keepNames(nil)
		require.NotNil(t, got)

		v, err := pq.Array(got).Value()
		require.NoError(t, err)
		assert.Equal(t, "{}", v)
	})
}
