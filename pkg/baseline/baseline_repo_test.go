package baseline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storecast/storecast/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) *BaselineRepoImpl {
	db := test_utils.SetupTestDB(t)
	return NewBaselineRepo(db)
}

func TestBaselineRepoImpl_Upsert(t *testing.T) {
	t.Run("should insert and overwrite the amount", func(t *testing.T) {
		// given
		repo := setupTestRepository(t)

		// when
		require.NoError(t, repo.Upsert(ctx, "Monday", decimal.NewFromInt(1000)))
		require.NoError(t, repo.Upsert(ctx, "Monday", decimal.NewFromInt(1500)))

		// then
		amount, found, err := repo.Get(ctx, "Monday")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.True(t, amount.Equal(decimal.NewFromInt(1500)))

		baselines, err := repo.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, baselines, 1)
	})
}

func TestBaselineRepoImpl_Get(t *testing.T) {
	t.Run("should report a missing day", func(t *testing.T) {
		// given
		repo := setupTestRepository(t)

		// when
		amount, found, err := repo.Get(ctx, "Friday")

		// then
		assert.NoError(t, err)
		assert.False(t, found)
		assert.True(t, amount.IsZero())
	})
}
