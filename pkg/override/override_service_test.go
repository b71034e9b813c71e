package override

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var overrideRepoStub = NewStubOverrideRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewOverrideService(overrideRepoStub)
	return func() {
		t.Log("Teardown after test")
		overrideRepoStub.Cleanup()
	}
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestServiceImpl_Put(t *testing.T) {
	t.Run("should store an override with applied false", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		stored, err := service.Put(ctx, date(t, "2024-06-10"), decimal.NewFromInt(1500))

		// then
		assert.NoError(t, err)
		assert.False(t, stored.Applied)

		overrides, err := service.ListAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, overrides, 1)
		assert.Equal(t, "2024-06-10", overrides[0].Date.Format("2006-01-02"))
		assert.True(t, overrides[0].Amount.Equal(decimal.NewFromInt(1500)))
		assert.False(t, overrides[0].Applied)
	})

	t.Run("should replace an existing override for the same date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Put(ctx, date(t, "2024-06-10"), decimal.NewFromInt(1500))
		require.NoError(t, err)

		// when
		_, err = service.Put(ctx, date(t, "2024-06-10"), decimal.NewFromInt(1800))

		// then
		assert.NoError(t, err)
		overrides, err := service.ListAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, overrides, 1)
		assert.True(t, overrides[0].Amount.Equal(decimal.NewFromInt(1800)))
		assert.False(t, overrides[0].Applied)
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Put(ctx, date(t, "2024-06-10"), decimal.NewFromInt(-1))

		// then
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("should reject a zero date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Put(ctx, time.Time{}, decimal.NewFromInt(100))

		// then
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an existing override", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Put(ctx, date(t, "2024-06-10"), decimal.NewFromInt(1500))
		require.NoError(t, err)

		// when
		err = service.Delete(ctx, date(t, "2024-06-10"))

		// then
		assert.NoError(t, err)
		overrides, _ := service.ListAll(ctx)
		assert.Empty(t, overrides)
	})

	t.Run("should fail when the override does not exist", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, date(t, "2024-06-10"))

		// then
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceImpl_ListAll(t *testing.T) {
	t.Run("should list overrides in ascending date order", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, _ = service.Put(ctx, date(t, "2024-06-12"), decimal.NewFromInt(300))
		_, _ = service.Put(ctx, date(t, "2024-06-10"), decimal.NewFromInt(100))
		_, _ = service.Put(ctx, date(t, "2024-06-11"), decimal.NewFromInt(200))

		// when
		overrides, err := service.ListAll(ctx)

		// then
		assert.NoError(t, err)
		require.Len(t, overrides, 3)
		assert.Equal(t, "2024-06-10", overrides[0].Date.Format("2006-01-02"))
		assert.Equal(t, "2024-06-11", overrides[1].Date.Format("2006-01-02"))
		assert.Equal(t, "2024-06-12", overrides[2].Date.Format("2006-01-02"))
	})
}
