package distribution

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var distributionRepoStub = NewStubDistributionRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewDistributionService(distributionRepoStub)
	return func() {
		t.Log("Teardown after test")
		distributionRepoStub.Cleanup()
	}
}

func TestServiceImpl_BulkUpsert(t *testing.T) {
	t.Run("should store weights and return them in weekday order", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		weights, err := service.BulkUpsert(ctx, []DayWeight{
			{Day: "Saturday", Percent: decimal.NewFromInt(30)},
			{Day: "Monday", Percent: decimal.NewFromInt(10)},
		})

		// then
		assert.NoError(t, err)
		require.Len(t, weights, 2)
		assert.Equal(t, "Monday", weights[0].Day)
		assert.Equal(t, "Saturday", weights[1].Day)
	})

	t.Run("should reject an unknown day", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.BulkUpsert(ctx, []DayWeight{{Day: "Sunday", Percent: decimal.NewFromInt(10)}})

		// then
		assert.ErrorIs(t, err, ErrUnknownDay)
	})

	t.Run("should reject a percent above 100", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.BulkUpsert(ctx, []DayWeight{{Day: "Monday", Percent: decimal.NewFromInt(101)}})

		// then
		assert.ErrorIs(t, err, ErrInvalidPercent)
	})

	t.Run("should reject the whole batch on one invalid entry", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.BulkUpsert(ctx, []DayWeight{
			{Day: "Monday", Percent: decimal.NewFromInt(10)},
			{Day: "Friday", Percent: decimal.NewFromInt(-1)},
		})

		// then
		assert.ErrorIs(t, err, ErrInvalidPercent)
		weights, _ := service.ListAll(ctx)
		assert.Empty(t, weights)
	})
}
