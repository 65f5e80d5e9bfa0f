package pricing

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

func TestResolveBuyFundsRequiresPositiveInput(t *testing.T) {
	_, err := ResolveBuyFunds(1000, 36.00,
		optional.None[int64](), optional.None[float64](), optional.None[float64](), false)
	assert.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	_, err = ResolveBuyFunds(1000, 36.00,
		optional.Some[int64](0), optional.Some(0.0), optional.Some(-1.0), false)
	assert.Error(t, err)
}

func TestResolveBuyFundsByTotalAmount(t *testing.T) {
	// totalAmount=100.50 against market price 36.00 buys floor(100.50/36.00)=2
	// units for truncate2(36.00*2)=72.00.
	result, err := ResolveBuyFunds(1000, 36.00,
		optional.None[int64](), optional.Some(100.50), optional.None[float64](), false)
	assert.NoError(t, err)
	assert.True(t, result.HasFunds)
	assert.True(t, result.IsValidAssets)
	assert.Equal(t, int64(2), result.TotalAssets)
	assert.Equal(t, 72.00, result.TotalSpent)
	assert.Equal(t, 36.00, result.UnitPrice)
}

func TestResolveBuyFundsByQuantityAtMarket(t *testing.T) {
	result, err := ResolveBuyFunds(5000, 150.50,
		optional.Some[int64](10), optional.None[float64](), optional.None[float64](), false)
	assert.NoError(t, err)
	assert.True(t, result.IsValidAssets)
	assert.Equal(t, int64(10), result.TotalAssets)
	assert.Equal(t, 1505.00, result.TotalSpent)
	assert.Equal(t, 150.50, result.UnitPrice)
	assert.False(t, result.HasFunds)
}

func TestResolveBuyFundsIdempotentRederivation(t *testing.T) {
	// Re-deriving from the already-resolved quantity and unit price must land
	// on the same assets and spend.
	first, err := ResolveBuyFunds(10_000, 150.50,
		optional.Some[int64](10), optional.None[float64](), optional.Some(150.50), true)
	assert.NoError(t, err)

	second, err := ResolveBuyFunds(10_000, 150.50,
		optional.Some(first.TotalAssets), optional.None[float64](), optional.Some(first.UnitPrice), true)
	assert.NoError(t, err)

	assert.Equal(t, first.TotalAssets, second.TotalAssets)
	assert.Equal(t, first.TotalSpent, second.TotalSpent)
	assert.Equal(t, first.UnitPrice, second.UnitPrice)
}

func TestResolveBuyFundsLimitPriceGoverns(t *testing.T) {
	result, err := ResolveBuyFunds(1000, 36.00,
		optional.Some[int64](5), optional.None[float64](), optional.Some(40.00), true)
	assert.NoError(t, err)
	assert.Equal(t, 40.00, result.UnitPrice)
	assert.Equal(t, int64(5), result.TotalAssets)
	assert.Equal(t, 200.00, result.TotalSpent)
	assert.True(t, result.HasFunds)
}

func TestResolveBuyFundsByPriceAndTotalAmount(t *testing.T) {
	result, err := ResolveBuyFunds(1000, 36.00,
		optional.None[int64](), optional.Some(125.00), optional.Some(40.00), true)
	assert.NoError(t, err)
	assert.Equal(t, 40.00, result.UnitPrice)
	assert.Equal(t, int64(3), result.TotalAssets)
	assert.Equal(t, 120.00, result.TotalSpent)
}

func TestResolveBuyFundsInsufficientCash(t *testing.T) {
	result, err := ResolveBuyFunds(50, 36.00,
		optional.None[int64](), optional.Some(100.50), optional.None[float64](), false)
	assert.NoError(t, err)
	assert.False(t, result.HasFunds)
	assert.True(t, result.IsValidAssets)
	assert.Equal(t, 72.00, result.TotalSpent)
}

func TestResolveBuyFundsAmountTooSmallForOneUnit(t *testing.T) {
	result, err := ResolveBuyFunds(1000, 36.00,
		optional.None[int64](), optional.Some(20.00), optional.None[float64](), false)
	assert.NoError(t, err)
	assert.False(t, result.IsValidAssets)
	assert.Equal(t, int64(0), result.TotalAssets)
	assert.Equal(t, 0.00, result.TotalSpent)
}
