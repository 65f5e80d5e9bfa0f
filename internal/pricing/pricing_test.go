package pricing

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

func TestTruncateAmountNeverRoundsUp(t *testing.T) {
	assert.Equal(t, 1.00, TruncateAmount(1.005, 1))
	assert.Equal(t, 72.00, TruncateAmount(36.00, 2))
	assert.Equal(t, 1504.99, TruncateAmount(150.499, 10))
	assert.Equal(t, 0.00, TruncateAmount(0.009, 1))
}

func TestSumAmounts(t *testing.T) {
	assert.Equal(t, 3.00, SumAmounts(1.50, 1.50))
	assert.Equal(t, 1.00, SumAmounts(0.505, 0.50))
	assert.Equal(t, -1.00, SumAmounts(-0.50, -0.50))
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name     string
		side     types.OrderSide
		price    float64
		size     int64
		expected float64
	}{
		{name: "buy is positive", side: types.OrderSideBuy, price: 100, size: 2, expected: 200},
		{name: "cash in is positive", side: types.OrderSideCashIn, price: 72.50, size: 1, expected: 72.50},
		{name: "sell is negative", side: types.OrderSideSell, price: 100, size: 2, expected: -200},
		{name: "cash out is negative", side: types.OrderSideCashOut, price: 72.50, size: 1, expected: -72.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := SignedAmount(tt.side, tt.price, tt.size)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, amount)
		})
	}
}

func TestSignedAmountInvalidSide(t *testing.T) {
	_, err := SignedAmount(types.OrderSide("SHORT"), 100, 1)
	assert.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidSide))
}

func TestSignedQuantity(t *testing.T) {
	quantity, err := SignedQuantity(types.OrderSideBuy, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), quantity)

	quantity, err = SignedQuantity(types.OrderSideSell, 4)
	assert.NoError(t, err)
	assert.Equal(t, int64(-4), quantity)

	_, err = SignedQuantity(types.OrderSide("HOLD"), 1)
	assert.Error(t, err)
}

func TestClosingPrice(t *testing.T) {
	assert.Equal(t, 120.0, ClosingPrice(optional.Some(120.0), 110.0))
	assert.Equal(t, 110.0, ClosingPrice(optional.None[float64](), 110.0))
}

func TestTotalReturn(t *testing.T) {
	// Division-by-zero guard: any closing price against a zero executed price is zero.
	assert.Equal(t, 0.0, TotalReturn(120.0, 0))
	assert.Equal(t, 0.0, TotalReturn(0, 0))

	assert.Equal(t, 20.0, TotalReturn(120.0, 100.0))
	assert.Equal(t, -10.0, TotalReturn(90.0, 100.0))
	assert.Equal(t, 9.09, TotalReturn(120.0, 110.0))
}

func TestMergeReturns(t *testing.T) {
	// Unweighted mean of the two per-lot returns, not a size-weighted average.
	assert.Equal(t, 14.55, MergeReturns(20.0, 9.09))
	assert.Equal(t, 0.0, MergeReturns(10.0, -10.0))
	assert.Equal(t, 5.0, MergeReturns(5.0, 5.0))
}
