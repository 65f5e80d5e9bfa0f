// Package pricing holds the money arithmetic used by the transaction engine
// and the portfolio aggregator. Amounts derived from products or sums are
// always truncated to two decimals, never rounded up, so the engine can never
// overstate spendable cash. Return percentages use standard rounding.
package pricing

import (
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

var two = decimal.NewFromInt(2)

// TruncateAmount multiplies price by size and truncates the result to two
// decimal places.
func TruncateAmount(price, size float64) float64 {
	result, _ := decimal.NewFromFloat(price).
		Mul(decimal.NewFromFloat(size)).
		RoundFloor(2).
		Float64()

	return result
}

// SumAmounts adds two amounts and truncates the result to two decimal places.
func SumAmounts(a, b float64) float64 {
	result, _ := decimal.NewFromFloat(a).
		Add(decimal.NewFromFloat(b)).
		RoundFloor(2).
		Float64()

	return result
}

// multiplier returns the ledger sign for an order side: inflows (BUY, CASH_IN)
// count positive, outflows (SELL, CASH_OUT) negative.
func multiplier(side types.OrderSide) (int64, error) {
	switch side {
	case types.OrderSideBuy, types.OrderSideCashIn:
		return 1, nil
	case types.OrderSideSell, types.OrderSideCashOut:
		return -1, nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidSide, "invalid order side provided: %s", side)
	}
}

// SignedAmount returns the truncated price*size amount signed by the order side.
func SignedAmount(side types.OrderSide, price float64, size int64) (float64, error) {
	mult, err := multiplier(side)
	if err != nil {
		return 0, err
	}

	return float64(mult) * TruncateAmount(price, float64(size)), nil
}

// SignedQuantity returns the order size signed by the order side.
func SignedQuantity(side types.OrderSide, size int64) (int64, error) {
	mult, err := multiplier(side)
	if err != nil {
		return 0, err
	}

	return mult * size, nil
}

// ClosingPrice returns the current close when the snapshot has one, falling
// back to the previous close for markets where today's close is not yet posted.
func ClosingPrice(close optional.Option[float64], previousClose float64) float64 {
	return close.TakeOr(previousClose)
}

// TotalReturn computes the return percentage of a position executed at
// executedPrice against the latest closingPrice, rounded to two decimals.
// A zero executed price yields zero instead of dividing by it.
func TotalReturn(closingPrice, executedPrice float64) float64 {
	if executedPrice == 0 {
		return 0
	}

	executed := decimal.NewFromFloat(executedPrice)

	result, _ := decimal.NewFromFloat(closingPrice).
		Sub(executed).
		Div(executed).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()

	return result
}

// MergeReturns folds a new per-lot return into an existing one as the plain
// arithmetic mean of the two, rounded to two decimals. This is deliberately
// not size-weighted.
func MergeReturns(oldTotalReturn, totalReturn float64) float64 {
	result, _ := decimal.NewFromFloat(oldTotalReturn).
		Add(decimal.NewFromFloat(totalReturn)).
		Div(two).
		Round(2).
		Float64()

	return result
}

// isPositive reports whether an optional float holds a value greater than zero.
func isPositive(value optional.Option[float64]) bool {
	return value.IsSome() && value.Unwrap() > 0
}

// isPositiveQuantity reports whether an optional quantity holds a value greater than zero.
func isPositiveQuantity(value optional.Option[int64]) bool {
	return value.IsSome() && value.Unwrap() > 0
}
