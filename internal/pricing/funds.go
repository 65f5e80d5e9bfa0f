package pricing

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// FundsAvailability is the outcome of resolving a buy request against the
// available cash balance.
type FundsAvailability struct {
	// HasFunds is true when the cash balance covers TotalSpent.
	HasFunds bool
	// IsValidAssets is true when the resolved quantity is positive.
	IsValidAssets bool
	// UnitPrice is the per-unit price the resolution settled on.
	UnitPrice float64
	// TotalAssets is the number of units to buy; zero when IsValidAssets is false.
	TotalAssets int64
	// TotalSpent is the truncated amount the purchase costs.
	TotalSpent float64
}

// totalAssetsFor returns how many whole units the available amount buys at the
// given price, and the truncated amount actually spent on them.
func totalAssetsFor(purchasePrice, availableAmount float64) (int64, float64) {
	if purchasePrice <= 0 || availableAmount <= 0 {
		return 0, 0
	}

	totalAssets := int64(math.Floor(availableAmount / purchasePrice))
	totalSpent := TruncateAmount(purchasePrice, float64(totalAssets))

	return totalAssets, totalSpent
}

// ResolveBuyFunds resolves how many units a buy request purchases and what it
// costs, from whichever combination of quantity, totalAmount and client price
// the request carries. The effective unit price is the client price when
// limitActive is set, otherwise the market purchase price. At least one of
// quantity, price or totalAmount must be positive.
//
// Resolution branches, in priority order:
//  1. no quantity and no unit price: derive units from totalAmount at market price
//  2. quantity and unit price known: spend quantity*price, re-derived through
//     the same floor-and-truncate path (idempotent under re-application)
//  3. quantity without unit price: market price governs
//  4. unit price without quantity: derive units from totalAmount at that price
func ResolveBuyFunds(
	cash float64,
	purchasePrice float64,
	quantity optional.Option[int64],
	totalAmount optional.Option[float64],
	price optional.Option[float64],
	limitActive bool,
) (FundsAvailability, error) {
	if !isPositiveQuantity(quantity) && !isPositive(price) && !isPositive(totalAmount) {
		return FundsAvailability{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid input provided: quantity, price and totalAmount must be positive numbers")
	}

	unitPrice := optional.Some(purchasePrice)
	if limitActive {
		unitPrice = price
	}

	var (
		totalAssets int64
		totalSpent  float64
	)

	switch {
	case quantity.IsNone() && unitPrice.IsNone():
		totalAssets, totalSpent = totalAssetsFor(purchasePrice, totalAmount.TakeOr(0))
		unitPrice = optional.Some(purchasePrice)

	case quantity.IsSome() && unitPrice.IsSome():
		calculated := TruncateAmount(unitPrice.Unwrap(), float64(quantity.Unwrap()))
		totalAssets, totalSpent = totalAssetsFor(unitPrice.Unwrap(), calculated)

	case quantity.IsSome():
		calculated := TruncateAmount(purchasePrice, float64(quantity.Unwrap()))
		totalAssets, totalSpent = totalAssetsFor(purchasePrice, calculated)
		unitPrice = optional.Some(purchasePrice)

	default:
		totalAssets, totalSpent = totalAssetsFor(unitPrice.Unwrap(), totalAmount.TakeOr(0))
	}

	isValidAssets := totalAssets > 0
	if !isValidAssets {
		totalAssets = 0
	}

	return FundsAvailability{
		HasFunds:      cash >= totalSpent,
		IsValidAssets: isValidAssets,
		UnitPrice:     unitPrice.Unwrap(),
		TotalAssets:   totalAssets,
		TotalSpent:    totalSpent,
	}, nil
}
