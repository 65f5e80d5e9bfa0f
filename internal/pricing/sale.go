package pricing

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// AssetSale is the outcome of resolving a sell request against the owned
// holdings.
type AssetSale struct {
	// TotalAssetsToSell is the number of units to sell, never above the owned quantity.
	TotalAssetsToSell int64
	// TotalAmountObtained is the truncated amount the sale yields.
	TotalAmountObtained float64
	// SellPrice is the per-unit price the resolution settled on.
	SellPrice float64
}

// MaxAssetsSellable caps a sale at the owned quantity, additionally capped by
// how many units the optional cash amount covers at the sell price.
func MaxAssetsSellable(ownedAssets int64, sellPrice float64, cash optional.Option[float64]) AssetSale {
	totalAssetsToSell := ownedAssets

	if isPositive(cash) && sellPrice > 0 {
		maxAssets := int64(math.Floor(cash.Unwrap() / sellPrice))
		if totalAssetsToSell > maxAssets {
			totalAssetsToSell = maxAssets
		}
	}

	return AssetSale{
		TotalAssetsToSell:   totalAssetsToSell,
		TotalAmountObtained: TruncateAmount(sellPrice, float64(totalAssetsToSell)),
		SellPrice:           sellPrice,
	}
}

// ResolveAssetSale resolves how many units a sell request disposes of and what
// it yields, from whichever combination of quantity, totalAmount and client
// price the request carries. The effective unit price is the client price when
// limitActive is set, otherwise the market sell price. At least one of
// quantity, price or totalAmount must be positive, and the result always
// passes through the max-sellable cap so the trade never exceeds owned
// holdings.
func ResolveAssetSale(
	ownedAssets int64,
	sellPrice float64,
	totalAmount optional.Option[float64],
	quantity optional.Option[int64],
	price optional.Option[float64],
	limitActive bool,
) (AssetSale, error) {
	if !isPositiveQuantity(quantity) && !isPositive(price) && !isPositive(totalAmount) {
		return AssetSale{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid input provided: quantity, price and totalAmount must be positive numbers")
	}

	unitPrice := optional.Some(sellPrice)
	if limitActive {
		unitPrice = price
	}

	amount := totalAmount

	switch {
	case quantity.IsNone() && unitPrice.IsNone() && amount.IsSome():
		return MaxAssetsSellable(ownedAssets, sellPrice, amount), nil

	case unitPrice.IsNone() && quantity.IsSome():
		unitPrice = optional.Some(sellPrice)
		amount = optional.Some(TruncateAmount(sellPrice, float64(quantity.Unwrap())))

	case quantity.IsNone() && amount.IsSome():
		return MaxAssetsSellable(ownedAssets, unitPrice.Unwrap(), amount), nil

	case quantity.IsSome() && unitPrice.IsSome():
		amount = optional.Some(TruncateAmount(unitPrice.Unwrap(), float64(quantity.Unwrap())))
	}

	return MaxAssetsSellable(ownedAssets, unitPrice.Unwrap(), amount), nil
}
