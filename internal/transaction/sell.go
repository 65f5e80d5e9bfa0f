package transaction

import (
	"context"

	"go.uber.org/zap"
	"github.com/rxtech-lab/argo-broker/internal/logger"
	"github.com/rxtech-lab/argo-broker/internal/pricing"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// SellStrategy resolves a sell request against the held quantity and the
// market price, then writes the asset leg and its offsetting CASH_IN leg in
// one transaction. Requests exceeding the holdings are rejected before any
// market data is read, recorded as REJECTED asset legs with no cash movement.
type SellStrategy struct {
	ledger   Ledger
	balances Balances
	logger   *logger.Logger
}

func NewSellStrategy(ledger Ledger, balances Balances, logger *logger.Logger) *SellStrategy {
	return &SellStrategy{
		ledger:   ledger,
		balances: balances,
		logger:   logger,
	}
}

func (s *SellStrategy) Execute(ctx context.Context, trade Trade) (types.Order, error) {
	request := trade.Request
	requestedQuantity := request.Quantity.TakeOr(0)

	owned, err := s.balances.AvailableStock(ctx, trade.User.ID, trade.Instrument.ID)
	if err != nil {
		return types.Order{}, err
	}

	if owned <= 0 || requestedQuantity > owned {
		return types.Order{}, s.reject(ctx, trade, owned, requestedQuantity)
	}

	snapshot, err := s.ledger.LatestMarketDataByInstrument(ctx, trade.Instrument.ID)
	if err != nil {
		return types.Order{}, err
	}

	sellPrice := pricing.ClosingPrice(snapshot.Close, snapshot.PreviousClose)

	sale, err := pricing.ResolveAssetSale(
		owned, sellPrice,
		request.TotalAmount, request.Quantity, request.Price,
		request.OrderType.IsLimit(),
	)
	if err != nil {
		return types.Order{}, err
	}

	if sale.TotalAssetsToSell <= 0 || requestedQuantity > sale.TotalAssetsToSell {
		return types.Order{}, s.reject(ctx, trade, owned, requestedQuantity)
	}

	assetLeg := types.Order{
		UserID:       trade.User.ID,
		InstrumentID: trade.Instrument.ID,
		Size:         sale.TotalAssetsToSell,
		Price:        sale.SellPrice,
		Type:         request.OrderType,
		Side:         types.OrderSideSell,
		Status:       types.StatusForOrderType(request.OrderType),
	}

	cashLeg := types.Order{
		UserID:       trade.User.ID,
		InstrumentID: trade.CashInstrument.ID,
		Size:         1,
		Price:        sale.TotalAmountObtained,
		Type:         request.OrderType,
		Side:         types.OrderSideCashIn,
		Status:       types.OrderStatusFilled,
	}

	identifiers, err := s.ledger.InsertOrders(ctx, []types.Order{assetLeg, cashLeg})
	if err != nil {
		return types.Order{}, err
	}

	if len(identifiers) == 0 {
		return types.Order{}, errors.New(errors.ErrCodeOrderCreationFailed,
			"order creation returned no identifiers")
	}

	assetLeg.ID = identifiers[0]

	s.logger.Info("Sell order created",
		zap.String("orderId", assetLeg.ID),
		zap.String("ticker", trade.Instrument.Ticker),
		zap.Int64("size", assetLeg.Size),
		zap.Float64("price", assetLeg.Price),
		zap.String("status", string(assetLeg.Status)))

	return assetLeg, nil
}

// reject records the failed request as an asset leg carrying the client's raw
// quantity and price, then surfaces the business error.
func (s *SellStrategy) reject(ctx context.Context, trade Trade, owned, requestedQuantity int64) error {
	rejected := types.Order{
		UserID:       trade.User.ID,
		InstrumentID: trade.Instrument.ID,
		Size:         requestedQuantity,
		Price:        trade.Request.Price.TakeOr(0),
		Type:         trade.Request.OrderType,
		Side:         types.OrderSideSell,
		Status:       types.OrderStatusRejected,
	}

	if _, err := s.ledger.InsertOrders(ctx, []types.Order{rejected}); err != nil {
		return err
	}

	s.logger.Info("Sell order rejected",
		zap.String("accountNumber", trade.User.AccountNumber),
		zap.String("ticker", trade.Instrument.Ticker),
		zap.Int64("owned", owned),
		zap.Int64("requested", requestedQuantity))

	return errors.Newf(errors.ErrCodeInsufficientStock,
		"insufficient holdings to sell %s: owned %d", trade.Instrument.Ticker, owned)
}
