package transaction

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"github.com/rxtech-lab/argo-broker/internal/logger"
	"github.com/rxtech-lab/argo-broker/internal/pricing"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// BuyStrategy resolves a buy request against the market price and the cash
// balance, then writes the asset leg and its offsetting CASH_OUT leg in one
// transaction. Requests the balance cannot cover are recorded as REJECTED
// asset legs with no cash movement.
type BuyStrategy struct {
	ledger   Ledger
	balances Balances
	logger   *logger.Logger
}

func NewBuyStrategy(ledger Ledger, balances Balances, logger *logger.Logger) *BuyStrategy {
	return &BuyStrategy{
		ledger:   ledger,
		balances: balances,
		logger:   logger,
	}
}

func (s *BuyStrategy) Execute(ctx context.Context, trade Trade) (types.Order, error) {
	var (
		snapshot types.MarketData
		cash     float64
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		snapshot, err = s.ledger.LatestMarketDataByInstrument(groupCtx, trade.Instrument.ID)
		return err
	})

	group.Go(func() error {
		var err error
		cash, err = s.balances.CashBalance(groupCtx, trade.User.ID)
		return err
	})

	if err := group.Wait(); err != nil {
		return types.Order{}, err
	}

	request := trade.Request
	purchasePrice := pricing.ClosingPrice(snapshot.Close, snapshot.PreviousClose)

	funds, err := pricing.ResolveBuyFunds(
		cash, purchasePrice,
		request.Quantity, request.TotalAmount, request.Price,
		request.OrderType.IsLimit(),
	)
	if err != nil {
		return types.Order{}, err
	}

	if !funds.IsValidAssets || !funds.HasFunds {
		rejected := types.Order{
			UserID:       trade.User.ID,
			InstrumentID: trade.Instrument.ID,
			Size:         funds.TotalAssets,
			Price:        funds.UnitPrice,
			Type:         request.OrderType,
			Side:         types.OrderSideBuy,
			Status:       types.OrderStatusRejected,
		}

		if _, err := s.ledger.InsertOrders(ctx, []types.Order{rejected}); err != nil {
			return types.Order{}, err
		}

		s.logger.Info("Buy order rejected",
			zap.String("accountNumber", trade.User.AccountNumber),
			zap.String("ticker", trade.Instrument.Ticker),
			zap.Float64("cash", cash),
			zap.Float64("totalSpent", funds.TotalSpent))

		return types.Order{}, errors.Newf(errors.ErrCodeInsufficientFunds,
			"insufficient funds to buy %s: required %.2f, available %.2f",
			trade.Instrument.Ticker, funds.TotalSpent, cash)
	}

	assetLeg := types.Order{
		UserID:       trade.User.ID,
		InstrumentID: trade.Instrument.ID,
		Size:         funds.TotalAssets,
		Price:        funds.UnitPrice,
		Type:         request.OrderType,
		Side:         types.OrderSideBuy,
		Status:       types.StatusForOrderType(request.OrderType),
	}

	cashLeg := types.Order{
		UserID:       trade.User.ID,
		InstrumentID: trade.CashInstrument.ID,
		Size:         1,
		Price:        funds.TotalSpent,
		Type:         request.OrderType,
		Side:         types.OrderSideCashOut,
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

	s.logger.Info("Buy order created",
		zap.String("orderId", assetLeg.ID),
		zap.String("ticker", trade.Instrument.Ticker),
		zap.Int64("size", assetLeg.Size),
		zap.Float64("price", assetLeg.Price),
		zap.String("status", string(assetLeg.Status)))

	return assetLeg, nil
}
