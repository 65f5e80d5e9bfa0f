// Package balance derives cash balances, stock holdings and full portfolio
// valuations from the immutable order ledger. Nothing here writes; the ledger
// is folded on every read.
package balance

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"github.com/rxtech-lab/argo-broker/internal/logger"
	"github.com/rxtech-lab/argo-broker/internal/pricing"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// LedgerReader is the slice of the store the aggregator folds over.
type LedgerReader interface {
	FindFilledOrdersByUser(ctx context.Context, userID int64) ([]types.OrderDetail, error)
	FindFilledOrdersByUserAndInstrument(ctx context.Context, userID, instrumentID int64) ([]types.OrderDetail, error)
	FindCashOrdersByUser(ctx context.Context, userID int64) ([]types.OrderDetail, error)
	FindDistinctInstrumentIDs(ctx context.Context, userID int64) ([]int64, error)
	LatestMarketDataByInstruments(ctx context.Context, instrumentIDs []int64) (map[int64]types.MarketData, error)
}

// Service aggregates ledger rows into balances and positions.
type Service struct {
	ledger LedgerReader
	logger *logger.Logger
}

func NewService(ledger LedgerReader, logger *logger.Logger) *Service {
	return &Service{
		ledger: ledger,
		logger: logger,
	}
}

// CashBalance folds the user's CASH_IN and CASH_OUT legs into the realized
// cash balance. Every trade writes its own offsetting cash leg, so the cash
// rows alone carry the full picture.
func (s *Service) CashBalance(ctx context.Context, userID int64) (float64, error) {
	cashOrders, err := s.ledger.FindCashOrdersByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	var cash float64

	for _, order := range cashOrders {
		amount, err := pricing.SignedAmount(order.Side, order.Price, order.Size)
		if err != nil {
			return 0, err
		}

		cash = pricing.SumAmounts(cash, amount)
	}

	return cash, nil
}

// AvailableStock folds the user's filled orders for one instrument into the
// net quantity held.
func (s *Service) AvailableStock(ctx context.Context, userID, instrumentID int64) (int64, error) {
	orders, err := s.ledger.FindFilledOrdersByUserAndInstrument(ctx, userID, instrumentID)
	if err != nil {
		return 0, err
	}

	var quantity int64

	for _, order := range orders {
		signed, err := pricing.SignedQuantity(order.Side, order.Size)
		if err != nil {
			return 0, err
		}

		quantity += signed
	}

	return quantity, nil
}

// Portfolio reports cash, per-instrument positions valued at the latest
// close, and the total. The total is the cash balance plus the signed-amount
// fold of the asset legs at their executed prices, not the market value of
// the positions. Positions whose net quantity is not positive are dropped
// from the report.
func (s *Service) Portfolio(ctx context.Context, userID int64) (types.BalanceReport, error) {
	var (
		filledOrders  []types.OrderDetail
		instrumentIDs []int64
		cash          float64
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		filledOrders, err = s.ledger.FindFilledOrdersByUser(groupCtx, userID)
		return err
	})

	group.Go(func() error {
		var err error
		instrumentIDs, err = s.ledger.FindDistinctInstrumentIDs(groupCtx, userID)
		return err
	})

	group.Go(func() error {
		var err error
		cash, err = s.CashBalance(groupCtx, userID)
		return err
	})

	if err := group.Wait(); err != nil {
		return types.BalanceReport{}, err
	}

	var assets float64

	for _, order := range filledOrders {
		if order.Instrument.Type.IsCash() {
			continue
		}

		amount, err := pricing.SignedAmount(order.Side, order.Price, order.Size)
		if err != nil {
			return types.BalanceReport{}, err
		}

		assets = pricing.SumAmounts(assets, amount)
	}

	positions, err := s.valuePositions(ctx, filledOrders, instrumentIDs)
	if err != nil {
		return types.BalanceReport{}, err
	}

	return types.BalanceReport{
		Total:          pricing.SumAmounts(cash, assets),
		Cash:           cash,
		AssetPositions: positions,
	}, nil
}

// position accumulates one instrument's orders during the fold.
type position struct {
	instrument  types.Instrument
	quantity    int64
	totalReturn float64
	hasReturn   bool
}

func (s *Service) valuePositions(ctx context.Context, orders []types.OrderDetail, instrumentIDs []int64) ([]types.AssetPosition, error) {
	assetOrders := make([]types.OrderDetail, 0, len(orders))

	for _, order := range orders {
		if order.Instrument.Type.IsCash() {
			continue
		}

		assetOrders = append(assetOrders, order)
	}

	snapshots, err := s.ledger.LatestMarketDataByInstruments(ctx, instrumentIDs)
	if err != nil {
		return nil, err
	}

	accumulated := make(map[int64]*position, len(instrumentIDs))
	ordered := make([]int64, 0, len(instrumentIDs))

	for _, order := range assetOrders {
		snapshot, found := snapshots[order.InstrumentID]
		if !found {
			s.logger.Error("Missing market data for held instrument",
				zap.Int64("instrumentId", order.InstrumentID),
				zap.String("ticker", order.Instrument.Ticker))
			return nil, errors.Newf(errors.ErrCodeMarketDataMissing,
				"no market data found for instrument %s", order.Instrument.Ticker)
		}

		current, found := accumulated[order.InstrumentID]
		if !found {
			current = &position{instrument: order.Instrument}
			accumulated[order.InstrumentID] = current
			ordered = append(ordered, order.InstrumentID)
		}

		signed, err := pricing.SignedQuantity(order.Side, order.Size)
		if err != nil {
			return nil, err
		}
		current.quantity += signed

		closingPrice := pricing.ClosingPrice(snapshot.Close, snapshot.PreviousClose)
		orderReturn := pricing.TotalReturn(closingPrice, order.Price)

		if current.hasReturn {
			current.totalReturn = pricing.MergeReturns(current.totalReturn, orderReturn)
		} else {
			current.totalReturn = orderReturn
			current.hasReturn = true
		}
	}

	positions := make([]types.AssetPosition, 0, len(ordered))

	for _, instrumentID := range ordered {
		current := accumulated[instrumentID]
		if current.quantity <= 0 {
			continue
		}

		snapshot := snapshots[instrumentID]
		closingPrice := pricing.ClosingPrice(snapshot.Close, snapshot.PreviousClose)

		positions = append(positions, types.AssetPosition{
			ID:            current.instrument.ID,
			Ticker:        current.instrument.Ticker,
			Name:          current.instrument.Name,
			Quantity:      current.quantity,
			PositionValue: pricing.TruncateAmount(closingPrice, float64(current.quantity)),
			TotalReturn:   current.totalReturn,
		})
	}

	return positions, nil
}
