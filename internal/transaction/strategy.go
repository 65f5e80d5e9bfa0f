// Package transaction implements the order engine: buy, sell and cancel
// strategies behind a side-keyed registry, fronted by a service that resolves
// accounts and instruments and serializes writes per account.
package transaction

import (
	"context"

	"github.com/rxtech-lab/argo-broker/internal/types"
)

// Ledger is the slice of the store the strategies read and write.
type Ledger interface {
	InsertOrders(ctx context.Context, orders []types.Order) ([]string, error)
	FindOrderByIDAndUser(ctx context.Context, orderID string, userID int64) (types.OrderDetail, error)
	FindMarketOrdersByUser(ctx context.Context, userID int64, pagination types.Pagination) ([]types.OrderDetail, int, error)
	LatestMarketDataByInstrument(ctx context.Context, instrumentID int64) (types.MarketData, error)
	FindUserByAccountNumber(ctx context.Context, accountNumber string) (types.User, error)
	FindInstrumentByTicker(ctx context.Context, ticker string) (types.Instrument, error)
	FindInstrumentByTickerAndType(ctx context.Context, ticker string, instrumentType types.InstrumentType) (types.Instrument, error)
}

// Balances is the slice of the aggregator the strategies fold before writing.
type Balances interface {
	CashBalance(ctx context.Context, userID int64) (float64, error)
	AvailableStock(ctx context.Context, userID, instrumentID int64) (int64, error)
}

// Trade carries the resolved entities a primary strategy operates on. The
// service resolves them once so strategies never touch raw identifiers.
type Trade struct {
	User           types.User
	Instrument     types.Instrument
	CashInstrument types.Instrument
	Request        types.CreateTransactionRequest
}

// Cancellation carries the resolved entities a secondary strategy operates on.
type Cancellation struct {
	User           types.User
	Order          types.OrderDetail
	CashInstrument types.Instrument
	Request        types.CancelTransactionRequest
}

// PrimaryStrategy executes a client-submitted trade and returns the persisted
// asset leg.
type PrimaryStrategy interface {
	Execute(ctx context.Context, trade Trade) (types.Order, error)
}

// SecondaryStrategy executes a follow-up action on an existing order and
// returns the persisted result row.
type SecondaryStrategy interface {
	Execute(ctx context.Context, cancellation Cancellation) (types.Order, error)
}
