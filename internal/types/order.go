package types

import (
	"time"
)

type OrderType string

type OrderSide string

type OrderStatus string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

const (
	OrderSideBuy     OrderSide = "BUY"
	OrderSideSell    OrderSide = "SELL"
	OrderSideCashIn  OrderSide = "CASH_IN"
	OrderSideCashOut OrderSide = "CASH_OUT"
)

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusRejected  OrderStatus = "REJECTED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// TransactionSides lists the sides a client may submit on a transaction request.
// Cash legs (CASH_IN, CASH_OUT) are only ever written by the engine itself.
var TransactionSides = []OrderSide{OrderSideBuy, OrderSideSell}

// Order is a single immutable ledger entry. Every economic event (buy, sell,
// cancel, reject) is recorded by inserting new rows, never by mutating existing
// ones. A trade is a pair of rows: the asset leg and the offsetting cash leg.
// Cash legs always carry Size = 1 with Price holding the full amount.
type Order struct {
	ID           string      `json:"id"`
	UserID       int64       `json:"userId"`
	InstrumentID int64       `json:"instrumentId"`
	Size         int64       `json:"size"`
	Price        float64     `json:"price"`
	Type         OrderType   `json:"type"`
	Side         OrderSide   `json:"side"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"datetime"`
}

// OrderDetail is an order row joined with its instrument.
type OrderDetail struct {
	Order
	Instrument Instrument `json:"instrument"`
}

// IsLimit reports whether the order type executes at a client-specified price.
func (t OrderType) IsLimit() bool {
	return t == OrderTypeLimit
}

// IsBuy reports whether the side is BUY.
func (s OrderSide) IsBuy() bool {
	return s == OrderSideBuy
}

// IsNew reports whether the status is NEW.
func (s OrderStatus) IsNew() bool {
	return s == OrderStatusNew
}

// StatusForOrderType returns the status a freshly accepted asset leg takes:
// LIMIT orders stay pending as NEW, MARKET orders resolve directly to FILLED.
func StatusForOrderType(t OrderType) OrderStatus {
	if t.IsLimit() {
		return OrderStatusNew
	}

	return OrderStatusFilled
}

// CanCancel reports whether the order is in a cancellable state. Only pending
// limit buys can be cancelled; everything else has already moved money.
func (o Order) CanCancel() bool {
	return o.Status.IsNew() && o.Side.IsBuy() && o.Type.IsLimit()
}
